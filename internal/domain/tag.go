package domain

// Tag Model. The composite index closes the concurrent get-or-create race:
// two requests racing to create the same (user, name) pair cannot both win.
type Tag struct {
	ID     uint   `gorm:"primaryKey"`                                       // Primary key
	UserID uint   `gorm:"not null;uniqueIndex:idx_tags_user_name"`          // Owning user
	Name   string `gorm:"size:255;not null;uniqueIndex:idx_tags_user_name"` // Tag name, unique per user
}
