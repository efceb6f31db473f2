package domain

// Recipe Model
type Recipe struct {
	ID          uint    `gorm:"primaryKey"`             // Primary key
	UserID      uint    `gorm:"index;not null"`         // Owning user, immutable after creation
	Title       string  `gorm:"size:255;not null"`      // Recipe title
	Description string  `gorm:"type:text"`              // Optional long description
	TimeMinutes int     `gorm:"not null"`               // Time to cook in minutes
	Price       float64 `gorm:"type:decimal(5,2)"`      // Price, 5 digits / 2 decimals
	Link        string  `gorm:"size:255"`               // Optional external link
	Tags        []Tag   `gorm:"many2many:recipe_tags;"` // Unordered tag set, rendered in a stable order
}
