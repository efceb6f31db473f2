package domain

// User Model
type User struct {
	ID          uint   `gorm:"primaryKey"`               // Primary key
	Email       string `gorm:"size:255;unique;not null"` // Unique login email, domain part lowercased
	Name        string `gorm:"size:255"`                 // Display name
	Password    string `gorm:"not null"`                 // Hashed password, never the plaintext
	IsActive    bool   `gorm:"default:true"`             // Disabled accounts cannot authenticate
	IsStaff     bool   // Staff flag
	IsSuperuser bool   // Superuser flag
}
