package store

import (
	"errors"
	"strings"

	"recipe_api/internal/domain" // Importing domain models

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// UserStore owns persistence and credential checks for User records.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore returns a UserStore backed by the given database handle.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// NormalizeEmail lowercases the domain portion of an email address,
// leaving the local part untouched.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// Create hashes the password and persists a new user. The email is required
// and normalized before storage; the plaintext password is never stored.
func (s *UserStore) Create(email, password, name string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		Email:    NormalizeEmail(email),
		Name:     name,
		Password: string(hash),
		IsActive: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// CreateSuperuser creates a regular user and elevates the staff and
// superuser flags.
func (s *UserStore) CreateSuperuser(email, password string) (*domain.User, error) {
	user, err := s.Create(email, password, "")
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks email+password and returns the matching user. Every
// failure mode (unknown email, wrong or blank password, disabled account)
// yields the same error so callers cannot probe for account existence.
func (s *UserStore) Authenticate(email, password string) (*domain.User, error) {
	if password == "" {
		return nil, ErrInvalidCredentials
	}
	var user domain.User
	if err := s.db.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetByID fetches a user by primary key.
func (s *UserStore) GetByID(id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update. Nil fields are left
// untouched; a supplied password is re-hashed before storage.
func (s *UserStore) UpdateProfile(user *domain.User, name, password *string) error {
	if name != nil {
		user.Name = *name
	}
	if password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hash)
	}
	return s.db.Save(user).Error
}

// isDuplicateErr reports whether err is a unique constraint violation.
// gorm translates these when TranslateError is enabled; the string checks
// cover the mysql and sqlite drivers when it is not.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
