package store

import (
	"errors"

	"recipe_api/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// TagStore owns persistence for standalone Tag operations. Lazy creation
// during recipe writes lives with the RecipeStore's reconciliation.
type TagStore struct {
	db *gorm.DB
}

// NewTagStore returns a TagStore backed by the given database handle.
func NewTagStore(db *gorm.DB) *TagStore {
	return &TagStore{db: db}
}

// ListByUser returns all tags owned by userID, ordered by name descending.
func (s *TagStore) ListByUser(userID uint) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := s.db.Where("user_id = ?", userID).Order("name desc").Find(&tags).Error
	return tags, err
}

// GetByID fetches a single tag scoped to its owner.
func (s *TagStore) GetByID(userID, id uint) (*domain.Tag, error) {
	var tag domain.Tag
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// Rename updates a tag's name.
func (s *TagStore) Rename(tag *domain.Tag, name string) error {
	tag.Name = name
	return s.db.Save(tag).Error
}

// Delete removes a tag scoped to its owner. The tag is detached from every
// recipe that carries it; the recipes themselves are untouched.
func (s *TagStore) Delete(userID, id uint) error {
	tag, err := s.GetByID(userID, id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
}
