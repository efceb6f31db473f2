package store

import (
	"errors"

	"recipe_api/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// RecipePatch carries a partial update. Nil fields were absent from the
// payload and must be left untouched. The owning user is deliberately not
// representable here: ownership can never be reassigned through an update.
type RecipePatch struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *float64
	Link        *string
	Tags        *[]string // nil = leave tags alone, empty = clear them
}

// RecipeStore owns persistence for Recipe records and the tag
// reconciliation performed on create and update.
type RecipeStore struct {
	db *gorm.DB
}

// NewRecipeStore returns a RecipeStore backed by the given database handle.
func NewRecipeStore(db *gorm.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

// ListByUser returns all recipes owned by userID, newest id first.
func (s *RecipeStore) ListByUser(userID uint) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	err := s.db.Preload("Tags").
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&recipes).Error
	return recipes, err
}

// GetByID fetches a single recipe scoped to its owner. A recipe owned by a
// different user is indistinguishable from one that does not exist.
func (s *RecipeStore) GetByID(userID, id uint) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := s.db.Preload("Tags").
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Create persists a new recipe and attaches its tags. The recipe row is
// written first because tags need a persisted recipe id to attach to.
func (s *RecipeStore) Create(recipe *domain.Recipe, tagNames []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(recipe).Error; err != nil {
			return err
		}
		if len(tagNames) == 0 {
			return nil
		}
		tags, err := getOrCreateTags(tx, recipe.UserID, tagNames)
		if err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
			return err
		}
		recipe.Tags = tags
		return nil
	})
}

// Update merges a patch into an existing recipe. Scalar fields are merged
// field by field from the allow-list; when the patch carries a tag list the
// recipe's tag set is fully replaced (an empty list clears it), otherwise
// the existing associations stay as they are.
func (s *RecipeStore) Update(recipe *domain.Recipe, patch RecipePatch) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if patch.Title != nil {
			recipe.Title = *patch.Title
		}
		if patch.Description != nil {
			recipe.Description = *patch.Description
		}
		if patch.TimeMinutes != nil {
			recipe.TimeMinutes = *patch.TimeMinutes
		}
		if patch.Price != nil {
			recipe.Price = *patch.Price
		}
		if patch.Link != nil {
			recipe.Link = *patch.Link
		}
		if err := tx.Omit("Tags").Save(recipe).Error; err != nil {
			return err
		}
		if patch.Tags == nil {
			return nil
		}
		tags, err := getOrCreateTags(tx, recipe.UserID, *patch.Tags)
		if err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
			return err
		}
		recipe.Tags = tags
		return nil
	})
}

// Delete removes a recipe scoped to its owner, clearing the tag
// associations with it. Recipes owned by other users report ErrNotFound.
func (s *RecipeStore) Delete(userID, id uint) error {
	recipe, err := s.GetByID(userID, id)
	if err != nil {
		return err
	}
	return s.db.Select("Tags").Delete(recipe).Error
}

// getOrCreateTags resolves each name to a tag owned by userID, reusing
// existing rows and creating the rest. Duplicate names in one call resolve
// to a single tag. Runs inside the caller's transaction.
func getOrCreateTags(tx *gorm.DB, userID uint, names []string) ([]domain.Tag, error) {
	tags := make([]domain.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		var tag domain.Tag
		err := tx.Where("user_id = ? AND name = ?", userID, name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = domain.Tag{UserID: userID, Name: name}
			err = tx.Create(&tag).Error
			if err != nil && isDuplicateErr(err) {
				// Lost a concurrent get-or-create race: the row exists now.
				err = tx.Where("user_id = ? AND name = ?", userID, name).First(&tag).Error
			}
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
