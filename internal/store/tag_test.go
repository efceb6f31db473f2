package store

import (
	"testing"

	"recipe_api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTagsByNameDescending(t *testing.T) {
	gdb := newTestDB(t)
	tags := NewTagStore(gdb)
	user := mustCreateUser(t, gdb, "user@example.com")
	for _, name := range []string{"Vegan", "Dessert", "Breakfast"} {
		require.NoError(t, gdb.Create(&domain.Tag{UserID: user.ID, Name: name}).Error)
	}

	list, err := tags.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Vegan", list[0].Name)
	assert.Equal(t, "Dessert", list[1].Name)
	assert.Equal(t, "Breakfast", list[2].Name)
}

func TestTagGetByIDScopedToOwner(t *testing.T) {
	gdb := newTestDB(t)
	tags := NewTagStore(gdb)
	owner := mustCreateUser(t, gdb, "owner@example.com")
	other := mustCreateUser(t, gdb, "other@example.com")
	tag := domain.Tag{UserID: owner.ID, Name: "Fruity"}
	require.NoError(t, gdb.Create(&tag).Error)

	got, err := tags.GetByID(owner.ID, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fruity", got.Name)

	_, err = tags.GetByID(other.ID, tag.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenameTag(t *testing.T) {
	gdb := newTestDB(t)
	tags := NewTagStore(gdb)
	user := mustCreateUser(t, gdb, "user@example.com")
	tag := domain.Tag{UserID: user.ID, Name: "After Dinner"}
	require.NoError(t, gdb.Create(&tag).Error)

	require.NoError(t, tags.Rename(&tag, "Dessert"))

	stored, err := tags.GetByID(user.ID, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dessert", stored.Name)
}

func TestDeleteTagDetachesFromRecipes(t *testing.T) {
	gdb := newTestDB(t)
	tags := NewTagStore(gdb)
	recipes := NewRecipeStore(gdb)
	user := mustCreateUser(t, gdb, "user@example.com")
	recipe := sampleRecipe(user.ID)
	require.NoError(t, recipes.Create(recipe, []string{"Breakfast", "Quick"}))
	require.Len(t, recipe.Tags, 2)

	var breakfast domain.Tag
	require.NoError(t, gdb.Where("user_id = ? AND name = ?", user.ID, "Breakfast").First(&breakfast).Error)
	require.NoError(t, tags.Delete(user.ID, breakfast.ID))

	// The tag is gone from the recipe's set; the recipe itself survives.
	stored, err := recipes.GetByID(user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Quick"}, tagNamesOf(stored))
}

func TestDeleteTagScopedToOwner(t *testing.T) {
	gdb := newTestDB(t)
	tags := NewTagStore(gdb)
	owner := mustCreateUser(t, gdb, "owner@example.com")
	other := mustCreateUser(t, gdb, "other@example.com")
	tag := domain.Tag{UserID: owner.ID, Name: "Comfort Food"}
	require.NoError(t, gdb.Create(&tag).Error)

	assert.ErrorIs(t, tags.Delete(other.ID, tag.ID), ErrNotFound)
	_, err := tags.GetByID(owner.ID, tag.ID)
	require.NoError(t, err)
}
