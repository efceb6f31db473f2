package api

import (
	"math"     // Decimal precision check
	"net/http" // HTTP status codes
	"sort"     // Stable tag ordering in responses

	"recipe_api/internal/domain" // Importing domain models
	"recipe_api/internal/store"  // Recipe store
	"recipe_api/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// TagPayload is a tag descriptor inside a recipe payload. Only the name
// participates in reconciliation; an id, if sent, is ignored.
type TagPayload struct {
	ID   uint   `json:"id"`
	Name string `json:"name" binding:"required,max=255"`
}

// RecipeCreateRequest is the payload for creating a recipe and the body of
// a full update. A user or id key in the payload is silently ignored:
// ownership comes from the authenticated requester, never from the client.
type RecipeCreateRequest struct {
	Title       string       `json:"title" binding:"required,max=255"`
	TimeMinutes *int         `json:"time_minutes" binding:"required,gte=0"`
	Price       *float64     `json:"price" binding:"required,gte=0,lte=999.99"`
	Description string       `json:"description"`
	Link        string       `json:"link" binding:"omitempty,max=255"`
	Tags        []TagPayload `json:"tags" binding:"omitempty,dive"`
}

// RecipeUpdateRequest is the partial-update payload. Nil fields were absent
// from the payload and stay untouched; a nil Tags key leaves the tag set
// alone while an empty list clears it.
type RecipeUpdateRequest struct {
	Title       *string       `json:"title" binding:"omitempty,max=255"`
	TimeMinutes *int          `json:"time_minutes" binding:"omitempty,gte=0"`
	Price       *float64      `json:"price" binding:"omitempty,gte=0,lte=999.99"`
	Description *string       `json:"description"`
	Link        *string       `json:"link" binding:"omitempty,max=255"`
	Tags        *[]TagPayload `json:"tags" binding:"omitempty,dive"`
}

// RecipeSummary is the list-view wire shape. It omits the description to
// keep listings small; that is a payload-size choice, not a security one.
type RecipeSummary struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	TimeMinutes int           `json:"time_minutes"`
	Price       float64       `json:"price"`
	Link        string        `json:"link"`
	Tags        []TagResponse `json:"tags"`
}

// RecipeDetail is the detail-view wire shape: the summary fields plus the
// description.
type RecipeDetail struct {
	RecipeSummary
	Description string `json:"description"`
}

func newRecipeSummary(r *domain.Recipe) RecipeSummary {
	tags := make([]TagResponse, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, TagResponse{ID: t.ID, Name: t.Name})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
	return RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        tags,
	}
}

func newRecipeDetail(r *domain.Recipe) RecipeDetail {
	return RecipeDetail{RecipeSummary: newRecipeSummary(r), Description: r.Description}
}

// priceTooPrecise reports whether a price carries more than two decimal
// places. The column is fixed-point decimal(5,2); anything finer would be
// silently rounded by the database.
func priceTooPrecise(p float64) bool {
	scaled := p * 100
	return math.Abs(scaled-math.Round(scaled)) > 1e-6
}

func tagNames(payload []TagPayload) []string {
	names := make([]string, 0, len(payload))
	for _, t := range payload {
		names = append(names, t.Name)
	}
	return names
}

// ListRecipesHandler returns the requester's recipes in summary shape,
// newest id first, through the per-user cache.
func ListRecipesHandler(recipes *store.RecipeStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		var cached []RecipeSummary
		if found, err := utils.GetCache(ctx, rdb, recipeListKey(userID), &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		list, err := recipes.ListByUser(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
			return
		}
		out := make([]RecipeSummary, 0, len(list))
		for i := range list {
			out = append(out, newRecipeSummary(&list[i]))
		}
		_ = utils.SetCache(ctx, rdb, recipeListKey(userID), out, listCacheTTL)
		c.JSON(http.StatusOK, out)
	}
}

// CreateRecipeHandler creates a recipe owned by the requester, resolving
// any supplied tags through get-or-create reconciliation.
func CreateRecipeHandler(recipes *store.RecipeStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		var req RecipeCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, bindingErrors(err))
			return
		}
		if priceTooPrecise(*req.Price) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"price": "Ensure that there are no more than 2 decimal places"}})
			return
		}
		recipe := domain.Recipe{
			UserID:      userID, // Owner is always the requester
			Title:       req.Title,
			Description: req.Description,
			TimeMinutes: *req.TimeMinutes,
			Price:       *req.Price,
			Link:        req.Link,
		}
		if err := recipes.Create(&recipe, tagNames(req.Tags)); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"title":   req.Title,
				"error":   err.Error(),
			}).Error("Recipe creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,
			"recipe_id": recipe.ID,
		}).Info("Recipe created")
		invalidateListCaches(c.Request.Context(), rdb, userID)
		c.JSON(http.StatusCreated, newRecipeDetail(&recipe))
	}
}

// GetRecipeHandler returns a single recipe in detail shape. Recipes owned
// by other users read as 404.
func GetRecipeHandler(recipes *store.RecipeStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		recipe, err := recipes.GetByID(userID, id)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
			return
		}
		c.JSON(http.StatusOK, newRecipeDetail(recipe))
	}
}

// UpdateRecipeHandler handles both PATCH (partial) and PUT (full) updates.
// For PUT the create-shape payload is bound, so every scalar field is
// required and replaced; either way the owner is never reassigned.
func UpdateRecipeHandler(recipes *store.RecipeStore, rdb *redis.Client, partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		patch, bindOK := bindRecipePatch(c, partial)
		if !bindOK {
			return
		}
		recipe, err := recipes.GetByID(userID, id)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
			return
		}
		if err := recipes.Update(recipe, patch); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":   userID,
				"recipe_id": recipe.ID,
				"error":     err.Error(),
			}).Error("Recipe update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
			return
		}
		invalidateListCaches(c.Request.Context(), rdb, userID)
		c.JSON(http.StatusOK, newRecipeDetail(recipe))
	}
}

// bindRecipePatch binds the request body into a store.RecipePatch, writing
// the error response itself when binding or precision validation fails.
func bindRecipePatch(c *gin.Context, partial bool) (store.RecipePatch, bool) {
	var patch store.RecipePatch
	if partial {
		var req RecipeUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, bindingErrors(err))
			return patch, false
		}
		if req.Price != nil && priceTooPrecise(*req.Price) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"price": "Ensure that there are no more than 2 decimal places"}})
			return patch, false
		}
		patch = store.RecipePatch{
			Title:       req.Title,
			Description: req.Description,
			TimeMinutes: req.TimeMinutes,
			Price:       req.Price,
			Link:        req.Link,
		}
		if req.Tags != nil {
			names := tagNames(*req.Tags)
			patch.Tags = &names
		}
		return patch, true
	}
	var req RecipeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return patch, false
	}
	if priceTooPrecise(*req.Price) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"price": "Ensure that there are no more than 2 decimal places"}})
		return patch, false
	}
	patch = store.RecipePatch{
		Title:       &req.Title,
		Description: &req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        &req.Link,
	}
	if req.Tags != nil {
		names := tagNames(req.Tags)
		patch.Tags = &names
	}
	return patch, true
}

// DeleteRecipeHandler deletes a recipe owned by the requester. Recipes
// owned by other users read as 404 and stay untouched.
func DeleteRecipeHandler(recipes *store.RecipeStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		err := recipes.Delete(userID, id)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":   userID,
				"recipe_id": id,
				"error":     err.Error(),
			}).Error("Recipe deletion failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
			return
		}
		invalidateListCaches(c.Request.Context(), rdb, userID)
		c.Status(http.StatusNoContent)
	}
}
