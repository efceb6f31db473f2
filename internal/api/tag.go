package api

import (
	"net/http" // HTTP status codes

	"recipe_api/internal/store" // Tag store
	"recipe_api/internal/utils" // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// TagResponse is the wire shape of a tag.
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TagUpdateRequest is the payload for renaming a tag.
type TagUpdateRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// ListTagsHandler returns the requester's tags ordered by name descending,
// through the per-user cache.
func ListTagsHandler(tags *store.TagStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		var cached []TagResponse
		if found, err := utils.GetCache(ctx, rdb, tagListKey(userID), &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		list, err := tags.ListByUser(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
			return
		}
		out := make([]TagResponse, 0, len(list))
		for _, t := range list {
			out = append(out, TagResponse{ID: t.ID, Name: t.Name})
		}
		_ = utils.SetCache(ctx, rdb, tagListKey(userID), out, listCacheTTL)
		c.JSON(http.StatusOK, out)
	}
}

// GetTagHandler returns a single tag. Tags owned by other users read as 404.
func GetTagHandler(tags *store.TagStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		tag, err := tags.GetByID(userID, id)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tag"})
			return
		}
		c.JSON(http.StatusOK, TagResponse{ID: tag.ID, Name: tag.Name})
	}
}

// UpdateTagHandler renames a tag owned by the requester.
func UpdateTagHandler(tags *store.TagStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req TagUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, bindingErrors(err))
			return
		}
		tag, err := tags.GetByID(userID, id)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tag"})
			return
		}
		if err := tags.Rename(tag, req.Name); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"tag_id":  tag.ID,
				"error":   err.Error(),
			}).Error("Tag update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag"})
			return
		}
		invalidateListCaches(c.Request.Context(), rdb, userID)
		c.JSON(http.StatusOK, TagResponse{ID: tag.ID, Name: tag.Name})
	}
}

// DeleteTagHandler deletes a tag owned by the requester, detaching it from
// any recipes that carry it.
func DeleteTagHandler(tags *store.TagStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		err := tags.Delete(userID, id)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"tag_id":  id,
				"error":   err.Error(),
			}).Error("Tag deletion failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
			return
		}
		invalidateListCaches(c.Request.Context(), rdb, userID)
		c.Status(http.StatusNoContent)
	}
}
