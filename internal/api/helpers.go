package api

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"recipe_api/internal/utils" // Cache helpers

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Access to gin's validator engine
	"github.com/go-playground/validator/v10" // Field-level validation errors
	"github.com/redis/go-redis/v9"           // Redis client
)

// listCacheTTL bounds how stale a cached per-user listing can get.
const listCacheTTL = 60 * time.Second

// registerTagNameFunc makes validator report json field names instead of Go
// struct field names, so error maps match the wire payload.
func registerTagNameFunc() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// bindingErrors converts a ShouldBindJSON failure into a 400 payload with
// per-field messages where the validator provides them.
func bindingErrors(err error) gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return gin.H{"error": "Invalid request"}
	}
	fields := gin.H{}
	for _, fe := range verrs {
		fields[fe.Field()] = validationMessage(fe)
	}
	return gin.H{"errors": fields}
}

// validationMessage renders a single validator failure as a client message.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		return "Ensure this field has at least " + fe.Param() + " characters"
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters"
	case "gt":
		return "Ensure this value is greater than " + fe.Param()
	case "gte":
		return "Ensure this value is greater than or equal to " + fe.Param()
	case "lte":
		return "Ensure this value is less than or equal to " + fe.Param()
	}
	return "Invalid value"
}

// requesterID pulls the authenticated user's ID out of the request context.
// A missing ID means the auth middleware did not run; respond 401 and report
// false so the handler can bail out.
func requesterID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return id, true
}

// pathID parses the :id route parameter. Malformed ids read as not-found,
// the same as ids that belong to someone else.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}

// Cache keys for the per-user listings.
func recipeListKey(userID uint) string {
	return "recipes:user:" + strconv.Itoa(int(userID))
}

func tagListKey(userID uint) string {
	return "tags:user:" + strconv.Itoa(int(userID))
}

// invalidateListCaches drops both per-user listing caches. Tag mutations
// change the tag sets embedded in cached recipe listings, so every mutation
// clears both. Cache errors are ignored; the database stays authoritative.
func invalidateListCaches(ctx context.Context, rdb *redis.Client, userID uint) {
	_ = utils.DeleteCache(ctx, rdb, recipeListKey(userID), tagListKey(userID))
}
