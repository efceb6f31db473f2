package api

import (
	"net/http" // HTTP status codes

	"recipe_api/internal/config"     // Application configuration
	"recipe_api/internal/middleware" // JWT auth middleware
	"recipe_api/internal/store"      // Entity stores

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Router assembles the full HTTP surface. It is used by cmd/server and by
// the API tests, which drive it through httptest.
func Router(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	registerTagNameFunc()

	r := gin.Default()
	// Unsupported verbs on known routes must answer 405, not 404.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	users := store.NewUserStore(db)
	recipes := store.NewRecipeStore(db)
	tags := store.NewTagStore(db)

	// User routes: registration and token issuance are public, the profile
	// endpoint requires auth and always targets the requester.
	userGroup := r.Group("/user")
	userGroup.POST("/create/", RegisterHandler(users))
	userGroup.POST("/token/", TokenHandler(users, cfg.JWTSecret))
	meGroup := userGroup.Group("/me", middleware.JWTAuthMiddleware(cfg.JWTSecret))
	meGroup.GET("/", ProfileHandler(users))
	meGroup.PATCH("/", UpdateProfileHandler(users))

	// Recipe and tag routes, all protected and owner-scoped.
	recipeGroup := r.Group("/recipe", middleware.JWTAuthMiddleware(cfg.JWTSecret))
	recipeGroup.GET("/recipes/", ListRecipesHandler(recipes, rdb))
	recipeGroup.POST("/recipes/", CreateRecipeHandler(recipes, rdb))
	recipeGroup.GET("/recipes/:id/", GetRecipeHandler(recipes))
	recipeGroup.PUT("/recipes/:id/", UpdateRecipeHandler(recipes, rdb, false))
	recipeGroup.PATCH("/recipes/:id/", UpdateRecipeHandler(recipes, rdb, true))
	recipeGroup.DELETE("/recipes/:id/", DeleteRecipeHandler(recipes, rdb))
	recipeGroup.GET("/tags/", ListTagsHandler(tags, rdb))
	recipeGroup.GET("/tags/:id/", GetTagHandler(tags))
	recipeGroup.PATCH("/tags/:id/", UpdateTagHandler(tags, rdb))
	recipeGroup.DELETE("/tags/:id/", DeleteTagHandler(tags, rdb))

	return r
}
