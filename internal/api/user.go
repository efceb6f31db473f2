package api

import (
	"net/http" // HTTP status codes

	"recipe_api/internal/store" // User store
	"recipe_api/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest is the payload for user registration. Passwords shorter
// than five characters are rejected before anything is persisted.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`    // Login email
	Password string `json:"password" binding:"required,min=5"` // Plaintext password, hashed before storage
	Name     string `json:"name" binding:"omitempty,max=255"`  // Optional display name
}

// TokenRequest is the payload for token issuance.
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`    // Login email
	Password string `json:"password" binding:"required"` // Plaintext password
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"` // JWT bearer token
}

// UserResponse is the wire shape of a created user. The password hash is
// never serialized.
type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ProfileResponse is the wire shape of the requester's own profile.
type ProfileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileUpdateRequest is the partial-update payload for the profile
// endpoint. Nil fields were absent and stay untouched.
type ProfileUpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Password *string `json:"password" binding:"omitempty,min=5"`
}

// RegisterHandler creates a new user account. No authentication required.
func RegisterHandler(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, bindingErrors(err))
			return
		}
		user, err := users.Create(req.Email, req.Password, req.Name)
		if err == store.ErrEmailTaken {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": "A user with that email already exists"}})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"email": req.Email,
				"error": err.Error(),
			}).Error("User registration failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
		logrus.WithField("user_id", user.ID).Info("User registered")
		c.JSON(http.StatusCreated, UserResponse{ID: user.ID, Email: user.Email, Name: user.Name})
	}
}

// TokenHandler validates credentials and issues a bearer token. Any
// credential failure reads the same, without revealing whether the account
// exists.
func TokenHandler(users *store.UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to authenticate with provided credentials"})
			return
		}
		user, err := users.Authenticate(req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to authenticate with provided credentials"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			}).Error("Token generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, TokenResponse{Token: token})
	}
}

// ProfileHandler returns the authenticated user's own profile. The endpoint
// never takes an id; it always targets the requester.
func ProfileHandler(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		user, err := users.GetByID(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, ProfileResponse{Name: user.Name, Email: user.Email})
	}
}

// UpdateProfileHandler applies a partial update to the requester's profile.
// A supplied password is re-hashed; absent fields stay untouched.
func UpdateProfileHandler(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		var req ProfileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, bindingErrors(err))
			return
		}
		user, err := users.GetByID(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := users.UpdateProfile(user, req.Name, req.Password); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Profile update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, ProfileResponse{Name: user.Name, Email: user.Email})
	}
}
