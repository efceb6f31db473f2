package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipe_api/internal/config"
	"recipe_api/internal/domain"
	"recipe_api/internal/store"
	"recipe_api/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// setupAPI assembles the full router against an in-memory database and a
// miniredis instance, so tests drive the real HTTP surface end to end.
func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&domain.User{}, &domain.Tag{}, &domain.Recipe{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return Router(gdb, rdb, &config.Config{JWTSecret: testSecret}), gdb
}

// createUser registers a user directly through the store layer.
func createUser(t *testing.T, gdb *gorm.DB, email, password string) *domain.User {
	t.Helper()
	user, err := store.NewUserStore(gdb).Create(email, password, "Test Name")
	require.NoError(t, err)
	return user
}

// authToken issues a bearer token for the given user.
func authToken(t *testing.T, userID uint) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, testSecret)
	require.NoError(t, err)
	return token
}

// doJSON performs a request against the router with an optional JSON body
// and bearer token.
func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// decodeJSON unmarshals a recorded response body.
func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}
