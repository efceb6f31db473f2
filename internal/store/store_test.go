package store

import (
	"testing"

	"recipe_api/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory database with the full schema. A single
// connection keeps the in-memory sqlite database alive across queries.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&domain.User{}, &domain.Tag{}, &domain.Recipe{}))
	return gdb
}

// mustCreateUser registers a user directly through the store.
func mustCreateUser(t *testing.T, gdb *gorm.DB, email string) *domain.User {
	t.Helper()
	user, err := NewUserStore(gdb).Create(email, "testpass123", "Test Name")
	require.NoError(t, err)
	return user
}
