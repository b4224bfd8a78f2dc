// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/lshigami/classquiz/database"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// PostgresDSNEnv names the variable that enables tests against a real Postgres.
const PostgresDSNEnv = "CLASSQUIZ_TEST_POSTGRES_DSN"

// OpenDB returns a migrated in-memory sqlite database private to the test.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.Open(sqlite.Open(dsn), false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the shared in-memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// OpenPostgres connects to the database named by PostgresDSNEnv and skips the test when it is unset.
// Tables are migrated and emptied before use.
func OpenPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("set %s to run Postgres integration tests", PostgresDSNEnv)
	}
	db, err := database.Open(postgres.Open(dsn), false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	require.NoError(t, db.Exec(`TRUNCATE users, access_tokens, quizzes, questions, options, results,
		result_quizzes, result_essays, feeds, feed_replies, materi RESTART IDENTITY CASCADE`).Error)
	return db
}

// CreateUser inserts a user with password "secret123".
func CreateUser(t *testing.T, db *gorm.DB, name, email string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: email, Role: role}
	require.NoError(t, u.SetPassword("secret123"))
	require.NoError(t, db.Create(u).Error)
	return u
}
