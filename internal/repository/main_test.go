package repository

import (
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database migrated with the full
// schema. A single connection keeps every query on the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, points int) *models.User {
	t.Helper()
	user := &models.User{
		Email:    email,
		Name:     "Test Writer",
		Password: "hashed",
		Points:   points,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, category string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    "On Reading",
		Content:  "a short essay about reading closely",
		Category: category,
		Length:   34,
		UserID:   userID,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
