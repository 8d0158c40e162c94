package service

import (
	"context"
	"fmt"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/evaluator"
	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func userPoints(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return user.Points
}

// judgeStub scores every comment the same way, or fails.
type judgeStub struct {
	score int
	err   error
	calls int
}

func (j *judgeStub) Score(_ context.Context, _ evaluator.Request) (string, error) {
	j.calls++
	if j.err != nil {
		return "", j.err
	}
	return fmt.Sprintf(`{"score": %d, "is_spam_or_copied": false, "reasoning": "stub"}`, j.score), nil
}

// flaggingJudge marks everything as spam.
type flaggingJudge struct{}

func (flaggingJudge) Score(_ context.Context, _ evaluator.Request) (string, error) {
	return `{"score": 0, "is_spam_or_copied": true, "reasoning": "copied verbatim"}`, nil
}
