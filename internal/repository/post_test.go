package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_GetByIDWithCounts(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	reader := createTestUser(t, db, "reader@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryJournal)

	require.NoError(t, db.Create(&models.Comment{
		Content: "a fine entry today", Length: 18, UserID: reader.ID, PostID: post.ID,
	}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: &reader.ID, PostID: &post.ID}).Error)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CommentsCount)
	assert.Equal(t, 1, got.LikesCount)
	assert.Equal(t, author.Email, got.User.Email)
}

func TestPostRepository_ListFiltersByCategory(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	createTestPost(t, db, author.ID, models.CategoryPoetry)
	createTestPost(t, db, author.ID, models.CategoryPoetry)
	createTestPost(t, db, author.ID, models.CategoryStory)

	poems, err := repo.List(ctx, models.CategoryPoetry, 50, 0)
	require.NoError(t, err)
	assert.Len(t, poems, 2)

	all, err := repo.List(ctx, "", 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPostRepository_DeleteRemovesChildren(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	reader := createTestUser(t, db, "reader@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryLetter)

	comment := &models.Comment{Content: "what a lovely letter", Length: 20, UserID: reader.ID, PostID: post.ID}
	require.NoError(t, db.Create(comment).Error)
	require.NoError(t, db.Create(&models.Like{UserID: &reader.ID, PostID: &post.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: &reader.ID, CommentID: &comment.ID}).Error)

	require.NoError(t, repo.Delete(ctx, post.ID))

	var comments, likes int64
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	assert.Zero(t, comments)
	assert.Zero(t, likes)

	_, err := repo.GetByID(ctx, post.ID)
	assert.Error(t, err)
}
