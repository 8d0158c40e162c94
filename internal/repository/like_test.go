package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLikeRepository_FindAndToggle(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "liker@example.com", 0)
	author := createTestUser(t, db, "author@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryPoetry)

	liker := LikerKey{UserID: &user.ID}
	target := LikeTarget{PostID: &post.ID}

	found, err := repo.Find(ctx, liker, target)
	require.NoError(t, err)
	assert.Nil(t, found)

	like := &models.Like{UserID: &user.ID, PostID: &post.ID}
	require.NoError(t, repo.Create(ctx, like))

	found, err = repo.Find(ctx, liker, target)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, like.ID, found.ID)

	require.NoError(t, repo.Delete(ctx, found.ID))

	found, err = repo.Find(ctx, liker, target)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestLikeRepository_GuestKeyedByToken(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryStory)

	require.NoError(t, repo.Create(ctx, &models.Like{
		GuestToken: "guest-one",
		PostID:     &post.ID,
	}))

	target := LikeTarget{PostID: &post.ID}

	found, err := repo.Find(ctx, LikerKey{GuestToken: "guest-one"}, target)
	require.NoError(t, err)
	assert.NotNil(t, found)

	// A different token is a different liker.
	found, err = repo.Find(ctx, LikerKey{GuestToken: "guest-two"}, target)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestLikeRepository_DuplicateRejected(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "liker@example.com", 0)
	author := createTestUser(t, db, "author@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryEssay)

	t.Run("registered user", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Like{UserID: &user.ID, PostID: &post.ID}))
		err := repo.Create(ctx, &models.Like{UserID: &user.ID, PostID: &post.ID})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("guest token", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Like{GuestToken: "guest-dup", PostID: &post.ID}))
		err := repo.Create(ctx, &models.Like{GuestToken: "guest-dup", PostID: &post.ID})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

		// A different token is a different liker.
		assert.NoError(t, repo.Create(ctx, &models.Like{GuestToken: "guest-other", PostID: &post.ID}))
	})
}

func TestLikeRepository_Counts(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryEssay)
	comment := &models.Comment{Content: "splendid work, truly", Length: 20, UserID: author.ID, PostID: post.ID}
	require.NoError(t, db.Create(comment).Error)

	u1 := createTestUser(t, db, "one@example.com", 0)
	u2 := createTestUser(t, db, "two@example.com", 0)
	require.NoError(t, repo.Create(ctx, &models.Like{UserID: &u1.ID, PostID: &post.ID}))
	require.NoError(t, repo.Create(ctx, &models.Like{UserID: &u2.ID, PostID: &post.ID}))
	require.NoError(t, repo.Create(ctx, &models.Like{UserID: &u1.ID, CommentID: &comment.ID}))

	n, err := repo.CountForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.CountForComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
