package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLikeService(db *gorm.DB) *LikeService {
	return NewLikeService(
		db,
		repository.NewLikeRepository(db),
		repository.NewPostRepository(db),
		repository.NewCommentRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestLikeService_PostLikeUnlikeRoundTrip(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newLikeService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 10)
	reader := createTestUser(t, db, "reader@example.com", 10)
	post := createTestPost(t, db, author.ID, models.CategoryPoetry)

	res, err := svc.ToggleLike(ctx, ToggleLikeInput{UserID: &reader.ID, PostID: &post.ID})
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(1), res.LikesCount)

	// Post like: author +2, liker +1.
	assert.Equal(t, 12, userPoints(t, db, author.ID))
	assert.Equal(t, 11, userPoints(t, db, reader.ID))

	res, err = svc.ToggleLike(ctx, ToggleLikeInput{UserID: &reader.ID, PostID: &post.ID})
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, int64(0), res.LikesCount)

	// Unlike restores both balances exactly.
	assert.Equal(t, 10, userPoints(t, db, author.ID))
	assert.Equal(t, 10, userPoints(t, db, reader.ID))
}

func TestLikeService_CommentLike(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newLikeService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	commenter := createTestUser(t, db, "commenter@example.com", 0)
	reader := createTestUser(t, db, "reader@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryEssay)
	comment := &models.Comment{Content: "well argued overall", Length: 19, UserID: commenter.ID, PostID: post.ID}
	require.NoError(t, db.Create(comment).Error)

	_, err := svc.ToggleLike(ctx, ToggleLikeInput{UserID: &reader.ID, CommentID: &comment.ID})
	require.NoError(t, err)

	// Comment like: comment author +1, liker +1, post author untouched.
	assert.Equal(t, 1, userPoints(t, db, commenter.ID))
	assert.Equal(t, 1, userPoints(t, db, reader.ID))
	assert.Zero(t, userPoints(t, db, author.ID))
}

func TestLikeService_GuestLike(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newLikeService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryStory)

	res, err := svc.ToggleLike(ctx, ToggleLikeInput{GuestToken: "guest-abc", PostID: &post.ID})
	require.NoError(t, err)
	assert.True(t, res.Liked)

	// Guest likes credit only the author.
	assert.Equal(t, 2, userPoints(t, db, author.ID))

	// The same token toggles its own like off.
	res, err = svc.ToggleLike(ctx, ToggleLikeInput{GuestToken: "guest-abc", PostID: &post.ID})
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Zero(t, userPoints(t, db, author.ID))
}

func TestLikeService_ConcurrentGuestToggles(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newLikeService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryLetter)

	// Two requests with the same token race the initial Find. Whatever
	// interleaving the scheduler picks, at most one like row may survive
	// and the author's balance must match it.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ToggleLike(ctx, ToggleLikeInput{GuestToken: "guest-race", PostID: &post.ID})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var rows int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("guest_token = ? AND post_id = ?", "guest-race", post.ID).
		Count(&rows).Error)
	assert.LessOrEqual(t, rows, int64(1))
	assert.Equal(t, int(rows)*2, userPoints(t, db, author.ID),
		"author credit must match the surviving like rows")
}

func TestLikeService_GuestWithoutToken(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newLikeService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryStory)

	_, err := svc.ToggleLike(ctx, ToggleLikeInput{PostID: &post.ID})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestLikeService_ExactlyOneTarget(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newLikeService(db)
	ctx := context.Background()

	reader := createTestUser(t, db, "reader@example.com", 0)
	one := uint(1)

	_, err := svc.ToggleLike(ctx, ToggleLikeInput{UserID: &reader.ID})
	assert.Error(t, err)

	_, err = svc.ToggleLike(ctx, ToggleLikeInput{UserID: &reader.ID, PostID: &one, CommentID: &one})
	assert.Error(t, err)
}

func TestLikeService_MissingTarget(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newLikeService(db)
	ctx := context.Background()

	reader := createTestUser(t, db, "reader@example.com", 0)
	missing := uint(999)

	_, err := svc.ToggleLike(ctx, ToggleLikeInput{UserID: &reader.ID, PostID: &missing})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
