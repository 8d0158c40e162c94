package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"inkwell/internal/evaluator"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentService(t *testing.T, db *gorm.DB, judge evaluator.Judge) *CommentService {
	t.Helper()
	return NewCommentService(
		db,
		repository.NewCommentRepository(db),
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		evaluator.New(judge),
	)
}

func TestCommentService_CreateComment_ScoredVerdict(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newCommentService(t, db, &judgeStub{score: 50})
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	reader := createTestUser(t, db, "reader@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryEssay)

	comment, err := svc.CreateComment(ctx, CreateCommentInput{
		UserID:  reader.ID,
		PostID:  post.ID,
		Content: "this essay held my attention",
	})
	require.NoError(t, err)

	require.NotNil(t, comment.Score)
	assert.Equal(t, 50, *comment.Score)
	assert.False(t, comment.Flagged)
	// Score 50 sits in the medium tier.
	assert.Equal(t, 2, userPoints(t, db, reader.ID))
}

func TestCommentService_CreateComment_JudgeFailureDegradesToFloor(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newCommentService(t, db, &judgeStub{err: errors.New("judge down")})
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	reader := createTestUser(t, db, "reader@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryStory)

	// 250 words with no judge signal floors at score 80, high tier.
	content := strings.Repeat("thoughtful ", 250)
	comment, err := svc.CreateComment(ctx, CreateCommentInput{
		UserID:  reader.ID,
		PostID:  post.ID,
		Content: content,
	})
	require.NoError(t, err)

	require.NotNil(t, comment.Score)
	assert.Equal(t, 80, *comment.Score)
	assert.False(t, comment.Flagged)
	assert.Equal(t, 3, userPoints(t, db, reader.ID))
}

func TestCommentService_CreateComment_FlaggedEarnsNothing(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newCommentService(t, db, flaggingJudge{})
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	reader := createTestUser(t, db, "reader@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryPoetry)

	comment, err := svc.CreateComment(ctx, CreateCommentInput{
		UserID:  reader.ID,
		PostID:  post.ID,
		Content: strings.Repeat("pasted from somewhere ", 30),
	})
	require.NoError(t, err)

	assert.True(t, comment.Flagged)
	require.NotNil(t, comment.Score)
	assert.Zero(t, *comment.Score)
	assert.Zero(t, userPoints(t, db, reader.ID))
}

func TestCommentService_CreateComment_LengthBounds(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	judge := &judgeStub{score: 50}
	svc := newCommentService(t, db, judge)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	reader := createTestUser(t, db, "reader@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryJournal)

	_, err := svc.CreateComment(ctx, CreateCommentInput{
		UserID: reader.ID, PostID: post.ID, Content: "too short",
	})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)

	_, err = svc.CreateComment(ctx, CreateCommentInput{
		UserID: reader.ID, PostID: post.ID, Content: strings.Repeat("a", 5001),
	})
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)

	// Rejected comments never reach the judge.
	assert.Zero(t, judge.calls)
}

func TestCommentService_CreateComment_MissingPost(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newCommentService(t, db, &judgeStub{score: 50})
	ctx := context.Background()

	reader := createTestUser(t, db, "reader@example.com", 0)

	_, err := svc.CreateComment(ctx, CreateCommentInput{
		UserID: reader.ID, PostID: 999, Content: "commenting into the void",
	})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentService_DeleteComment_ReversesAwardClamped(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newCommentService(t, db, &judgeStub{score: 90})
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	reader := createTestUser(t, db, "reader@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryEssay)

	comment, err := svc.CreateComment(ctx, CreateCommentInput{
		UserID:  reader.ID,
		PostID:  post.ID,
		Content: "a genuinely excellent essay",
	})
	require.NoError(t, err)
	require.Equal(t, 3, userPoints(t, db, reader.ID))

	// Spend the earned points before deleting; the reversal clamps at zero.
	require.NoError(t, repository.NewUserRepository(db).AddPoints(ctx, reader.ID, -2))

	require.NoError(t, svc.DeleteComment(ctx, DeleteCommentInput{
		UserID: reader.ID, PostID: post.ID, CommentID: comment.ID,
	}))
	assert.Zero(t, userPoints(t, db, reader.ID))

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCommentService_DeleteComment_AuthorOnly(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newCommentService(t, db, &judgeStub{score: 20})
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	reader := createTestUser(t, db, "reader@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryLetter)

	comment, err := svc.CreateComment(ctx, CreateCommentInput{
		UserID: reader.ID, PostID: post.ID, Content: "a pleasant enough letter",
	})
	require.NoError(t, err)

	err = svc.DeleteComment(ctx, DeleteCommentInput{UserID: author.ID, PostID: post.ID, CommentID: comment.ID})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeUnauthorized, appErr.Code)
}

func TestCommentService_DeleteComment_WrongPost(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newCommentService(t, db, &judgeStub{score: 20})
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com", 0)
	reader := createTestUser(t, db, "reader@example.com", 0)
	post := createTestPost(t, db, author.ID, models.CategoryJournal)
	other := createTestPost(t, db, author.ID, models.CategoryJournal)

	comment, err := svc.CreateComment(ctx, CreateCommentInput{
		UserID: reader.ID, PostID: post.ID, Content: "a fine journal entry",
	})
	require.NoError(t, err)

	// Addressing the comment under a different post must not delete it.
	err = svc.DeleteComment(ctx, DeleteCommentInput{
		UserID: reader.ID, PostID: other.ID, CommentID: comment.ID,
	})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
