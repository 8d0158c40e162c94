package service

import (
	"context"
	"errors"

	"inkwell/internal/evaluator"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/points"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

type CommentService struct {
	db          *gorm.DB
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	eval        *evaluator.Evaluator
	ledger      *observability.LedgerLogger
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type DeleteCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
}

func NewCommentService(
	db *gorm.DB,
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	eval *evaluator.Evaluator,
) *CommentService {
	return &CommentService{
		db:          db,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		eval:        eval,
		ledger:      observability.NewLedgerLogger(),
	}
}

// CreateComment screens the comment, applies the reward policy and commits
// the comment together with the author's point credit.
//
// Evaluation runs before the transaction opens: the judge call is network
// I/O with its own timeout and must not hold a database transaction open.
// A judge failure degrades to the length-based floor rather than blocking
// the comment.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	runes := len([]rune(in.Content))
	if runes < models.MinCommentLength {
		return nil, models.NewValidationError("Comment too short (min 10 characters)")
	}
	if runes > models.MaxCommentLength {
		return nil, models.NewValidationError("Comment too long (max 5000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}
	if err != nil {
		return nil, err
	}

	verdict := s.eval.Evaluate(ctx, in.Content, evaluator.PostContext{
		Category: post.Category,
		Title:    post.Title,
		Body:     post.Content,
	})

	finalScore, reward := points.RewardForComment(
		verdict.Score, verdict.Flagged, points.WordCount(in.Content))

	switch {
	case verdict.Flagged:
		observability.EvaluationsTotal.WithLabelValues("flagged").Inc()
	case verdict.Score == 0:
		observability.EvaluationsTotal.WithLabelValues("degraded").Inc()
	default:
		observability.EvaluationsTotal.WithLabelValues("scored").Inc()
	}

	comment := &models.Comment{
		Content:   in.Content,
		Length:    runes,
		Score:     &finalScore,
		Flagged:   verdict.Flagged,
		Rationale: verdict.Rationale,
		UserID:    in.UserID,
		PostID:    in.PostID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewCommentRepository(tx).Create(ctx, comment); err != nil {
			return err
		}
		if reward > 0 {
			return repository.NewUserRepository(tx).AddPoints(ctx, in.UserID, reward)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if reward > 0 {
		s.ledger.LogMutation(ctx, in.UserID, reward, "comment_reward")
		observability.PointsMutationsTotal.WithLabelValues("comment_reward").Inc()
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// DeleteComment removes a comment and takes back the points it earned. The
// author may have spent those points already, so the reversal clamps at
// zero instead of going negative.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Comment", in.CommentID)
	}
	if err != nil {
		return err
	}

	// The comment must live under the addressed post; a mismatched pair
	// would otherwise delete the comment but leave the wrong post's cached
	// detail to be invalidated.
	if comment.PostID != in.PostID {
		return models.NewNotFoundError("Comment", in.CommentID)
	}

	if comment.UserID != in.UserID {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}

	var award int
	if comment.Score != nil {
		award = points.RewardForScore(*comment.Score, comment.Flagged)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewCommentRepository(tx).Delete(ctx, in.CommentID); err != nil {
			return err
		}
		if award > 0 {
			return repository.NewUserRepository(tx).SubtractPointsClamped(ctx, comment.UserID, award)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if award > 0 {
		s.ledger.LogMutation(ctx, comment.UserID, -award, "comment_reward_reversal")
		observability.PointsMutationsTotal.WithLabelValues("comment_reward_reversal").Inc()
	}
	return nil
}
