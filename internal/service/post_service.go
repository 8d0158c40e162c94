// Package service holds the application's business rules. Services validate
// input, run the evaluator and points policy, and commit entity changes
// together with their ledger mutations in a single transaction.
package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/points"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

type PostService struct {
	db       *gorm.DB
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	ledger   *observability.LedgerLogger
}

type CreatePostInput struct {
	UserID      uint
	Title       string
	Description string
	Content     string
	Category    string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	db *gorm.DB,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *PostService {
	return &PostService{
		db:       db,
		postRepo: postRepo,
		userRepo: userRepo,
		ledger:   observability.NewLedgerLogger(),
	}
}

// CreatePost publishes a post, debiting the category cost from the author.
// The debit and the insert commit together; if the author cannot afford the
// cost nothing is written.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 200
	const maxDescriptionLen = 500

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 500 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if !models.ValidCategory(in.Category) {
		return nil, models.NewValidationError("Unknown category: " + in.Category)
	}

	cost := points.Cost(in.Category, in.Content)

	post := &models.Post{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Category:    in.Category,
		Length:      len([]rune(in.Content)),
		UserID:      in.UserID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)

		ok, err := users.DebitPoints(ctx, in.UserID, cost)
		if err != nil {
			return err
		}
		if !ok {
			user, err := users.GetByID(ctx, in.UserID)
			if err != nil {
				return err
			}
			return models.NewInsufficientFundsError(cost, user.Points)
		}

		return repository.NewPostRepository(tx).Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	s.ledger.LogMutation(ctx, in.UserID, -cost, "post_cost")
	observability.PointsMutationsTotal.WithLabelValues("post_cost").Inc()

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetWithComments(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, err
}

func (s *PostService) ListPosts(ctx context.Context, category string, limit, offset int) ([]*models.Post, error) {
	if category != "" && !models.ValidCategory(category) {
		return nil, models.NewValidationError("Unknown category: " + category)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.postRepo.List(ctx, category, limit, offset)
}

func (s *PostService) ListUserPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.postRepo.GetByUserID(ctx, userID, limit, offset)
}

// DeletePost removes a post and its comments and likes. The publishing cost
// is not refunded.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Post", in.PostID)
	}
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, in.PostID)
}
