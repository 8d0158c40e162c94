package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// LikeTarget addresses exactly one of a post or a comment.
type LikeTarget struct {
	PostID    *uint
	CommentID *uint
}

// LikerKey identifies who is toggling: a registered account or a guest token.
type LikerKey struct {
	UserID     *uint
	GuestToken string
}

// LikeRepository defines interface for like operations.
type LikeRepository interface {
	// Find returns the existing like for (liker, target), or nil.
	Find(ctx context.Context, liker LikerKey, target LikeTarget) (*models.Like, error)
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, id uint) error
	CountForPost(ctx context.Context, postID uint) (int64, error)
	CountForComment(ctx context.Context, commentID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Find(ctx context.Context, liker LikerKey, target LikeTarget) (*models.Like, error) {
	query := r.db.WithContext(ctx).Model(&models.Like{})

	switch {
	case liker.UserID != nil:
		query = query.Where("user_id = ?", *liker.UserID)
	default:
		query = query.Where("user_id IS NULL AND guest_token = ?", liker.GuestToken)
	}

	switch {
	case target.PostID != nil:
		query = query.Where("post_id = ?", *target.PostID)
	case target.CommentID != nil:
		query = query.Where("comment_id = ?", *target.CommentID)
	}

	var like models.Like
	err := query.First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Like{}, id).Error
}

func (r *likeRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}

func (r *likeRepository) CountForComment(ctx context.Context, commentID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("comment_id = ?", commentID).Count(&n).Error
	return n, err
}
