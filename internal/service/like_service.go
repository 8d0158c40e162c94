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

type LikeService struct {
	db          *gorm.DB
	likeRepo    repository.LikeRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	ledger      *observability.LedgerLogger
}

// ToggleLikeInput identifies the liker and the target. Exactly one of
// PostID/CommentID must be set; a nil UserID means a guest identified by
// GuestToken.
type ToggleLikeInput struct {
	UserID     *uint
	GuestToken string
	PostID     *uint
	CommentID  *uint
}

// ToggleLikeResult reports the state after a toggle.
type ToggleLikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

func NewLikeService(
	db *gorm.DB,
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) *LikeService {
	return &LikeService{
		db:          db,
		likeRepo:    likeRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		ledger:      observability.NewLedgerLogger(),
	}
}

// ToggleLike creates the like if absent, removes it if present. Point deltas
// and the like row commit together; unliking applies the exact inverse of
// the deltas the like granted.
func (s *LikeService) ToggleLike(ctx context.Context, in ToggleLikeInput) (*ToggleLikeResult, error) {
	if (in.PostID == nil) == (in.CommentID == nil) {
		return nil, models.NewValidationError("Exactly one of post or comment must be targeted")
	}
	guest := in.UserID == nil
	if guest && in.GuestToken == "" {
		return nil, models.NewValidationError("Guest likes require a guest token")
	}

	target := points.TargetPost
	var authorID uint
	if in.PostID != nil {
		post, err := s.postRepo.GetByID(ctx, *in.PostID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", *in.PostID)
		}
		if err != nil {
			return nil, err
		}
		authorID = post.UserID
	} else {
		target = points.TargetComment
		comment, err := s.commentRepo.GetByID(ctx, *in.CommentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", *in.CommentID)
		}
		if err != nil {
			return nil, err
		}
		authorID = comment.UserID
	}

	liker := repository.LikerKey{UserID: in.UserID, GuestToken: in.GuestToken}
	likeTarget := repository.LikeTarget{PostID: in.PostID, CommentID: in.CommentID}

	existing, err := s.likeRepo.Find(ctx, liker, likeTarget)
	if err != nil {
		return nil, err
	}
	unlike := existing != nil

	likerDelta, authorDelta := points.LikeDeltas(target, unlike, guest)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		likes := repository.NewLikeRepository(tx)
		users := repository.NewUserRepository(tx)

		if unlike {
			if err := likes.Delete(ctx, existing.ID); err != nil {
				return err
			}
		} else {
			like := &models.Like{
				UserID:     in.UserID,
				GuestToken: in.GuestToken,
				PostID:     in.PostID,
				CommentID:  in.CommentID,
			}
			if err := likes.Create(ctx, like); err != nil {
				return err
			}
		}

		if authorDelta != 0 {
			if err := users.AddPoints(ctx, authorID, authorDelta); err != nil {
				return err
			}
		}
		if likerDelta != 0 && in.UserID != nil {
			if err := users.AddPoints(ctx, *in.UserID, likerDelta); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent toggle for the same liker won the insert. The unique
		// index rolled this attempt back before any points were applied, so
		// just report the liked state that now exists.
		return s.likedState(ctx, in)
	}
	if err != nil {
		return nil, err
	}

	reason := "like"
	if unlike {
		reason = "unlike"
	}
	if authorDelta != 0 {
		s.ledger.LogMutation(ctx, authorID, authorDelta, reason)
	}
	if likerDelta != 0 && in.UserID != nil {
		s.ledger.LogMutation(ctx, *in.UserID, likerDelta, reason)
	}
	observability.PointsMutationsTotal.WithLabelValues(reason).Inc()

	var count int64
	if in.PostID != nil {
		count, err = s.likeRepo.CountForPost(ctx, *in.PostID)
	} else {
		count, err = s.likeRepo.CountForComment(ctx, *in.CommentID)
	}
	if err != nil {
		return nil, err
	}

	return &ToggleLikeResult{Liked: !unlike, LikesCount: count}, nil
}

// likedState reports the target as liked with its current count, for the
// path where another request already created the like.
func (s *LikeService) likedState(ctx context.Context, in ToggleLikeInput) (*ToggleLikeResult, error) {
	var count int64
	var err error
	if in.PostID != nil {
		count, err = s.likeRepo.CountForPost(ctx, *in.PostID)
	} else {
		count, err = s.likeRepo.CountForComment(ctx, *in.CommentID)
	}
	if err != nil {
		return nil, err
	}
	return &ToggleLikeResult{Liked: true, LikesCount: count}, nil
}
