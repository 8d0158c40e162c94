package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID        uint
	Name          string
	Bio           string
	FavoriteQuote string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, err
}

// UpdateProfile changes the non-empty profile fields. Only the profile
// columns are written; the points balance is owned by the ledger paths and
// a concurrent reward must survive a profile save.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	const maxNameLen = 100
	const maxBioLen = 500
	const maxQuoteLen = 500

	updates := map[string]interface{}{}
	if in.Name != "" {
		if len(in.Name) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		updates["name"] = in.Name
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		updates["bio"] = in.Bio
	}
	if in.FavoriteQuote != "" {
		if len(in.FavoriteQuote) > maxQuoteLen {
			return nil, models.NewValidationError("Favorite quote too long (max 500 characters)")
		}
		updates["favorite_quote"] = in.FavoriteQuote
	}

	if len(updates) > 0 {
		err := s.userRepo.UpdateProfile(ctx, in.UserID, updates)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", in.UserID)
		}
		if err != nil {
			return nil, err
		}
	}

	return s.GetUserByID(ctx, in.UserID)
}
