package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/points"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

type ActivityService struct {
	db           *gorm.DB
	activityRepo repository.ActivityRepository
	userRepo     repository.UserRepository
	ledger       *observability.LedgerLogger
}

func NewActivityService(
	db *gorm.DB,
	activityRepo repository.ActivityRepository,
	userRepo repository.UserRepository,
) *ActivityService {
	return &ActivityService{
		db:           db,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		ledger:       observability.NewLedgerLogger(),
	}
}

// RecordDailyLogin grants the daily login reward on the first login of a
// calendar day, plus the membership bonus when the account also logged in
// on the preceding day. Later logins the same day return zero. The activity
// record and the credit commit together, and the conflict-safe insert keeps
// concurrent logins from double-granting.
func (s *ActivityService) RecordDailyLogin(ctx context.Context, userID uint, now time.Time) (int, error) {
	today := models.DayKey(now)
	yesterday := models.DayKey(now.AddDate(0, 0, -1))

	var awarded int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		activities := repository.NewActivityRepository(tx)

		created, err := activities.RecordLogin(ctx, userID, today)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}

		streak, err := activities.Exists(ctx, userID, yesterday)
		if err != nil {
			return err
		}

		login, membership := points.DailyReward(streak)
		awarded = login + membership

		return repository.NewUserRepository(tx).AddPoints(ctx, userID, awarded)
	})
	if err != nil {
		return 0, err
	}

	if awarded > 0 {
		s.ledger.LogMutation(ctx, userID, awarded, "daily_login")
		observability.PointsMutationsTotal.WithLabelValues("daily_login").Inc()
	}
	return awarded, nil
}
