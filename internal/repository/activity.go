package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityRepository defines interface for daily-activity records.
type ActivityRepository interface {
	// RecordLogin inserts the (user, day) record if it does not exist yet,
	// reporting whether this call created it. The insert is conflict-safe so
	// two concurrent logins on the same day grant the reward once.
	RecordLogin(ctx context.Context, userID uint, day string) (created bool, err error)
	// Exists reports whether a record exists for (user, day).
	Exists(ctx context.Context, userID uint, day string) (bool, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) RecordLogin(ctx context.Context, userID uint, day string) (bool, error) {
	activity := models.DailyActivity{
		UserID:        userID,
		Day:           day,
		PointsAwarded: true,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&activity)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *activityRepository) Exists(ctx context.Context, userID uint, day string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.DailyActivity{}).
		Where("user_id = ? AND day = ?", userID, day).
		Count(&n).Error
	return n > 0, err
}
