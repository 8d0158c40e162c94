package models

import (
	"time"
)

// DayFormat is the calendar-day key used for daily activity records.
const DayFormat = "2006-01-02"

// DailyActivity marks that an account logged in on a given calendar day and
// whether the daily reward was granted. At most one record exists per
// (account, day); streak detection reads the previous day's record.
type DailyActivity struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_activity_user_day" json:"user_id"`
	// Day is the calendar day in DayFormat (UTC).
	Day            string    `gorm:"size:10;not null;uniqueIndex:idx_activity_user_day" json:"day"`
	PointsAwarded  bool      `gorm:"not null;default:false" json:"points_awarded"`
	CreatedAt      time.Time `json:"created_at"`
}

// DayKey formats t as a calendar-day key in UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayFormat)
}
