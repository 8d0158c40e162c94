// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account with a points balance.
//
// Points must only be mutated through the repository's atomic point
// operations inside a service transaction; never assign the field directly.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null" json:"-"`
	Name          string    `gorm:"not null" json:"name"`
	Password      string    `gorm:"not null" json:"-"`
	Bio           string    `gorm:"size:500" json:"bio,omitempty"`
	FavoriteQuote string    `gorm:"size:500" json:"favorite_quote,omitempty"`
	Points        int       `gorm:"not null;default:0" json:"points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Posts      []Post          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Comments   []Comment       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Likes      []Like          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Activities []DailyActivity `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// OwnerProfile is the account's own view of its profile. The email address
// only appears here; public payloads (profiles, post and comment authors)
// never include it.
type OwnerProfile struct {
	User
	Email string `json:"email"`
}

// Owner returns the account's own profile view.
func (u *User) Owner() OwnerProfile {
	return OwnerProfile{User: *u, Email: u.Email}
}
