package models

import (
	"time"
)

// Comment length bounds in characters.
const (
	MinCommentLength = 10
	MaxCommentLength = 5000
)

// Comment represents reader feedback on a post.
//
// Score is nil until the quality evaluation has run. Score and Flagged are
// deliberately separate fields: a zero score with Flagged=false means the
// judge produced no usable signal (the length floor applies), while
// Flagged=true means spam or copied content regardless of score.
type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	// Length is the character count of Content, derived at creation.
	Length    int       `gorm:"not null;default:0" json:"length"`
	Score     *int      `json:"score,omitempty"`
	Flagged   bool      `gorm:"not null;default:false" json:"flagged"`
	Rationale string    `gorm:"type:text" json:"rationale,omitempty"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Likes []Like `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
