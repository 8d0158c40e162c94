package models

import (
	"time"
)

// Post categories. The category determines the publishing cost and is
// immutable after creation.
const (
	CategoryPoetry  = "poetry"
	CategoryStory   = "story"
	CategoryEssay   = "essay"
	CategoryTheater = "theater"
	CategoryLetter  = "letter"
	CategoryJournal = "journal"
)

// Categories lists every valid post category.
var Categories = []string{
	CategoryPoetry,
	CategoryStory,
	CategoryEssay,
	CategoryTheater,
	CategoryLetter,
	CategoryJournal,
}

// ValidCategory reports whether category is one of the enumerated set.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Post represents a published literary work.
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:500" json:"description,omitempty"`
	Content     string `gorm:"type:text;not null" json:"content"`
	Category    string `gorm:"size:50;not null;index" json:"category"`
	// Length is the character count of Content, derived at creation.
	Length int  `gorm:"not null;default:0" json:"length"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int       `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Comments []Comment `gorm:"constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Likes    []Like    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
