package models

import (
	"time"
)

// Like is a join entity targeting exactly one of a post or a comment.
// At most one like may exist per (account, target) pair; toggling deletes
// and recreates it. A guest like has no UserID and is keyed by GuestToken.
type Like struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `gorm:"index:idx_like_user_post,unique,where:post_id IS NOT NULL;index:idx_like_user_comment,unique,where:comment_id IS NOT NULL" json:"user_id,omitempty"`
	GuestToken string    `gorm:"size:64;index:idx_like_guest_post,unique,where:user_id IS NULL AND post_id IS NOT NULL;index:idx_like_guest_comment,unique,where:user_id IS NULL AND comment_id IS NOT NULL" json:"-"`
	PostID     *uint     `gorm:"index:idx_like_user_post,unique,where:post_id IS NOT NULL;index:idx_like_guest_post,unique,where:user_id IS NULL AND post_id IS NOT NULL" json:"post_id,omitempty"`
	CommentID  *uint     `gorm:"index:idx_like_user_comment,unique,where:comment_id IS NOT NULL;index:idx_like_guest_comment,unique,where:user_id IS NULL AND comment_id IS NOT NULL" json:"comment_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
