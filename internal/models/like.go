package models

import (
	"time"
)

// Like is a user's like on a post. The composite unique index makes the
// (user, post) pair single-shot; toggling removes the row again.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Like) TableName() string {
	return "likes"
}

// LikeResult reports the like state after a toggle.
type LikeResult string

const (
	LikeResultLiked   LikeResult = "liked"
	LikeResultUnliked LikeResult = "unliked"
)
