package models

import (
	"time"
)

// Comment represents a comment on a post. At least one of Content and
// ImageURL must be set; the interaction service enforces it.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   *string   `gorm:"type:text" json:"content"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "comments"
}

// CommentView is a comment joined with its author's public profile.
type CommentView struct {
	ID        uint        `json:"id"`
	PostID    uint        `json:"post_id"`
	Content   *string     `json:"content"`
	ImageURL  *string     `json:"image_url"`
	CreatedAt time.Time   `json:"created_at"`
	Author    UserSummary `json:"author"`
}

// View projects the comment with its preloaded author.
func (c *Comment) View() CommentView {
	return CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		ImageURL:  c.ImageURL,
		CreatedAt: c.CreatedAt,
		Author:    c.User.Summary(),
	}
}
