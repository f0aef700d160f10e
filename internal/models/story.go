package models

import (
	"time"
)

// StoryActiveWindow is how long a story stays visible after creation.
// Expiry is a read-time filter; rows are never deleted by a background job.
const StoryActiveWindow = 24 * time.Hour

// Story is an ephemeral post variant, optionally labelled with the game it
// is about.
type Story struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   *string   `gorm:"type:text" json:"content"`
	ImageURL  *string   `json:"image_url"`
	Game      *string   `json:"game"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM
func (Story) TableName() string {
	return "stories"
}

// StoryView is a story joined with its author's public profile.
type StoryView struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Content   *string   `json:"content"`
	ImageURL  *string   `json:"image_url"`
	Game      *string   `json:"game"`
	CreatedAt time.Time `json:"created_at"`
	Nickname  string    `json:"nickname"`
	AvatarURL *string   `json:"avatar_url"`
}

// View projects the story with its preloaded author.
func (s *Story) View() StoryView {
	return StoryView{
		ID:        s.ID,
		UserID:    s.UserID,
		Content:   s.Content,
		ImageURL:  s.ImageURL,
		Game:      s.Game,
		CreatedAt: s.CreatedAt,
		Nickname:  s.User.Nickname,
		AvatarURL: s.User.AvatarURL,
	}
}
