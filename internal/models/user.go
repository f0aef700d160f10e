// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// UserRole represents a user's role in the community.
type UserRole string

const (
	RoleMember    UserRole = "member"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// UserStatus represents whether an account may log in.
type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusLocked UserStatus = "locked"
)

// User represents a Game Nexus account. Points is the reputation score fed
// by likes received on the user's posts; it is adjusted inside the same
// transaction as the like row and never goes below zero.
type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Username      string     `gorm:"uniqueIndex;not null" json:"username"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	Nickname      string     `gorm:"not null" json:"nickname"`
	AvatarURL     *string    `json:"avatar_url"`
	CoverPhotoURL *string    `json:"cover_photo_url"`
	Bio           *string    `json:"bio"`
	Role          UserRole   `gorm:"type:varchar(20);default:'member'" json:"role"`
	Status        UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	Points        int        `gorm:"not null;default:0" json:"points"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// UserSummary is the public profile slice embedded in friend lists,
// incoming requests, feed entries and search results.
type UserSummary struct {
	ID        uint    `json:"id"`
	Nickname  string  `json:"nickname"`
	AvatarURL *string `json:"avatar_url"`
}

// Summary returns the public profile fields of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Nickname: u.Nickname, AvatarURL: u.AvatarURL}
}

// UserSummaryWithPoints is a leaderboard row.
type UserSummaryWithPoints struct {
	ID        uint    `json:"id"`
	Nickname  string  `json:"nickname"`
	AvatarURL *string `json:"avatar_url"`
	Points    int     `json:"points"`
}

// UserSearchResult is a search hit annotated with the friendship row
// between the viewer and the matched user. The friendship fields are nil
// when no row exists in either direction; ActionUserID tells the client
// which side acted last, so it can render "request sent" versus
// "request received" for pending rows.
type UserSearchResult struct {
	ID               uint    `json:"id"`
	Username         string  `json:"username"`
	Nickname         string  `json:"nickname"`
	AvatarURL        *string `json:"avatar_url"`
	Points           int     `json:"points"`
	FriendshipID     *uint   `json:"friendship_id"`
	FriendshipStatus *string `json:"friendship_status"`
	ActionUserID     *uint   `json:"action_user_id"`
}
