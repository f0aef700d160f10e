package models

import (
	"time"
)

// FriendshipStatus represents the status of a friendship record.
type FriendshipStatus string

const (
	// FriendshipStatusPending indicates a sent but unanswered friend request.
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted indicates an established friendship.
	FriendshipStatusAccepted FriendshipStatus = "accepted"
)

// FriendshipAction is the receiver's answer to a pending request.
type FriendshipAction string

const (
	FriendshipActionAccept  FriendshipAction = "accept"
	FriendshipActionDecline FriendshipAction = "decline"
)

// Friendship represents the relationship between two users. UserOneID is
// always the original sender and UserTwoID the receiver; rows are never
// reordered after creation. ActionUserID is whoever last changed the
// status: the sender on creation, the receiver on accept.
//
// At most one row may exist per unordered pair. The stored-order unique
// index backstops the both-orders existence check done on send.
type Friendship struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	UserOneID    uint             `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"user_one_id"`
	UserTwoID    uint             `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"user_two_id"`
	Status       FriendshipStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ActionUserID uint             `gorm:"not null" json:"action_user_id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	UserOne User `gorm:"foreignKey:UserOneID" json:"-"`
	UserTwo User `gorm:"foreignKey:UserTwoID" json:"-"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}

// IncomingRequest is a pending request joined with the sender's public
// profile, as listed for the receiving user.
type IncomingRequest struct {
	FriendshipID uint    `json:"id"`
	SenderID     uint    `json:"sender_id"`
	Nickname     string  `json:"nickname"`
	AvatarURL    *string `json:"avatar_url"`
}
