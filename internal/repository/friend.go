// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"gamenexus/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friendship data operations.
// Friendship rows are stored sender-first: UserOneID is always the user who
// sent the request and UserTwoID the one who received it.
type FriendRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) error
	GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error)
	GetIncoming(ctx context.Context, userID uint) ([]models.IncomingRequest, error)
	GetFriends(ctx context.Context, userID uint) ([]models.UserSummary, error)
	DeletePendingBySender(ctx context.Context, senderID, receiverID uint) (bool, error)
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	if err := r.db.WithContext(ctx).Create(friendship).Error; err != nil {
		if IsUniqueViolation(err) {
			return models.NewConflictError("A friendship already exists between these users")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	var friendship models.Friendship

	// Find friendship where users appear in either order, regardless of status
	if err := r.db.WithContext(ctx).
		Where("(user_one_id = ? AND user_two_id = ?) OR (user_one_id = ? AND user_two_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No friendship exists
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

func (r *friendRepository) GetIncoming(ctx context.Context, userID uint) ([]models.IncomingRequest, error) {
	var requests []models.IncomingRequest

	// Pending requests where the user is the receiver, joined with the
	// sender's public profile fields.
	if err := r.db.WithContext(ctx).
		Table("friendships").
		Select("friendships.id AS friendship_id, users.id AS sender_id, users.nickname, users.avatar_url").
		Joins("JOIN users ON users.id = friendships.user_one_id").
		Where("friendships.user_two_id = ? AND friendships.status = ?", userID, models.FriendshipStatusPending).
		Order("friendships.created_at DESC").
		Scan(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return requests, nil
}

func (r *friendRepository) GetFriends(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	var friends []models.UserSummary

	// Accepted friendships in either direction, projecting the other user.
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.nickname, users.avatar_url").
		Joins("JOIN friendships f ON (users.id = f.user_one_id OR users.id = f.user_two_id)").
		Where("f.status = ? AND (f.user_one_id = ? OR f.user_two_id = ?) AND users.id != ?",
			models.FriendshipStatusAccepted, userID, userID, userID).
		Scan(&friends).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return friends, nil
}

func (r *friendRepository) DeletePendingBySender(ctx context.Context, senderID, receiverID uint) (bool, error) {
	// Cancellation is directional: only the sender can withdraw, and only
	// while the request is still pending.
	res := r.db.WithContext(ctx).
		Where("user_one_id = ? AND user_two_id = ? AND status = ?",
			senderID, receiverID, models.FriendshipStatusPending).
		Delete(&models.Friendship{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}
