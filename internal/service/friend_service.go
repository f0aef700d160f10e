// Package service contains the business logic layer of the application.
package service

import (
	"context"
	"errors"

	"gamenexus/internal/models"
	"gamenexus/internal/repository"

	"gorm.io/gorm"
)

// FriendService provides friend-request and friendship business logic.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	db         *gorm.DB
}

// NewFriendService returns a new FriendService. db is used for operations
// that must read and mutate a friendship row atomically.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository, db *gorm.DB) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		db:         db,
	}
}

// SendRequest sends a friend request from sender to receiver. The created row
// stores the sender as user_one and the receiver as user_two; rows are never
// reordered afterwards, so the direction of a request is always recoverable.
func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID uint) (*models.Friendship, error) {
	if senderID == receiverID {
		return nil, models.NewSelfReferenceError("Cannot send a friend request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	// Any existing row between the pair blocks a new request, regardless of
	// status or direction.
	existing, err := s.friendRepo.GetBetweenUsers(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("A friendship or pending request already exists between these users")
	}

	friendship := &models.Friendship{
		UserOneID:    senderID,
		UserTwoID:    receiverID,
		ActionUserID: senderID,
		Status:       models.FriendshipStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}

	return friendship, nil
}

// ListIncoming returns pending friend requests addressed to the user.
func (s *FriendService) ListIncoming(ctx context.Context, userID uint) ([]models.IncomingRequest, error) {
	return s.friendRepo.GetIncoming(ctx, userID)
}

// Respond accepts or declines a pending request addressed to the user.
// The lookup and the mutation run in a single transaction, so two racing
// responses cannot both succeed. A request that is missing, already handled,
// or addressed to someone else all answer with the same not-found error.
func (s *FriendService) Respond(ctx context.Context, userID, friendshipID uint, action models.FriendshipAction) (*models.Friendship, error) {
	if action != models.FriendshipActionAccept && action != models.FriendshipActionDecline {
		return nil, models.NewValidationError("Action must be accept or decline")
	}

	var friendship models.Friendship
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("id = ? AND user_two_id = ? AND status = ?",
				friendshipID, userID, models.FriendshipStatusPending).
			First(&friendship).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Friend request")
			}
			return models.NewInternalError(err)
		}

		if action == models.FriendshipActionAccept {
			friendship.Status = models.FriendshipStatusAccepted
			friendship.ActionUserID = userID
			if err := tx.Save(&friendship).Error; err != nil {
				return models.NewInternalError(err)
			}
			return nil
		}

		// Declined requests are removed entirely so the pair can try again.
		if err := tx.Delete(&models.Friendship{}, friendship.ID).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if action == models.FriendshipActionDecline {
		return nil, nil
	}
	return &friendship, nil
}

// CancelRequest withdraws a pending request the user previously sent.
// Only the sender can cancel; a receiver trying the same call gets not-found.
func (s *FriendService) CancelRequest(ctx context.Context, senderID, receiverID uint) error {
	deleted, err := s.friendRepo.DeletePendingBySender(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Friend request")
	}
	return nil
}

// ListFriends returns the accepted friends of the user.
func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	return s.friendRepo.GetFriends(ctx, userID)
}
