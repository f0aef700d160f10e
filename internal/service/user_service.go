package service

import (
	"context"
	"strings"

	"gamenexus/internal/cache"
	"gamenexus/internal/models"
	"gamenexus/internal/repository"
	"gamenexus/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// TopUsersLimit caps the points leaderboard.
const TopUsersLimit = 10

// RegisterInput is the signup payload.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// UpdateProfileInput carries the editable profile fields. Nil pointers mean
// "leave unchanged".
type UpdateProfileInput struct {
	Email    *string `json:"email"`
	Nickname *string `json:"nickname"`
	Bio      *string `json:"bio"`
}

// UserService handles accounts, authentication checks and profile reads.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account. Username and email collisions surface as
// conflicts from the unique indexes.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.Nickname = strings.TrimSpace(input.Nickname)

	if err := validation.ValidateUsername(input.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateNickname(input.Nickname); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		Nickname:     input.Nickname,
		PasswordHash: string(hash),
		Role:         models.RoleMember,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the account. Wrong username and
// wrong password answer identically; a locked account is refused even with
// the right password.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}

	if user.Status == models.UserStatusLocked {
		return nil, models.NewForbiddenError("Account is locked")
	}

	return user, nil
}

// Me returns the authenticated user's own account.
func (s *UserService) Me(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateAvatar sets the user's avatar image URL.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, avatarURL string) (*models.User, error) {
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL == "" {
		return nil, models.NewValidationError("Avatar URL is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = &avatarURL
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateCoverPhoto sets the user's profile cover image URL.
func (s *UserService) UpdateCoverPhoto(ctx context.Context, userID uint, coverURL string) (*models.User, error) {
	coverURL = strings.TrimSpace(coverURL)
	if coverURL == "" {
		return nil, models.NewValidationError("Cover photo URL is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.CoverPhotoURL = &coverURL
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile edits email, nickname and bio. Absent fields stay as they
// are; supplying none of them is a validation error.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	if input.Email == nil && input.Nickname == nil && input.Bio == nil {
		return nil, models.NewValidationError("No fields to update")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = email
	}
	if input.Nickname != nil {
		nickname := strings.TrimSpace(*input.Nickname)
		if err := validation.ValidateNickname(nickname); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Nickname = nickname
	}
	if input.Bio != nil {
		user.Bio = trimmed(input.Bio)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Update(ctx, user)
}

// ResetPasswordByEmail sets a new password for the account with the given
// email. The response does not reveal whether the email exists.
func (s *UserService) ResetPasswordByEmail(ctx context.Context, email, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if user == nil {
		// Quietly succeed so the endpoint cannot be used to probe emails.
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Update(ctx, user)
}

// TopUsers returns the points leaderboard, served through the cache.
func (s *UserService) TopUsers(ctx context.Context) ([]models.UserSummaryWithPoints, error) {
	var top []models.UserSummaryWithPoints
	err := cache.CacheAside(ctx, cache.TopUsersKey, &top, cache.LeaderboardTTL, func() error {
		users, err := s.userRepo.TopByPoints(ctx, TopUsersLimit)
		if err != nil {
			return err
		}
		top = users
		return nil
	})
	if err != nil {
		return nil, err
	}
	return top, nil
}

// Search finds users by username or nickname substring, annotated with the
// friendship state relative to the viewer.
func (s *UserService) Search(ctx context.Context, viewerID uint, query string) ([]models.UserSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.userRepo.Search(ctx, viewerID, query, 20)
}
