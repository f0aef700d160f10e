package repository

import (
	"context"
	"errors"

	"gamenexus/internal/cache"
	"gamenexus/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	TopByPoints(ctx context.Context, limit int) ([]models.UserSummaryWithPoints, error)
	Search(ctx context.Context, viewerID uint, query string, limit int) ([]models.UserSearchResult, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.CacheAside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if IsUniqueViolation(err) {
			return models.NewConflictError("Username or email already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	// Column-scoped on purpose: points is adjusted concurrently by like
	// toggles, and writing it from a possibly cached struct would undo
	// those adjustments.
	if err := r.db.WithContext(ctx).
		Model(user).
		Select("username", "email", "nickname", "avatar_url", "cover_photo_url",
			"bio", "role", "status", "password_hash", "updated_at").
		Updates(user).Error; err != nil {
		if IsUniqueViolation(err) {
			return models.NewConflictError("Username or email already taken")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) TopByPoints(ctx context.Context, limit int) ([]models.UserSummaryWithPoints, error) {
	var users []models.UserSummaryWithPoints
	if limit <= 0 {
		limit = 10
	}
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("id, nickname, avatar_url, points").
		Order("points DESC, id ASC").
		Limit(limit).
		Scan(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Search(ctx context.Context, viewerID uint, query string, limit int) ([]models.UserSearchResult, error) {
	var results []models.UserSearchResult
	if limit <= 0 {
		limit = 20
	}

	// Annotate each hit with the friendship row between the viewer and the
	// match, if one exists in either direction. Exact nickname matches sort
	// ahead of substring matches.
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.username, users.nickname, users.avatar_url, users.points, "+
			"f.id AS friendship_id, f.status AS friendship_status, f.action_user_id").
		Joins(`LEFT JOIN friendships f ON (f.user_one_id = users.id AND f.user_two_id = ?) OR (f.user_one_id = ? AND f.user_two_id = users.id)`,
			viewerID, viewerID).
		Where("users.id != ? AND (users.username LIKE ? OR users.nickname LIKE ?)", viewerID, pattern, pattern).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN users.nickname = ? THEN 0 ELSE 1 END, users.nickname",
			Vars:               []interface{}{query},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Scan(&results).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return results, nil
}
