package repository

import (
	"context"
	"errors"

	"gamenexus/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	GetApprovedByID(ctx context.Context, id uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
	ListFeed(ctx context.Context, limit, offset int) ([]models.Post, error)
	FindTagByName(ctx context.Context, name string) (*models.Tag, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostCounts adds subqueries to fetch like and comment counts in a single query.
func applyPostCounts(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count")
}

func (r *postRepository) GetApprovedByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := applyPostCounts(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Images").
		Preload("Tags").
		Where("posts.status = ?", models.PostStatusApproved).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := applyPostCounts(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Images").
		Preload("Tags").
		Where("posts.user_id = ? AND posts.status = ?", userID, models.PostStatusApproved).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListFeed(ctx context.Context, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := applyPostCounts(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Images").
		Preload("Tags").
		Where("posts.status = ?", models.PostStatusApproved).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) FindTagByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}
