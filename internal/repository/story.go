package repository

import (
	"context"
	"time"

	"gamenexus/internal/models"

	"gorm.io/gorm"
)

// StoryRepository defines the interface for story data operations
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	ListActive(ctx context.Context, since time.Time) ([]models.Story, error)
}

type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	if err := r.db.WithContext(ctx).Create(story).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListActive returns stories created after the cutoff, newest first.
// Expiry is evaluated at read time; rows are never deleted here.
func (r *storyRepository) ListActive(ctx context.Context, since time.Time) ([]models.Story, error) {
	var stories []models.Story
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("created_at > ?", since).
		Order("created_at DESC").
		Find(&stories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stories, nil
}
