package service

import (
	"context"
	"time"

	"gamenexus/internal/cache"
	"gamenexus/internal/models"
	"gamenexus/internal/repository"
)

// CreateStoryInput is the story authoring payload.
type CreateStoryInput struct {
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
	Game     *string `json:"game"`
}

// StoryService handles ephemeral stories. Stories expire by read-time
// filtering against the 24 hour window; nothing is deleted on expiry.
type StoryService struct {
	storyRepo repository.StoryRepository
	now       func() time.Time
}

// NewStoryService returns a new StoryService.
func NewStoryService(storyRepo repository.StoryRepository) *StoryService {
	return &StoryService{
		storyRepo: storyRepo,
		now:       time.Now,
	}
}

// Create publishes a story. A story needs text or an image; the game label
// is optional either way.
func (s *StoryService) Create(ctx context.Context, userID uint, input CreateStoryInput) (*models.Story, error) {
	if isBlank(input.Content) && isBlank(input.ImageURL) {
		return nil, models.NewValidationError("A story needs text or an image")
	}

	story := &models.Story{
		UserID:   userID,
		Content:  trimmed(input.Content),
		ImageURL: input.ImageURL,
		Game:     trimmed(input.Game),
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}

	cache.InvalidateStories(ctx)
	return story, nil
}

// ListActive returns stories younger than the active window, newest first,
// served through the cache.
func (s *StoryService) ListActive(ctx context.Context) ([]models.StoryView, error) {
	var views []models.StoryView
	err := cache.CacheAside(ctx, cache.StoriesActiveKey, &views, cache.StoriesTTL, func() error {
		cutoff := s.now().Add(-models.StoryActiveWindow)
		stories, err := s.storyRepo.ListActive(ctx, cutoff)
		if err != nil {
			return err
		}
		out := make([]models.StoryView, 0, len(stories))
		for i := range stories {
			out = append(out, stories[i].View())
		}
		views = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
