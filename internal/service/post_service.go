package service

import (
	"context"
	"errors"
	"strings"

	"gamenexus/internal/cache"
	"gamenexus/internal/models"
	"gamenexus/internal/repository"

	"gorm.io/gorm"
)

// DefaultFeedPageSize is the number of posts per feed page.
const DefaultFeedPageSize = 20

// CreatePostInput is the authoring payload. Tags are matched by exact name
// and created when absent; image URLs become post_images rows.
type CreatePostInput struct {
	Content   *string  `json:"content"`
	Tags      []string `json:"tags"`
	ImageURLs []string `json:"image_urls"`
}

// PostService handles post authoring and the feed.
type PostService struct {
	postRepo repository.PostRepository
	db       *gorm.DB
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, db *gorm.DB) *PostService {
	return &PostService{
		postRepo: postRepo,
		db:       db,
	}
}

// CreatePost creates a post together with its tags and images in a single
// transaction: either the whole composite lands or nothing does. A post
// needs text or at least one image.
func (s *PostService) CreatePost(ctx context.Context, userID uint, input CreatePostInput) (*models.Post, error) {
	content := trimmed(input.Content)
	if content == nil && len(input.ImageURLs) == 0 {
		return nil, models.NewValidationError("A post needs text or at least one image")
	}

	post := &models.Post{
		UserID:  userID,
		Content: content,
		Status:  models.PostStatusApproved,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return models.NewInternalError(err)
		}

		for _, name := range input.Tags {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}

			// Exact-name dedup: reuse the tag when it exists, create otherwise.
			var tag models.Tag
			err := tx.Where("name = ?", name).First(&tag).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tag = models.Tag{Name: name}
				if err := tx.Create(&tag).Error; err != nil {
					return models.NewInternalError(err)
				}
			} else if err != nil {
				return models.NewInternalError(err)
			}

			if err := tx.Model(post).Association("Tags").Append(&tag); err != nil {
				return models.NewInternalError(err)
			}
		}

		for _, url := range input.ImageURLs {
			url = strings.TrimSpace(url)
			if url == "" {
				continue
			}
			img := models.PostImage{PostID: post.ID, ImageURL: url}
			if err := tx.Create(&img).Error; err != nil {
				return models.NewInternalError(err)
			}
			post.Images = append(post.Images, img)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateFeed(ctx)
	return post, nil
}

// GetPost returns a single approved post with counts, author, tags and images.
func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.FeedPost, error) {
	post, err := s.postRepo.GetApprovedByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	feed := post.Feed()
	return &feed, nil
}

// ListFeed returns a page of the global feed, newest first. The first page
// is served through the cache; deeper pages always hit the database.
func (s *PostService) ListFeed(ctx context.Context, page int) ([]models.FeedPost, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * DefaultFeedPageSize

	fetch := func(dest *[]models.FeedPost) func() error {
		return func() error {
			posts, err := s.postRepo.ListFeed(ctx, DefaultFeedPageSize, offset)
			if err != nil {
				return err
			}
			out := make([]models.FeedPost, 0, len(posts))
			for i := range posts {
				out = append(out, posts[i].Feed())
			}
			*dest = out
			return nil
		}
	}

	var feed []models.FeedPost
	if page == 1 {
		if err := cache.CacheAside(ctx, cache.FeedFirstPageKey, &feed, cache.FeedTTL, fetch(&feed)); err != nil {
			return nil, err
		}
		return feed, nil
	}

	if err := fetch(&feed)(); err != nil {
		return nil, err
	}
	return feed, nil
}

// ListUserPosts returns a page of one user's approved posts, newest first.
func (s *PostService) ListUserPosts(ctx context.Context, userID uint, page int) ([]models.FeedPost, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * DefaultFeedPageSize

	posts, err := s.postRepo.GetByUserID(ctx, userID, DefaultFeedPageSize, offset)
	if err != nil {
		return nil, err
	}
	out := make([]models.FeedPost, 0, len(posts))
	for i := range posts {
		out = append(out, posts[i].Feed())
	}
	return out, nil
}
