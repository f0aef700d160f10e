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

// InteractionService handles likes and comments on posts.
type InteractionService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	db          *gorm.DB
}

// NewInteractionService returns a new InteractionService.
func NewInteractionService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, db *gorm.DB) *InteractionService {
	return &InteractionService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		db:          db,
	}
}

// ToggleLike likes the post if the user has not liked it, and unlikes it
// otherwise. The like row and the author's points move in the same
// transaction: +1 on like, -1 on unlike, floored at zero. Authors cannot
// like their own posts.
func (s *InteractionService) ToggleLike(ctx context.Context, userID, postID uint) (models.LikeResult, error) {
	var result models.LikeResult
	var authorID uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.
			Where("id = ? AND status = ?", postID, models.PostStatusApproved).
			First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post")
			}
			return models.NewInternalError(err)
		}

		if post.UserID == userID {
			return models.NewForbiddenError("You cannot like your own post")
		}
		authorID = post.UserID

		var like models.Like
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error
		switch {
		case err == nil:
			// Unlike: remove the row and take the point back. The floor
			// guard keeps points at zero if they were already zero.
			if err := tx.Delete(&models.Like{}, like.ID).Error; err != nil {
				return models.NewInternalError(err)
			}
			if err := tx.Model(&models.User{}).
				Where("id = ?", post.UserID).
				Update("points", gorm.Expr("CASE WHEN points > 0 THEN points - 1 ELSE 0 END")).Error; err != nil {
				return models.NewInternalError(err)
			}
			result = models.LikeResultUnliked
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Like{UserID: userID, PostID: postID}).Error; err != nil {
				if repository.IsUniqueViolation(err) {
					return models.NewConflictError("Post already liked")
				}
				return models.NewInternalError(err)
			}
			if err := tx.Model(&models.User{}).
				Where("id = ?", post.UserID).
				Update("points", gorm.Expr("points + 1")).Error; err != nil {
				return models.NewInternalError(err)
			}
			result = models.LikeResultLiked
			return nil
		default:
			return models.NewInternalError(err)
		}
	})
	if err != nil {
		return "", err
	}

	// The author's cached profile carries the old points value.
	cache.InvalidateUser(ctx, authorID)
	cache.InvalidateFeed(ctx)
	cache.InvalidateTopUsers(ctx)
	return result, nil
}

// AddComment attaches a comment to an approved post. A comment needs text or
// an image; either alone is fine.
func (s *InteractionService) AddComment(ctx context.Context, userID, postID uint, content, imageURL *string) (*models.Comment, error) {
	if isBlank(content) && isBlank(imageURL) {
		return nil, models.NewValidationError("A comment needs text or an image")
	}

	if _, err := s.postRepo.GetApprovedByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   userID,
		Content:  trimmed(content),
		ImageURL: imageURL,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	cache.InvalidateFeed(ctx)
	return comment, nil
}

// ListComments returns the comments on an approved post, oldest first.
func (s *InteractionService) ListComments(ctx context.Context, postID uint, limit, offset int) ([]models.CommentView, error) {
	if _, err := s.postRepo.GetApprovedByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}

	views := make([]models.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, comments[i].View())
	}
	return views, nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
