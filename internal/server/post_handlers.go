package server

import (
	"gamenexus/internal/models"
	"gamenexus/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createCommentRequest struct {
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var input service.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetFeed handles GET /api/posts?page=
func (s *Server) GetFeed(c *fiber.Ctx) error {
	feed, err := s.postService.ListFeed(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(feed)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, getErr := s.postService.GetPost(c.UserContext(), postID)
	if getErr != nil {
		return models.RespondWithError(c, getErr)
	}
	return c.JSON(post)
}

// ToggleLike handles POST /api/posts/:id/like.
// Answers 201 when the post ends up liked and 200 when the like was removed.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, toggleErr := s.interactionService.ToggleLike(c.UserContext(), currentUserID(c), postID)
	if toggleErr != nil {
		return models.RespondWithError(c, toggleErr)
	}

	status := fiber.StatusOK
	if result == models.LikeResultLiked {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"result": result})
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req createCommentRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, addErr := s.interactionService.AddComment(c.UserContext(), currentUserID(c), postID, req.Content, req.ImageURL)
	if addErr != nil {
		return models.RespondWithError(c, addErr)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	comments, listErr := s.interactionService.ListComments(c.UserContext(), postID, limit, offset)
	if listErr != nil {
		return models.RespondWithError(c, listErr)
	}
	return c.JSON(comments)
}
