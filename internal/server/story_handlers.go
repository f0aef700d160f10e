package server

import (
	"gamenexus/internal/models"
	"gamenexus/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateStory handles POST /api/stories
func (s *Server) CreateStory(c *fiber.Ctx) error {
	var input service.CreateStoryInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	story, err := s.storyService.Create(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(story)
}

// GetActiveStories handles GET /api/stories
func (s *Server) GetActiveStories(c *fiber.Ctx) error {
	stories, err := s.storyService.ListActive(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(stories)
}
