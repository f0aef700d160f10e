package server

import (
	"gamenexus/internal/cache"
	"gamenexus/internal/models"
	"gamenexus/internal/service"

	"github.com/gofiber/fiber/v2"
)

type urlRequest struct {
	URL string `json:"url"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.Me(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/update-profile
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var input service.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// ChangePassword handles PUT /api/users/change-password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.ChangePassword(c.UserContext(), currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// UpdateAvatar handles PUT /api/users/update-avatar
func (s *Server) UpdateAvatar(c *fiber.Ctx) error {
	var req urlRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateAvatar(c.UserContext(), currentUserID(c), req.URL)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// UpdateCoverPhoto handles PUT /api/users/update-cover
func (s *Server) UpdateCoverPhoto(c *fiber.Ctx) error {
	var req urlRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateCoverPhoto(c.UserContext(), currentUserID(c), req.URL)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// GetTopUsers handles GET /api/users/top
func (s *Server) GetTopUsers(c *fiber.Ctx) error {
	top, err := s.userService.TopUsers(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(top)
}

// SearchUsers handles GET /api/users/search?q=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	results, err := s.userService.Search(c.UserContext(), currentUserID(c), c.Query("q"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(results)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	posts, listErr := s.postService.ListUserPosts(c.UserContext(), userID, c.QueryInt("page", 1))
	if listErr != nil {
		return models.RespondWithError(c, listErr)
	}
	return c.JSON(posts)
}

// LockUser handles PUT /api/users/:id/lock (moderators and admins only).
// A locked account keeps its data but can no longer log in.
func (s *Server) LockUser(c *fiber.Ctx) error {
	return s.setUserStatus(c, models.UserStatusLocked)
}

// UnlockUser handles PUT /api/users/:id/unlock (moderators and admins only)
func (s *Server) UnlockUser(c *fiber.Ctx) error {
	return s.setUserStatus(c, models.UserStatusActive)
}

func (s *Server) setUserStatus(c *fiber.Ctx, status models.UserStatus) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, getErr := s.userRepo.GetByID(c.UserContext(), userID)
	if getErr != nil {
		return models.RespondWithError(c, getErr)
	}

	user.Status = status
	if updateErr := s.userRepo.Update(c.UserContext(), user); updateErr != nil {
		return models.RespondWithError(c, updateErr)
	}
	cache.InvalidateUser(c.UserContext(), userID)

	return c.JSON(user)
}
