package server

import (
	"gamenexus/internal/models"

	"github.com/gofiber/fiber/v2"
)

type respondRequest struct {
	Action models.FriendshipAction `json:"action"`
}

// SendFriendRequest handles POST /api/friends/request/:userId
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	receiverID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	friendship, sendErr := s.friendService.SendRequest(c.UserContext(), currentUserID(c), receiverID)
	if sendErr != nil {
		return models.RespondWithError(c, sendErr)
	}

	return c.Status(fiber.StatusCreated).JSON(friendship)
}

// GetIncomingRequests handles GET /api/friends/requests/incoming
func (s *Server) GetIncomingRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.ListIncoming(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(requests)
}

// RespondFriendRequest handles PUT /api/friends/requests/:friendshipId
func (s *Server) RespondFriendRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "friendshipId")
	if err != nil {
		return nil
	}

	var req respondRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	friendship, respondErr := s.friendService.Respond(c.UserContext(), currentUserID(c), requestID, req.Action)
	if respondErr != nil {
		return models.RespondWithError(c, respondErr)
	}

	if req.Action == models.FriendshipActionDecline {
		return c.JSON(fiber.Map{"message": "Friend request declined"})
	}
	return c.JSON(friendship)
}

// CancelFriendRequest handles DELETE /api/friends/request/sent/:receiverId.
// Only the original sender can cancel, and only while still pending.
func (s *Server) CancelFriendRequest(c *fiber.Ctx) error {
	receiverID, err := s.parseID(c, "receiverId")
	if err != nil {
		return nil
	}

	if cancelErr := s.friendService.CancelRequest(c.UserContext(), currentUserID(c), receiverID); cancelErr != nil {
		return models.RespondWithError(c, cancelErr)
	}

	return c.JSON(fiber.Map{"message": "Friend request cancelled"})
}

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendService.ListFriends(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(friends)
}
