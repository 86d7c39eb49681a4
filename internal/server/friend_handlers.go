package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// friendRequestView renders a friend request with both user summaries.
func (s *Server) friendRequestView(req *models.FriendRequest) fiber.Map {
	return fiber.Map{
		"id":         req.ID,
		"from_user":  s.present.User(&req.FromUser),
		"to_user":    s.present.User(&req.ToUser),
		"created_at": req.CreatedAt,
	}
}

func (s *Server) friendRequestViews(reqs []models.FriendRequest) []fiber.Map {
	out := make([]fiber.Map, 0, len(reqs))
	for i := range reqs {
		out = append(out, s.friendRequestView(&reqs[i]))
	}
	return out
}

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendService.Friends(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"friends": s.present.Users(friends),
	})
}

// GetIncomingRequests handles GET /api/friends/requests
func (s *Server) GetIncomingRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.Incoming(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"requests": s.friendRequestViews(requests),
	})
}

// GetOutgoingRequests handles GET /api/friends/requests/sent
func (s *Server) GetOutgoingRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.Outgoing(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"requests": s.friendRequestViews(requests),
	})
}

// SendFriendRequest handles POST /api/friends/requests
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	target, err := s.userService.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	request, err := s.friendService.SendRequest(c.Context(), currentUserID(c), target.ID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"request": s.friendRequestView(request),
	})
}

// AcceptFriendRequest handles POST /api/friends/requests/:requestId/accept
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	request, err := s.friendService.AcceptRequest(c.Context(), currentUserID(c), requestID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "friend request accepted",
		"request": s.friendRequestView(request),
	})
}

// RejectFriendRequest handles POST /api/friends/requests/:requestId/reject
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	request, err := s.friendService.RejectRequest(c.Context(), currentUserID(c), requestID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "friend request rejected",
		"request": s.friendRequestView(request),
	})
}

// GetFriendshipStatus handles GET /api/friends/status/:username
func (s *Server) GetFriendshipStatus(c *fiber.Ctx) error {
	target, err := s.userService.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	status, requestID, err := s.friendService.Status(c.Context(), currentUserID(c), target.ID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	resp := fiber.Map{
		"status": status,
	}
	if requestID != 0 {
		resp["request_id"] = requestID
	}
	return c.JSON(resp)
}

// Unfriend handles DELETE /api/friends/:username
func (s *Server) Unfriend(c *fiber.Ctx) error {
	target, err := s.userService.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	if err := s.friendService.Unfriend(c.Context(), currentUserID(c), target.ID); err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "friend removed",
	})
}
