package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMessages handles GET /api/messages
func (s *Server) GetMessages(c *fiber.Ctx) error {
	p := parsePagination(c)

	messages, err := s.messageService.Mine(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages": s.present.Messages(messages),
	})
}

// SendMessage handles POST /api/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		ToUsername string `json:"to_username"`
		Content    string `json:"content"`
		File       string `json:"file"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ToUsername == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Recipient username is required"))
	}

	receiver, err := s.userService.GetByUsername(c.Context(), req.ToUsername)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	message, err := s.messageService.Send(c.Context(), currentUserID(c), receiver.ID, req.Content, req.File)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": s.present.Message(message),
	})
}

// GetConversations handles GET /api/messages/conversations
func (s *Server) GetConversations(c *fiber.Ctx) error {
	partners, err := s.messageService.Conversations(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"conversations": s.present.Users(partners),
	})
}

// GetMessageHistory handles GET /api/messages/history?username=
func (s *Server) GetMessageHistory(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("username query parameter is required"))
	}

	peer, err := s.userService.GetByUsername(c.Context(), username)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	p := parsePagination(c)
	messages, err := s.messageService.History(c.Context(), currentUserID(c), peer.ID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages": s.present.Messages(messages),
	})
}

// MarkMessageRead handles POST /api/messages/:id/read. Reading one message
// marks everything from its sender to the caller as read.
func (s *Server) MarkMessageRead(c *fiber.Ctx) error {
	messageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	message, err := s.messageRepo.GetByID(c.Context(), messageID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	if message.ReceiverID != currentUserID(c) {
		return models.RespondWithDomainError(c,
			models.NewForbiddenError("you can only mark your own messages as read"))
	}

	updated, err := s.messageService.MarkRead(c.Context(), currentUserID(c), message.SenderID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"marked_read": updated,
	})
}
