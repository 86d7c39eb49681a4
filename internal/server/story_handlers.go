package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetActiveStories handles GET /api/stories
func (s *Server) GetActiveStories(c *fiber.Ctx) error {
	stories, err := s.storyService.Active(c.Context())
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"stories": s.present.Stories(stories),
	})
}

// CreateStory handles POST /api/stories
func (s *Server) CreateStory(c *fiber.Ctx) error {
	var req struct {
		File string `json:"file"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	story, err := s.storyService.Create(c.Context(), currentUserID(c), req.File)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"story": s.present.Story(story),
	})
}

// GetStory handles GET /api/stories/:id
func (s *Server) GetStory(c *fiber.Ctx) error {
	storyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	story, err := s.storyService.Get(c.Context(), storyID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"story": s.present.Story(story),
	})
}

// DeleteStory handles DELETE /api/stories/:id
func (s *Server) DeleteStory(c *fiber.Ctx) error {
	storyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.storyService.Delete(c.Context(), currentUserID(c), storyID); err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "story deleted",
	})
}
