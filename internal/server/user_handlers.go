package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMe handles GET /api/users/me
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.userService.GetUserWithProfile(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"user": s.present.Account(user),
	})
}

// GetUsers handles GET /api/users. With a q parameter it searches by
// username, otherwise it lists users.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c)

	var (
		users []models.User
		err   error
	)
	if query := c.Query("q"); query != "" {
		users, err = s.userService.SearchUsers(c.Context(), query, p.Limit, p.Offset)
	} else {
		users, err = s.userService.ListUsers(c.Context(), p.Limit, p.Offset)
	}
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": s.present.Users(users),
	})
}

// GetProfile handles GET /api/profiles/:username
func (s *Server) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.userService.GetByUsername(c.Context(), username)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	profile, err := s.userService.GetProfile(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	friends, err := s.friendService.Friends(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": s.present.Profile(profile, user.Username, len(friends)),
	})
}

// UpdateProfile handles PUT /api/profiles/:username
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	userID := currentUserID(c)

	owner, err := s.userService.GetByUsername(c.Context(), username)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	if owner.ID != userID {
		return models.RespondWithDomainError(c,
			models.NewForbiddenError("you can only edit your own profile"))
	}

	var req struct {
		Bio      *string `json:"bio"`
		Location *string `json:"location"`
		Avatar   *string `json:"avatar"`
		Cover    *string `json:"cover"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.userService.UpdateProfile(c.Context(), userID, service.UpdateProfileInput{
		Bio:      req.Bio,
		Location: req.Location,
		Avatar:   req.Avatar,
		Cover:    req.Cover,
	})
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	friends, err := s.friendService.Friends(c.Context(), userID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": s.present.Profile(profile, owner.Username, len(friends)),
	})
}

// GetUserPosts handles GET /api/profiles/:username/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	username := c.Params("username")
	viewerID := s.optionalUserID(c)
	p := parsePagination(c)

	posts, err := s.postService.ByUsername(c.Context(), viewerID, username, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": s.present.Posts(posts),
	})
}
