package server

import (
	"encoding/json"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile returns the authenticated user's profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user.Owner())
}

// UpdateMyProfile updates the authenticated user's profile fields
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Name          string `json:"name"`
		Bio           string `json:"bio"`
		FavoriteQuote string `json:"favorite_quote"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID:        userID,
		Name:          req.Name,
		Bio:           req.Bio,
		FavoriteQuote: req.FavoriteQuote,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	cache.InvalidateUser(ctx, userID)
	return c.JSON(user.Owner())
}

// GetUserProfile returns another user's profile. Cached; the points balance
// shown here may lag the ledger by up to the cache TTL.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if cached := cache.Get(ctx, cache.UserKey(id)); cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	user, err := s.userService.GetUserByID(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	if payload, marshalErr := json.Marshal(user); marshalErr == nil {
		cache.Set(ctx, cache.UserKey(id), string(payload), cache.UserTTL)
	}

	return c.JSON(user)
}
