package server

import (
	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TogglePostLike toggles the caller's like on a post. Logged-in users are
// identified by their token; guests by the X-Guest-Token header.
func (s *Server) TogglePostLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return s.toggleLike(c, service.ToggleLikeInput{PostID: &id})
}

// ToggleCommentLike toggles the caller's like on a comment.
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return s.toggleLike(c, service.ToggleLikeInput{CommentID: &id})
}

func (s *Server) toggleLike(c *fiber.Ctx, in service.ToggleLikeInput) error {
	ctx := c.UserContext()

	in.UserID = actingUserID(c)
	if in.UserID == nil {
		token := c.Get("X-Guest-Token")
		if token == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Login or an X-Guest-Token header is required to like"))
		}
		if err := validation.ValidateGuestToken(token); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		in.GuestToken = token
	}

	res, err := s.likeService.ToggleLike(ctx, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	if in.PostID != nil {
		cache.InvalidatePost(ctx, *in.PostID)
	}

	return c.JSON(res)
}
