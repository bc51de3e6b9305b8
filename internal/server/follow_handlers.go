package server

import (
	"pinboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser godoc
// @Summary Follow a user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "user ID to follow"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/{id}/follow [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if targetID == userID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("cannot follow yourself"))
	}

	// 404 for a missing target before attempting the edge insert.
	if _, err := s.userRepo.GetByID(c.Context(), targetID); err != nil {
		return respondError(c, err)
	}

	if err := s.followRepo.Create(c.Context(), userID, targetID); err != nil {
		return respondError(c, err)
	}

	count, err := s.followRepo.FollowerCount(c.Context(), targetID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"is_following":   true,
		"follower_count": count,
	})
}

// UnfollowUser godoc
// @Summary Unfollow a user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "user ID to unfollow"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/follow [delete]
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followRepo.Delete(c.Context(), userID, targetID); err != nil {
		return respondError(c, err)
	}

	count, err := s.followRepo.FollowerCount(c.Context(), targetID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"is_following":   false,
		"follower_count": count,
	})
}
