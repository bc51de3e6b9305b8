package server

import (
	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPins godoc
// @Summary List pins with optional filters
// @Tags pins
// @Produce json
// @Param q query string false "text search over title and description"
// @Param tag query string false "exact tag match"
// @Param userId query string false "owner user ID, or email when it contains @"
// @Param favorites query bool false "owner's saved pins instead of created pins"
// @Param page query int false "page number"
// @Param limit query int false "page size (default 50)"
// @Success 200 {object} map[string]interface{}
// @Router /pins [get]
func (s *Server) GetPins(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)
	p := parsePagination(c, service.DefaultFeedLimit)

	page, err := s.pinService.Feed(c.Context(), service.FeedParams{
		Query:         c.Query("q"),
		Tag:           c.Query("tag"),
		OwnerRef:      c.Query("userId"),
		FavoritesOnly: c.QueryBool("favorites"),
		ViewerID:      viewerID,
		Page:          p.Page,
		Limit:         p.Limit,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"pins":       page.Pins,
		"pagination": paginationBody(page.Total, page.Page, page.Limit, page.TotalPages),
	})
}

// GetPin godoc
// @Summary Get a single pin
// @Tags pins
// @Produce json
// @Param id path int true "pin ID"
// @Success 200 {object} models.Pin
// @Failure 404 {object} models.ErrorResponse
// @Router /pins/{id} [get]
func (s *Server) GetPin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)
	pin, err := s.pinService.GetPin(c.Context(), id, viewerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(pin)
}

// CreatePin godoc
// @Summary Create a pin
// @Tags pins
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.CreatePinInput true "pin payload"
// @Success 201 {object} models.Pin
// @Failure 400 {object} models.ErrorResponse
// @Router /pins [post]
func (s *Server) CreatePin(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input service.CreatePinInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	pin, err := s.pinService.CreatePin(c.Context(), userID, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(pin)
}

// LikePin godoc
// @Summary Like a pin
// @Tags pins
// @Security BearerAuth
// @Produce json
// @Param id path int true "pin ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /pins/{id}/like [post]
func (s *Server) LikePin(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	pinID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.pinRepo.Like(c.Context(), userID, pinID); err != nil {
		return respondError(c, err)
	}

	count, err := s.pinRepo.LikeCount(c.Context(), pinID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"is_liked":    true,
		"likes_count": count,
	})
}

// UnlikePin godoc
// @Summary Remove a like from a pin
// @Tags pins
// @Security BearerAuth
// @Produce json
// @Param id path int true "pin ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /pins/{id}/like [delete]
func (s *Server) UnlikePin(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	pinID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.pinRepo.Unlike(c.Context(), userID, pinID); err != nil {
		return respondError(c, err)
	}

	count, err := s.pinRepo.LikeCount(c.Context(), pinID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"is_liked":    false,
		"likes_count": count,
	})
}

// SavePin godoc
// @Summary Save a pin to the viewer's collection
// @Tags pins
// @Security BearerAuth
// @Produce json
// @Param id path int true "pin ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /pins/{id}/save [post]
func (s *Server) SavePin(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	pinID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.pinRepo.Save(c.Context(), userID, pinID); err != nil {
		return respondError(c, err)
	}

	count, err := s.pinRepo.SaveCount(c.Context(), pinID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"is_saved":    true,
		"saves_count": count,
	})
}

// UnsavePin godoc
// @Summary Remove a pin from the viewer's collection
// @Tags pins
// @Security BearerAuth
// @Produce json
// @Param id path int true "pin ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /pins/{id}/save [delete]
func (s *Server) UnsavePin(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	pinID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.pinRepo.Unsave(c.Context(), userID, pinID); err != nil {
		return respondError(c, err)
	}

	count, err := s.pinRepo.SaveCount(c.Context(), pinID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"is_saved":    false,
		"saves_count": count,
	})
}
