package server

import (
	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SearchUsers godoc
// @Summary Search users by name or username
// @Tags users
// @Produce json
// @Param q query string true "search query (min 2 characters)"
// @Param page query int false "page number"
// @Param limit query int false "page size (default 20)"
// @Success 200 {object} map[string]interface{}
// @Router /users/search [get]
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)
	p := parsePagination(c, service.DefaultSearchLimit)

	page, err := s.userService.SearchUsers(c.Context(), c.Query("q"), viewerID, p.Page, p.Limit)
	if err != nil {
		return respondError(c, err)
	}

	results := make([]models.UserSummary, 0, len(page.Users))
	for i := range page.Users {
		results = append(results, page.Users[i].Summarize())
	}

	return c.JSON(fiber.Map{
		"users":      results,
		"pagination": paginationBody(page.Total, page.Page, page.Limit, page.TotalPages),
	})
}

// GetUserProfile godoc
// @Summary Get a user's profile, redacted per visibility
// @Tags users
// @Produce json
// @Param id path int true "user ID"
// @Success 200 {object} models.UserProfile
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)
	profile, err := s.userService.GetProfile(c.Context(), id, viewerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(profile)
}

// GetMyProfile godoc
// @Summary Get the authenticated user's full account record
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetSettings(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile godoc
// @Summary Update name, username, bio or avatar
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.UpdateProfileInput true "profile fields"
// @Success 200 {object} models.User
// @Failure 409 {object} models.ErrorResponse
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input service.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// UpdatePrivacy godoc
// @Summary Update privacy settings
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.UpdatePrivacyInput true "privacy fields"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me/privacy [put]
func (s *Server) UpdatePrivacy(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input service.UpdatePrivacyInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdatePrivacy(c.Context(), userID, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// UpdateNotifications godoc
// @Summary Update notification preferences
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.UpdateNotificationsInput true "notification fields"
// @Success 200 {object} models.User
// @Router /users/me/notifications [put]
func (s *Server) UpdateNotifications(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input service.UpdateNotificationsInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateNotifications(c.Context(), userID, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// UploadAvatar godoc
// @Summary Upload a new avatar image
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me/avatar [post]
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	url, err := s.userService.UpdateAvatar(c.Context(), userID, req.Image)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"avatar": url,
	})
}

// DeleteAccount godoc
// @Summary Delete the authenticated account and all its content
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/me [delete]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.userService.DeleteAccount(c.Context(), userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Account deleted",
	})
}
