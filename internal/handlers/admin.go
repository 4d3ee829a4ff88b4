package handlers

import (
	"fmt"
	"strconv"

	"github.com/clubworks/clubhub/internal/config"
	"github.com/clubworks/clubhub/internal/services"
	"github.com/clubworks/clubhub/internal/storage"
	"github.com/clubworks/clubhub/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler handles the admin surface. Every route here sits behind the
// AuthAdmin middleware.
type AdminHandler struct {
	DB    *gorm.DB
	Store storage.Store
	Cfg   *config.Config
}

// CreateClub handles POST /api/admin/clubs. The admin provisions both the
// Authorizer account and the club profile in one step, same as self-signup.
// @Summary Register a club account on a club's behalf
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body object true "Email, password, club name and description"
// @Success 200 {object} models.Club
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /admin/clubs [post]
func (h *AdminHandler) CreateClub(c *fiber.Ctx) error {
	var body struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portal.validation.input")
	}
	if body.Email == "" || body.Name == "" {
		return utils.ErrorResponse(c, "Email and club name are required", fiber.StatusBadRequest, "portal.validation.input")
	}
	if msg := passwordPolicyViolation(body.Password); msg != "" {
		return utils.ErrorResponse(c, msg, fiber.StatusBadRequest, "portal.validation.password")
	}

	userID, err := services.SignUp(body.Email, body.Password)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "admin.clubs.create")
	}

	club, err := services.CreateClub(h.DB, userID, body.Name, body.Description)
	if err != nil {
		return serviceErrorResponse(c, err, "admin.clubs.create", "")
	}
	return utils.SuccessResponse(c, club, fiber.StatusOK)
}

// ListClubs handles GET /api/admin/clubs
// @Summary List every club, admin rows included
// @Tags Admin
// @Produce json
// @Success 200 {array} models.Club
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/clubs [get]
func (h *AdminHandler) ListClubs(c *fiber.Ctx) error {
	clubs, err := services.AdminListClubs(h.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "admin.clubs.list", "")
	}
	return utils.SuccessResponse(c, clubs, fiber.StatusOK)
}

// UpdateClub handles PUT /api/admin/clubs/:id
// @Summary Edit a club's name and description
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Club id"
// @Param body body object true "Name and description"
// @Success 200 {object} models.Club
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /admin/clubs/{id} [put]
func (h *AdminHandler) UpdateClub(c *fiber.Ctx) error {
	id := c.Params("id")

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portal.validation.input")
	}
	if body.Name == "" {
		return utils.ErrorResponse(c, "Name is required", fiber.StatusBadRequest, "portal.validation.input")
	}

	club, err := services.AdminUpdateClub(h.DB, id, body.Name, body.Description)
	if err != nil {
		return serviceErrorResponse(c, err, "admin.clubs.update", fmt.Sprintf("Club '%s' not found", id))
	}
	return utils.SuccessResponse(c, club, fiber.StatusOK)
}

// DeleteClub handles DELETE /api/admin/clubs/:id
// @Summary Delete a club and everything it owns
// @Tags Admin
// @Produce json
// @Param id path string true "Club id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/clubs/{id} [delete]
func (h *AdminHandler) DeleteClub(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := services.AdminDeleteClub(h.DB, id); err != nil {
		return serviceErrorResponse(c, err, "admin.clubs.delete", fmt.Sprintf("Club '%s' not found", id))
	}
	return utils.MutationSuccessResponse(c, "Club deleted")
}

// ResetPassword handles POST /api/admin/clubs/:id/reset-password
// @Summary Reset a club account's password
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Club id"
// @Param body body object true "New password"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/clubs/{id}/reset-password [post]
func (h *AdminHandler) ResetPassword(c *fiber.Ctx) error {
	id := c.Params("id")

	var body struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portal.validation.input")
	}
	if msg := passwordPolicyViolation(body.Password); msg != "" {
		return utils.ErrorResponse(c, msg, fiber.StatusBadRequest, "portal.validation.password")
	}

	// The club id is the Authorizer user id, so it addresses the account
	// directly.
	if err := services.AdminUpdatePassword(h.Cfg, id, body.Password); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "admin.clubs.resetPassword")
	}
	return utils.MutationSuccessResponse(c, "Password reset")
}

// ListEvents handles GET /api/admin/events
// @Summary List every event with its uploaded documents
// @Tags Admin
// @Produce json
// @Success 200 {array} services.EventDocuments
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/events [get]
func (h *AdminHandler) ListEvents(c *fiber.Ctx) error {
	events, err := services.ListEventsWithDocuments(h.DB, h.Store)
	if err != nil {
		return serviceErrorResponse(c, err, "admin.events.list", "")
	}
	return utils.SuccessResponse(c, events, fiber.StatusOK)
}

// ApproveEvent handles POST /api/admin/events/:id/approve
// @Summary Approve an event, making it publicly visible
// @Tags Admin
// @Produce json
// @Param id path int true "Event id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/events/{id}/approve [post]
func (h *AdminHandler) ApproveEvent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid event id", fiber.StatusBadRequest, "portal.validation.input")
	}

	if err := services.ApproveEvent(h.DB, id); err != nil {
		return serviceErrorResponse(c, err, "admin.events.approve", fmt.Sprintf("Event %d not found", id))
	}
	return utils.MutationSuccessResponse(c, "Event approved")
}

// DeleteEvent handles DELETE /api/admin/events/:id
// @Summary Delete an event
// @Tags Admin
// @Produce json
// @Param id path int true "Event id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/events/{id} [delete]
func (h *AdminHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid event id", fiber.StatusBadRequest, "portal.validation.input")
	}

	if err := services.DeleteEvent(h.DB, id); err != nil {
		return serviceErrorResponse(c, err, "admin.events.delete", fmt.Sprintf("Event %d not found", id))
	}
	return utils.MutationSuccessResponse(c, "Event deleted")
}

// CreateAlert handles POST /api/admin/alerts
// @Summary Publish a portal-wide announcement
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body object true "Title, message and severity"
// @Success 200 {object} models.Alert
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/alerts [post]
func (h *AdminHandler) CreateAlert(c *fiber.Ctx) error {
	var body struct {
		Title    string `json:"title"`
		Message  string `json:"message"`
		Severity string `json:"severity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portal.validation.input")
	}
	if body.Title == "" || body.Message == "" {
		return utils.ErrorResponse(c, "Title and message are required", fiber.StatusBadRequest, "portal.validation.input")
	}

	alert, err := services.CreateAlert(h.DB, body.Title, body.Message, body.Severity)
	if err != nil {
		return serviceErrorResponse(c, err, "admin.alerts.create", "")
	}
	return utils.SuccessResponse(c, alert, fiber.StatusOK)
}

// DeleteAlert handles DELETE /api/admin/alerts/:id
// @Summary Delete an announcement
// @Tags Admin
// @Produce json
// @Param id path int true "Alert id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/alerts/{id} [delete]
func (h *AdminHandler) DeleteAlert(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid alert id", fiber.StatusBadRequest, "portal.validation.input")
	}

	if err := services.DeleteAlert(h.DB, id); err != nil {
		return serviceErrorResponse(c, err, "admin.alerts.delete", fmt.Sprintf("Alert %d not found", id))
	}
	return utils.MutationSuccessResponse(c, "Alert deleted")
}

// ListAlerts handles GET /api/alerts, the public announcement feed.
// @Summary List announcements
// @Tags Alerts
// @Produce json
// @Success 200 {array} models.Alert
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /alerts [get]
func (h *AdminHandler) ListAlerts(c *fiber.Ctx) error {
	alerts, err := services.ListAlerts(h.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "alerts.list", "")
	}
	return utils.SuccessResponse(c, alerts, fiber.StatusOK)
}
