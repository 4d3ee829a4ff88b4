package handlers

import (
	"fmt"
	"regexp"

	"github.com/clubworks/clubhub/internal/services"
	"github.com/clubworks/clubhub/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ShortcutHandler handles shortlink routes
type ShortcutHandler struct {
	DB *gorm.DB
}

// Custom ids share the portal namespace with every other route, so they are
// restricted to lowercase alphanumerics and dashes.
var shortcutIDPattern = regexp.MustCompile(`^[a-z0-9-]{1,64}$`)

// Create handles POST /api/shortcuts
// @Summary Create a shortlink
// @Description Create a shortlink with an optional custom id
// @Tags Shortcuts
// @Accept json
// @Produce json
// @Param body body object true "Optional id and destination link"
// @Success 200 {object} models.Shortcut
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /shortcuts [post]
func (h *ShortcutHandler) Create(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "shortcuts.create")
	}

	var body struct {
		ID   string `json:"id"`
		Link string `json:"link"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portal.validation.input")
	}
	if !isWebURL(body.Link) {
		return utils.ErrorResponse(c, "Link must be an absolute http(s) URL", fiber.StatusBadRequest, "portal.validation.input")
	}
	if body.ID != "" && !shortcutIDPattern.MatchString(body.ID) {
		return utils.ErrorResponse(c, "Custom id may only contain lowercase letters, digits and dashes", fiber.StatusBadRequest, "portal.validation.input")
	}

	shortcut, err := services.CreateShortcut(h.DB, club, body.ID, body.Link)
	if err != nil {
		return serviceErrorResponse(c, err, "shortcuts.create", "")
	}
	return utils.SuccessResponse(c, shortcut, fiber.StatusOK)
}

// Update handles PUT /api/shortcuts/:id
// @Summary Update a shortlink destination
// @Tags Shortcuts
// @Accept json
// @Produce json
// @Param id path string true "Shortlink id"
// @Param body body object true "New destination link"
// @Success 200 {object} models.Shortcut
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /shortcuts/{id} [put]
func (h *ShortcutHandler) Update(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "shortcuts.update")
	}
	id := c.Params("id")

	var body struct {
		Link string `json:"link"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portal.validation.input")
	}
	if !isWebURL(body.Link) {
		return utils.ErrorResponse(c, "Link must be an absolute http(s) URL", fiber.StatusBadRequest, "portal.validation.input")
	}

	shortcut, err := services.UpdateShortcut(h.DB, club, id, body.Link)
	if err != nil {
		return serviceErrorResponse(c, err, "shortcuts.update", fmt.Sprintf("Shortlink '%s' not found", id))
	}
	return utils.SuccessResponse(c, shortcut, fiber.StatusOK)
}

// Delete handles DELETE /api/shortcuts/:id
// @Summary Delete a shortlink
// @Tags Shortcuts
// @Produce json
// @Param id path string true "Shortlink id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /shortcuts/{id} [delete]
func (h *ShortcutHandler) Delete(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "shortcuts.delete")
	}

	if err := services.DeleteShortcut(h.DB, club, c.Params("id")); err != nil {
		return serviceErrorResponse(c, err, "shortcuts.delete", "")
	}
	return utils.MutationSuccessResponse(c, "Shortlink deleted")
}

// List handles GET /api/shortcuts
// @Summary List the club's shortlinks
// @Tags Shortcuts
// @Produce json
// @Success 200 {array} models.Shortcut
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /shortcuts [get]
func (h *ShortcutHandler) List(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "shortcuts.list")
	}

	shortcuts, err := services.ListShortcutsByClub(h.DB, club.ID)
	if err != nil {
		return serviceErrorResponse(c, err, "shortcuts.list", "")
	}
	return utils.SuccessResponse(c, shortcuts, fiber.StatusOK)
}

// Redirect handles GET /:shortlink, the public catch-all. It must be
// registered after every static and API route so real routes always win.
// @Summary Resolve a shortlink
// @Description Redirect to the shortlink destination and count the visit
// @Tags Shortcuts
// @Param shortlink path string true "Shortlink id"
// @Success 302
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /{shortlink} [get]
func (h *ShortcutHandler) Redirect(c *fiber.Ctx) error {
	id := c.Params("shortlink")

	link, err := services.ResolveShortcut(h.DB, id)
	if err != nil {
		return serviceErrorResponse(c, err, "shortcuts.resolve", fmt.Sprintf("Shortlink '%s' not found", id))
	}
	return c.Redirect(link, fiber.StatusFound)
}
