package handlers

import (
	"fmt"
	"strconv"

	"github.com/clubworks/clubhub/internal/services"
	"github.com/clubworks/clubhub/internal/types"
	"github.com/clubworks/clubhub/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LinkListHandler handles link-list routes
type LinkListHandler struct {
	DB *gorm.DB
}

// Add handles POST /api/linklist
// @Summary Add a link to the club's list
// @Tags LinkList
// @Accept json
// @Produce json
// @Param body body object true "Headline and URL"
// @Success 200 {object} models.LinkListEntry
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /linklist [post]
func (h *LinkListHandler) Add(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "linklist.add")
	}

	var body struct {
		Headline string `json:"headline"`
		URL      string `json:"url"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portal.validation.input")
	}
	if body.Headline == "" || !isWebURL(body.URL) {
		return utils.ErrorResponse(c, "Headline and an absolute http(s) URL are required", fiber.StatusBadRequest, "portal.validation.input")
	}

	entry, err := services.AddLinkListEntry(h.DB, club, body.Headline, body.URL)
	if err != nil {
		return serviceErrorResponse(c, err, "linklist.add", "")
	}
	return utils.SuccessResponse(c, entry, fiber.StatusOK)
}

// Edit handles PUT /api/linklist/:id
// @Summary Edit a link
// @Tags LinkList
// @Accept json
// @Produce json
// @Param id path int true "Entry id"
// @Param body body object true "Headline and URL"
// @Success 200 {object} models.LinkListEntry
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /linklist/{id} [put]
func (h *LinkListHandler) Edit(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "linklist.edit")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid entry id", fiber.StatusBadRequest, "portal.validation.input")
	}

	var body struct {
		Headline string `json:"headline"`
		URL      string `json:"url"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portal.validation.input")
	}
	if body.Headline == "" || !isWebURL(body.URL) {
		return utils.ErrorResponse(c, "Headline and an absolute http(s) URL are required", fiber.StatusBadRequest, "portal.validation.input")
	}

	entry, err := services.EditLinkListEntry(h.DB, club, id, body.Headline, body.URL)
	if err != nil {
		return serviceErrorResponse(c, err, "linklist.edit", fmt.Sprintf("Link %d not found", id))
	}
	return utils.SuccessResponse(c, entry, fiber.StatusOK)
}

// Delete handles DELETE /api/linklist/:id
// @Summary Delete a link
// @Tags LinkList
// @Produce json
// @Param id path int true "Entry id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /linklist/{id} [delete]
func (h *LinkListHandler) Delete(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "linklist.delete")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid entry id", fiber.StatusBadRequest, "portal.validation.input")
	}

	if err := services.DeleteLinkListEntry(h.DB, club, id); err != nil {
		return serviceErrorResponse(c, err, "linklist.delete", fmt.Sprintf("Link %d not found", id))
	}
	return utils.MutationSuccessResponse(c, "Link deleted")
}

// Reorder handles POST /api/linklist/reorder
// @Summary Reorder the club's links
// @Tags LinkList
// @Accept json
// @Produce json
// @Param body body object true "Entries with new positions"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /linklist/reorder [post]
func (h *LinkListHandler) Reorder(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "linklist.reorder")
	}

	var body struct {
		Items types.FlexList[services.ReorderItem] `json:"items"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portal.validation.input")
	}
	if len(body.Items) == 0 {
		return utils.ErrorResponse(c, "No entries to reorder", fiber.StatusBadRequest, "portal.validation.input")
	}

	if err := services.ReorderLinkList(h.DB, club, body.Items.Slice()); err != nil {
		return serviceErrorResponse(c, err, "linklist.reorder", "")
	}
	return utils.MutationSuccessResponse(c, "Links reordered")
}

// Mine handles GET /api/linklist
// @Summary List the club's own links in display order
// @Tags LinkList
// @Produce json
// @Success 200 {array} models.LinkListEntry
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /linklist [get]
func (h *LinkListHandler) Mine(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "linklist.mine")
	}

	entries, err := services.ListLinkListByClub(h.DB, club.ID)
	if err != nil {
		return serviceErrorResponse(c, err, "linklist.mine", "")
	}
	return utils.SuccessResponse(c, entries, fiber.StatusOK)
}

// Public handles GET /api/linklist/club/:clubName, the public link page.
// @Summary List a club's links by club name
// @Tags LinkList
// @Produce json
// @Param clubName path string true "Club name"
// @Success 200 {array} models.LinkListEntry
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /linklist/club/{clubName} [get]
func (h *LinkListHandler) Public(c *fiber.Ctx) error {
	entries, err := services.ListLinkListByClubName(h.DB, c.Params("clubName"))
	if err != nil {
		return serviceErrorResponse(c, err, "linklist.public", "")
	}
	return utils.SuccessResponse(c, entries, fiber.StatusOK)
}
