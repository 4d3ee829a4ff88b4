package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clubworks/clubhub/internal/services"
	"github.com/clubworks/clubhub/internal/storage"
	"github.com/clubworks/clubhub/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EventHandler handles event routes
type EventHandler struct {
	DB    *gorm.DB
	Store storage.Store
}

const maxEventDocumentBytes = 50 * 1024 * 1024

// Budget and receipt uploads are finance documents, so only document formats
// are accepted.
var eventDocumentTypes = []string{
	"application/pdf",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Create handles POST /api/events
// @Summary Propose an event
// @Description Create an event proposal pending admin approval
// @Tags Events
// @Accept json
// @Produce json
// @Param body body services.EventInput true "Event proposal"
// @Success 200 {object} models.Event
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "events.create")
	}

	var input services.EventInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portal.validation.input")
	}
	if input.EventName == "" || input.Date == "" {
		return utils.ErrorResponse(c, "Event name and date are required", fiber.StatusBadRequest, "portal.validation.input")
	}
	if input.ProposalLink != "" && !strings.HasPrefix(input.ProposalLink, "https://docs.google.com") {
		return utils.ErrorResponse(c, "Proposal link must be a Google Docs URL", fiber.StatusBadRequest, "portal.validation.input")
	}

	event, err := services.CreateEvent(h.DB, club, &input)
	if err != nil {
		return serviceErrorResponse(c, err, "events.create", "")
	}
	return utils.SuccessResponse(c, event, fiber.StatusOK)
}

// Mine handles GET /api/events
// @Summary List the club's events
// @Tags Events
// @Produce json
// @Success 200 {array} models.Event
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /events [get]
func (h *EventHandler) Mine(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "events.mine")
	}

	events, err := services.ListClubEvents(h.DB, club.ID)
	if err != nil {
		return serviceErrorResponse(c, err, "events.mine", "")
	}
	return utils.SuccessResponse(c, events, fiber.StatusOK)
}

// Approved handles GET /api/events/approved, the public event listing.
// @Summary List approved events
// @Tags Events
// @Produce json
// @Success 200 {array} services.ApprovedEvent
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /events/approved [get]
func (h *EventHandler) Approved(c *fiber.Ctx) error {
	events, err := services.ListApprovedEvents(h.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "events.approved", "")
	}
	return utils.SuccessResponse(c, events, fiber.StatusOK)
}

// UploadBudget handles POST /api/events/:id/budget
// @Summary Upload an event budget document
// @Tags Events
// @Accept mpfd
// @Produce json
// @Param id path int true "Event id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/{id}/budget [post]
func (h *EventHandler) UploadBudget(c *fiber.Ctx) error {
	return h.uploadDocuments(c, "budget", 1)
}

// UploadReceipts handles POST /api/events/:id/receipts
// @Summary Upload event receipt documents
// @Tags Events
// @Accept mpfd
// @Produce json
// @Param id path int true "Event id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/{id}/receipts [post]
func (h *EventHandler) UploadReceipts(c *fiber.Ctx) error {
	return h.uploadDocuments(c, "receipts", 10)
}

func (h *EventHandler) uploadDocuments(c *fiber.Ctx, kind string, maxFiles int) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "events.upload")
	}

	eventID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid event id", fiber.StatusBadRequest, "portal.validation.input")
	}

	event, err := services.GetEvent(h.DB, club, eventID)
	if err != nil {
		return serviceErrorResponse(c, err, "events.upload", fmt.Sprintf("Event %d not found", eventID))
	}

	mf, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, "Expected multipart form data", fiber.StatusBadRequest, "portal.validation.input")
	}
	headers := mf.File["files"]
	if len(headers) == 0 {
		return utils.ErrorResponse(c, "No files attached", fiber.StatusBadRequest, "portal.validation.upload")
	}
	if len(headers) > maxFiles {
		return utils.ErrorResponse(c, fmt.Sprintf("At most %d file(s) allowed", maxFiles), fiber.StatusBadRequest, "portal.validation.upload")
	}

	prefix := services.BudgetPath(club.ID, event.ID)
	if kind == "receipts" {
		prefix = services.ReceiptsPath(club.ID, event.ID)
	}

	for _, fh := range headers {
		if fh.Size > maxEventDocumentBytes {
			return utils.ErrorResponse(c, fmt.Sprintf("File '%s' exceeds the 50MB limit", fh.Filename), fiber.StatusBadRequest, "portal.validation.upload")
		}
		contentType := fh.Header.Get("Content-Type")
		if !contentTypeAllowed(contentType, eventDocumentTypes) {
			return utils.ErrorResponse(c, fmt.Sprintf("File '%s' is not an accepted document type", fh.Filename), fiber.StatusBadRequest, "portal.validation.upload")
		}

		data, err := readMultipartFile(fh)
		if err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "events.upload")
		}
		if _, err := h.Store.Upload(prefix+"/"+fh.Filename, data, contentType); err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "events.upload")
		}
	}

	if kind == "budget" {
		err = services.SetBudgetSubmitted(h.DB, club, event.ID)
	} else {
		err = services.SetReceiptsSubmitted(h.DB, club, event.ID)
	}
	if err != nil {
		return serviceErrorResponse(c, err, "events.upload", fmt.Sprintf("Event %d not found", eventID))
	}

	return utils.MutationSuccessResponse(c, "Documents uploaded")
}
