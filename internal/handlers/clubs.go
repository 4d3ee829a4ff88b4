package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/clubworks/clubhub/internal/services"
	"github.com/clubworks/clubhub/internal/storage"
	"github.com/clubworks/clubhub/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClubHandler handles club profile routes
type ClubHandler struct {
	DB    *gorm.DB
	Store storage.Store
}

const maxClubImageBytes = 5 * 1024 * 1024

// Get handles GET /api/club
// @Summary Get the club's own profile
// @Tags Clubs
// @Produce json
// @Success 200 {object} models.Club
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /club [get]
func (h *ClubHandler) Get(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "club.get")
	}
	return utils.SuccessResponse(c, club, fiber.StatusOK)
}

// Update handles PUT /api/club. The body is multipart so profile text and
// optional logo/banner images arrive together.
// @Summary Update the club profile
// @Tags Clubs
// @Accept mpfd
// @Produce json
// @Success 200 {object} models.Club
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /club [put]
func (h *ClubHandler) Update(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "club.update")
	}

	update := &services.ClubProfileUpdate{
		Description: c.FormValue("description", club.Description),
		LinkText:    c.FormValue("linkText", club.LinkText),
		Link:        c.FormValue("link", club.Link),
	}
	if update.Link != "" && !isWebURL(update.Link) {
		return utils.ErrorResponse(c, "Link must be an absolute http(s) URL", fiber.StatusBadRequest, "portal.validation.input")
	}

	if fh, err := c.FormFile("logo"); err == nil {
		url, err := h.storeImage(club.ID, "logo", fh)
		if err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "portal.validation.upload")
		}
		update.Logo = url
	}
	if fh, err := c.FormFile("banner"); err == nil {
		url, err := h.storeImage(club.ID, "banner", fh)
		if err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "portal.validation.upload")
		}
		update.Banner = url
	}

	updated, err := services.UpdateClubProfile(h.DB, club, update)
	if err != nil {
		return serviceErrorResponse(c, err, "club.update", "")
	}
	return utils.SuccessResponse(c, updated, fiber.StatusOK)
}

// storeImage validates and stores a logo or banner image, returning its
// public URL.
func (h *ClubHandler) storeImage(clubID, kind string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxClubImageBytes {
		return "", fmt.Errorf("image '%s' exceeds the 5MB limit", fh.Filename)
	}
	contentType := fh.Header.Get("Content-Type")
	if !contentTypeAllowed(contentType, []string{"image/*"}) {
		return "", fmt.Errorf("file '%s' is not an image", fh.Filename)
	}

	data, err := readMultipartFile(fh)
	if err != nil {
		return "", err
	}

	token, err := services.RandomToken(services.ShortIDLength)
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("assets/%s/%s_%s%s", clubID, kind, token, filepath.Ext(fh.Filename))
	return h.Store.Upload(path, data, contentType)
}

// Explore handles GET /api/clubs, the public club directory.
// @Summary List all clubs
// @Tags Clubs
// @Produce json
// @Success 200 {array} models.Club
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /clubs [get]
func (h *ClubHandler) Explore(c *fiber.Ctx) error {
	clubs, err := services.ListClubs(h.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "clubs.explore", "")
	}
	return utils.SuccessResponse(c, clubs, fiber.StatusOK)
}

// GetByName handles GET /api/clubs/:name, the public club profile page.
// @Summary Get a club profile by name
// @Tags Clubs
// @Produce json
// @Param name path string true "Club name"
// @Success 200 {object} models.Club
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /clubs/{name} [get]
func (h *ClubHandler) GetByName(c *fiber.Ctx) error {
	name := c.Params("name")
	club, err := services.GetClubByName(h.DB, name)
	if err != nil {
		return serviceErrorResponse(c, err, "clubs.get", fmt.Sprintf("Club '%s' not found", name))
	}
	return utils.SuccessResponse(c, club, fiber.StatusOK)
}
