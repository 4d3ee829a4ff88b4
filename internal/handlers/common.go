package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/clubworks/clubhub/internal/models"
	"github.com/clubworks/clubhub/internal/services"
	"github.com/clubworks/clubhub/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// clubFromCtx returns the club profile placed in context by the auth
// middleware.
func clubFromCtx(c *fiber.Ctx) (*models.Club, error) {
	club, ok := c.Locals("club").(*models.Club)
	if !ok || club == nil {
		return nil, fmt.Errorf("no club in request context")
	}
	return club, nil
}

// serviceErrorResponse maps the service layer's sentinel errors onto the
// standard error envelope. Unknown errors become 500s.
func serviceErrorResponse(c *fiber.Ctx, err error, errorType, notFoundMessage string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, notFoundMessage)
	case errors.Is(err, services.ErrConflict):
		return utils.ConflictResponse(c, "Already exists", errorType)
	case errors.Is(err, services.ErrForbidden):
		return utils.ForbiddenResponse(c, "Not allowed", errorType)
	default:
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
	}
}

// readMultipartFile reads an uploaded file fully into memory.
func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

// contentTypeAllowed checks a declared content type against an allowlist.
// Entries ending in "/*" match the whole top-level type.
func contentTypeAllowed(contentType string, allowed []string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	for _, a := range allowed {
		if strings.HasSuffix(a, "/*") {
			if strings.HasPrefix(contentType, strings.TrimSuffix(a, "*")) {
				return true
			}
		} else if contentType == a {
			return true
		}
	}
	return false
}

// isWebURL checks that a link is an absolute http or https URL.
func isWebURL(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}
