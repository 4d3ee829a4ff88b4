package middleware

import (
	"errors"
	"fmt"

	"github.com/clubworks/clubhub/internal/config"
	"github.com/clubworks/clubhub/internal/services"
	"github.com/clubworks/clubhub/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthClub validates the session cookie and loads the caller's club profile
// into the request context under "club".
func AuthClub(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, db, false, "portal.authorization.club")
	}
}

// AuthAdmin validates the session cookie and requires the caller's club
// profile to carry the admin flag.
func AuthAdmin(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, db, true, "portal.authorization.admin")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, cfg *config.Config, db *gorm.DB, requireAdmin bool, errorType string) error {
	// The Authorizer client needs the request origin for its redirect URL, so
	// initialization is deferred to the first authenticated request.
	if !services.IsAuthorizerInitialized() {
		if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
			return &types.CustomError{
				Code:    fiber.StatusServiceUnavailable,
				Message: fmt.Sprintf("Authorization service unavailable: %v", err),
				Type:    errorType,
			}
		}
	}

	// Get session cookie
	session := c.Cookies("cookie_session")
	if session == "" {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Authorizer cookie \"cookie_session\" not found",
			Type:    errorType,
		}
	}

	// Validate session
	userID, err := services.ValidateSession(session)
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Invalid session: %v", err),
			Type:    errorType,
		}
	}

	// Ownership is keyed on the immutable user id, never the club name.
	club, err := services.GetClubByUserID(db, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "No club profile for this account",
				Type:    errorType,
			}
		}
		return err
	}

	if requireAdmin && !club.IsAdmin {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Admin privileges required",
			Type:    errorType,
		}
	}

	c.Locals("club", club)
	return c.Next()
}
