package handlers

import (
	"strings"
	"time"
	"unicode"

	"github.com/clubworks/clubhub/internal/config"
	"github.com/clubworks/clubhub/internal/services"
	"github.com/clubworks/clubhub/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthHandler handles account routes
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

const sessionCookie = "cookie_session"

// Signup handles POST /api/auth/signup
// @Summary Register a club account
// @Description Create an Authorizer account and the club profile in one step
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "Email, password, club name and description"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		ClubName    string `json:"clubName"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portal.validation.input")
	}

	body.Email = strings.TrimSpace(body.Email)
	body.ClubName = strings.TrimSpace(body.ClubName)
	if body.Email == "" || body.ClubName == "" || body.Description == "" {
		return utils.ErrorResponse(c, "Email, club name and description are required", fiber.StatusBadRequest, "portal.validation.input")
	}
	if msg := passwordPolicyViolation(body.Password); msg != "" {
		return utils.ErrorResponse(c, msg, fiber.StatusBadRequest, "portal.validation.password")
	}

	if err := services.InitAuthorizer(h.Cfg, c.Protocol(), c.Hostname()); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusServiceUnavailable, "signup")
	}

	userID, err := services.SignUp(body.Email, body.Password)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "signup")
	}

	if _, err := services.CreateClub(h.DB, userID, body.ClubName, body.Description); err != nil {
		return serviceErrorResponse(c, err, "signup", "")
	}

	return utils.MutationSuccessResponse(c, "Club registered")
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Exchange credentials for a session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "Email and password"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portal.validation.input")
	}

	if err := services.InitAuthorizer(h.Cfg, c.Protocol(), c.Hostname()); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusServiceUnavailable, "login")
	}

	token, err := services.Login(body.Email, body.Password)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid credentials", fiber.StatusUnauthorized, "login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(72 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return utils.MutationSuccessResponse(c, "Logged in")
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return utils.MutationSuccessResponse(c, "Logged out")
}

// Me handles GET /api/auth/me
// @Summary Get the authenticated club profile
// @Tags Auth
// @Produce json
// @Success 200 {object} models.Club
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "me")
	}
	return utils.SuccessResponse(c, club, fiber.StatusOK)
}

// passwordPolicyViolation returns a message describing the first failed
// password rule, or "" when the password is acceptable.
func passwordPolicyViolation(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters"
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	if !hasUpper {
		return "Password must contain an uppercase letter"
	}
	if !hasDigit {
		return "Password must contain a digit"
	}
	return ""
}
