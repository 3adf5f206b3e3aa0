package handlers

import (
	"errors"
	"time"

	"inventaris/internal/middleware"
	"inventaris/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles petugas sign in and sign out.
type AuthHandler struct {
	authService  *services.AuthService
	validate     *validator.Validate
	secureCookie bool
	log          *zap.Logger
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the session
// cookie HTTPS-only.
func NewAuthHandler(authService *services.AuthService, secureCookie bool, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{
		authService:  authService,
		validate:     validator.New(),
		secureCookie: secureCookie,
		log:          log,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/login", h.HandleLoginPage)
	router.Post("/login", h.HandleLogin)
	router.Post("/logout", h.HandleLogout)
}

// LoginRequest represents the submitted login form.
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type loginPage struct {
	PageData
	Username string
	Error    string
}

// HandleLoginPage renders the login form.
func (h *AuthHandler) HandleLoginPage(c *fiber.Ctx) error {
	return c.Render("login", loginPage{PageData: PageData{Title: "Login"}})
}

// HandleLogin checks the credentials and sets the session cookie.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).Render("login", loginPage{
			PageData: PageData{Title: "Login"},
			Username: req.Username,
			Error:    "Username dan password wajib diisi.",
		})
	}

	token, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		h.log.Info("login rejected", zap.String("username", req.Username))
		return c.Status(fiber.StatusUnprocessableEntity).Render("login", loginPage{
			PageData: PageData{Title: "Login"},
			Username: req.Username,
			Error:    "These credentials do not match our records.",
		})
	}
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.authService.TokenDuration()),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	h.log.Info("petugas logged in", zap.String("username", req.Username))
	return c.Redirect(ListPath, fiber.StatusSeeOther)
}

// HandleLogout clears the session cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.ClearCookie(middleware.TokenCookie)
	return c.Redirect("/login", fiber.StatusSeeOther)
}
