package middleware

import (
	"strings"

	"inventaris/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TokenCookie holds the session token issued at login.
const TokenCookie = "token"

// Locals keys set by AuthRequired.
const (
	LocalIdentity  = "identity"
	LocalPetugasID = "petugas_id"
)

// AuthRequired is a Fiber middleware that only lets signed-in petugas through.
// The token is read from the session cookie, or from a Bearer Authorization
// header. Browsers without a valid token are sent to the login page.
func AuthRequired(authService *services.AuthService, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(TokenCookie)
		if tokenString == "" {
			tokenString = bearer(c.Get(fiber.HeaderAuthorization))
		}
		if tokenString == "" {
			return unauthenticated(c, "Authentication required")
		}

		identity, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Debug("JWT validation failed", zap.String("path", c.Path()), zap.Error(err))
			c.ClearCookie(TokenCookie)
			return unauthenticated(c, "Invalid or expired token")
		}

		c.Locals(LocalIdentity, identity)
		c.Locals(LocalPetugasID, identity.PetugasID)
		return c.Next()
	}
}

// CurrentIdentity returns the petugas set by AuthRequired, or nil.
func CurrentIdentity(c *fiber.Ctx) *services.Identity {
	identity, _ := c.Locals(LocalIdentity).(*services.Identity)
	return identity
}

// CurrentPetugasID returns the id set by AuthRequired, or 0.
func CurrentPetugasID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalPetugasID).(uint)
	return id
}

func bearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthenticated(c *fiber.Ctx, message string) error {
	if strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": message,
		})
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}
