package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"userhub/internal/models"
	"userhub/internal/services"
)

const sessionCookie = "sid"

// EnsureSession returns the request's session id, issuing a fresh sid cookie
// when the client has none yet.
func EnsureSession(c *fiber.Ctx) string {
	sid := c.Cookies(sessionCookie)
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sid
}

// SessionID returns the request's session id, or "" when the client carries
// no sid cookie.
func SessionID(c *fiber.Ctx) string {
	return c.Cookies(sessionCookie)
}

// ExpireSessionCookie tells the client to drop its sid cookie.
func ExpireSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

// LoadUser resolves the session's user, if any, into c.Locals("user") so
// handlers and templates can read the security context without re-querying.
func LoadUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies(sessionCookie); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}

// CurrentUser returns the security context loaded by LoadUser, or nil for an
// anonymous request.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals("user").(*models.User)
	return u
}

// RequireAuthenticated rejects anonymous requests with 401.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Not authenticated",
			})
		}
		return c.Next()
	}
}

// RequireRole rejects anonymous requests with 401 and authenticated requests
// lacking the authority with 403, before any business logic runs.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Not authenticated",
			})
		}
		if !u.HasRole(role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"message": "Access denied",
			})
		}
		return c.Next()
	}
}
