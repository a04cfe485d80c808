package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localSessionID = "session_id"
	sessionMaxAge  = 60 * 60 * 24 * 30
)

// Session makes sure every request carries a browser session id in cookieName,
// issuing a new one when missing or malformed.
func Session(cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(cookieName)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
			c.Cookie(&fiber.Cookie{
				Name:     cookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   sessionMaxAge,
				Expires:  time.Now().Add(sessionMaxAge * time.Second),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(localSessionID, id)
		return c.Next()
	}
}

// SessionID returns the session id set by Session.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(localSessionID).(string)
	return id
}
