package middleware

import (
	"strings"

	"apotek/internal/models"
	"apotek/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const localPatient = "patient"

// Identity attaches the signed-in patient when the request carries a valid bearer token.
// Requests without a token continue as the session's guest; malformed or invalid tokens
// are rejected.
func Identity(identity *services.IdentityService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !identity.Enabled() {
			return c.Next()
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		patient, err := identity.Verify(parts[1])
		if err != nil {
			log.WithError(err).Debug("rejecting bearer token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(localPatient, patient)
		return c.Next()
	}
}

// Patient returns the signed-in patient, or the guest identity of the session.
func Patient(c *fiber.Ctx) models.Patient {
	if p, ok := c.Locals(localPatient).(models.Patient); ok {
		return p
	}
	return models.GuestPatient(SessionID(c))
}
