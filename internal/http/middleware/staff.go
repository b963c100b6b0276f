package middleware

import (
	"backend-triage/internal/helper"
	"backend-triage/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalStaff = "staff"
	LocalToken = "session_token"
)

type Authenticator interface {
	Authenticate(bearerToken string) (models.StaffIdentity, error)
}

// StaffAuth rejects requests without a live staff session and stores the
// staff identity and raw token in the request locals.
func StaffAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := helper.BearerToken(c.Get(fiber.HeaderAuthorization))

		staff, err := auth.Authenticate(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized. Please log in.",
			})
		}

		c.Locals(LocalStaff, staff)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}
