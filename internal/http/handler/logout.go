package handler

import (
	"backend-triage/internal/helper"

	"github.com/gofiber/fiber/v2"
)

// Logout - selalu sukses, token kosong atau basi diabaikan
func (h *Handler) Logout(c *fiber.Ctx) error {
	h.auth.Logout(helper.BearerToken(c.Get(fiber.HeaderAuthorization)))

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}
