package handler

import (
	"backend-triage/internal/http/middleware"
	"backend-triage/internal/models"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	token, staff, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(models.LoginResponse{
		Token: token,
		User:  staff,
	})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	staff, ok := c.Locals(middleware.LocalStaff).(models.StaffIdentity)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized. Please log in.",
		})
	}
	return c.JSON(models.MeResponse{User: staff})
}
