package handler

import (
	"github.com/gofiber/fiber/v2"
)

// GetQueue - status antrian terkini, selalu dihitung ulang
func (h *Handler) GetQueue(c *fiber.Ctx) error {
	return c.JSON(h.queue.View())
}

func (h *Handler) ResetQueue(c *fiber.Ctx) error {
	h.queue.Reset(c.UserContext())

	return c.JSON(fiber.Map{
		"message": "Queue reset",
	})
}
