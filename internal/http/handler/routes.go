package handler

import (
	"backend-triage/internal/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type RouteOptions struct {
	BasicAuthUser string
	BasicAuthPass string
}

func SetupRoutes(app *fiber.App, h *Handler, opts RouteOptions) {
	app.Get("/health", h.Health)

	api := app.Group("/api")

	// Publik
	api.Post("/patients", h.SubmitPatient)
	api.Get("/queue", h.GetQueue)
	api.Post("/queue/reset", middleware.BasicAuth(opts.BasicAuthUser, opts.BasicAuthPass), h.ResetQueue)

	// Auth
	api.Post("/auth/login", h.Login)
	api.Post("/auth/logout", h.Logout)
	api.Get("/auth/me", middleware.StaffAuth(h.auth), h.Me)

	// Aksi petugas (wajib login)
	staff := middleware.StaffAuth(h.auth)
	api.Patch("/patients/:id/serve", staff, h.ServePatient)
	api.Patch("/patients/:id/complete", staff, h.CompletePatient)

	// Display realtime
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/queue", websocket.New(h.QueueWebSocket))
}
