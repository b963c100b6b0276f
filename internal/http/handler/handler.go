package handler

import (
	"backend-triage/internal/auth"
	"backend-triage/internal/queue"
	"backend-triage/internal/realtime"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	queue  *queue.Service
	auth   *auth.Authority
	hub    *realtime.Hub
	logger logrus.FieldLogger
}

func New(svc *queue.Service, authority *auth.Authority, hub *realtime.Hub, logger logrus.FieldLogger) *Handler {
	return &Handler{
		queue:  svc,
		auth:   authority,
		hub:    hub,
		logger: logger,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// respondError - petakan error queue dan auth ke status HTTP
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	status, msg := fiber.StatusInternalServerError, "Internal server error"

	switch {
	case errors.Is(err, queue.ErrValidation):
		status, msg = fiber.StatusBadRequest, validationMessage(err)
	case errors.Is(err, queue.ErrNotFound):
		status, msg = fiber.StatusNotFound, "Patient not found"
	case errors.Is(err, queue.ErrInvalidState):
		status, msg = fiber.StatusConflict, "Patient is already done"
	case errors.Is(err, auth.ErrAuthentication):
		status, msg = fiber.StatusUnauthorized, "Invalid username or password."
	case errors.Is(err, auth.ErrUnauthorized):
		status, msg = fiber.StatusUnauthorized, "Unauthorized. Please log in."
	default:
		h.logger.WithError(err).WithField("path", c.Path()).Error("request failed")
	}

	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func validationMessage(err error) string {
	var verr *queue.ValidationError
	if errors.As(err, &verr) {
		return verr.Msg
	}
	return "Invalid request."
}
