package handler

import (
	"backend-triage/internal/http/middleware"
	"backend-triage/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// SubmitPatient - daftarkan pasien baru dan terbitkan nomor antrian
func (h *Handler) SubmitPatient(c *fiber.Ctx) error {
	var req models.SubmitPatientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	patient, err := h.queue.Submit(c.UserContext(), req.Name, req.Urgency, req.Reason)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SubmitPatientResponse{
		Message: "Patient added to queue",
		Token:   patient.Token,
		Patient: patient,
	})
}

func (h *Handler) ServePatient(c *fiber.Ctx) error {
	patient, err := h.queue.Serve(c.UserContext(), sessionToken(c), patientID(c))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(models.PatientResponse{
		Message: "Patient is now being served",
		Patient: patient,
	})
}

func (h *Handler) CompletePatient(c *fiber.Ctx) error {
	patient, err := h.queue.Complete(c.UserContext(), sessionToken(c), patientID(c))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(models.PatientResponse{
		Message: "Patient marked as done",
		Patient: patient,
	})
}

func sessionToken(c *fiber.Ctx) string {
	token, _ := c.Locals(middleware.LocalToken).(string)
	return token
}

// patientID - salinan param :id; string dari c.Params hanya valid selama request berjalan
func patientID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}
