package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/services"
)

type ProgressHandler struct {
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
	}
}

// HandleListProgress handles GET /applications/:id/progress
func (h *ProgressHandler) HandleListProgress(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application id format",
		})
	}

	progress, err := h.progressService.ListForApplication(applicationID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"progress": progress,
	})
}

// HandleDecision handles PATCH /applications/:id/progress/:progressId. Admins
// override a step outcome to accepted or rejected; score and review stay as
// the engines wrote them.
func (h *ProgressHandler) HandleDecision(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application id format",
		})
	}

	progressID, err := uuid.Parse(c.Params("progressId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid progress id format",
		})
	}

	var req models.ProgressDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	progress, err := h.progressService.SetDecision(applicationID, progressID, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"progress": progress,
	})
}
