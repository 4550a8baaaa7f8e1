package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/services"
)

type CVHandler struct {
	cvAnalyzer services.CVAnalyzerService
}

func NewCVHandler(cvAnalyzer services.CVAnalyzerService) *CVHandler {
	return &CVHandler{
		cvAnalyzer: cvAnalyzer,
	}
}

// HandleAnalyzeCV handles POST /applications/:id/analyze-cv. Scores the
// extracted CV text against the job posting and records the verdict on the
// application's progress for the given step.
func (h *CVHandler) HandleAnalyzeCV(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application id format",
		})
	}

	var req models.AnalyzeCVRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	stepID, err := uuid.Parse(req.StepID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid step_id format",
		})
	}

	analysis, err := h.cvAnalyzer.AnalyzeCV(c.Context(), applicationID, stepID, req.CVContent)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"analysis": analysis.Analysis,
		"progress": analysis.Progress,
	})
}
