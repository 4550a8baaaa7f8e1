package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/services"
)

type StepHandler struct {
	pipelineService   services.PipelineService
	assessmentService services.AssessmentService
}

func NewStepHandler(
	pipelineService services.PipelineService,
	assessmentService services.AssessmentService,
) *StepHandler {
	return &StepHandler{
		pipelineService:   pipelineService,
		assessmentService: assessmentService,
	}
}

// HandleAddStep handles POST /jobs/:id/steps
func (h *StepHandler) HandleAddStep(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	var req models.CreateStepRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	step, err := h.pipelineService.AddStep(jobID, &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"step":    step,
	})
}

// HandleListSteps handles GET /jobs/:id/steps
func (h *StepHandler) HandleListSteps(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	steps, err := h.pipelineService.ListSteps(jobID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"steps":   steps,
	})
}

// HandleUpdateStep handles PATCH /jobs/:id/steps/:stepId
func (h *StepHandler) HandleUpdateStep(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	stepID, err := uuid.Parse(c.Params("stepId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid step id format",
		})
	}

	var req models.UpdateStepRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	step, err := h.pipelineService.UpdateStep(jobID, stepID, &req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"step":    step,
	})
}

// HandleDeleteStep handles DELETE /jobs/:id/steps/:stepId
func (h *StepHandler) HandleDeleteStep(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	stepID, err := uuid.Parse(c.Params("stepId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid step id format",
		})
	}

	if err := h.pipelineService.DeleteStep(jobID, stepID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// HandleGenerateAptitude handles POST /jobs/:id/steps/:stepId/generate-aptitude.
// The generated questions are returned for preview; saving them onto the step
// is a separate explicit update.
func (h *StepHandler) HandleGenerateAptitude(c *fiber.Ctx) error {
	return h.handleGenerate(c, services.AssessmentAptitude, models.StepTypeAptitude)
}

// HandleGenerateInterview handles POST /jobs/:id/steps/:stepId/generate-interview
func (h *StepHandler) HandleGenerateInterview(c *fiber.Ctx) error {
	return h.handleGenerate(c, services.AssessmentInterview, models.StepTypeInterview)
}

func (h *StepHandler) handleGenerate(c *fiber.Ctx, kind services.AssessmentKind, stepType models.StepType) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	stepID, err := uuid.Parse(c.Params("stepId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid step id format",
		})
	}

	step, err := h.pipelineService.GetStep(jobID, stepID)
	if err != nil {
		return err
	}
	if step.StepType != stepType {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("step is %q, expected %q", step.StepType, stepType),
		})
	}

	var req models.GenerateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	content, err := h.assessmentService.Generate(
		c.Context(),
		kind,
		req.SubType,
		req.CompanyName,
		req.Role,
		req.RoleDetails,
	)
	if err != nil {
		return err
	}

	return c.JSON(models.GenerateAssessmentResponse{
		Success:     true,
		Content:     content,
		GeneratedAt: time.Now(),
	})
}
