package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
}

func NewInterviewHandler(interviewService services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
	}
}

// HandleCreateInterview handles POST /applications/:id/interview. Fails with
// a conflict before any provider call when the step already has a recorded
// outcome.
func (h *InterviewHandler) HandleCreateInterview(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application id format",
		})
	}

	var req models.CreateInterviewRequest
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

	session, err := h.interviewService.CreateSession(c.Context(), applicationID, stepID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"session": session,
	})
}

// HandleInterviewEvent handles POST /applications/:id/interview/events. One
// call per provider event; the response carries the session state after the
// event was applied.
func (h *InterviewHandler) HandleInterviewEvent(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application id format",
		})
	}

	var req models.InterviewEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.SessionID == "" || req.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "session_id and type are required",
		})
	}

	state, err := h.interviewService.HandleEvent(applicationID, &req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"state":   state,
	})
}

// HandleAnalyzeInterview handles POST /applications/:id/analyze-interview.
// Manual grading entry point, used when the automatic trigger after call end
// failed or when the client holds its own transcript.
func (h *InterviewHandler) HandleAnalyzeInterview(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application id format",
		})
	}

	var req models.AnalyzeInterviewRequest
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

	analysis, err := h.interviewService.AnalyzeTranscript(
		c.Context(),
		applicationID,
		stepID,
		req.Transcript,
		req.CallDuration,
	)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"analysis":      analysis.Analysis,
		"progress":      analysis.Progress,
		"call_duration": analysis.CallDuration,
	})
}
