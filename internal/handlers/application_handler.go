package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/repositories"
	"talentflow/recruitment-api/internal/services"
)

type ApplicationHandler struct {
	applicationService services.ApplicationService
}

func NewApplicationHandler(applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// HandleApply handles POST /applications
func (h *ApplicationHandler) HandleApply(c *fiber.Ctx) error {
	var req models.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user_id format",
		})
	}

	application, err := h.applicationService.Apply(jobID, userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"application": application,
	})
}

// HandleListApplications handles GET /applications with optional job_id,
// user_id, and status filters.
func (h *ApplicationHandler) HandleListApplications(c *fiber.Ctx) error {
	var filter repositories.ApplicationFilter

	if raw := c.Query("job_id"); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid job_id format",
			})
		}
		filter.JobID = &jobID
	}

	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid user_id format",
			})
		}
		filter.UserID = &userID
	}

	if raw := c.Query("status"); raw != "" {
		status := models.ApplicationStatus(raw)
		if !models.ValidApplicationStatus(status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status filter",
			})
		}
		filter.Status = &status
	}

	applications, err := h.applicationService.List(filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"applications": applications,
	})
}

// HandleUpdateApplication handles PATCH /applications/:id. This is the admin
// decision surface for the overall application status.
func (h *ApplicationHandler) HandleUpdateApplication(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application id format",
		})
	}

	var req models.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	application, err := h.applicationService.SetStatus(applicationID, &req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"application": application,
	})
}
