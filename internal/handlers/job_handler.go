package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/repositories"
	"talentflow/recruitment-api/internal/services"
)

type JobHandler struct {
	jobRepo         repositories.JobRepository
	pipelineService services.PipelineService
	indexer         services.JobIndexer
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	pipelineService services.PipelineService,
	indexer services.JobIndexer,
) *JobHandler {
	return &JobHandler{
		jobRepo:         jobRepo,
		pipelineService: pipelineService,
		indexer:         indexer,
	}
}

// HandleCreateJob handles POST /jobs. New jobs start closed so the pipeline
// can be assembled before applicants see the posting.
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req models.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid company_id format",
		})
	}

	job := &models.Job{
		ID:              uuid.New(),
		Title:           req.Title,
		Description:     req.Description,
		Status:          models.JobStatusClosed,
		CompanyID:       companyID,
		Requirements:    req.Requirements,
		Benefits:        req.Benefits,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		ExperienceLevel: req.ExperienceLevel,
		Location:        req.Location,
		Department:      req.Department,
		DatePosted:      time.Now(),
	}
	if req.Type != "" {
		job.Type = req.Type
	} else {
		job.Type = models.JobTypeFullTime
	}
	if req.SalaryCurrency != nil {
		job.SalaryCurrency = *req.SalaryCurrency
	} else {
		job.SalaryCurrency = "USD"
	}
	if req.Openings != nil {
		job.Openings = *req.Openings
	} else {
		job.Openings = 1
	}
	if req.RemoteStatus != nil {
		job.RemoteStatus = *req.RemoteStatus
	} else {
		job.RemoteStatus = models.RemoteOnsite
	}

	if err := h.jobRepo.Create(job); err != nil {
		return err
	}

	if job.Requirements != nil && *job.Requirements != "" {
		h.indexer.EnqueueJob(job.ID)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"job":     job,
	})
}

// HandleGetJob handles GET /jobs/:id. Returns the full admin review payload:
// company, ordered steps, and applications with applicant and progress.
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	job, err := h.jobRepo.FindFull(jobID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"job":     job,
	})
}

// HandleUpdateJob handles PATCH /jobs/:id.
func (h *JobHandler) HandleUpdateJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	var req models.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Requirements != nil {
		updates["requirements"] = *req.Requirements
	}
	if req.Benefits != nil {
		updates["benefits"] = *req.Benefits
	}
	if req.SalaryMin != nil {
		updates["salary_min"] = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		updates["salary_max"] = *req.SalaryMax
	}
	if req.SalaryCurrency != nil {
		updates["salary_currency"] = *req.SalaryCurrency
	}
	if req.ExperienceLevel != nil {
		updates["experience_level"] = *req.ExperienceLevel
	}
	if req.Openings != nil {
		updates["openings"] = *req.Openings
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.RemoteStatus != nil {
		updates["remote_status"] = *req.RemoteStatus
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	job, err := h.jobRepo.Update(jobID, updates)
	if err != nil {
		return err
	}

	if _, changed := updates["requirements"]; changed {
		h.indexer.EnqueueJob(job.ID)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"job":     job,
	})
}

// HandleJobStatus handles PATCH /jobs/:id/status. The open/close gate lives
// in the pipeline service.
func (h *JobHandler) HandleJobStatus(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job id format",
		})
	}

	var req models.JobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	job, err := h.pipelineService.SetJobStatus(jobID, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"job":     job,
	})
}
