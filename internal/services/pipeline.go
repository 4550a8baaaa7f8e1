package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/repositories"
)

// PipelineService owns a job's ordered recruitment steps and the open/close
// gate. Deleting an in-use step is always blocked; editing one is blocked
// only in strict mode.
type PipelineService interface {
	AddStep(jobID uuid.UUID, req *models.CreateStepRequest) (*models.RecruitmentStep, error)
	GetStep(jobID, stepID uuid.UUID) (*models.RecruitmentStep, error)
	UpdateStep(jobID, stepID uuid.UUID, req *models.UpdateStepRequest) (*models.RecruitmentStep, error)
	DeleteStep(jobID, stepID uuid.UUID) error
	ListSteps(jobID uuid.UUID) ([]models.RecruitmentStep, error)
	SetJobStatus(jobID uuid.UUID, status models.JobStatus) (*models.Job, error)
}

type pipelineService struct {
	jobRepo      repositories.JobRepository
	stepRepo     repositories.StepRepository
	progressRepo repositories.ProgressRepository
	strictEdits  bool
}

func NewPipelineService(
	jobRepo repositories.JobRepository,
	stepRepo repositories.StepRepository,
	progressRepo repositories.ProgressRepository,
	strictEdits bool,
) PipelineService {
	return &pipelineService{
		jobRepo:      jobRepo,
		stepRepo:     stepRepo,
		progressRepo: progressRepo,
		strictEdits:  strictEdits,
	}
}

// AddStep implements PipelineService.
func (s *pipelineService) AddStep(jobID uuid.UUID, req *models.CreateStepRequest) (*models.RecruitmentStep, error) {
	if !models.ValidStepType(req.StepType) {
		return nil, errs.Validationf("unknown step type %q", req.StepType)
	}
	if req.StepOrder <= 0 {
		return nil, errs.Validationf("step_order must be a positive integer")
	}

	if _, err := s.jobRepo.FindByID(jobID); err != nil {
		return nil, err
	}

	releaseResults := false
	if req.ReleaseResults != nil {
		releaseResults = *req.ReleaseResults
	}

	step := &models.RecruitmentStep{
		ID:             uuid.New(),
		JobID:          jobID,
		StepType:       req.StepType,
		StepOrder:      req.StepOrder,
		Starts:         req.Starts,
		Ends:           req.Ends,
		ReleaseResults: releaseResults,
		Content:        req.Content,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.stepRepo.Create(step); err != nil {
		return nil, err
	}
	return step, nil
}

// GetStep implements PipelineService.
func (s *pipelineService) GetStep(jobID, stepID uuid.UUID) (*models.RecruitmentStep, error) {
	step, err := s.stepRepo.FindByID(stepID)
	if err != nil {
		return nil, err
	}
	if step.JobID != jobID {
		return nil, errs.NotFoundf("recruitment step %s on job %s", stepID, jobID)
	}
	return step, nil
}

// UpdateStep implements PipelineService.
func (s *pipelineService) UpdateStep(jobID, stepID uuid.UUID, req *models.UpdateStepRequest) (*models.RecruitmentStep, error) {
	if _, err := s.GetStep(jobID, stepID); err != nil {
		return nil, err
	}

	if s.strictEdits {
		inUse, err := s.stepInUse(stepID)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, errs.ErrStepInUse
		}
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.StepType != nil {
		if !models.ValidStepType(*req.StepType) {
			return nil, errs.Validationf("unknown step type %q", *req.StepType)
		}
		updates["step_type"] = *req.StepType
	}
	if req.StepOrder != nil {
		if *req.StepOrder <= 0 {
			return nil, errs.Validationf("step_order must be a positive integer")
		}
		updates["step_order"] = *req.StepOrder
	}
	if req.Starts != nil {
		updates["starts"] = *req.Starts
	}
	if req.Ends != nil {
		updates["ends"] = *req.Ends
	}
	if req.ReleaseResults != nil {
		updates["release_results"] = *req.ReleaseResults
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}

	return s.stepRepo.Update(stepID, updates)
}

// DeleteStep implements PipelineService.
func (s *pipelineService) DeleteStep(jobID, stepID uuid.UUID) error {
	inUse, err := s.stepInUse(stepID)
	if err != nil {
		return err
	}
	if inUse {
		return errs.ErrStepInUse
	}

	return s.stepRepo.Delete(stepID, jobID)
}

// ListSteps implements PipelineService.
func (s *pipelineService) ListSteps(jobID uuid.UUID) ([]models.RecruitmentStep, error) {
	return s.stepRepo.FindByJob(jobID)
}

// SetJobStatus implements PipelineService.
func (s *pipelineService) SetJobStatus(jobID uuid.UUID, status models.JobStatus) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	switch status {
	case models.JobStatusOpen:
		if job.Status != models.JobStatusClosed {
			return nil, errs.Preconditionf("job can only be opened from closed status (current: %s)", job.Status)
		}
		count, err := s.stepRepo.CountByJob(jobID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, errs.Preconditionf("job needs at least one recruitment step before it can be opened")
		}
		return s.jobRepo.Update(jobID, map[string]interface{}{
			"status":      models.JobStatusOpen,
			"date_closed": nil,
		})
	case models.JobStatusClosed:
		if job.Status != models.JobStatusOpen {
			return nil, errs.Preconditionf("job can only be closed from open status (current: %s)", job.Status)
		}
		return s.jobRepo.Update(jobID, map[string]interface{}{
			"status":      models.JobStatusClosed,
			"date_closed": time.Now(),
		})
	default:
		return nil, errs.Validationf("unsupported status transition to %q", status)
	}
}

func (s *pipelineService) stepInUse(stepID uuid.UUID) (bool, error) {
	count, err := s.progressRepo.CountByStep(stepID)
	if err != nil {
		return false, fmt.Errorf("failed to check step usage: %w", err)
	}
	return count > 0, nil
}
