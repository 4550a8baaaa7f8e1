package services

import (
	"time"

	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/repositories"
)

// ApplicationService is the ledger of applicant-to-job relationships. The
// overall status is an explicit admin decision; nothing here derives it from
// per-step progress.
type ApplicationService interface {
	Apply(jobID, userID uuid.UUID) (*models.Application, error)
	SetStatus(applicationID uuid.UUID, req *models.UpdateApplicationRequest) (*models.Application, error)
	List(filter repositories.ApplicationFilter) ([]models.Application, error)
}

type applicationService struct {
	appRepo repositories.ApplicationRepository
	jobRepo repositories.JobRepository
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
) ApplicationService {
	return &applicationService{
		appRepo: appRepo,
		jobRepo: jobRepo,
	}
}

// Apply implements ApplicationService.
func (s *applicationService) Apply(jobID, userID uuid.UUID) (*models.Application, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusOpen {
		return nil, errs.Preconditionf("job %s is not open for applications", jobID)
	}

	app := &models.Application{
		ID:        uuid.New(),
		JobID:     jobID,
		UserID:    userID,
		Status:    models.ApplicationPending,
		CreatedAt: time.Now(),
	}

	// The repository translates a (job_id, user_id) unique violation into
	// ErrDuplicateApplication, so two racing applies cannot both land.
	if err := s.appRepo.Create(app); err != nil {
		return nil, err
	}

	return s.appRepo.FindForScoring(app.ID)
}

// SetStatus implements ApplicationService.
func (s *applicationService) SetStatus(applicationID uuid.UUID, req *models.UpdateApplicationRequest) (*models.Application, error) {
	updates := map[string]interface{}{}
	if req.Status != nil {
		if !models.ValidApplicationStatus(*req.Status) {
			return nil, errs.Validationf("unknown application status %q", *req.Status)
		}
		updates["status"] = *req.Status
	}
	if req.GeneralReview != nil {
		updates["general_review"] = *req.GeneralReview
	}
	if len(updates) == 0 {
		return nil, errs.Validationf("no fields to update")
	}

	return s.appRepo.Update(applicationID, updates)
}

// List implements ApplicationService.
func (s *applicationService) List(filter repositories.ApplicationFilter) ([]models.Application, error) {
	return s.appRepo.List(filter)
}
