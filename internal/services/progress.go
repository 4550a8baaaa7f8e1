package services

import (
	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/repositories"
)

// ProgressService is the single source of truth for step outcomes. All
// scoring engines persist through Upsert so the at-most-once-per-step rule
// lives in exactly one place.
type ProgressService interface {
	Upsert(applicationID, userID, stepID uuid.UUID, patch repositories.ProgressPatch) (*models.ApplicationProgress, error)
	SetDecision(applicationID, progressID uuid.UUID, status models.ProgressStatus) (*models.ApplicationProgress, error)
	ListForApplication(applicationID uuid.UUID) ([]models.ApplicationProgress, error)
	HasProgress(applicationID, stepID uuid.UUID) (bool, error)
}

type progressService struct {
	progressRepo repositories.ProgressRepository
}

func NewProgressService(progressRepo repositories.ProgressRepository) ProgressService {
	return &progressService{progressRepo: progressRepo}
}

// Upsert implements ProgressService.
func (s *progressService) Upsert(applicationID, userID, stepID uuid.UUID, patch repositories.ProgressPatch) (*models.ApplicationProgress, error) {
	return s.progressRepo.Upsert(applicationID, userID, stepID, patch)
}

// SetDecision implements ProgressService. The admin decision overwrites the
// engine's verdict in the status field; the numeric score is untouched.
func (s *progressService) SetDecision(applicationID, progressID uuid.UUID, status models.ProgressStatus) (*models.ApplicationProgress, error) {
	if status != models.ProgressAccepted && status != models.ProgressRejected {
		return nil, errs.Validationf("decision must be %q or %q", models.ProgressAccepted, models.ProgressRejected)
	}

	progress, err := s.progressRepo.FindByID(progressID)
	if err != nil {
		return nil, err
	}
	if progress.ApplicationID != applicationID {
		return nil, errs.NotFoundf("progress %s does not belong to application %s", progressID, applicationID)
	}

	return s.progressRepo.Update(progressID, map[string]interface{}{"status": status})
}

// ListForApplication implements ProgressService.
func (s *progressService) ListForApplication(applicationID uuid.UUID) ([]models.ApplicationProgress, error) {
	return s.progressRepo.ListByApplication(applicationID)
}

// HasProgress implements ProgressService.
func (s *progressService) HasProgress(applicationID, stepID uuid.UUID) (bool, error) {
	existing, err := s.progressRepo.FindByApplicationAndStep(applicationID, stepID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}
