package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/models"
)

// ProgressPatch carries the scored fields of an upsert. Nil fields are left
// untouched on update.
type ProgressPatch struct {
	Status *models.ProgressStatus
	Score  *float64
	Review *string
}

type ProgressRepository interface {
	FindByID(id uuid.UUID) (*models.ApplicationProgress, error)
	// FindByApplicationAndStep returns (nil, nil) when no record exists for
	// the natural key.
	FindByApplicationAndStep(applicationID, stepID uuid.UUID) (*models.ApplicationProgress, error)
	// Upsert writes by (application_id, step_id): update in place when a
	// record exists, insert otherwise. A racing insert that trips the unique
	// index is retried as an update, so concurrent submissions settle on
	// last-writer-wins with exactly one row.
	Upsert(applicationID, userID, stepID uuid.UUID, patch ProgressPatch) (*models.ApplicationProgress, error)
	ListByApplication(applicationID uuid.UUID) ([]models.ApplicationProgress, error)
	CountByStep(stepID uuid.UUID) (int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*models.ApplicationProgress, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// FindByID implements ProgressRepository.
func (r *progressRepository) FindByID(id uuid.UUID) (*models.ApplicationProgress, error) {
	var progress models.ApplicationProgress
	err := r.db.
		Preload("RecruitmentStep").
		Where("id = ?", id).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("progress %s", id)
		}
		return nil, fmt.Errorf("failed to find progress: %w", err)
	}
	return &progress, nil
}

// FindByApplicationAndStep implements ProgressRepository.
func (r *progressRepository) FindByApplicationAndStep(applicationID, stepID uuid.UUID) (*models.ApplicationProgress, error) {
	var progress models.ApplicationProgress
	err := r.db.
		Where("application_id = ? AND step_id = ?", applicationID, stepID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find progress: %w", err)
	}
	return &progress, nil
}

// Upsert implements ProgressRepository.
func (r *progressRepository) Upsert(applicationID, userID, stepID uuid.UUID, patch ProgressPatch) (*models.ApplicationProgress, error) {
	existing, err := r.FindByApplicationAndStep(applicationID, stepID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		progress := &models.ApplicationProgress{
			ID:            uuid.New(),
			ApplicationID: applicationID,
			UserID:        userID,
			StepID:        stepID,
			Status:        models.ProgressPending,
			Score:         patch.Score,
			Review:        patch.Review,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		if patch.Status != nil {
			progress.Status = *patch.Status
		}

		err := r.db.Create(progress).Error
		if err == nil {
			return r.FindByID(progress.ID)
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create progress: %w", err)
		}
		// Lost the insert race; fall through to an update of the winner's row.
		existing, err = r.FindByApplicationAndStep(applicationID, stepID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("progress row vanished after duplicate-key conflict")
		}
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Score != nil {
		updates["score"] = *patch.Score
	}
	if patch.Review != nil {
		updates["review"] = *patch.Review
	}

	return r.Update(existing.ID, updates)
}

// ListByApplication implements ProgressRepository.
func (r *progressRepository) ListByApplication(applicationID uuid.UUID) ([]models.ApplicationProgress, error) {
	var records []models.ApplicationProgress
	err := r.db.
		Preload("RecruitmentStep").
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return records, nil
}

// CountByStep implements ProgressRepository.
func (r *progressRepository) CountByStep(stepID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.ApplicationProgress{}).
		Where("step_id = ?", stepID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count progress for step: %w", err)
	}
	return count, nil
}

// Update implements ProgressRepository.
func (r *progressRepository) Update(id uuid.UUID, updates map[string]interface{}) (*models.ApplicationProgress, error) {
	result := r.db.Model(&models.ApplicationProgress{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NotFoundf("progress %s", id)
	}
	return r.FindByID(id)
}
