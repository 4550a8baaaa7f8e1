package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/models"
)

type StepRepository interface {
	Create(step *models.RecruitmentStep) error
	FindByID(id uuid.UUID) (*models.RecruitmentStep, error)
	// FindByJob returns the job's steps stably sorted by step_order.
	// Duplicate or non-contiguous orders are tolerated.
	FindByJob(jobID uuid.UUID) ([]models.RecruitmentStep, error)
	CountByJob(jobID uuid.UUID) (int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*models.RecruitmentStep, error)
	Delete(id, jobID uuid.UUID) error
}

type stepRepository struct {
	db *gorm.DB
}

func NewStepRepository(db *gorm.DB) StepRepository {
	return &stepRepository{db: db}
}

// Create implements StepRepository.
func (r *stepRepository) Create(step *models.RecruitmentStep) error {
	if err := r.db.Create(step).Error; err != nil {
		return fmt.Errorf("failed to create recruitment step: %w", err)
	}
	return nil
}

// FindByID implements StepRepository.
func (r *stepRepository) FindByID(id uuid.UUID) (*models.RecruitmentStep, error) {
	var step models.RecruitmentStep
	if err := r.db.Where("id = ?", id).First(&step).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("recruitment step %s", id)
		}
		return nil, fmt.Errorf("failed to find recruitment step: %w", err)
	}
	return &step, nil
}

// FindByJob implements StepRepository.
func (r *stepRepository) FindByJob(jobID uuid.UUID) ([]models.RecruitmentStep, error) {
	var steps []models.RecruitmentStep
	err := r.db.
		Where("job_id = ?", jobID).
		Order("step_order ASC").
		Order("created_at ASC").
		Find(&steps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recruitment steps: %w", err)
	}
	return steps, nil
}

// CountByJob implements StepRepository.
func (r *stepRepository) CountByJob(jobID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.RecruitmentStep{}).
		Where("job_id = ?", jobID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count recruitment steps: %w", err)
	}
	return count, nil
}

// Update implements StepRepository.
func (r *stepRepository) Update(id uuid.UUID, updates map[string]interface{}) (*models.RecruitmentStep, error) {
	result := r.db.Model(&models.RecruitmentStep{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update recruitment step: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NotFoundf("recruitment step %s", id)
	}

	var step models.RecruitmentStep
	if err := r.db.Where("id = ?", id).First(&step).Error; err != nil {
		return nil, fmt.Errorf("failed to reload recruitment step: %w", err)
	}
	return &step, nil
}

// Delete implements StepRepository.
func (r *stepRepository) Delete(id, jobID uuid.UUID) error {
	result := r.db.
		Where("id = ? AND job_id = ?", id, jobID).
		Delete(&models.RecruitmentStep{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete recruitment step: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("recruitment step %s", id)
	}
	return nil
}
