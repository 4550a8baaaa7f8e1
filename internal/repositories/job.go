package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/models"
)

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id uuid.UUID) (*models.Job, error)
	// FindFull loads the job with its company, ordered steps, and every
	// application joined with applicant and progress-with-step. This is the
	// admin review read contract.
	FindFull(id uuid.UUID) (*models.Job, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*models.Job, error)
	// ListWithRequirements returns every job that carries requirement text,
	// for backfilling the requirement index.
	ListWithRequirements() ([]models.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository.
func (r *jobRepository) Create(job *models.Job) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("job %s", id)
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

// FindFull implements JobRepository.
func (r *jobRepository) FindFull(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := r.db.
		Preload("Company").
		Preload("RecruitmentSteps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		Preload("Applications.Applicant").
		Preload("Applications.Progress.RecruitmentStep").
		Where("id = ?", id).
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("job %s", id)
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

// ListWithRequirements implements JobRepository.
func (r *jobRepository) ListWithRequirements() ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("requirements IS NOT NULL AND requirements <> ''").
		Order("date_posted ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs with requirements: %w", err)
	}
	return jobs, nil
}

// Update implements JobRepository.
func (r *jobRepository) Update(id uuid.UUID, updates map[string]interface{}) (*models.Job, error) {
	result := r.db.Model(&models.Job{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NotFoundf("job %s", id)
	}

	var job models.Job
	if err := r.db.Preload("Company").Where("id = ?", id).First(&job).Error; err != nil {
		return nil, fmt.Errorf("failed to reload job: %w", err)
	}
	return &job, nil
}
