package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/models"
)

// ApplicationFilter narrows List. Zero-value fields are ignored.
type ApplicationFilter struct {
	JobID  *uuid.UUID
	UserID *uuid.UUID
	Status *models.ApplicationStatus
}

type ApplicationRepository interface {
	// Create inserts the application; a (job_id, user_id) unique-index
	// violation is returned as ErrDuplicateApplication.
	Create(app *models.Application) error
	FindByID(id uuid.UUID) (*models.Application, error)
	// FindForScoring loads the application with its job, company, steps, and
	// applicant, the context every scoring engine needs.
	FindForScoring(id uuid.UUID) (*models.Application, error)
	List(filter ApplicationFilter) ([]models.Application, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*models.Application, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create implements ApplicationRepository.
func (r *applicationRepository) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrDuplicateApplication
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// FindByID implements ApplicationRepository.
func (r *applicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("application %s", id)
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

// FindForScoring implements ApplicationRepository.
func (r *applicationRepository) FindForScoring(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := r.db.
		Preload("Applicant").
		Preload("Job.Company").
		Preload("Job.RecruitmentSteps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("application %s", id)
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

// List implements ApplicationRepository.
func (r *applicationRepository) List(filter ApplicationFilter) ([]models.Application, error) {
	query := r.db.
		Preload("Job.Company").
		Preload("Applicant").
		Preload("Progress.RecruitmentStep")

	if filter.JobID != nil {
		query = query.Where("job_id = ?", *filter.JobID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var apps []models.Application
	if err := query.Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// Update implements ApplicationRepository.
func (r *applicationRepository) Update(id uuid.UUID, updates map[string]interface{}) (*models.Application, error) {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update application: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NotFoundf("application %s", id)
	}

	var app models.Application
	err := r.db.
		Preload("Job.Company").
		Preload("Applicant").
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload application: %w", err)
	}
	return &app, nil
}
