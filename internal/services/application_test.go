package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/repositories"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		jobStatus models.JobStatus
		wantErr   error
	}{
		{"open job accepts applications", models.JobStatusOpen, nil},
		{"closed job refuses applications", models.JobStatusClosed, errs.ErrPreconditionFailed},
		{"draft job refuses applications", models.JobStatusDraft, errs.ErrPreconditionFailed},
		{"paused job refuses applications", models.JobStatusPaused, errs.ErrPreconditionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &models.Job{ID: uuid.New(), Title: "QA Engineer", Status: tt.jobStatus}
			jobRepo := newFakeJobRepo(job)
			appRepo := newFakeApplicationRepo()

			svc := NewApplicationService(appRepo, jobRepo)

			app, err := svc.Apply(job.ID, uuid.New())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.ApplicationPending, app.Status)
			assert.Equal(t, job.ID, app.JobID)
		})
	}
}

func TestApplyMissingJob(t *testing.T) {
	svc := NewApplicationService(newFakeApplicationRepo(), newFakeJobRepo())

	_, err := svc.Apply(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestApplyDuplicate(t *testing.T) {
	job := &models.Job{ID: uuid.New(), Title: "QA Engineer", Status: models.JobStatusOpen}
	jobRepo := newFakeJobRepo(job)
	appRepo := newFakeApplicationRepo()

	svc := NewApplicationService(appRepo, jobRepo)

	userID := uuid.New()
	_, err := svc.Apply(job.ID, userID)
	require.NoError(t, err)

	_, err = svc.Apply(job.ID, userID)
	assert.ErrorIs(t, err, errs.ErrDuplicateApplication)
	assert.ErrorIs(t, err, errs.ErrConflict)

	// The same user can still apply to a different job.
	other := &models.Job{ID: uuid.New(), Title: "SRE", Status: models.JobStatusOpen}
	jobRepo.jobs[other.ID] = other
	_, err = svc.Apply(other.ID, userID)
	assert.NoError(t, err)
}

func TestSetApplicationStatus(t *testing.T) {
	app := &models.Application{ID: uuid.New(), JobID: uuid.New(), UserID: uuid.New(), Status: models.ApplicationPending}
	svc := NewApplicationService(newFakeApplicationRepo(app), newFakeJobRepo())

	selected := models.ApplicationSelected
	review := "Strong throughout the pipeline."

	updated, err := svc.SetStatus(app.ID, &models.UpdateApplicationRequest{
		Status:        &selected,
		GeneralReview: &review,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationSelected, updated.Status)
	require.NotNil(t, updated.GeneralReview)
	assert.Equal(t, review, *updated.GeneralReview)
}

func TestSetApplicationStatusValidation(t *testing.T) {
	app := &models.Application{ID: uuid.New(), Status: models.ApplicationPending}
	svc := NewApplicationService(newFakeApplicationRepo(app), newFakeJobRepo())

	bogus := models.ApplicationStatus("shortlisted")
	_, err := svc.SetStatus(app.ID, &models.UpdateApplicationRequest{Status: &bogus})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.SetStatus(app.ID, &models.UpdateApplicationRequest{})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestListApplicationsFilter(t *testing.T) {
	jobID := uuid.New()
	userID := uuid.New()
	appRepo := newFakeApplicationRepo(
		&models.Application{ID: uuid.New(), JobID: jobID, UserID: userID, Status: models.ApplicationPending},
		&models.Application{ID: uuid.New(), JobID: jobID, UserID: uuid.New(), Status: models.ApplicationRejected},
		&models.Application{ID: uuid.New(), JobID: uuid.New(), UserID: userID, Status: models.ApplicationPending},
	)

	svc := NewApplicationService(appRepo, newFakeJobRepo())

	byJob, err := svc.List(repositories.ApplicationFilter{JobID: &jobID})
	require.NoError(t, err)
	assert.Len(t, byJob, 2)

	pending := models.ApplicationPending
	byJobAndStatus, err := svc.List(repositories.ApplicationFilter{JobID: &jobID, Status: &pending})
	require.NoError(t, err)
	assert.Len(t, byJobAndStatus, 1)
}
