package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/models"
)

func newScoringFixture(t *testing.T) (*models.Application, *models.RecruitmentStep, *fakeApplicationRepo, *fakeProgressRepo) {
	t.Helper()

	step := &models.RecruitmentStep{
		ID:        uuid.New(),
		StepType:  models.StepTypeCVReview,
		StepOrder: 1,
	}
	job := &models.Job{
		ID:     uuid.New(),
		Title:  "Backend Engineer",
		Status: models.JobStatusOpen,
		Company: &models.Company{
			ID:   uuid.New(),
			Name: "Acme Corp",
		},
		RecruitmentSteps: []models.RecruitmentStep{*step},
	}
	step.JobID = job.ID

	app := &models.Application{
		ID:     uuid.New(),
		JobID:  job.ID,
		UserID: uuid.New(),
		Status: models.ApplicationPending,
		Job:    job,
		Applicant: &models.User{
			ID:   uuid.New(),
			Name: "Jordan Smith",
		},
	}

	return app, step, newFakeApplicationRepo(app), newFakeProgressRepo()
}

func TestAnalyzeCVScoreBands(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		wantStatus models.ProgressStatus
	}{
		{"excellent match", 85, models.ProgressPassed},
		{"band boundary passes", 60, models.ProgressPassed},
		{"just below boundary rejects", 59, models.ProgressRejected},
		{"partial match rejects", 50, models.ProgressRejected},
		{"poor match rejects", 39, models.ProgressRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, step, appRepo, progressRepo := newScoringFixture(t)
			gemini := &fakeGemini{
				response: fmt.Sprintf(`{"score": %.0f, "review": "Solid backend experience.", "strengths": ["Go"], "weaknesses": [], "recommendation": "Proceed"}`, tt.score),
			}

			svc := NewCVAnalyzerService(appRepo, NewProgressService(progressRepo), gemini, &fakeQdrant{})

			result, err := svc.AnalyzeCV(context.Background(), app.ID, step.ID, "Ten years of Go and Postgres.")
			require.NoError(t, err)

			assert.Equal(t, string(tt.wantStatus), result.Analysis.Status)
			assert.Equal(t, tt.wantStatus, result.Progress.Status)
			require.NotNil(t, result.Progress.Score)
			assert.Equal(t, tt.score, *result.Progress.Score)
			require.NotNil(t, result.Progress.Review)
			assert.NotEmpty(t, *result.Progress.Review)
		})
	}
}

func TestAnalyzeCVOverridesContradictoryStatus(t *testing.T) {
	app, step, appRepo, progressRepo := newScoringFixture(t)
	// Score and status disagree; the score band wins.
	gemini := &fakeGemini{
		response: `{"score": 85, "status": "rejected", "review": "Strong candidate.", "recommendation": "Proceed"}`,
	}

	svc := NewCVAnalyzerService(appRepo, NewProgressService(progressRepo), gemini, &fakeQdrant{})

	result, err := svc.AnalyzeCV(context.Background(), app.ID, step.ID, "Experienced engineer.")
	require.NoError(t, err)
	assert.Equal(t, models.ProgressPassed, result.Progress.Status)
}

func TestAnalyzeCVResubmissionOverwrites(t *testing.T) {
	app, step, appRepo, progressRepo := newScoringFixture(t)
	gemini := &fakeGemini{
		response: `{"score": 45, "review": "Missing required experience.", "recommendation": "Reject"}`,
	}

	svc := NewCVAnalyzerService(appRepo, NewProgressService(progressRepo), gemini, &fakeQdrant{})

	first, err := svc.AnalyzeCV(context.Background(), app.ID, step.ID, "Junior profile.")
	require.NoError(t, err)
	assert.Equal(t, models.ProgressRejected, first.Progress.Status)

	gemini.response = `{"score": 78, "review": "Updated CV shows relevant experience.", "recommendation": "Proceed"}`

	second, err := svc.AnalyzeCV(context.Background(), app.ID, step.ID, "Updated profile with five years of Go.")
	require.NoError(t, err)
	assert.Equal(t, models.ProgressPassed, second.Progress.Status)

	// Still one row per (application, step).
	assert.Equal(t, first.Progress.ID, second.Progress.ID)
	rows, err := progressRepo.ListByApplication(app.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAnalyzeCVFailures(t *testing.T) {
	tests := []struct {
		name     string
		cvText   string
		response string
		wantErr  error
	}{
		{
			name:    "empty CV text",
			cvText:  "   ",
			wantErr: errs.ErrEmptyDocument,
		},
		{
			name:     "non-JSON model output",
			cvText:   "Valid CV text.",
			response: "I am unable to score this CV.",
			wantErr:  errs.ErrMalformedAIResponse,
		},
		{
			name:     "score out of range",
			cvText:   "Valid CV text.",
			response: `{"score": 140, "review": "Great."}`,
			wantErr:  errs.ErrMalformedAIResponse,
		},
		{
			name:     "missing review",
			cvText:   "Valid CV text.",
			response: `{"score": 70, "review": ""}`,
			wantErr:  errs.ErrMalformedAIResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, step, appRepo, progressRepo := newScoringFixture(t)
			gemini := &fakeGemini{response: tt.response}

			svc := NewCVAnalyzerService(appRepo, NewProgressService(progressRepo), gemini, &fakeQdrant{})

			_, err := svc.AnalyzeCV(context.Background(), app.ID, step.ID, tt.cvText)
			assert.ErrorIs(t, err, tt.wantErr)

			// A failed analysis must not write progress.
			rows, listErr := progressRepo.ListByApplication(app.ID)
			require.NoError(t, listErr)
			assert.Empty(t, rows)
		})
	}
}

func TestAnalyzeCVUnknownStep(t *testing.T) {
	app, _, appRepo, progressRepo := newScoringFixture(t)
	gemini := &fakeGemini{response: `{"score": 70, "review": "Fine."}`}

	svc := NewCVAnalyzerService(appRepo, NewProgressService(progressRepo), gemini, &fakeQdrant{})

	_, err := svc.AnalyzeCV(context.Background(), app.ID, uuid.New(), "Valid CV text.")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAnalyzeCVSurvivesIndexOutage(t *testing.T) {
	app, step, appRepo, progressRepo := newScoringFixture(t)
	gemini := &fakeGemini{response: `{"score": 72, "review": "Good fit."}`}
	qdrant := &fakeQdrant{err: fmt.Errorf("connection refused")}

	svc := NewCVAnalyzerService(appRepo, NewProgressService(progressRepo), gemini, qdrant)

	result, err := svc.AnalyzeCV(context.Background(), app.ID, step.ID, "Valid CV text.")
	require.NoError(t, err)
	assert.Equal(t, models.ProgressPassed, result.Progress.Status)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fenced json",
			input: "```json\n{\"score\": 80}\n```",
			want:  `{"score": 80}`,
		},
		{
			name:  "json with prose around it",
			input: "Here is my analysis: {\"score\": 80} Hope this helps!",
			want:  `{"score": 80}`,
		},
		{
			name:  "bare json",
			input: `{"score": 80}`,
			want:  `{"score": 80}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, extractJSON(tt.input))
		})
	}
}
