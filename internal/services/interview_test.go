package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/models"
)

func newInterviewFixture(t *testing.T) (*models.Application, *models.RecruitmentStep, InterviewService, *fakeVoice, *fakeProgressRepo, *SessionRegistry) {
	t.Helper()

	questions := "1. Describe a system you designed.\n2. How do you handle failure?"
	step := &models.RecruitmentStep{
		ID:        uuid.New(),
		StepType:  models.StepTypeInterview,
		StepOrder: 3,
		Content:   &questions,
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

	appRepo := newFakeApplicationRepo(app)
	progressRepo := newFakeProgressRepo()
	gemini := &fakeGemini{
		response: `{"score": 82, "review": "Clear communicator with solid system design answers.", "recommendation": "Hire"}`,
	}
	voice := &fakeVoice{assistantID: "assistant-xyz"}
	registry := NewSessionRegistry()

	svc := NewInterviewService(
		appRepo,
		NewProgressService(progressRepo),
		gemini,
		voice,
		registry,
		50,
		30*time.Minute,
	)
	return app, step, svc, voice, progressRepo, registry
}

func TestCreateSession(t *testing.T) {
	app, step, svc, voice, _, registry := newInterviewFixture(t)

	resp, err := svc.CreateSession(context.Background(), app.ID, step.ID)
	require.NoError(t, err)

	assert.Equal(t, "assistant-xyz", resp.AssistantID)
	assert.Equal(t, "Backend Engineer", resp.JobTitle)
	assert.Equal(t, "Acme Corp", resp.CompanyName)

	session, ok := registry.Get(resp.SessionID)
	require.True(t, ok)
	assert.Equal(t, app.ID, session.ApplicationID)
	assert.Equal(t, SessionConnecting, session.State())

	require.Len(t, voice.created, 1)
	cfg := voice.created[0]
	assert.Contains(t, cfg.FirstMessage, "Jordan Smith")
	assert.Contains(t, cfg.SystemPrompt, "Describe a system you designed")
	assert.Equal(t, 1800, cfg.MaxDurationSeconds)
}

func TestCreateSessionAlreadyCompleted(t *testing.T) {
	app, step, svc, voice, progressRepo, _ := newInterviewFixture(t)

	progressRepo.rows[uuid.New()] = &models.ApplicationProgress{
		ID:            uuid.New(),
		ApplicationID: app.ID,
		StepID:        step.ID,
		Status:        models.ProgressPassed,
	}

	_, err := svc.CreateSession(context.Background(), app.ID, step.ID)
	assert.ErrorIs(t, err, errs.ErrAlreadyCompleted)

	// The guard fires before the provider is contacted.
	assert.Empty(t, voice.created)
}

func TestCreateSessionWrongStepType(t *testing.T) {
	app, _, svc, _, _, _ := newInterviewFixture(t)

	// The CV review step of the same job is not an interview step.
	cvStep := models.RecruitmentStep{
		ID:        uuid.New(),
		JobID:     app.JobID,
		StepType:  models.StepTypeCVReview,
		StepOrder: 1,
	}
	app.Job.RecruitmentSteps = append(app.Job.RecruitmentSteps, cvStep)

	_, err := svc.CreateSession(context.Background(), app.ID, cvStep.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestHandleEventUnknownSession(t *testing.T) {
	app, _, svc, _, _, _ := newInterviewFixture(t)

	_, err := svc.HandleEvent(app.ID, &models.InterviewEventRequest{
		SessionID: uuid.New().String(),
		Type:      EventCallStart,
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestHandleEventWrongApplication(t *testing.T) {
	app, step, svc, _, _, _ := newInterviewFixture(t)

	resp, err := svc.CreateSession(context.Background(), app.ID, step.ID)
	require.NoError(t, err)

	_, err = svc.HandleEvent(uuid.New(), &models.InterviewEventRequest{
		SessionID: resp.SessionID,
		Type:      EventCallStart,
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestHandleEventDrivesState(t *testing.T) {
	app, step, svc, _, _, _ := newInterviewFixture(t)

	resp, err := svc.CreateSession(context.Background(), app.ID, step.ID)
	require.NoError(t, err)

	state, err := svc.HandleEvent(app.ID, &models.InterviewEventRequest{
		SessionID: resp.SessionID,
		Type:      EventCallStart,
	})
	require.NoError(t, err)
	assert.Equal(t, SessionActive, state)
}

func TestAnalyzeTranscript(t *testing.T) {
	app, step, svc, _, _, _ := newInterviewFixture(t)

	transcript := "Nala (Interviewer): Tell me about a system you designed.\n" +
		"Candidate: I designed a payment reconciliation pipeline handling two million events a day."

	analysis, err := svc.AnalyzeTranscript(context.Background(), app.ID, step.ID, transcript, 540)
	require.NoError(t, err)

	assert.Equal(t, float64(82), analysis.Analysis.Score)
	assert.Equal(t, 540, analysis.CallDuration)
	require.NotNil(t, analysis.Progress.Score)
	assert.Equal(t, float64(82), *analysis.Progress.Score)
	// The grade records score and review; the decision stays with the admin.
	assert.Equal(t, models.ProgressPending, analysis.Progress.Status)
}

func TestAnalyzeTranscriptTooShort(t *testing.T) {
	app, step, svc, _, progressRepo, _ := newInterviewFixture(t)

	tests := []struct {
		name       string
		transcript string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t  "},
		{"below threshold", "Hello? Can you hear me?"},
		{"padded below threshold", "   " + strings.Repeat("a", 40) + "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AnalyzeTranscript(context.Background(), app.ID, step.ID, tt.transcript, 30)
			assert.ErrorIs(t, err, errs.ErrTranscriptTooShort)
		})
	}

	// Nothing was persisted for any refused transcript.
	rows, err := progressRepo.ListByApplication(app.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAnalyzeTranscriptRetryOverwrites(t *testing.T) {
	app, step, svc, _, progressRepo, _ := newInterviewFixture(t)

	transcript := "Nala (Interviewer): How do you handle failure?\n" +
		"Candidate: Retries with exponential backoff and dead-letter queues for poison messages."

	first, err := svc.AnalyzeTranscript(context.Background(), app.ID, step.ID, transcript, 300)
	require.NoError(t, err)

	second, err := svc.AnalyzeTranscript(context.Background(), app.ID, step.ID, transcript, 300)
	require.NoError(t, err)

	assert.Equal(t, first.Progress.ID, second.Progress.ID)
	rows, err := progressRepo.ListByApplication(app.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
