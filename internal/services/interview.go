package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/repositories"
)

// InterviewAnalysisResult is the structured grade demanded from the model
// after a live interview.
type InterviewAnalysisResult struct {
	Score          float64  `json:"score"`
	Review         string   `json:"review"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Recommendation string   `json:"recommendation"`
}

// InterviewAnalysis bundles the grade with the persisted progress row.
type InterviewAnalysis struct {
	Analysis     *InterviewAnalysisResult    `json:"analysis"`
	Progress     *models.ApplicationProgress `json:"progress"`
	CallDuration int                         `json:"call_duration"`
}

// InterviewService orchestrates live interview sessions: creation with the
// duplicate-attempt guard, event-driven session state, and transcript
// grading. One scored attempt per (application, Interview step).
type InterviewService interface {
	CreateSession(ctx context.Context, applicationID, stepID uuid.UUID) (*models.CreateInterviewResponse, error)
	HandleEvent(applicationID uuid.UUID, req *models.InterviewEventRequest) (SessionState, error)
	AnalyzeTranscript(ctx context.Context, applicationID, stepID uuid.UUID, transcript string, callDurationSeconds int) (*InterviewAnalysis, error)
}

type interviewService struct {
	appRepo             repositories.ApplicationRepository
	progressService     ProgressService
	geminiService       GeminiService
	voiceService        VoiceService
	registry            *SessionRegistry
	promptBuilder       *PromptBuilder
	minTranscriptLength int
	maxDuration         time.Duration
}

func NewInterviewService(
	appRepo repositories.ApplicationRepository,
	progressService ProgressService,
	geminiService GeminiService,
	voiceService VoiceService,
	registry *SessionRegistry,
	minTranscriptLength int,
	maxDuration time.Duration,
) InterviewService {
	return &interviewService{
		appRepo:             appRepo,
		progressService:     progressService,
		geminiService:       geminiService,
		voiceService:        voiceService,
		registry:            registry,
		promptBuilder:       NewPromptBuilder(),
		minTranscriptLength: minTranscriptLength,
		maxDuration:         maxDuration,
	}
}

// CreateSession implements InterviewService. The progress existence check is
// the authoritative duplicate-attempt guard and runs before the provider is
// ever contacted: a completed step never creates an assistant.
func (s *interviewService) CreateSession(ctx context.Context, applicationID, stepID uuid.UUID) (*models.CreateInterviewResponse, error) {
	application, err := s.appRepo.FindForScoring(applicationID)
	if err != nil {
		return nil, err
	}

	job := application.Job
	if job == nil {
		return nil, errs.NotFoundf("job for application %s", applicationID)
	}

	step := findStep(job.RecruitmentSteps, stepID)
	if step == nil || step.StepType != models.StepTypeInterview {
		return nil, errs.NotFoundf("interview step %s on job %s", stepID, job.ID)
	}

	done, err := s.progressService.HasProgress(applicationID, stepID)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, errs.ErrAlreadyCompleted
	}

	applicantName := ""
	if application.Applicant != nil {
		applicantName = application.Applicant.Name
	}

	questions := ""
	if step.Content != nil {
		questions = *step.Content
	}

	company := companyName(job)
	greetName := applicantName
	if greetName == "" {
		greetName = "there"
	}

	assistantID, err := s.voiceService.CreateAssistant(ctx, &AssistantConfig{
		Name: "Nala",
		FirstMessage: fmt.Sprintf(
			"Hello %s! Welcome to your virtual interview for the %s position at %s. I'll be conducting your interview today. Are you ready to begin?",
			greetName, job.Title, company,
		),
		SystemPrompt: s.promptBuilder.BuildInterviewerSystemPrompt(job, applicantName, questions),
		EndCallPhrases: []string{
			"thank you for your time",
			"that concludes our interview",
			"we will be in touch",
			"goodbye",
		},
		EndCallMessage:     "Thank you for completing the interview! Your responses have been recorded. You'll receive your results shortly. Good luck!",
		MaxDurationSeconds: int(s.maxDuration / time.Second),
	})
	if err != nil {
		return nil, err
	}

	session := newInterviewSession(applicationID, stepID, assistantID)
	s.registry.Add(session)

	log.Printf("🎙️  Interview session %s created for application %s\n", session.ID, applicationID)
	return &models.CreateInterviewResponse{
		SessionID:   session.ID,
		AssistantID: assistantID,
		JobTitle:    job.Title,
		CompanyName: company,
	}, nil
}

// HandleEvent implements InterviewService. Event handlers only mutate local
// session state; when an event ends the call, analysis is triggered exactly
// once in the background and the provider assistant is released on every
// exit path.
func (s *interviewService) HandleEvent(applicationID uuid.UUID, req *models.InterviewEventRequest) (SessionState, error) {
	session, ok := s.registry.Get(req.SessionID)
	if !ok {
		return "", errs.NotFoundf("interview session %s", req.SessionID)
	}
	if session.ApplicationID != applicationID {
		return "", errs.NotFoundf("interview session %s for application %s", req.SessionID, applicationID)
	}

	ended := session.HandleEvent(SessionEvent{
		Type:           req.Type,
		Role:           req.Role,
		Transcript:     req.Transcript,
		TranscriptType: req.TranscriptType,
		Status:         req.Status,
		Level:          req.Level,
		Message:        req.Message,
	})

	if ended {
		go s.finishSession(session)
	}

	return session.State(), nil
}

// finishSession releases the provider assistant and fires the at-most-once
// auto analysis.
func (s *interviewService) finishSession(session *InterviewSession) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.voiceService.DeleteAssistant(ctx, session.AssistantID); err != nil {
		log.Printf("⚠️  Failed to release voice assistant %s: %v\n", session.AssistantID, err)
	}

	if !session.ClaimAnalysis() {
		return
	}

	transcript := session.FormattedTranscript()
	_, err := s.AnalyzeTranscript(ctx, session.ApplicationID, session.StepID, transcript, session.DurationSeconds())
	if err != nil {
		// Leave the session in ended so the client can retry analysis
		// manually; the upsert keeps the retry idempotent.
		session.ReleaseClaim()
		log.Printf("❌ Automatic interview analysis failed for session %s: %v\n", session.ID, err)
		return
	}

	s.registry.Remove(session.ID)
}

// AnalyzeTranscript implements InterviewService.
func (s *interviewService) AnalyzeTranscript(ctx context.Context, applicationID, stepID uuid.UUID, transcript string, callDurationSeconds int) (*InterviewAnalysis, error) {
	if len(strings.TrimSpace(transcript)) < s.minTranscriptLength {
		return nil, errs.ErrTranscriptTooShort
	}

	application, err := s.appRepo.FindForScoring(applicationID)
	if err != nil {
		return nil, err
	}

	job := application.Job
	if job == nil {
		return nil, errs.NotFoundf("job for application %s", applicationID)
	}

	questions := ""
	if step := findStep(job.RecruitmentSteps, stepID); step != nil && step.Content != nil {
		questions = *step.Content
	}

	candidateName := ""
	if application.Applicant != nil {
		candidateName = application.Applicant.Name
	}

	log.Printf("🤖 Analyzing interview transcript for application %s (%d chars, %ds)\n",
		applicationID, len(transcript), callDurationSeconds)

	response, err := s.geminiService.GenerateText(
		ctx,
		s.promptBuilder.BuildInterviewAnalysisSystemPrompt(),
		s.promptBuilder.BuildInterviewAnalysisUserPrompt(job, candidateName, questions, transcript, callDurationSeconds),
		0.3,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate interview analysis: %w", err)
	}

	var result InterviewAnalysisResult
	if err := parseStructuredResponse(response, &result); err != nil {
		return nil, err
	}
	if result.Score < 0 || result.Score > 100 {
		return nil, fmt.Errorf("%w: score %.1f out of range", errs.ErrMalformedAIResponse, result.Score)
	}
	if strings.TrimSpace(result.Review) == "" {
		return nil, fmt.Errorf("%w: empty review", errs.ErrMalformedAIResponse)
	}

	// The interview grade records score and review only; the status field is
	// left for the admin decision.
	progress, err := s.progressService.Upsert(applicationID, application.UserID, stepID, repositories.ProgressPatch{
		Score:  &result.Score,
		Review: &result.Review,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save interview analysis: %w", err)
	}

	log.Printf("✅ Interview analysis complete for application %s: score %.0f\n", applicationID, result.Score)
	return &InterviewAnalysis{
		Analysis:     &result,
		Progress:     progress,
		CallDuration: callDurationSeconds,
	}, nil
}
