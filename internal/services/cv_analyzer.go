package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/errs"
	"talentflow/recruitment-api/internal/models"
	"talentflow/recruitment-api/internal/repositories"
)

// CVAnalysisResult is the structured verdict demanded from the model.
type CVAnalysisResult struct {
	Score          float64  `json:"score"`
	Status         string   `json:"status"`
	Review         string   `json:"review"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Recommendation string   `json:"recommendation"`
}

// CVAnalysis bundles the model's verdict with the persisted progress row.
type CVAnalysis struct {
	Analysis *CVAnalysisResult           `json:"analysis"`
	Progress *models.ApplicationProgress `json:"progress"`
}

// CVAnalyzerService scores an extracted CV against the job posting and
// persists the outcome through the progress tracker. Resubmission overwrites
// the prior row via the upsert's natural key.
type CVAnalyzerService interface {
	AnalyzeCV(ctx context.Context, applicationID, stepID uuid.UUID, cvText string) (*CVAnalysis, error)
}

type cvAnalyzerService struct {
	appRepo         repositories.ApplicationRepository
	progressService ProgressService
	geminiService   GeminiService
	qdrantService   QdrantService
	promptBuilder   *PromptBuilder
}

func NewCVAnalyzerService(
	appRepo repositories.ApplicationRepository,
	progressService ProgressService,
	geminiService GeminiService,
	qdrantService QdrantService,
) CVAnalyzerService {
	return &cvAnalyzerService{
		appRepo:         appRepo,
		progressService: progressService,
		geminiService:   geminiService,
		qdrantService:   qdrantService,
		promptBuilder:   NewPromptBuilder(),
	}
}

// AnalyzeCV implements CVAnalyzerService.
func (s *cvAnalyzerService) AnalyzeCV(ctx context.Context, applicationID, stepID uuid.UUID, cvText string) (*CVAnalysis, error) {
	if strings.TrimSpace(cvText) == "" {
		return nil, errs.ErrEmptyDocument
	}

	application, err := s.appRepo.FindForScoring(applicationID)
	if err != nil {
		return nil, err
	}

	job := application.Job
	if job == nil {
		return nil, errs.NotFoundf("job for application %s", applicationID)
	}
	if findStep(job.RecruitmentSteps, stepID) == nil {
		return nil, errs.NotFoundf("recruitment step %s on job %s", stepID, job.ID)
	}

	// Requirement context retrieval is best-effort; analysis proceeds
	// without it when the index is unreachable.
	requirementContext := s.retrieveContext(ctx, job.ID, cvText)

	log.Printf("🤖 Analyzing CV for application %s, step %s\n", applicationID, stepID)
	response, err := s.geminiService.GenerateText(
		ctx,
		s.promptBuilder.BuildCVAnalysisSystemPrompt(),
		s.promptBuilder.BuildCVAnalysisUserPrompt(job, requirementContext, CleanText(cvText)),
		0.3,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CV analysis: %w", err)
	}

	var result CVAnalysisResult
	if err := parseStructuredResponse(response, &result); err != nil {
		return nil, err
	}
	if err := validateCVResult(&result); err != nil {
		return nil, err
	}

	// The band table is authoritative: re-derive the verdict from the score
	// so a model that contradicts its own rubric cannot leak through.
	verdict := verdictForScore(result.Score)
	result.Status = string(verdict)

	progress, err := s.progressService.Upsert(applicationID, application.UserID, stepID, repositories.ProgressPatch{
		Status: &verdict,
		Score:  &result.Score,
		Review: &result.Review,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save CV analysis: %w", err)
	}

	log.Printf("✅ CV analysis complete for application %s: score %.0f (%s)\n", applicationID, result.Score, result.Status)
	return &CVAnalysis{Analysis: &result, Progress: progress}, nil
}

func (s *cvAnalyzerService) retrieveContext(ctx context.Context, jobID uuid.UUID, cvText string) string {
	if s.qdrantService == nil {
		return ""
	}

	embedding, err := s.geminiService.GenerateEmbedding(ctx, cvText)
	if err != nil {
		log.Printf("⚠️  Failed to embed CV for context retrieval: %v\n", err)
		return ""
	}

	results, err := s.qdrantService.SearchJobContext(ctx, embedding, jobID.String(), 3)
	if err != nil {
		log.Printf("⚠️  Failed to retrieve requirement context: %v\n", err)
		return ""
	}

	var parts []string
	for _, r := range results {
		if r.Text != "" {
			parts = append(parts, r.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// verdictForScore maps the numeric score onto the rubric's bands: 60 and
// above passes, everything below is rejected.
func verdictForScore(score float64) models.ProgressStatus {
	if score >= 60 {
		return models.ProgressPassed
	}
	return models.ProgressRejected
}

func validateCVResult(result *CVAnalysisResult) error {
	if result.Score < 0 || result.Score > 100 {
		return fmt.Errorf("%w: score %.1f out of range", errs.ErrMalformedAIResponse, result.Score)
	}
	if strings.TrimSpace(result.Review) == "" {
		return fmt.Errorf("%w: empty review", errs.ErrMalformedAIResponse)
	}
	switch result.Status {
	case "passed", "rejected", "":
	default:
		return fmt.Errorf("%w: unknown status %q", errs.ErrMalformedAIResponse, result.Status)
	}
	return nil
}

// parseStructuredResponse strips markdown fences and decodes the model's
// JSON payload. Anything that fails to decode is a MalformedAIResponse.
func parseStructuredResponse(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrMalformedAIResponse, err)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}

func findStep(steps []models.RecruitmentStep, stepID uuid.UUID) *models.RecruitmentStep {
	for i := range steps {
		if steps[i].ID == stepID {
			return &steps[i]
		}
	}
	return nil
}
