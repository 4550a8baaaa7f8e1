package services

import (
	"context"
	"fmt"
	"strings"

	"talentflow/recruitment-api/internal/errs"
)

// AssessmentKind distinguishes the two generated content families.
type AssessmentKind string

const (
	AssessmentAptitude  AssessmentKind = "aptitude"
	AssessmentInterview AssessmentKind = "interview"
)

// AssessmentService generates reusable step content: 8 aptitude questions or
// 10 interview questions for a role. It is a pure transform — nothing is
// persisted here. The admin previews the text and saves it onto the step
// explicitly, so regeneration never silently overwrites stored content.
type AssessmentService interface {
	Generate(ctx context.Context, kind AssessmentKind, subType, companyName, role, roleDetails string) (string, error)
}

type assessmentService struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
}

func NewAssessmentService(geminiService GeminiService) AssessmentService {
	return &assessmentService{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
	}
}

// Generate implements AssessmentService.
func (s *assessmentService) Generate(ctx context.Context, kind AssessmentKind, subType, companyName, role, roleDetails string) (string, error) {
	if companyName == "" || role == "" || roleDetails == "" {
		return "", errs.Validationf("company_name, role, and role_details are required")
	}

	var prompt string
	switch kind {
	case AssessmentAptitude:
		prompt = s.promptBuilder.BuildAptitudePrompt(subType, companyName, role, roleDetails)
	case AssessmentInterview:
		prompt = s.promptBuilder.BuildInterviewQuestionsPrompt(subType, companyName, role, roleDetails)
	default:
		return "", errs.Validationf("unknown assessment kind %q", kind)
	}

	content, err := s.geminiService.GenerateText(ctx, "", prompt, 0.7)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s content: %w", kind, err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", errs.Upstreamf("model returned empty %s content", kind)
	}

	return content, nil
}
