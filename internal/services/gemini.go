package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"talentflow/recruitment-api/internal/errs"
)

// GeminiService is the text-generation collaborator: CV analysis, interview
// transcript grading, assessment content generation, and embeddings for the
// job-requirement index.
type GeminiService interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(apiKey string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  "gemini-2.5-flash",
		embedModel: "text-embedding-004",
	}, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(userPrompt), config)
	if err != nil {
		return "", errs.Upstreamf("failed to generate text: %v", err)
	}

	if resp == nil {
		return "", errs.Upstreamf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", errs.Upstreamf("no text content in response")
	}

	return text, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, errs.Upstreamf("failed to generate embedding: %v", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, errs.Upstreamf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
