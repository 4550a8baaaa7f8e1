package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"talentflow/recruitment-api/internal/errs"
)

// AssistantConfig describes the voice interviewer registered with the
// speech provider for one session.
type AssistantConfig struct {
	Name               string
	FirstMessage       string
	SystemPrompt       string
	EndCallPhrases     []string
	EndCallMessage     string
	MaxDurationSeconds int
}

// VoiceService talks to the live voice-session provider (Vapi-compatible
// REST API). The client SDK drives the call itself; the server only
// registers and tears down assistants.
type VoiceService interface {
	CreateAssistant(ctx context.Context, cfg *AssistantConfig) (string, error)
	DeleteAssistant(ctx context.Context, assistantID string) error
}

type voiceService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewVoiceService(apiKey, baseURL string) VoiceService {
	return &voiceService{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type assistantPayload struct {
	Name           string           `json:"name"`
	FirstMessage   string           `json:"firstMessage"`
	EndCallPhrases []string         `json:"endCallPhrases,omitempty"`
	EndCallMessage string           `json:"endCallMessage,omitempty"`
	MaxDuration    int              `json:"maxDurationSeconds,omitempty"`
	Model          assistantModel   `json:"model"`
	Voice          assistantVoice   `json:"voice"`
}

type assistantModel struct {
	Provider string             `json:"provider"`
	Model    string             `json:"model"`
	Messages []assistantMessage `json:"messages"`
}

type assistantMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type assistantVoice struct {
	Provider string  `json:"provider"`
	VoiceID  string  `json:"voiceId"`
	Speed    float64 `json:"speed"`
}

// CreateAssistant implements VoiceService.
func (v *voiceService) CreateAssistant(ctx context.Context, cfg *AssistantConfig) (string, error) {
	payload := assistantPayload{
		Name:           cfg.Name,
		FirstMessage:   cfg.FirstMessage,
		EndCallPhrases: cfg.EndCallPhrases,
		EndCallMessage: cfg.EndCallMessage,
		MaxDuration:    cfg.MaxDurationSeconds,
		Model: assistantModel{
			Provider: "openai",
			Model:    "gpt-4o",
			Messages: []assistantMessage{
				{Role: "system", Content: cfg.SystemPrompt},
			},
		},
		Voice: assistantVoice{
			Provider: "11labs",
			VoiceID:  "8NOqHwer6AD8mGkiPfkf",
			Speed:    0.85,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal assistant payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/assistant", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build assistant request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", errs.Upstreamf("voice provider unreachable: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errs.Upstreamf("voice provider returned %d: %s", resp.StatusCode, string(respBody))
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil || created.ID == "" {
		return "", errs.Upstreamf("voice provider returned unparseable assistant: %v", err)
	}

	return created.ID, nil
}

// DeleteAssistant implements VoiceService.
func (v *voiceService) DeleteAssistant(ctx context.Context, assistantID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, v.baseURL+"/assistant/"+assistantID, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.apiKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return errs.Upstreamf("voice provider unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Upstreamf("voice provider returned %d deleting assistant", resp.StatusCode)
	}

	return nil
}
