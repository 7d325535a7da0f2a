package script

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"promoreel/internal/models"
	apperrors "promoreel/internal/pkg/errors"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
	openAITimeout        = 60 * time.Second
)

// OpenAIProvider generates copy through the chat completions endpoint.
type OpenAIProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewOpenAI(apiKey, model, baseURL string) *OpenAIProvider {
	if model == "" {
		model = defaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: openAITimeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *OpenAIProvider) GenerateScript(ctx context.Context, template string, product *models.ProductData, prefs models.Preferences) (string, error) {
	prompt := fmt.Sprintf(
		"Write a 30-second vertical video narration script in the %q format for this product. Plain sentences only, no stage directions.\n\n%s",
		template, productBrief(product, prefs),
	)
	return p.complete(ctx, "script.openai.generate", prompt, 400)
}

func (p *OpenAIProvider) GenerateHook(ctx context.Context, product *models.ProductData, prefs models.Preferences) (string, error) {
	prompt := "Write one attention-grabbing opening line for a short product video. One sentence only.\n\n" + productBrief(product, prefs)
	return p.complete(ctx, "script.openai.hook", prompt, 60)
}

func (p *OpenAIProvider) GenerateCTA(ctx context.Context, product *models.ProductData, prefs models.Preferences) (string, error) {
	prompt := "Write one closing call-to-action line for a short product video. One sentence only.\n\n" + productBrief(product, prefs)
	return p.complete(ctx, "script.openai.cta", prompt, 60)
}

func (p *OpenAIProvider) complete(ctx context.Context, op, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a direct-response copywriter for short-form vertical video ads."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.8,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", apperrors.Generation(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Generation(op, err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", apperrors.Generation(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", apperrors.Generation(op, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", apperrors.Generation(op, fmt.Errorf("decode response: %w", err))
	}
	if parsed.Error != nil {
		return "", apperrors.Generation(op, fmt.Errorf("api error: %s", parsed.Error.Message))
	}
	if resp.StatusCode != http.StatusOK || len(parsed.Choices) == 0 {
		return "", apperrors.Generation(op, fmt.Errorf("unexpected response: status %d", resp.StatusCode))
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", apperrors.Generation(op, fmt.Errorf("empty completion"))
	}
	return text, nil
}

func productBrief(product *models.ProductData, prefs models.Preferences) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\n", product.Title)
	if product.Price != "" {
		fmt.Fprintf(&b, "Price: %s\n", product.Price)
	}
	if product.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", product.Description)
	}
	if len(product.Benefits) > 0 {
		fmt.Fprintf(&b, "Benefits: %s\n", strings.Join(product.Benefits, "; "))
	}
	if prefs.BrandVoice != "" {
		fmt.Fprintf(&b, "Brand voice: %s\n", prefs.BrandVoice)
	}
	if prefs.TargetAudience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", prefs.TargetAudience)
	}
	return b.String()
}
