package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/trace"
	"trending-tickers/internal/types"
)

type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Model calls the Gemini API through the genai SDK.
type Model struct {
	client *genai.Client
	cfg    Config
}

var _ interfaces.Model = (*Model)(nil)

func New(ctx context.Context, cfg Config) (*Model, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Model{client: client, cfg: cfg}, nil
}

func (m *Model) Identity() string {
	return fmt.Sprintf("gemini/%s/t=%g", m.cfg.Model, m.cfg.Temperature)
}

func (m *Model) Generate(ctx context.Context, req types.InsightRequest) (string, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-api-call")
	defer span.End()

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(m.cfg.Temperature),
		MaxOutputTokens: int32(m.cfg.MaxTokens),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.cfg.Model,
		[]*genai.Content{genai.NewContentFromText(req.User, genai.RoleUser)}, config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &types.StatusError{Provider: "gemini", StatusCode: apiErr.Code, Err: err}
		}
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}
