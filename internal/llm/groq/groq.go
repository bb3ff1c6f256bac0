package groq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	goopenai "github.com/meguminnnnnnnnn/go-openai"

	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/trace"
	"trending-tickers/internal/types"
)

const DefaultBaseURL = "https://api.groq.com/openai/v1"

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Model talks to any OpenAI-compatible chat completions endpoint; Groq by default.
type Model struct {
	cm          model.BaseChatModel
	name        string
	temperature float32
}

var _ interfaces.Model = (*Model)(nil)

func New(ctx context.Context, cfg Config) (*Model, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	temp := cfg.Temperature
	maxTokens := cfg.MaxTokens
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: &temp,
		MaxTokens:   &maxTokens,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("groq: init chat model: %w", err)
	}
	return &Model{cm: cm, name: cfg.Model, temperature: temp}, nil
}

func (m *Model) Identity() string {
	return fmt.Sprintf("groq/%s/t=%g", m.name, m.temperature)
}

func (m *Model) Generate(ctx context.Context, req types.InsightRequest) (string, error) {
	ctx, span := trace.StartSpan(ctx, "groq-api-call")
	defer span.End()

	resp, err := m.cm.Generate(ctx, []*schema.Message{
		{Role: schema.System, Content: req.System},
		{Role: schema.User, Content: req.User},
	})
	if err != nil {
		if code := statusCode(err); code != 0 {
			return "", &types.StatusError{Provider: "groq", StatusCode: code, Err: err}
		}
		return "", err
	}
	if resp == nil || resp.Content == "" {
		return "", errors.New("groq: empty completion")
	}
	return resp.Content, nil
}

func statusCode(err error) int {
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	return 0
}
