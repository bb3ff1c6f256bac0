package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/trace"
	"trending-tickers/internal/types"
)

type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	MaxTokens   int
}

// Model calls the Anthropic Messages API.
type Model struct {
	client anthropic.Client
	cfg    Config
}

var _ interfaces.Model = (*Model)(nil)

func New(cfg Config) *Model {
	// Retries are owned by the resilient wrapper
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Model{client: anthropic.NewClient(opts...), cfg: cfg}
}

func (m *Model) Identity() string {
	return fmt.Sprintf("claude/%s/t=%g", m.cfg.Model, m.cfg.Temperature)
}

func (m *Model) Generate(ctx context.Context, req types.InsightRequest) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(m.cfg.Model),
		MaxTokens: int64(m.cfg.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
		Temperature: anthropic.Float(float64(m.cfg.Temperature)),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &types.StatusError{Provider: "claude", StatusCode: apiErr.StatusCode, Err: err}
		}
		return "", err
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", errors.New("claude: response has no text content")
	}
	return out.String(), nil
}
