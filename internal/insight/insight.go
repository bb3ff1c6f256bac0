package insight

import (
	"context"
	"encoding/json"
	"fmt"

	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/logger"
	"trending-tickers/internal/trace"
	"trending-tickers/internal/types"
)

const systemPrompt = "You're a helpful financial assistant with 20+ years experience analyzing stocks."

const userTemplate = "Provide a concise analysis and insights for the stock ticker: %s. " +
	"Include recent news, social media trends, and market analysis. Output in markdown format."

// BuildRequest returns the fixed message pair for ticker.
func BuildRequest(ticker types.TickerCandidate) types.InsightRequest {
	return types.InsightRequest{
		System: systemPrompt,
		User:   fmt.Sprintf(userTemplate, ticker),
	}
}

type promptKey struct {
	Model    string              `json:"model"`
	Messages []map[string]string `json:"messages"`
}

// PromptKey serializes everything that determines a response: the model
// identity and both messages. Equal inputs give byte-identical keys.
func PromptKey(identity string, req types.InsightRequest) string {
	b, _ := json.Marshal(promptKey{
		Model: identity,
		Messages: []map[string]string{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.User},
		},
	})
	return string(b)
}

// Generator produces insights through a model, consulting an optional prompt cache.
type Generator struct {
	model interfaces.Model
	cache interfaces.PromptCache
}

var _ interfaces.InsightGenerator = (*Generator)(nil)

// NewGenerator builds a Generator; cache may be nil.
func NewGenerator(model interfaces.Model, cache interfaces.PromptCache) *Generator {
	return &Generator{model: model, cache: cache}
}

func (g *Generator) GenerateInsight(ctx context.Context, ticker types.TickerCandidate) (types.InsightResponse, error) {
	ctx, span := trace.StartSpan(ctx, "insight.Generate")
	defer span.End()

	req := BuildRequest(ticker)
	key := PromptKey(g.model.Identity(), req)

	if g.cache != nil {
		cached, ok, err := g.cache.Get(ctx, key)
		if err != nil {
			logger.Warn(ctx, "Prompt cache read failed", "ticker", ticker, "error", err)
		} else if ok {
			logger.Insight(ctx, logger.RunID(ctx), string(ticker), true, len(cached))
			return types.InsightResponse(cached), nil
		}
	}

	out, err := g.model.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("insight for %s: %w", ticker, err)
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, key, out); err != nil {
			logger.Warn(ctx, "Prompt cache write failed", "ticker", ticker, "error", err)
		}
	}

	logger.Insight(ctx, logger.RunID(ctx), string(ticker), false, len(out))
	return types.InsightResponse(out), nil
}
