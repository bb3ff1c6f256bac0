package llmobs

import (
	"context"

	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/logger"
	"trending-tickers/internal/trace"
	"trending-tickers/internal/types"
)

// observableModel wraps a Model with observability (logging & tracing)
type observableModel struct {
	model interfaces.Model
}

// Compile-time interface check
var _ interfaces.Model = (*observableModel)(nil)

// Wrap wraps a model with observability middleware
func Wrap(model interfaces.Model) interfaces.Model {
	return &observableModel{model: model}
}

func (o *observableModel) Identity() string {
	return o.model.Identity()
}

func (o *observableModel) Generate(ctx context.Context, req types.InsightRequest) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Generate")
	defer span.End()

	// Skip one frame so the log points at the caller, not this wrapper
	logger.DebugSkip(ctx, 1, "Requesting insight",
		"model", o.model.Identity(),
		"prompt_bytes", len(req.User),
	)

	out, err := o.model.Generate(ctx, req)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Model call failed", err, "model", o.model.Identity())
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Model response received",
		"model", o.model.Identity(),
		"bytes", len(out),
	)
	return out, nil
}
