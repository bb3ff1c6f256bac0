package noop

import (
	"context"
	"fmt"
	"strings"

	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/logger"
	"trending-tickers/internal/types"
)

// Model answers without any network call. Useful offline and in demos.
type Model struct{}

var _ interfaces.Model = Model{}

func New() Model {
	return Model{}
}

func (Model) Identity() string {
	return "noop"
}

// Generate echoes the first line of the user prompt back as a short markdown note.
func (Model) Generate(ctx context.Context, req types.InsightRequest) (string, error) {
	logger.Debug(ctx, "Noop model called", "prompt_bytes", len(req.User))
	first, _, _ := strings.Cut(req.User, "\n")
	return fmt.Sprintf("_No model configured._\n\n> %s", first), nil
}
