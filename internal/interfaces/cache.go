package interfaces

import "context"

// PromptCache maps an exact serialized prompt to a previously produced response.
type PromptCache interface {
	Get(ctx context.Context, prompt string) (string, bool, error)
	Set(ctx context.Context, prompt, response string) error
	Close() error
}
