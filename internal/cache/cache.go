package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"trending-tickers/internal/interfaces"
	"trending-tickers/internal/store"
)

// Entry is one stored prompt/response pair.
type Entry struct {
	PromptHash string
	Prompt     string
	Response   string
	CreatedAt  time.Time
}

// New opens the configured backend. It returns nil for backend NONE.
func New(cfg *store.Config) (interfaces.PromptCache, error) {
	switch cfg.Cache.Backend {
	case "NONE", "":
		return nil, nil
	case "MEMORY":
		return NewMemory(), nil
	case "SQLITE":
		return OpenSQLite(cfg.Cache.Path)
	case "BADGER":
		return OpenBadger(cfg.Cache.Path)
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Cache.Backend)
	}
}

func hashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
