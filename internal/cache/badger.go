package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"
)

// Badger persists entries in an embedded badger store under a directory.
type Badger struct {
	store *badgerhold.Store
}

func OpenBadger(dir string) (*Badger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger cache: %w", err)
	}
	return &Badger{store: store}, nil
}

func (b *Badger) Get(_ context.Context, prompt string) (string, bool, error) {
	var e Entry
	err := b.store.Get(hashPrompt(prompt), &e)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if e.Prompt != prompt {
		return "", false, nil
	}
	return e.Response, true, nil
}

func (b *Badger) Set(_ context.Context, prompt, response string) error {
	key := hashPrompt(prompt)
	return b.store.Upsert(key, &Entry{
		PromptHash: key,
		Prompt:     prompt,
		Response:   response,
		CreatedAt:  time.Now(),
	})
}

func (b *Badger) Close() error {
	return b.store.Close()
}
