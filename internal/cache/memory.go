package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-lifetime cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

func (m *Memory) Get(_ context.Context, prompt string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[prompt]
	return e.Response, ok, nil
}

func (m *Memory) Set(_ context.Context, prompt, response string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[prompt] = Entry{Prompt: prompt, Response: response, CreatedAt: time.Now()}
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) Close() error { return nil }
