// Package mocklogger captures slog output for assertions in tests.
package mocklogger

import (
	"context"
	"log/slog"
	"sync"
)

// MockHandler records every message and level it is handed.
type MockHandler struct {
	mu             sync.Mutex
	LoggedMessages []string
	LoggedLevels   []slog.Level
}

func (h *MockHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *MockHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LoggedMessages = append(h.LoggedMessages, r.Message)
	h.LoggedLevels = append(h.LoggedLevels, r.Level)
	return nil
}

func (h *MockHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *MockHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Messages returns a copy of what was logged so far.
func (h *MockHandler) Messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.LoggedMessages))
	copy(out, h.LoggedMessages)
	return out
}

// NewMockLogger returns a logger plus the handler behind it.
func NewMockLogger() (*slog.Logger, *MockHandler) {
	handler := &MockHandler{}
	return slog.New(handler), handler
}
