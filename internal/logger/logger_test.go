package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestTickersRecord(t *testing.T) {
	prev := globalLogger
	defer func() { globalLogger = prev }()

	var buf bytes.Buffer
	if err := InitWithWriter(LogConfig{Level: "INFO", Format: "json"}, &buf); err != nil {
		t.Fatalf("InitWithWriter: %v", err)
	}
	defer slog.SetDefault(prev)

	ctx := WithRunID(context.Background(), "run-42")
	Tickers(ctx, RunID(ctx), []string{"AAPL", "MSFT"})

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, buf.String())
	}
	if rec["run_id"] != "run-42" {
		t.Errorf("run_id = %v, want run-42", rec["run_id"])
	}
	if rec["count"] != float64(2) {
		t.Errorf("count = %v, want 2", rec["count"])
	}
	if rec["type"] != "TICKERS" {
		t.Errorf("type = %v, want TICKERS", rec["type"])
	}
}

func TestDebugSuppressedWithoutDetailedLogging(t *testing.T) {
	prev := globalLogger
	defer func() { globalLogger = prev }()

	var buf bytes.Buffer
	_ = InitWithWriter(LogConfig{Level: "DEBUG", Format: "text"}, &buf)
	defer slog.SetDefault(prev)

	Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestRunIDMissing(t *testing.T) {
	if got := RunID(context.Background()); got != "" {
		t.Errorf("RunID = %q, want empty", got)
	}
}
