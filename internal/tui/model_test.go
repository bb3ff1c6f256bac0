package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"trending-tickers/internal/shell"
	"trending-tickers/internal/types"
)

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

// drain feeds every message of a run back into the model, as the program loop would.
func drain(t *testing.T, m Model, first tea.Msg) Model {
	t.Helper()
	msg := first
	for msg != nil {
		l, ok := msg.(listened)
		if !ok {
			t.Fatalf("unexpected message %T", msg)
		}
		m, _ = update(t, m, l.msg)
		if _, done := l.msg.(RunDone); done {
			break
		}
		msg = listen(l.next)()
	}
	return m
}

func scripted(events ...shell.Event) RunFunc {
	return func(_ context.Context, emit func(shell.Event)) error {
		for _, e := range events {
			emit(e)
		}
		for _, e := range events {
			if e.Kind == shell.RunFailed {
				return e.Err
			}
		}
		return nil
	}
}

func TestTriggerStartsRun(t *testing.T) {
	m := New(context.Background(), scripted(shell.Event{Kind: shell.RunStarted}))

	m, cmd := update(t, m, key("f"))
	if !m.Running() {
		t.Fatal("expected running after trigger")
	}
	if cmd == nil {
		t.Fatal("trigger should return a command")
	}
	if !strings.Contains(m.View(), spinnerText) {
		t.Error("view should show the spinner text while running")
	}
}

func TestTriggerIgnoredWhileRunning(t *testing.T) {
	m := New(context.Background(), scripted())
	m, _ = update(t, m, key("enter"))

	_, cmd := update(t, m, key("f"))
	if cmd != nil {
		t.Error("second trigger while running should be ignored")
	}
}

func TestRunRendersSections(t *testing.T) {
	boom := errors.New("model timed out")
	run := scripted(
		shell.Event{Kind: shell.RunStarted},
		shell.Event{Kind: shell.TickersFound, Tickers: types.TrendingSet{"AAPL", "MSFT"}},
		shell.Event{Kind: shell.TickerHeading, Ticker: "AAPL"},
		shell.Event{Kind: shell.InsightReady, Ticker: "AAPL", Insight: "**Bullish** week"},
		shell.Event{Kind: shell.TickerHeading, Ticker: "MSFT"},
		shell.Event{Kind: shell.InsightFailed, Ticker: "MSFT", Err: boom},
		shell.Event{Kind: shell.RunFinished},
	)
	m := New(context.Background(), run)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = update(t, m, key("f"))
	m = drain(t, m, startRun(context.Background(), run)())

	if m.Running() {
		t.Error("run should be finished")
	}
	content := m.Content()
	for _, want := range []string{"### 📈 AAPL", "Bullish", "week", "### 📈 MSFT", "model timed out"} {
		if !strings.Contains(content, want) {
			t.Errorf("content missing %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, "**Bullish**") {
		t.Errorf("insight markdown was not rendered:\n%s", content)
	}
	if strings.Index(content, "AAPL") > strings.Index(content, "MSFT") {
		t.Error("sections out of order")
	}
}

func TestNoTickersWarning(t *testing.T) {
	run := scripted(
		shell.Event{Kind: shell.RunStarted},
		shell.Event{Kind: shell.NoTickers},
		shell.Event{Kind: shell.RunFinished},
	)
	m := New(context.Background(), run)
	m, _ = update(t, m, key("f"))
	m = drain(t, m, startRun(context.Background(), run)())

	if !strings.Contains(m.Content(), noTickers) {
		t.Errorf("expected warning, got:\n%s", m.Content())
	}
	if strings.Contains(m.Content(), "###") {
		t.Error("no headings expected for an empty set")
	}
}

func TestRunFailureBanner(t *testing.T) {
	run := scripted(
		shell.Event{Kind: shell.RunStarted},
		shell.Event{Kind: shell.RunFailed, Err: types.ErrSearchUnavailable},
	)
	m := New(context.Background(), run)
	m, _ = update(t, m, key("f"))
	m = drain(t, m, startRun(context.Background(), run)())

	if m.Running() {
		t.Error("run should be over")
	}
	if !strings.Contains(m.Content(), "Run failed") {
		t.Errorf("expected failure banner, got:\n%s", m.Content())
	}
}

func TestNewRunClearsPreviousResults(t *testing.T) {
	m := New(context.Background(), scripted())
	m, _ = update(t, m, RunEvent{Event: shell.Event{Kind: shell.NoTickers}})
	if !strings.Contains(m.Content(), noTickers) {
		t.Fatal("precondition: warning shown")
	}

	m, _ = update(t, m, key("f"))
	if strings.Contains(m.Content(), noTickers) {
		t.Error("a new run should clear the old warning")
	}
}

func TestQuit(t *testing.T) {
	m := New(context.Background(), nil)
	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestInsightFallsBackToMarkdownWithoutRenderer(t *testing.T) {
	m := New(context.Background(), nil)
	m.renderer = nil
	m.apply(shell.Event{Kind: shell.TickerHeading, Ticker: "AAPL"})
	m.apply(shell.Event{Kind: shell.InsightReady, Ticker: "AAPL", Insight: "**Bullish** week"})

	if !strings.Contains(m.Content(), "**Bullish** week") {
		t.Errorf("expected raw markdown, got:\n%s", m.Content())
	}
}

func TestResizeRerendersInsights(t *testing.T) {
	m := New(context.Background(), nil)
	m.apply(shell.Event{Kind: shell.TickerHeading, Ticker: "AAPL"})
	m.apply(shell.Event{Kind: shell.InsightReady, Ticker: "AAPL", Insight: "## Outlook\n\n**Bullish** week"})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	content := m.Content()
	if !strings.Contains(content, "Outlook") || strings.Contains(content, "**Bullish**") {
		t.Errorf("insight not rendered after resize:\n%s", content)
	}
}

func TestSidebarShowsBlurb(t *testing.T) {
	m := New(context.Background(), nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := strings.Join(strings.Fields(m.View()), " ")
	for _, want := range []string{"Stay ahead of", "momentum,", "decisions."} {
		if !strings.Contains(view, want) {
			t.Errorf("sidebar missing %q", want)
		}
	}
}
