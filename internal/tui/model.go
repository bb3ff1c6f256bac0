// Package tui is the interactive terminal page.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"trending-tickers/internal/shell"
	"trending-tickers/internal/types"
)

const (
	pageTitle    = "📊 Hottest Stock Tickers of the Week"
	pageSubtitle = "Tracking Top 3 Trending Stocks This Week 📈"
	sidebarTitle = "📈 Stock Market Insights"
	sidebarBlurb = "Stay ahead of the market with our weekly roundup of the hottest stock tickers. " +
		"From breakout movers to trending trades, we track the week’s most talked-about " +
		"stocks so you can spot momentum, gauge sentiment, and make informed decisions."
	buttonLabel = "Get Top 3 Trending Tickers This Week"
	spinnerText = "Fetching top 3 trending tickers..."
	noTickers   = "⚠️ No tickers found. Check search results or widen the filter."

	sidebarWidth = 30
)

// RunFunc performs one run, reporting progress through emit.
type RunFunc func(ctx context.Context, emit func(shell.Event)) error

type section struct {
	ticker   types.TickerCandidate
	insight  types.InsightResponse
	rendered string
	err      error
	done     bool
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx context.Context
	run RunFunc

	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	sections []section
	running  bool
	empty    bool
	runErr   error

	width  int
	height int
	ready  bool
}

// New returns a page bound to run. ctx bounds every run started from the page.
func New(ctx context.Context, run RunFunc) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent)
	return Model{
		ctx:      ctx,
		run:      run,
		spinner:  s,
		viewport: viewport.New(80, 20),
		renderer: newRenderer(80),
	}
}

// newRenderer returns nil when glamour cannot be set up; insights then show as plain markdown.
func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.DarkStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

func (m *Model) render(md types.InsightResponse) string {
	if m.renderer == nil {
		return string(md)
	}
	out, err := m.renderer.Render(string(md))
	if err != nil {
		return string(md)
	}
	return strings.Trim(out, "\n")
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case listened:
		next, cmd := m.Update(msg.msg)
		if _, done := msg.msg.(RunDone); done {
			return next, cmd
		}
		return next, tea.Batch(cmd, listen(msg.next))

	case RunEvent:
		m.apply(msg.Event)
		m.refresh()
		return m, nil

	case RunDone:
		m.running = false
		// ErrRunInProgress arrives without events; show it like any other failure.
		if msg.Err != nil && m.runErr == nil {
			m.runErr = msg.Err
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "f", "enter":
		if m.running || m.run == nil {
			return m, nil
		}
		m.running = true
		m.sections = nil
		m.empty = false
		m.runErr = nil
		m.refresh()
		return m, tea.Batch(m.spinner.Tick, startRun(m.ctx, m.run))
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) apply(e shell.Event) {
	switch e.Kind {
	case shell.NoTickers:
		m.empty = true
	case shell.TickerHeading:
		m.sections = append(m.sections, section{ticker: e.Ticker})
	case shell.InsightReady:
		if s := m.section(e.Ticker); s != nil {
			s.insight = e.Insight
			s.rendered = m.render(e.Insight)
			s.done = true
		}
	case shell.InsightFailed:
		if s := m.section(e.Ticker); s != nil {
			s.err = e.Err
			s.done = true
		}
	case shell.RunFailed:
		m.runErr = e.Err
	case shell.RunFinished:
		m.running = false
	}
}

func (m *Model) section(t types.TickerCandidate) *section {
	for i := range m.sections {
		if m.sections[i].ticker == t {
			return &m.sections[i]
		}
	}
	return nil
}

func (m *Model) resize() {
	w := m.width - sidebarWidth - 4
	if w < 20 {
		w = 20
	}
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	m.viewport.Width = w
	m.viewport.Height = h

	m.renderer = newRenderer(w)
	for i := range m.sections {
		if m.sections[i].done && m.sections[i].err == nil {
			m.sections[i].rendered = m.render(m.sections[i].insight)
		}
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.content())
}

// content renders the result area: a heading per ticker then its formatted insight.
func (m Model) content() string {
	var b strings.Builder
	if m.empty {
		b.WriteString(warnStyle.Render(noTickers))
		b.WriteString("\n")
	}
	for _, s := range m.sections {
		b.WriteString(headingStyle.Render("### 📈 " + string(s.ticker)))
		b.WriteString("\n")
		switch {
		case s.err != nil:
			b.WriteString(errorStyle.Render(fmt.Sprintf("Could not generate insight for %s: %v", s.ticker, s.err)))
		case s.done:
			b.WriteString(s.rendered)
		default:
			b.WriteString(helpStyle.Render("analysing..."))
		}
		b.WriteString("\n")
	}
	if m.runErr != nil {
		b.WriteString(errorStyle.Render("Run failed: " + m.runErr.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) View() string {
	sidebar := sidebarStyle.Width(sidebarWidth).Render(
		sidebarTitleStyle.Render(sidebarTitle) + "\n\n" + sidebarBlurb,
	)

	var main strings.Builder
	main.WriteString(titleStyle.Render(pageTitle))
	main.WriteString("\n")
	main.WriteString(subtitleStyle.Render(pageSubtitle))
	main.WriteString("\n")
	if m.running {
		main.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), spinnerText))
	} else {
		main.WriteString(buttonStyle.Render("[f] " + buttonLabel))
	}
	main.WriteString("\n\n")
	main.WriteString(m.viewport.View())
	main.WriteString("\n")
	main.WriteString(helpStyle.Render("f/enter: fetch • ↑/↓: scroll • q: quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main.String())
}

// Running reports whether a run is in flight.
func (m Model) Running() bool {
	return m.running
}

// Content returns the rendered result area.
func (m Model) Content() string {
	return m.content()
}
