package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trending-tickers/internal/shell"
	"trending-tickers/internal/types"
)

type fakeRunner struct {
	events []shell.Event
	err    error
}

func (f *fakeRunner) Run(_ context.Context, emit func(shell.Event)) error {
	for _, e := range f.events {
		emit(e)
	}
	return f.err
}

func newTestServer(r Runner) *Server {
	gin.SetMode(gin.TestMode)
	return NewServer(r)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestGetPage(t *testing.T) {
	w := get(t, newTestServer(&fakeRunner{}), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, pageTitle)
	assert.Contains(t, body, pageSubtitle)
	assert.Contains(t, body, sidebarTitle)
	assert.Contains(t, body, "Stay ahead of the market with our weekly roundup of the hottest stock tickers.")
	assert.Contains(t, body, "make informed decisions.")
	assert.Contains(t, body, buttonLabel)
	assert.NotContains(t, body, busyText)
}

func TestGetRunStreamsInsights(t *testing.T) {
	r := &fakeRunner{events: []shell.Event{
		{Kind: shell.RunStarted},
		{Kind: shell.TickersFound, Tickers: types.TrendingSet{"AAPL", "MSFT"}},
		{Kind: shell.TickerHeading, Ticker: "AAPL"},
		{Kind: shell.InsightReady, Ticker: "AAPL", Insight: "**Strong** demand\n\n<span class=\"raw\">ok</span>"},
		{Kind: shell.TickerHeading, Ticker: "MSFT"},
		{Kind: shell.InsightFailed, Ticker: "MSFT", Err: types.ErrModelTimeout},
		{Kind: shell.RunFinished},
	}}
	w := get(t, newTestServer(r), "/run")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, busyText)
	assert.Contains(t, body, "📈 AAPL")
	assert.Contains(t, body, "<strong>Strong</strong> demand")
	assert.Contains(t, body, `<span class="raw">ok</span>`)
	assert.Contains(t, body, "Could not generate insight for MSFT")
	assert.Contains(t, body, "#busy { display: none; }")
	assert.Less(t, strings.Index(body, "📈 AAPL"), strings.Index(body, "📈 MSFT"))
	assert.True(t, strings.HasSuffix(body, "</html>\n"))
}

func TestGetRunNoTickers(t *testing.T) {
	r := &fakeRunner{events: []shell.Event{
		{Kind: shell.RunStarted},
		{Kind: shell.NoTickers},
		{Kind: shell.RunFinished},
	}}
	w := get(t, newTestServer(r), "/run")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), noTickers)
	assert.NotContains(t, w.Body.String(), "<h3>📈")
}

func TestGetRunSearchUnavailable(t *testing.T) {
	r := &fakeRunner{
		events: []shell.Event{
			{Kind: shell.RunStarted},
			{Kind: shell.RunFailed, Err: types.ErrSearchUnavailable},
		},
		err: types.ErrSearchUnavailable,
	}
	w := get(t, newTestServer(r), "/run")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Search is unavailable")
}

func TestGetRunInProgress(t *testing.T) {
	w := get(t, newTestServer(&fakeRunner{err: types.ErrRunInProgress}), "/run")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotContains(t, w.Body.String(), pageTitle)
}

func TestRenderMarkdownTables(t *testing.T) {
	out, err := renderMarkdown(newMarkdown(), "| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<table>")
}
