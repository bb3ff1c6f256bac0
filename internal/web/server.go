package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"trending-tickers/internal/logger"
	"trending-tickers/internal/shell"
	"trending-tickers/internal/types"
)

// Runner is the part of the shell the page drives.
type Runner interface {
	Run(ctx context.Context, emit func(shell.Event)) error
}

type Server struct {
	runner Runner
	md     goldmark.Markdown
	engine *gin.Engine
}

func NewServer(runner Runner) *Server {
	s := &Server{runner: runner, md: newMarkdown()}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.GET("/", s.GetPage)
	r.GET("/run", s.GetRun)
	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Web page listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) GetPage(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pageHead.Execute(c.Writer, newPageData(false)); err != nil {
		logger.ErrorWithErr(c.Request.Context(), "Failed to render page", err)
		return
	}
	_, _ = c.Writer.WriteString(pageFoot)
}

// GetRun streams one run. Nothing is written until the first event so a
// rejected run can still answer 409.
func (s *Server) GetRun(c *gin.Context) {
	ctx := c.Request.Context()
	w := c.Writer
	started := false

	write := func(fn func() error) {
		if err := fn(); err != nil {
			logger.Warn(ctx, "Failed to write page fragment", "error", err)
		}
		w.Flush()
	}

	err := s.runner.Run(ctx, func(e shell.Event) {
		if !started {
			started = true
			c.Header("Content-Type", "text/html; charset=utf-8")
			c.Header("X-Content-Type-Options", "nosniff")
			c.Status(http.StatusOK)
			write(func() error { return pageHead.Execute(w, newPageData(true)) })
		}
		write(func() error { return s.renderEvent(w, e) })
	})

	if !started {
		if errors.Is(err, types.ErrRunInProgress) {
			c.String(http.StatusConflict, "a run is already in progress")
			return
		}
		c.String(http.StatusInternalServerError, fmt.Sprintf("run failed: %v", err))
		return
	}

	write(func() error {
		if _, err := w.WriteString(hideBusy); err != nil {
			return err
		}
		_, err := w.WriteString(pageFoot)
		return err
	})
}

func (s *Server) renderEvent(w gin.ResponseWriter, e shell.Event) error {
	switch e.Kind {
	case shell.NoTickers:
		return noticeFragment.Execute(w, notice{Class: "warning", Text: noTickers})
	case shell.TickerHeading:
		return headingFragment.Execute(w, e.Ticker)
	case shell.InsightReady:
		body, err := renderMarkdown(s.md, string(e.Insight))
		if err != nil {
			return err
		}
		return insightFragment.Execute(w, body)
	case shell.InsightFailed:
		return noticeFragment.Execute(w, notice{
			Class: "error",
			Text:  fmt.Sprintf("Could not generate insight for %s: %v", e.Ticker, e.Err),
		})
	case shell.RunFailed:
		text := fmt.Sprintf("Run failed: %v", e.Err)
		if errors.Is(e.Err, types.ErrSearchUnavailable) {
			text = "Search is unavailable right now. Please try again later."
		}
		return noticeFragment.Execute(w, notice{Class: "error", Text: text})
	}
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
