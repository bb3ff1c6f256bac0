package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"trending-tickers/internal/shell"
)

// startRun returns a command that launches run in the background and
// delivers its first message. Each delivered message re-arms the listener.
func startRun(ctx context.Context, run RunFunc) tea.Cmd {
	return func() tea.Msg {
		ch := make(chan tea.Msg, 16)
		go func() {
			err := run(ctx, func(e shell.Event) {
				ch <- RunEvent{Event: e}
			})
			ch <- RunDone{Err: err}
			close(ch)
		}()
		return listen(ch)()
	}
}

func listen(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return listened{msg: msg, next: ch}
	}
}

// listened wraps a message with the channel it came from.
type listened struct {
	msg  tea.Msg
	next <-chan tea.Msg
}
