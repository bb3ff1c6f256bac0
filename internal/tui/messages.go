package tui

import "trending-tickers/internal/shell"

// RunEvent carries one shell event into the update loop.
type RunEvent struct {
	Event shell.Event
}

// RunDone is sent once the run function has returned.
type RunDone struct {
	Err error
}
