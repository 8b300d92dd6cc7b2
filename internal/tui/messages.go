package tui

import (
	"time"

	"github.com/ensigniasec/tv-guide/internal/guide"
)

// Message types for Bubble Tea update loop.

// scanDoneMsg reports the folder walk result before durations are probed.
type scanDoneMsg struct {
	Channels int
	Files    int
}

// buildProgressMsg carries per-file probing progress during grid construction.
type buildProgressMsg struct {
	Done  int
	Total int
	Path  string
}

// gridReadyMsg ends the loading phase.
type gridReadyMsg struct {
	Grid *guide.Grid
	Err  error
}

// descriptionMsg carries the result of one description lookup.
type descriptionMsg struct {
	Seq  uint64
	Text string
}

// clockTickMsg advances the clock used by the header and the timeline.
type clockTickMsg struct{ Now time.Time }
