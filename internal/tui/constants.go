package tui

import "time"

// Package-level constants to avoid magic numbers and improve readability.
const (
	channelBufferSize = 256
	clockTickSeconds  = 15

	// labelColumnWidth is the width of the channel label column, borders included.
	labelColumnWidth = 18
	// minCellWidth is the narrowest a one-slot program cell may get before a column is dropped.
	minCellWidth = 16
	// rowLines is the height of one channel row: title line plus detail line.
	rowLines = 2

	// guideOverheadLines covers header, description, preview status, timeline and footer.
	guideOverheadLines = 9
	descriptionLines   = 2

	clockTickInterval = time.Duration(clockTickSeconds) * time.Second
)
