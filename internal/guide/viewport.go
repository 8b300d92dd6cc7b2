package guide

// Viewport is the visible window over the grid.
type Viewport struct {
	RowStart    int
	ColStart    int
	VisibleRows int
	VisibleCols int
}

// NewViewport returns a window of rows x cols anchored at (0, 0). Sizes below one are
// raised to one.
func NewViewport(rows, cols int) *Viewport {
	return &Viewport{VisibleRows: max(rows, 1), VisibleCols: max(cols, 1)}
}

// ScrollToInclude moves the window the least amount needed for (row, col) to be
// inside it.
func (v *Viewport) ScrollToInclude(row, col int) {
	v.RowStart = scrollAxis(v.RowStart, v.VisibleRows, row)
	v.ColStart = scrollAxis(v.ColStart, v.VisibleCols, col)
}

func scrollAxis(start, visible, pos int) int {
	switch {
	case pos < start:
		start = pos
	case pos >= start+visible:
		start = pos - visible + 1
	}
	return max(start, 0)
}

// Contains reports whether (row, col) is inside the window.
func (v *Viewport) Contains(row, col int) bool {
	return row >= v.RowStart && row < v.RowStart+v.VisibleRows &&
		col >= v.ColStart && col < v.ColStart+v.VisibleCols
}

// Resize changes the window size; the caller re-includes the selection afterwards.
func (v *Viewport) Resize(rows, cols int) {
	v.VisibleRows = max(rows, 1)
	v.VisibleCols = max(cols, 1)
}

// VisibleRowRange returns the half-open range of row indexes shown for a grid of
// rowCount rows.
func (v *Viewport) VisibleRowRange(rowCount int) (start, end int) {
	start = min(v.RowStart, rowCount)
	end = min(v.RowStart+v.VisibleRows, rowCount)
	return start, end
}

// VisibleColRange returns the half-open range of column indexes shown.
func (v *Viewport) VisibleColRange() (start, end int) {
	return v.ColStart, v.ColStart + v.VisibleCols
}

// Cell is one program placed in the window.
type Cell struct {
	Col int
	// Offset is the first window column the cell occupies.
	Offset int
	// Width is the number of window columns the cell occupies.
	Width int
	Entry ProgramEntry
}

// VisibleCells lays out the visible part of row. Each entry starts at its own column
// and reaches across its span only where no later entry starts, and never past the
// right edge of the window.
func (v *Viewport) VisibleCells(row ChannelRow) []Cell {
	start, end := v.VisibleColRange()
	end = min(end, len(row.Entries))
	cells := make([]Cell, 0, max(end-start, 0))
	for c := start; c < end; c++ {
		e := row.Entries[c]
		width := 1
		if c == len(row.Entries)-1 {
			width = min(max(e.Span, 1), v.ColStart+v.VisibleCols-c)
		}
		cells = append(cells, Cell{Col: c, Offset: c - v.ColStart, Width: width, Entry: e})
	}
	return cells
}
