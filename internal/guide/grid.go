package guide

// Selection is the highlighted cell.
type Selection struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Direction is a cursor movement.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Grid is the immutable set of channel rows plus the mutable selection.
// Column validity is per row; vertical moves keep the column and skip rows too short
// to have an entry there.
type Grid struct {
	rows []ChannelRow
	sel  Selection
}

// NewGrid builds a grid from rows, dropping any row without entries. The selection
// starts at (0, 0).
func NewGrid(rows []ChannelRow) *Grid {
	kept := make([]ChannelRow, 0, len(rows))
	for _, r := range rows {
		if len(r.Entries) > 0 {
			kept = append(kept, r)
		}
	}
	return &Grid{rows: kept}
}

// RowCount returns the number of channel rows.
func (g *Grid) RowCount() int { return len(g.rows) }

// Rows returns the channel rows. Callers must not modify them.
func (g *Grid) Rows() []ChannelRow { return g.rows }

// Row returns the row at i.
func (g *Grid) Row(i int) (ChannelRow, bool) {
	if i < 0 || i >= len(g.rows) {
		return ChannelRow{}, false
	}
	return g.rows[i], true
}

// Entry returns the program at (row, col).
func (g *Grid) Entry(row, col int) (ProgramEntry, bool) {
	r, ok := g.Row(row)
	if !ok || col < 0 || col >= len(r.Entries) {
		return ProgramEntry{}, false
	}
	return r.Entries[col], true
}

// Current returns the selected program; false on an empty grid.
func (g *Grid) Current() (ProgramEntry, bool) {
	return g.Entry(g.sel.Row, g.sel.Col)
}

// Selection returns the current selection.
func (g *Grid) Selection() Selection { return g.sel }

// MaxColumns returns the length of the longest row.
func (g *Grid) MaxColumns() int {
	longest := 0
	for _, r := range g.rows {
		longest = max(longest, len(r.Entries))
	}
	return longest
}

// Move dispatches to the directional move methods.
func (g *Grid) Move(dir Direction) Selection {
	switch dir {
	case Left:
		return g.MoveLeft()
	case Right:
		return g.MoveRight()
	case Up:
		return g.MoveUp()
	case Down:
		return g.MoveDown()
	default:
		return g.sel
	}
}

// MoveLeft steps one column left, wrapping to the last column of the same row.
func (g *Grid) MoveLeft() Selection {
	if len(g.rows) == 0 {
		return g.sel
	}
	if g.sel.Col > 0 {
		g.sel.Col--
		return g.sel
	}
	g.sel.Col = max(len(g.rows[g.sel.Row].Entries)-1, 0)
	return g.sel
}

// MoveRight steps one column right, wrapping to column 0 of the same row.
func (g *Grid) MoveRight() Selection {
	if len(g.rows) == 0 {
		return g.sel
	}
	if g.sel.Col+1 < len(g.rows[g.sel.Row].Entries) {
		g.sel.Col++
		return g.sel
	}
	g.sel.Col = 0
	return g.sel
}

// MoveUp selects the nearest row above that has an entry in the current column,
// wrapping around the bottom of the grid once.
func (g *Grid) MoveUp() Selection { return g.moveVertical(-1) }

// MoveDown selects the nearest row below that has an entry in the current column,
// wrapping around the top of the grid once.
func (g *Grid) MoveDown() Selection { return g.moveVertical(1) }

func (g *Grid) moveVertical(step int) Selection {
	n := len(g.rows)
	for i := 1; i < n; i++ {
		r := ((g.sel.Row+step*i)%n + n) % n
		if g.sel.Col < len(g.rows[r].Entries) {
			g.sel.Row = r
			break
		}
	}
	return g.sel
}
