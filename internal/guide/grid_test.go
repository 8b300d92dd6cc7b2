//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_DropsEmptyRows(t *testing.T) {
	g := NewGrid(rowsOfLengths(2, 0, 1))
	require.Equal(t, 2, g.RowCount())
	assert.Equal(t, "ch0", g.Rows()[0].Label)
	assert.Equal(t, "ch2", g.Rows()[1].Label)
	assert.Equal(t, 2, g.MaxColumns())
}

func TestGrid_HorizontalWrap(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		g := NewGrid(rowsOfLengths(n))
		for range n {
			g.MoveRight()
		}
		assert.Equal(t, Selection{Row: 0, Col: 0}, g.Selection(), "n=%d", n)

		assert.Equal(t, Selection{Row: 0, Col: n - 1}, g.MoveLeft(), "n=%d", n)
	}
}

func TestGrid_HorizontalNeverChangesRow(t *testing.T) {
	g := NewGrid(rowsOfLengths(3, 2))
	g.MoveDown()
	require.Equal(t, 1, g.Selection().Row)

	g.MoveRight()
	g.MoveRight()
	assert.Equal(t, Selection{Row: 1, Col: 0}, g.Selection())
	g.MoveLeft()
	assert.Equal(t, Selection{Row: 1, Col: 1}, g.Selection())
}

func TestGrid_VerticalColumnPreservingSearch(t *testing.T) {
	g := NewGrid(rowsOfLengths(3, 1, 4))
	g.MoveRight()
	g.MoveRight()
	require.Equal(t, Selection{Row: 0, Col: 2}, g.Selection())

	assert.Equal(t, Selection{Row: 2, Col: 2}, g.MoveDown(), "row 1 is too short")
	assert.Equal(t, Selection{Row: 0, Col: 2}, g.MoveDown(), "wraps past row 1 again")
	assert.Equal(t, Selection{Row: 2, Col: 2}, g.MoveUp(), "upward wrap skips row 1")
	assert.Equal(t, Selection{Row: 0, Col: 2}, g.MoveUp())
}

func TestGrid_VerticalNearestInDirection(t *testing.T) {
	g := NewGrid(rowsOfLengths(1, 1, 1, 1))
	assert.Equal(t, 1, g.MoveDown().Row)
	assert.Equal(t, 2, g.MoveDown().Row)
	assert.Equal(t, 3, g.MoveDown().Row)
	assert.Equal(t, 0, g.MoveDown().Row)
	assert.Equal(t, 3, g.MoveUp().Row)
}

func TestGrid_VerticalNoCandidateLeavesSelection(t *testing.T) {
	g := NewGrid(rowsOfLengths(1, 4, 2))
	g.MoveDown()
	g.MoveLeft()
	require.Equal(t, Selection{Row: 1, Col: 3}, g.Selection())

	assert.Equal(t, Selection{Row: 1, Col: 3}, g.MoveDown())
	assert.Equal(t, Selection{Row: 1, Col: 3}, g.MoveUp())
}

func TestGrid_SingleRowVerticalNoOp(t *testing.T) {
	g := NewGrid(rowsOfLengths(3))
	g.MoveRight()
	want := g.Selection()
	assert.Equal(t, want, g.MoveUp())
	assert.Equal(t, want, g.MoveDown())
}

func TestGrid_EmptyGridIsNoOp(t *testing.T) {
	g := NewGrid(nil)
	for _, dir := range []Direction{Left, Right, Up, Down} {
		assert.Equal(t, Selection{}, g.Move(dir), dir.String())
	}
	_, ok := g.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, g.MaxColumns())
}

func TestGrid_EntryBounds(t *testing.T) {
	g := NewGrid(rowsOfLengths(2))
	_, ok := g.Entry(0, 2)
	assert.False(t, ok)
	_, ok = g.Entry(-1, 0)
	assert.False(t, ok)
	e, ok := g.Entry(0, 1)
	require.True(t, ok)
	assert.Equal(t, "p0-1", e.DisplayName)
}
