//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigator_KeepsSelectionVisible(t *testing.T) {
	lengths := []int{6, 2, 6, 1, 6, 6, 6, 3}
	rows := rowsOfLengths(lengths...)
	nav := NewNavigator(NewGrid(rows), 3, 2, allAdverts(rows), &fakePlayer{})
	nav.Start()

	moves := []Direction{Right, Right, Right, Down, Down, Down, Down, Left, Up, Up, Right, Down, Down, Down}
	for _, dir := range moves {
		step := nav.Move(dir)
		assert.True(t, nav.Viewport.Contains(step.New.Row, step.New.Col), "after %s to %+v", dir, step.New)
		assert.Less(t, step.New.Col, lengths[step.New.Row])
	}
}

func TestNavigator_ResizeKeepsSelectionVisible(t *testing.T) {
	rows := rowsOfLengths(1, 1, 1, 1, 1, 1)
	nav := NewNavigator(NewGrid(rows), 6, 3, nil, nil)
	for range 5 {
		nav.Move(Down)
	}
	assert.Equal(t, 0, nav.Viewport.RowStart)

	nav.Resize(2, 3)
	assert.Equal(t, 4, nav.Viewport.RowStart)
	assert.True(t, nav.Viewport.Contains(5, 0))
}

func TestNavigator_EmptyGrid(t *testing.T) {
	nav := NewNavigator(NewGrid(nil), 5, 3, fakeLocator{}, &fakePlayer{})
	start := nav.Start()
	assert.False(t, start.Played)
	assert.Empty(t, start.Description.Path)

	step := nav.Move(Down)
	assert.False(t, step.Moved())
	assert.Empty(t, step.Description.Path)
}
