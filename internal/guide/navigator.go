package guide

// Step is the outcome of one navigation event.
type Step struct {
	Old         Selection
	New         Selection
	Played      bool
	Description DescriptionRequest
}

// Moved reports whether the selection changed.
func (s Step) Moved() bool { return s.Old != s.New }

// Navigator is the application context: one grid, one window, one preview coordinator,
// all owned by the caller's event loop.
type Navigator struct {
	Grid     *Grid
	Viewport *Viewport
	Preview  *PreviewCoordinator
}

// NewNavigator assembles a Navigator over grid with a rows x cols window.
func NewNavigator(grid *Grid, rows, cols int, locator AdvertLocator, player Player) *Navigator {
	return &Navigator{
		Grid:     grid,
		Viewport: NewViewport(rows, cols),
		Preview:  NewPreviewCoordinator(grid, locator, player),
	}
}

// Start issues the initial preview and description for the starting selection.
func (n *Navigator) Start() Step {
	sel := n.Grid.Selection()
	n.Viewport.ScrollToInclude(sel.Row, sel.Col)
	played, req := n.Preview.Prime(sel)
	return Step{Old: sel, New: sel, Played: played, Description: req}
}

// Move moves the selection, scrolls the window to it and updates the preview.
// On an empty grid nothing changes and no description path is requested.
func (n *Navigator) Move(dir Direction) Step {
	old := n.Grid.Selection()
	sel := n.Grid.Move(dir)
	n.Viewport.ScrollToInclude(sel.Row, sel.Col)
	played, req := n.Preview.OnSelectionChanged(old, sel)
	return Step{Old: old, New: sel, Played: played, Description: req}
}

// Resize changes the window size and keeps the selection inside it.
func (n *Navigator) Resize(rows, cols int) {
	n.Viewport.Resize(rows, cols)
	sel := n.Grid.Selection()
	n.Viewport.ScrollToInclude(sel.Row, sel.Col)
}
