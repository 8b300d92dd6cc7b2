package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/tv-guide/internal/guide"
)

// Describer looks up a program's description text.
type Describer interface {
	Description(ctx context.Context, path string) string
}

// Options configures the Model. Zero sizes fall back to one row and one column.
type Options struct {
	Root      string
	Rows      int
	Cols      int
	Slot      time.Duration
	Locator   guide.AdvertLocator
	Player    guide.Player
	Describer Describer
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx  context.Context
	opts Options

	// nav is nil until the grid has been built.
	nav     *guide.Navigator
	loadErr error

	// loading phase state
	channels  int
	files     int
	probed    int
	lastProbe string
	spinner   spinner.Model
	progress  progress.Model

	description        string
	descriptionPending bool

	now      time.Time
	width    int
	height   int
	quitting bool

	// inbound messages from the build goroutine
	events <-chan tea.Msg

	help help.Model
	keys keyMap
}

// NewModel constructs a Model in its loading phase. events delivers scan and build
// progress followed by a gridReadyMsg.
func NewModel(ctx context.Context, opts Options, events <-chan tea.Msg) Model {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	opts.Rows = max(opts.Rows, 1)
	opts.Cols = max(opts.Cols, 1)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return Model{
		ctx:      ctx,
		opts:     opts,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
		now:      opts.Clock(),
		events:   events,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.listenForEvents(),
		m.tickClock(),
	)
}

// Navigator returns the guide state, nil while loading.
func (m Model) Navigator() *guide.Navigator { return m.nav }

// Err returns the error that ended the loading phase, if any.
func (m Model) Err() error { return m.loadErr }

// listenForEvents returns a Tea command that waits for the next build event.
func (m Model) listenForEvents() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return func() tea.Msg {
		return <-m.events
	}
}

// tickClock schedules the next clock refresh.
func (m Model) tickClock() tea.Cmd {
	clock := m.opts.Clock
	return tea.Tick(clockTickInterval, func(time.Time) tea.Msg {
		return clockTickMsg{Now: clock()}
	})
}

// describe looks up the description for req off the update loop.
func (m Model) describe(req guide.DescriptionRequest) tea.Cmd {
	if req.Path == "" || m.opts.Describer == nil {
		return nil
	}
	ctx, d := m.ctx, m.opts.Describer
	return func() tea.Msg {
		return descriptionMsg{Seq: req.Seq, Text: d.Description(ctx, req.Path)}
	}
}
