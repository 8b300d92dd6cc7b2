package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/tv-guide/internal/config"
	"github.com/ensigniasec/tv-guide/internal/guide"
	"github.com/ensigniasec/tv-guide/internal/media"
)

// Run starts the Bubble Tea TUI program, building the guide in the background and
// streaming its progress to the loading screen. Logs go to logOut while the program
// owns the terminal, or nowhere when logOut is nil.
func Run(ctx context.Context, cfg config.Config, in *media.Inspector, player guide.Player, logOut io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tea.Msg, channelBufferSize)
	model := NewModel(ctx, Options{
		Root:      cfg.Root,
		Rows:      cfg.VisibleRows,
		Cols:      cfg.VisibleCols,
		Slot:      cfg.Slot,
		Locator:   in,
		Player:    player,
		Describer: in,
	}, events)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Keep log lines from corrupting the view.
	if logOut == nil {
		logOut = io.Discard
	}
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(logOut)
	defer logrus.SetOutput(prevOut)

	go buildGuide(ctx, cfg, in, events)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logrus.Debug("guide interrupted")
			return nil
		}
		return fmt.Errorf("running guide: %w", err)
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// buildGuide scans the library and builds the grid, always finishing with a gridReadyMsg.
func buildGuide(ctx context.Context, cfg config.Config, in *media.Inspector, events chan<- tea.Msg) {
	grid, err := scanAndBuild(ctx, cfg, in, events)
	if err != nil {
		logrus.Debugf("building guide: %v", err)
	}
	select {
	case events <- gridReadyMsg{Grid: grid, Err: err}:
	case <-ctx.Done():
	}
}

func scanAndBuild(ctx context.Context, cfg config.Config, in *media.Inspector, events chan<- tea.Msg) (*guide.Grid, error) {
	folders, err := in.ScanFolders(ctx, cfg.Root)
	if err != nil {
		return nil, err
	}
	files := 0
	for _, f := range folders {
		files += len(f.Files)
	}
	select {
	case events <- scanDoneMsg{Channels: len(folders), Files: files}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return guide.Build(ctx, cfg.Root, folders, in, guide.BuildOptions{
		Slot:       cfg.Slot,
		MaxSpan:    cfg.MaxSpan,
		Extensions: cfg.Extensions,
		Progress: func(done, total int, path string) {
			// Dropping a progress update only delays the bar.
			select {
			case events <- buildProgressMsg{Done: done, Total: total, Path: path}:
			default:
			}
		},
	})
}
