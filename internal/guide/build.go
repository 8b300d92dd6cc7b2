package guide

import (
	"context"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ensigniasec/tv-guide/internal/media"
)

const (
	defaultSlot    = 30 * time.Minute
	defaultMaxSpan = 3
)

// DurationProber reports a media file's length in seconds, 0 when unknown.
type DurationProber interface {
	Duration(ctx context.Context, path string) float64
}

// BuildOptions tunes grid construction. Zero values fall back to defaults.
type BuildOptions struct {
	Slot    time.Duration
	MaxSpan int
	// Extensions are stripped from file names when building titles.
	Extensions []string
	// Workers bounds concurrent duration probes.
	Workers int
	// Progress, when set, is called once per probed file. It may be called from
	// several goroutines at once.
	Progress func(done, total int, path string)
}

// Build turns scanned folders into a grid. Folders without files are discarded;
// folder order and file order are kept as given. Only ctx cancellation fails the build.
func Build(ctx context.Context, root string, folders []media.Folder, prober DurationProber, opts BuildOptions) (*Grid, error) {
	if opts.Slot <= 0 {
		opts.Slot = defaultSlot
	}
	if opts.MaxSpan <= 0 {
		opts.MaxSpan = defaultMaxSpan
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	rows := make([]ChannelRow, 0, len(folders))
	total := 0
	for _, f := range folders {
		if len(f.Files) == 0 {
			logrus.Debugf("skipping empty channel folder %q", f.Path)
			continue
		}
		label := ChannelLabel(f.Path)
		if f.Path == "." || f.Path == "" {
			label = filepath.Base(root)
		}
		dir := filepath.Join(root, filepath.FromSlash(f.Path))
		row := ChannelRow{Label: label, Folder: f.Path, Dir: dir, Entries: make([]ProgramEntry, len(f.Files))}
		for i, name := range f.Files {
			row.Entries[i] = ProgramEntry{
				DisplayName: CleanTitle(name, opts.Extensions...),
				SourcePath:  filepath.Join(dir, name),
				Span:        1,
			}
		}
		total += len(f.Files)
		rows = append(rows, row)
	}

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for r := range rows {
		for c := range rows[r].Entries {
			entry := &rows[r].Entries[c]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				secs := 0.0
				if prober != nil {
					secs = prober.Duration(gctx, entry.SourcePath)
				}
				entry.DurationSeconds = secs
				entry.Span = SpanFor(secs, opts.Slot, opts.MaxSpan)
				if opts.Progress != nil {
					opts.Progress(int(done.Add(1)), total, entry.SourcePath)
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logrus.Debugf("built guide: %d channels, %d programs", len(rows), total)
	return NewGrid(rows), nil
}
