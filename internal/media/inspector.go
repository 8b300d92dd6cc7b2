package media

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// NoDescription is returned whenever a description cannot be extracted.
const NoDescription = "No description available."

const defaultProbeTimeout = 10 * time.Second

// Folder is one directory holding qualifying video files.
type Folder struct {
	// Path is relative to the scanned root ("." for the root itself).
	Path  string   `json:"path"`
	Files []string `json:"files"`
}

// RunFunc executes an external command and returns its stdout.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Options configures an Inspector. Zero values fall back to defaults.
type Options struct {
	AdvertName   string
	Extensions   []string
	ProbeCommand string
	ProbeTimeout time.Duration
	Run          RunFunc
}

// Inspector answers filesystem and metadata queries about the media library.
// It is safe for concurrent use.
type Inspector struct {
	advertName   string
	extensions   map[string]struct{}
	probeCommand string
	probeTimeout time.Duration
	run          RunFunc

	mu           sync.Mutex
	descriptions map[string]string
	group        singleflight.Group
}

// NewInspector creates an Inspector from opts.
func NewInspector(opts Options) *Inspector {
	in := &Inspector{
		advertName:   opts.AdvertName,
		extensions:   make(map[string]struct{}),
		probeCommand: opts.ProbeCommand,
		probeTimeout: opts.ProbeTimeout,
		run:          opts.Run,
		descriptions: make(map[string]string),
	}
	if in.advertName == "" {
		in.advertName = "ADVERT.mp4"
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".mp4"}
	}
	for _, ext := range exts {
		in.extensions[strings.ToLower(ext)] = struct{}{}
	}
	if in.probeCommand == "" {
		in.probeCommand = "ffprobe"
	}
	if in.probeTimeout <= 0 {
		in.probeTimeout = defaultProbeTimeout
	}
	if in.run == nil {
		in.run = runCommand
	}
	return in
}

// IsVideo reports whether name has one of the configured video extensions.
func (in *Inspector) IsVideo(name string) bool {
	_, ok := in.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// IsAdvert reports whether name is the reserved preview clip.
func (in *Inspector) IsAdvert(name string) bool {
	return strings.EqualFold(name, in.advertName)
}

// AdvertPath returns the preview clip inside dir, if one exists as a regular file.
// The lookup is exact first, then case-insensitive over the directory listing.
func (in *Inspector) AdvertPath(dir string) (string, bool) {
	candidate := filepath.Join(dir, in.advertName)
	if st, err := os.Stat(candidate); err == nil && st.Mode().IsRegular() {
		return candidate, true
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.Type().IsRegular() && in.IsAdvert(e.Name()) {
			return filepath.Join(dir, e.Name()), true
		}
	}
	return "", false
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	//nolint:gosec // the probe command comes from local configuration.
	return exec.CommandContext(ctx, name, args...).Output()
}
