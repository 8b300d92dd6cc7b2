package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/sirupsen/logrus"
)

// ErrNotDirectory is returned when the scan root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// skipDirs are directories that never hold channels.
//
//nolint:gochecknoglobals // immutable lookup table used across the package.
var skipDirs = []string{
	"node_modules",
	"__pycache__",
	"$RECYCLE.BIN",
	"System Volume Information",
	"lost+found",
}

func isSkippedDir(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	for _, s := range skipDirs {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}

// ScanFolders walks root and returns every directory holding at least one video file,
// excluding the preview clip. Folders are ordered by relative path and files by name,
// since the walk itself visits directories concurrently.
func (in *Inspector) ScanFolders(ctx context.Context, root string) ([]Folder, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("scanning %s: %w", root, ErrNotDirectory)
	}
	root = filepath.Clean(root)

	var (
		mu      sync.Mutex
		byDir   = make(map[string][]string)
		skipped int
	)
	conf := fastwalk.DefaultConfig
	walkErr := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logrus.Debugf("skipping unreadable entry %s: %v", path, err)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.IsDir() {
			if path != root && isSkippedDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		name := d.Name()
		if in.IsAdvert(name) || !in.IsVideo(name) {
			mu.Lock()
			skipped++
			mu.Unlock()
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return nil
		}
		mu.Lock()
		byDir[rel] = append(byDir[rel], name)
		mu.Unlock()
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, walkErr)
	}

	folders := make([]Folder, 0, len(byDir))
	for dir, files := range byDir {
		slices.Sort(files)
		folders = append(folders, Folder{Path: filepath.ToSlash(dir), Files: files})
	}
	slices.SortFunc(folders, func(a, b Folder) int { return strings.Compare(a.Path, b.Path) })

	logrus.Debugf("scanned %s: %d channel folders, %d files ignored", root, len(folders), skipped)
	return folders, nil
}
