package guide

import (
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// ProgramEntry is one playable item in a channel row.
type ProgramEntry struct {
	DisplayName     string  `json:"display_name"`
	SourcePath      string  `json:"source_path"`
	DurationSeconds float64 `json:"duration_seconds"`
	// Span is the number of time-slot columns the entry is drawn across.
	Span int `json:"span"`
}

// ChannelRow is one channel: a folder of programs. Entries is never empty.
type ChannelRow struct {
	Label string `json:"label"`
	// Folder is the channel folder relative to the library root.
	Folder string `json:"folder"`
	// Dir is the absolute channel folder, where the preview clip lives.
	Dir     string         `json:"dir"`
	Entries []ProgramEntry `json:"entries"`
}

//nolint:gochecknoglobals // compiled once, read-only.
var (
	leadingNumber = regexp.MustCompile(`^\d+\s*`)
	parenthetical = regexp.MustCompile(`\s*\(.*?\)`)
	videoSuffix   = regexp.MustCompile(`(?i)\.(mp4|m4v|mkv|mov|avi|wmv|webm|flv|mpe?g|ts)$`)
)

// CleanTitle turns a file name into a display title: the video extension, a leading
// run of digits with the whitespace after it, and every parenthesized annotation with
// the whitespace before it are removed, then the result is trimmed. The steps repeat
// until nothing changes, so cleaning a cleaned title returns it unchanged. A name that
// cleans down to nothing keeps its trimmed stem.
//
// extensions are the configured video extensions (".m2ts"); common video extensions
// are recognised without them.
func CleanTitle(name string, extensions ...string) string {
	stem := strings.TrimSpace(trimVideoExt(name, extensions))
	title := stem
	for {
		next := trimVideoExt(title, extensions)
		next = leadingNumber.ReplaceAllString(next, "")
		next = parenthetical.ReplaceAllString(next, "")
		next = strings.TrimSpace(next)
		if next == title {
			break
		}
		title = next
	}
	if title == "" {
		return stem
	}
	return title
}

func trimVideoExt(name string, extensions []string) string {
	for _, ext := range extensions {
		if n := len(name) - len(ext); n > 0 && strings.EqualFold(name[n:], ext) {
			return name[:n]
		}
	}
	return videoSuffix.ReplaceAllString(name, "")
}

// SpanFor maps a duration to the number of slots it covers:
// ceil(seconds / slot) clamped to [1, maxSpan].
func SpanFor(durationSeconds float64, slot time.Duration, maxSpan int) int {
	if maxSpan < 1 {
		maxSpan = 1
	}
	slotSeconds := slot.Seconds()
	if slotSeconds <= 0 || durationSeconds <= 0 || math.IsNaN(durationSeconds) {
		return 1
	}
	span := math.Ceil(durationSeconds / slotSeconds)
	if span < 1 {
		return 1
	}
	if span > float64(maxSpan) {
		return maxSpan
	}
	return int(span)
}

// ChannelLabel derives a channel label from its folder path: the last segment, a line
// break, then the segment before it. Paths with a single segment yield that segment.
func ChannelLabel(folder string) string {
	parts := strings.FieldsFunc(filepath.ToSlash(folder), func(r rune) bool { return r == '/' || r == '\\' })
	switch len(parts) {
	case 0:
		return folder
	case 1:
		return parts[0]
	default:
		return parts[len(parts)-1] + "\n" + parts[len(parts)-2]
	}
}
