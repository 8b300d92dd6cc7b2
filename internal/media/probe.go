package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// probeOutput is the subset of `ffprobe -print_format json` used here.
type probeOutput struct {
	Format struct {
		Duration string            `json:"duration"`
		Tags     map[string]string `json:"tags"`
	} `json:"format"`
}

func (in *Inspector) probe(ctx context.Context, path string, entries string) (probeOutput, error) {
	var out probeOutput

	ctx, cancel := context.WithTimeout(ctx, in.probeTimeout)
	defer cancel()

	raw, err := in.run(ctx, in.probeCommand,
		"-v", "quiet",
		"-print_format", "json",
		"-show_entries", entries,
		path,
	)
	if err != nil {
		return out, fmt.Errorf("running %s: %w", in.probeCommand, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decoding %s output: %w", in.probeCommand, err)
	}
	return out, nil
}

// Duration returns the length of the media file in seconds, or 0 when it cannot be
// determined.
func (in *Inspector) Duration(ctx context.Context, path string) float64 {
	out, err := in.probe(ctx, path, "format=duration")
	if err != nil {
		logrus.Debugf("duration probe failed for %s: %v", path, err)
		return 0
	}
	secs, err := strconv.ParseFloat(strings.TrimSpace(out.Format.Duration), 64)
	if err != nil || secs < 0 {
		logrus.Debugf("unusable duration %q for %s", out.Format.Duration, path)
		return 0
	}
	return secs
}

// Description returns the description (or comment) tag of the media file, or
// NoDescription. Only answers from a completed probe are cached; a failed or timed-out
// probe is retried on the next lookup. Concurrent lookups of the same path share one
// probe.
func (in *Inspector) Description(ctx context.Context, path string) string {
	in.mu.Lock()
	if desc, ok := in.descriptions[path]; ok {
		in.mu.Unlock()
		return desc
	}
	in.mu.Unlock()

	v, _, _ := in.group.Do(path, func() (any, error) {
		desc, err := in.describe(ctx, path)
		if err != nil {
			logrus.Debugf("description probe failed for %s: %v", path, err)
			return NoDescription, nil
		}
		in.mu.Lock()
		in.descriptions[path] = desc
		in.mu.Unlock()
		return desc, nil
	})
	desc, _ := v.(string)
	return desc
}

func (in *Inspector) describe(ctx context.Context, path string) (string, error) {
	out, err := in.probe(ctx, path, "format_tags=comment:format_tags=description")
	if err != nil {
		return "", err
	}
	desc := tagValue(out.Format.Tags, "description")
	if desc == "" {
		desc = tagValue(out.Format.Tags, "comment")
	}
	desc = strings.TrimSpace(strings.ToValidUTF8(desc, ""))
	if desc == "" {
		return NoDescription, nil
	}
	return desc, nil
}

// tagValue looks up key case-insensitively; containers differ in tag casing.
func tagValue(tags map[string]string, key string) string {
	if v, ok := tags[key]; ok {
		return v
	}
	for k, v := range tags {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
