package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoglobals // test binary path is set in TestMain
var testBinaryPath string

// TestMain builds the CLI binary once for the entire package and reuses it.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tv-guide-test-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1) //nolint:gocritic // Mkdir failed, nothing to cleanup
	}
	defer os.RemoveAll(dir)

	bin := filepath.Join(dir, "tv-guide-test")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build test binary: %v\nOutput: %s\n", err, string(out))
		os.Exit(1) //nolint:gocritic // Binary failed, nothing to cleanup
	}
	testBinaryPath = bin

	code := m.Run()
	os.Exit(code)
}

func buildTestBinary(t *testing.T) string {
	if testBinaryPath == "" {
		t.Fatalf("test binary not built")
	}
	return testBinaryPath
}

// newCmd runs the binary with an isolated config directory and a probe command that
// never exists, so lengths are always unknown.
func newCmd(t *testing.T, home string, args ...string) *exec.Cmd {
	t.Helper()
	cfgDir := filepath.Join(home, ".config")
	cmd := exec.Command(buildTestBinary(t), args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "XDG_CONFIG_HOME="+cfgDir)
	return cmd
}

func run(t *testing.T, cmd *exec.Cmd) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}

func writeTestConfig(t *testing.T, home string) string {
	t.Helper()
	path := filepath.Join(home, "test-config.yaml")
	body := "probe:\n  command: tv-guide-missing-ffprobe\nplayer:\n  disabled: true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func writeLibrary(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(root, filepath.FromSlash(n))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o600))
	}
}

func TestCLI_HelpOutput(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "root help",
			args:     []string{"--help"},
			contains: []string{"tv-guide [ROOT]", "channels", "config", "--rows", "--cols", "--no-video", "--log-file"},
		},
		{
			name:     "channels help",
			args:     []string{"channels", "--help"},
			contains: []string{"channels [ROOT]", "--json", "--config", "--verbose"},
		},
		{
			name:     "config help",
			args:     []string{"config", "--help"},
			contains: []string{"init", "show"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := run(t, newCmd(t, home, tt.args...))

			// Help commands should exit with code 0.
			require.NoError(t, err)
			for _, expected := range tt.contains {
				assert.Contains(t, output, expected)
			}
		})
	}
}

func TestCLI_Version(t *testing.T) {
	output, err := run(t, newCmd(t, t.TempDir(), "--version"))
	require.NoError(t, err)
	assert.Contains(t, output, "tv-guide dev")
	assert.Contains(t, output, "commit: none")
}

func TestCLI_ChannelsJSON(t *testing.T) {
	home := t.TempDir()
	cfg := writeTestConfig(t, home)
	root := filepath.Join(home, "library")
	writeLibrary(t, root,
		"TV/Kids/02 Puppets (HD).mp4",
		"TV/Kids/01 Cartoon.MP4",
		"TV/Kids/ADVERT.mp4",
		"TV/Empty/readme.txt",
		"Movies/Feature.mp4",
	)

	cmd := newCmd(t, home, "channels", "--json", "--config", cfg, root)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Run(), "stderr: %s", stderr.String())

	var channels []channelJSON
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &channels), "output: %s", stdout.String())
	require.Len(t, channels, 2)

	assert.Equal(t, "Movies", channels[0].Folder)
	assert.Equal(t, "Movies", channels[0].Label)
	assert.Empty(t, channels[0].Preview)

	kids := channels[1]
	assert.Equal(t, "TV/Kids", kids.Folder)
	assert.Equal(t, "Kids TV", kids.Label)
	assert.Equal(t, filepath.Join(root, "TV", "Kids", "ADVERT.mp4"), kids.Preview)
	require.Len(t, kids.Programs, 2)
	assert.Equal(t, "Cartoon", kids.Programs[0].Title)
	assert.Equal(t, "Puppets", kids.Programs[1].Title)
	for _, p := range kids.Programs {
		assert.Zero(t, p.DurationSeconds)
		assert.Equal(t, 1, p.Span)
	}
}

func TestCLI_ChannelsTable(t *testing.T) {
	home := t.TempDir()
	cfg := writeTestConfig(t, home)
	root := filepath.Join(home, "library")
	writeLibrary(t, root, "News/Headlines.mp4", "News/Weather.mp4")

	output, err := run(t, newCmd(t, home, "channels", "--config", cfg, root))
	require.NoError(t, err, output)
	for _, expected := range []string{"CHANNEL", "PROGRAM", "Headlines", "Weather", "?"} {
		assert.Contains(t, output, expected)
	}
}

func TestCLI_ChannelsLogLevel(t *testing.T) {
	home := t.TempDir()
	cfg := writeTestConfig(t, home)
	root := filepath.Join(home, "library")
	writeLibrary(t, root, "News/Headlines.mp4")

	tests := []struct {
		name    string
		args    []string
		wantLog bool
	}{
		{name: "table output logs info", args: []string{"channels", "--config", cfg, root}, wantLog: true},
		{name: "json output stays quiet", args: []string{"channels", "--json", "--config", cfg, root}, wantLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newCmd(t, home, tt.args...)
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr
			require.NoError(t, cmd.Run(), "stderr: %s", stderr.String())

			if tt.wantLog {
				assert.Contains(t, stderr.String(), "1 channels in")
			} else {
				assert.NotContains(t, stderr.String(), "channels in")
			}
		})
	}
}

func TestCLI_ChannelsEmptyLibrary(t *testing.T) {
	home := t.TempDir()
	cfg := writeTestConfig(t, home)

	output, err := run(t, newCmd(t, home, "channels", "--config", cfg, t.TempDir()))
	require.NoError(t, err, output)
	assert.Contains(t, output, "No channels found")
}

func TestCLI_Errors(t *testing.T) {
	home := t.TempDir()
	cfg := writeTestConfig(t, home)
	badCfg := filepath.Join(home, "bad.yaml")
	require.NoError(t, os.WriteFile(badCfg, []byte("visible_rows: 0\n"), 0o600))

	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{
			name:     "missing root",
			args:     []string{"channels", "--config", cfg, filepath.Join(home, "missing")},
			contains: "no such file",
		},
		{
			name:     "invalid config",
			args:     []string{"channels", "--config", badCfg, home},
			contains: "invalid config",
		},
		{
			name:     "too many arguments",
			args:     []string{"channels", "a", "b"},
			contains: "accepts at most 1 arg",
		},
		{
			name:     "rows out of range",
			args:     []string{"--config", cfg, "--rows", "0", home},
			contains: "invalid --rows 0",
		},
		{
			name:     "cols out of range",
			args:     []string{"--config", cfg, "--cols", "13", home},
			contains: "invalid --cols 13",
		},
		{
			name:     "guide on missing root",
			args:     []string{"--config", cfg, filepath.Join(home, "missing")},
			contains: "ROOT must be a readable directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := run(t, newCmd(t, home, tt.args...))
			require.Error(t, err)
			assert.Contains(t, output, tt.contains)
		})
	}
}

func TestCLI_ConfigInitAndShow(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, ".config", "tv-guide", "config.yaml")

	output, err := run(t, newCmd(t, home, "config", "init"))
	require.NoError(t, err, output)
	assert.Contains(t, output, path)
	assert.FileExists(t, path)

	output, err = run(t, newCmd(t, home, "config", "init"))
	require.Error(t, err)
	assert.Contains(t, output, "--force")

	output, err = run(t, newCmd(t, home, "config", "init", "--force"))
	require.NoError(t, err, output)

	output, err = run(t, newCmd(t, home, "config", "show"))
	require.NoError(t, err, output)
	for _, expected := range []string{"visible_rows: 5", "visible_cols: 3", "slot: 30m0s", "advert_name: ADVERT.mp4", "command: mpv"} {
		assert.Contains(t, output, expected)
	}
}
