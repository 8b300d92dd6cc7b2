package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/tv-guide/internal/validate"
)

const (
	defaultVisibleRows  = 5
	defaultVisibleCols  = 3
	defaultSlot         = 30 * time.Minute
	defaultMaxSpan      = 3
	defaultProbeTimeout = 10 * time.Second

	// DefaultAdvertName is the per-channel preview clip, excluded from program listings.
	DefaultAdvertName = "ADVERT.mp4"
)

var (
	// ErrInvalidConfig wraps every validation failure of a loaded or merged Config.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrConfigExists is returned by Write when the target exists and overwrite is off.
	ErrConfigExists = errors.New("config file already exists")
)

// ProbeConfig controls how media metadata is extracted.
type ProbeConfig struct {
	Command string        `yaml:"command" validate:"required"`
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`
}

// PlayerConfig controls the external preview player.
type PlayerConfig struct {
	Command  string   `yaml:"command" validate:"required_unless=Disabled true"`
	Args     []string `yaml:"args,omitempty"`
	Disabled bool     `yaml:"disabled"`
}

// Config is the effective application configuration.
type Config struct {
	Root        string        `yaml:"root,omitempty"`
	VisibleRows int           `yaml:"visible_rows" validate:"min=1,max=50"`
	VisibleCols int           `yaml:"visible_cols" validate:"min=1,max=12"`
	Slot        time.Duration `yaml:"slot" validate:"min=1m"`
	MaxSpan     int           `yaml:"max_span" validate:"min=1,max=12"`
	AdvertName  string        `yaml:"advert_name" validate:"required,excludesall=/\\"`
	Extensions  []string      `yaml:"extensions" validate:"required,dive,videoext"`
	Probe       ProbeConfig   `yaml:"probe"`
	Player      PlayerConfig  `yaml:"player"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		VisibleRows: defaultVisibleRows,
		VisibleCols: defaultVisibleCols,
		Slot:        defaultSlot,
		MaxSpan:     defaultMaxSpan,
		AdvertName:  DefaultAdvertName,
		Extensions:  []string{".mp4"},
		Probe: ProbeConfig{
			Command: "ffprobe",
			Timeout: defaultProbeTimeout,
		},
		Player: PlayerConfig{
			Command: "mpv",
			Args:    []string{"--no-terminal", "--force-window=yes", "--loop-file=inf", "--title=tv-guide preview"},
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tv-guide/config.yaml,
// falling back to ~/.config/tv-guide/config.yaml if unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join("~", ".config")
	}
	return filepath.Join(dir, "tv-guide", "config.yaml")
}

// Load reads the config file at path over the defaults. A missing file is not an
// error; the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := ExpandTilde(path)
	if err != nil {
		return cfg, err
	}
	logrus.Debug("Loading config file from: ", expanded)

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Debugf("config file %s not found; using defaults", expanded)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", expanded, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parsing %s: %w", ErrInvalidConfig, expanded, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field constraints and expands ~ in Root.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Root != "" {
		root, err := ExpandTilde(c.Root)
		if err != nil {
			return err
		}
		c.Root = root
	}
	return nil
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Write stores the config at path, creating parent directories. An existing file is
// only replaced when overwrite is set.
func Write(path string, c Config, overwrite bool) (string, error) {
	expanded, err := ExpandTilde(path)
	if err != nil {
		return "", err
	}
	if !overwrite {
		if _, err := os.Stat(expanded); err == nil {
			return expanded, fmt.Errorf("%w: %s", ErrConfigExists, expanded)
		}
	}

	logrus.Debug("Saving config file to: ", expanded)
	if err := os.MkdirAll(filepath.Dir(expanded), 0o700); err != nil {
		return expanded, err
	}
	body, err := c.Marshal()
	if err != nil {
		return expanded, err
	}
	data := append([]byte(header), body...)
	return expanded, os.WriteFile(expanded, data, 0o600)
}

const header = `# tv-guide configuration.
# root:         directory whose sub-folders become channels (overridden by the ROOT argument)
# visible_rows: channel rows shown at once
# visible_cols: time slots shown at once
# slot:         schedule time covered by one column (Go duration)
# max_span:     widest a program cell may grow, in slots
# advert_name:  per-channel preview clip, never listed as a program
# extensions:   file extensions treated as video (case-insensitive)
`

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
