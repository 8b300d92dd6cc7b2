package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/tv-guide/internal/config"
	"github.com/ensigniasec/tv-guide/internal/guide"
	"github.com/ensigniasec/tv-guide/internal/media"
	"github.com/ensigniasec/tv-guide/internal/player"
	"github.com/ensigniasec/tv-guide/internal/tui"
	"github.com/ensigniasec/tv-guide/internal/validate"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configFile  string
	logFile     string
	verbose     bool
	jsonOutput  bool
	forceWrite  bool
	noVideo     bool
	visibleRows int
	visibleCols int

	rootCmd = &cobra.Command{
		Use:   "tv-guide [ROOT]",
		Short: "Browse a folder of videos as a TV listings grid.",
		Long: `Every sub-folder of ROOT holding video files becomes a channel row and every file a program.
Moving between channels plays the channel's preview clip (ADVERT.mp4 by default) in mpv;
the selected program's description is read with ffprobe.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runGuide,
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to avoid polluting stdout, especially for --json output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/tv-guide/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to this file while the guide is open")

	rootCmd.Flags().IntVar(&visibleRows, "rows", 0, "Channel rows shown at once (overrides config)")
	rootCmd.Flags().IntVar(&visibleCols, "cols", 0, "Time slots shown at once (overrides config)")
	rootCmd.Flags().BoolVar(&noVideo, "no-video", false, "Do not start the preview player")

	channelsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output channels in JSON format instead of a table")
	configInitCmd.Flags().BoolVar(&forceWrite, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(channelsCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func main() {
	Execute()
}

func setLogLevel(quiet bool) {
	switch {
	case verbose:
		logrus.SetLevel(logrus.DebugLevel)
	case quiet:
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func configPath() string {
	if configFile != "" {
		return configFile
	}
	return config.DefaultPath()
}

// loadConfig reads the config file and applies the ROOT argument and command-line overrides.
func loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return cfg, err
	}
	if len(args) == 1 {
		cfg.Root = args[0]
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if f := cmd.Flags().Lookup("rows"); f != nil && f.Changed {
		if err := validate.Var(visibleRows, "min=1,max=50"); err != nil {
			return cfg, fmt.Errorf("invalid --rows %d: %w", visibleRows, err)
		}
		cfg.VisibleRows = visibleRows
	}
	if f := cmd.Flags().Lookup("cols"); f != nil && f.Changed {
		if err := validate.Var(visibleCols, "min=1,max=12"); err != nil {
			return cfg, fmt.Errorf("invalid --cols %d: %w", visibleCols, err)
		}
		cfg.VisibleCols = visibleCols
	}
	if noVideo {
		cfg.Player.Disabled = true
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return cfg, fmt.Errorf("resolving %s: %w", cfg.Root, err)
	}
	cfg.Root = root
	return cfg, nil
}

func newInspector(cfg config.Config) *media.Inspector {
	return media.NewInspector(media.Options{
		AdvertName:   cfg.AdvertName,
		Extensions:   cfg.Extensions,
		ProbeCommand: cfg.Probe.Command,
		ProbeTimeout: cfg.Probe.Timeout,
	})
}

type previewPlayer interface {
	PlayMedia(path string)
	Close() error
}

//nolint:gochecknoglobals // replaced in tests.
var (
	playerFactory = newPlayer
	runTUI        = tui.Run
)

func newPlayer(cfg config.Config) previewPlayer { //nolint:ireturn
	if cfg.Player.Disabled {
		return player.Nop{}
	}
	if _, err := player.Lookup(cfg.Player.Command); err != nil {
		logrus.Warnf("%v; previews disabled", err)
		return player.Nop{}
	}
	return player.NewMPV(player.Options{Command: cfg.Player.Command, Args: cfg.Player.Args})
}

func openLogFile() (io.WriteCloser, error) {
	if logFile == "" {
		return nil, nil //nolint:nilnil // no log file requested
	}
	path, err := config.ExpandTilde(logFile)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

func runGuide(cmd *cobra.Command, args []string) {
	setLogLevel(false)

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		logrus.Fatal(err)
	}
	if st, err := os.Stat(cfg.Root); err != nil || !st.IsDir() {
		logrus.Fatalf("ROOT must be a readable directory: %s", cfg.Root)
	}
	if err := playGuide(cmd.Context(), cfg); err != nil {
		logrus.Fatal(err)
	}
}

// playGuide runs one guide session. The player and the log file are released before
// it returns, whether or not the session failed.
func playGuide(ctx context.Context, cfg config.Config) error {
	lf, err := openLogFile()
	if err != nil {
		return err
	}
	var logOut io.Writer
	if lf != nil {
		defer lf.Close()
		logOut = lf
	}

	p := playerFactory(cfg)
	defer func() {
		if err := p.Close(); err != nil {
			logrus.Debugf("closing player: %v", err)
		}
	}()

	if err := runTUI(ctx, cfg, newInspector(cfg), p, logOut); err != nil {
		return fmt.Errorf("guide failed: %w", err)
	}
	return nil
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var channelsCmd = &cobra.Command{
	Use:   "channels [ROOT]",
	Short: "Print the channel listing without opening the guide",
	Long:  "Scan ROOT, probe every program's length and print the resulting channels as a table or JSON.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(jsonOutput)

		cfg, err := loadConfig(cmd, args)
		if err != nil {
			logrus.Fatal(err)
		}
		in := newInspector(cfg)
		folders, err := in.ScanFolders(cmd.Context(), cfg.Root)
		if err != nil {
			logrus.Fatal(err)
		}
		grid, err := guide.Build(cmd.Context(), cfg.Root, folders, in, guide.BuildOptions{
			Slot:       cfg.Slot,
			MaxSpan:    cfg.MaxSpan,
			Extensions: cfg.Extensions,
		})
		if err != nil {
			logrus.Fatal(err)
		}

		logrus.Infof("%d channels in %s", grid.RowCount(), cfg.Root)

		out := cmd.OutOrStdout()
		if jsonOutput {
			if err := writeChannelsJSON(out, grid, in); err != nil {
				logrus.Fatal(err)
			}
			return
		}
		writeChannelsTable(out, grid)
	},
}

type channelJSON struct {
	Label    string        `json:"label"`
	Folder   string        `json:"folder"`
	Dir      string        `json:"dir"`
	Preview  string        `json:"preview,omitempty"`
	Programs []programJSON `json:"programs"`
}

type programJSON struct {
	Title           string  `json:"title"`
	Path            string  `json:"path"`
	DurationSeconds float64 `json:"duration_seconds"`
	Span            int     `json:"span"`
}

func writeChannelsJSON(w io.Writer, grid *guide.Grid, locator guide.AdvertLocator) error {
	channels := make([]channelJSON, 0, grid.RowCount())
	for _, row := range grid.Rows() {
		ch := channelJSON{
			Label:    strings.ReplaceAll(row.Label, "\n", " "),
			Folder:   row.Folder,
			Dir:      row.Dir,
			Programs: make([]programJSON, 0, len(row.Entries)),
		}
		if p, ok := locator.AdvertPath(row.Dir); ok {
			ch.Preview = p
		}
		for _, e := range row.Entries {
			ch.Programs = append(ch.Programs, programJSON{
				Title:           e.DisplayName,
				Path:            e.SourcePath,
				DurationSeconds: e.DurationSeconds,
				Span:            e.Span,
			})
		}
		channels = append(channels, ch)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(channels)
}

func writeChannelsTable(w io.Writer, grid *guide.Grid) {
	if grid.RowCount() == 0 {
		fmt.Fprintln(w, "No channels found")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CHANNEL", "#", "PROGRAM", "LENGTH", "SLOTS")
	for _, row := range grid.Rows() {
		label := strings.ReplaceAll(row.Label, "\n", " / ")
		for i, e := range row.Entries {
			length := "?"
			if e.DurationSeconds > 0 {
				length = time.Duration(e.DurationSeconds * float64(time.Second)).Round(time.Second).String()
			}
			t.Row(label, strconv.Itoa(i+1), e.DisplayName, length, strconv.Itoa(e.Span))
			label = ""
		}
	}
	fmt.Fprintln(w, t.Render())
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.Write(configPath(), config.Default(), forceWrite)
		if errors.Is(err, config.ErrConfigExists) {
			logrus.Fatalf("%v (use --force to overwrite)", err)
		}
		if err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath())
		if err != nil {
			logrus.Fatal(err)
		}
		data, err := cfg.Marshal()
		if err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	},
}
