// Package main provides the CLI entrypoint for pomopal.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/verte-zerg/pomopal/internal/companion"
	"github.com/verte-zerg/pomopal/internal/config"
	"github.com/verte-zerg/pomopal/internal/history"
	"github.com/verte-zerg/pomopal/internal/logging"
	"github.com/verte-zerg/pomopal/internal/pomodoro"
	"github.com/verte-zerg/pomopal/internal/store"
	"github.com/verte-zerg/pomopal/internal/tui"
)

const defaultLogLevel = "info"

var (
	timerWork       int
	timerShortBreak int
	timerLongBreak  int
	timerCycles     int
	timerSnooze     int
	companionName   string
	companionLines  string
	logLevel        string
	logFile         string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pomopal",
		Short:         "Pomodoro timer with a companion",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTimerCmd,
	}

	addTimerFlags(rootCmd.Flags())
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file path (default: XDG state dir)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newLinesCmd())
	rootCmd.AddCommand(newGuideCmd())

	return rootCmd
}

func addTimerFlags(flags *pflag.FlagSet) {
	defaults := pomodoro.DefaultConfig()
	flags.IntVar(&timerWork, "work", defaults.WorkSeconds/60, "work minutes")
	flags.IntVar(&timerShortBreak, "short-break", defaults.ShortBreakSeconds/60, "short break minutes")
	flags.IntVar(&timerLongBreak, "long-break", defaults.LongBreakSeconds/60, "long break minutes")
	flags.IntVar(&timerCycles, "cycles", defaults.CyclesBeforeLongBreak, "work sessions before a long break")
	flags.IntVar(&timerSnooze, "snooze", defaults.SnoozeSeconds/60, "snooze minutes")
	flags.StringVar(&companionName, "name", companion.DefaultName, "companion name")
	flags.StringVar(&companionLines, "lines", "", "custom companion lines YAML (default: XDG config dir)")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")
}

// loadTimerConfig merges the config file under the flags of cmd and returns
// the validated timer config.
func loadTimerConfig(cmd *cobra.Command) (config.FileConfig, pomodoro.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, pomodoro.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "name", &companionName, fileCfg.Companion.Name)
	applyStringConfig(cmd, "lines", &companionLines, fileCfg.Companion.Lines)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	cfg := applyTimerFlags(cmd, fileCfg.Pomodoro.Apply(pomodoro.DefaultConfig()))
	if err := cfg.Validate(); err != nil {
		return config.FileConfig{}, pomodoro.Config{}, fmt.Errorf("invalid timer settings: %w", err)
	}
	return fileCfg, cfg, nil
}

// applyTimerFlags copies the timer flags set on the command line onto cfg.
func applyTimerFlags(cmd *cobra.Command, cfg pomodoro.Config) pomodoro.Config {
	flags := cmd.Flags()
	if flags.Changed("work") {
		cfg.WorkSeconds = timerWork * 60
	}
	if flags.Changed("short-break") {
		cfg.ShortBreakSeconds = timerShortBreak * 60
	}
	if flags.Changed("long-break") {
		cfg.LongBreakSeconds = timerLongBreak * 60
	}
	if flags.Changed("cycles") {
		cfg.CyclesBeforeLongBreak = timerCycles
	}
	if flags.Changed("snooze") {
		cfg.SnoozeSeconds = timerSnooze * 60
	}
	return cfg
}

func loadCompanion() (*companion.Companion, error) {
	path := companionLines
	if path == "" {
		path = config.DefaultLinesPath()
	}
	catalog, err := companion.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load companion lines: %w", err)
	}
	return companion.New(companionName, catalog), nil
}

func runTimerCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, timerCfg, err := loadTimerConfig(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	path := logFile
	if path == "" {
		path = config.DefaultLogPath()
	}
	// The terminal belongs to the UI, so logs go to a file.
	logger, logCloser, err := logging.OpenFile(path, level)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logCloser.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()

	comp, err := loadCompanion()
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	session, err := pomodoro.NewSession(timerCfg, pomodoro.WithLogger(logger))
	if err != nil {
		return err
	}
	session.Subscribe(history.NewRecorder(st, logger).Handle)

	logger.Info("timer started",
		"work", timerCfg.WorkSeconds,
		"short_break", timerCfg.ShortBreakSeconds,
		"long_break", timerCfg.LongBreakSeconds,
		"cycles", timerCfg.CyclesBeforeLongBreak,
		"snooze", timerCfg.SnoozeSeconds,
	)
	model := tui.NewModel(session, comp, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("tui failed", "err", err)
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	state := session.State()
	logger.Info("timer stopped", slog.String("phase", string(state.Phase)), slog.Int("cycles", state.CompletedCycles))
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	defaults := pomodoro.DefaultConfig()
	return fmt.Sprintf(`# pomopal configuration
# Uncomment a value to enable it. CLI flags override config values.

[pomodoro]
# work = %d               # Work minutes
# short-break = %d         # Short break minutes
# long-break = %d         # Long break minutes
# cycles = %d              # Work sessions before a long break
# snooze = %d              # Snooze minutes

[companion]
# name = %q
# lines = %q

[server]
# addr = %q

[log]
# level = %q
# file = %q
`,
		defaults.WorkSeconds/60,
		defaults.ShortBreakSeconds/60,
		defaults.LongBreakSeconds/60,
		defaults.CyclesBeforeLongBreak,
		defaults.SnoozeSeconds/60,
		companion.DefaultName,
		config.DefaultLinesPath(),
		defaultAddr,
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
