package main

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/pomopal/internal/config"
	"github.com/verte-zerg/pomopal/internal/model"
	"github.com/verte-zerg/pomopal/internal/stats"
	"github.com/verte-zerg/pomopal/internal/statsui"
	"github.com/verte-zerg/pomopal/internal/store"
)

const defaultStatsWindow = 7

var (
	statsSince  string
	statsLast   int
	statsWindow int
	statsPlain  bool
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show focus history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to the last N days")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window in days")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the interactive view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsWindow < 1 {
		return fmt.Errorf("--window must be >= 1")
	}

	cfg := model.StatsConfig{
		Since:  sinceTime,
		Last:   statsLast,
		Window: statsWindow,
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

	out := cmd.OutOrStdout()
	if !statsPlain && stats.IsTerminal(out) {
		program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}
	return renderStatsText(out, st, cfg)
}

func renderStatsText(out io.Writer, src stats.Source, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(context.Background(), src, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := stats.RenderSummary(out, report); err != nil {
		return err
	}
	if err := stats.RenderDaily(out, report.Days); err != nil {
		return err
	}
	return stats.RenderTrend(out, report.Days, cfg.Window, stats.TerminalWidth(), 0, stats.ShouldUseColor(out))
}
