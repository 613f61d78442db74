package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/pomopal/internal/config"
	"github.com/verte-zerg/pomopal/internal/model"
	"github.com/verte-zerg/pomopal/internal/pomodoro"
	"github.com/verte-zerg/pomopal/internal/store"
)

func TestDefaultConfigTemplateParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Pomodoro.Work != nil || cfg.Server.Addr != nil {
		t.Fatalf("expected every template value to be commented out, got %+v", cfg)
	}
}

func TestTimerFlagsOverrideFileConfig(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addTimerFlags(cmd.Flags())
	if err := cmd.Flags().Parse([]string{"--work", "40", "--snooze", "2"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	fileWork, fileCycles := 50, 3
	file := config.PomodoroConfig{Work: &fileWork, Cycles: &fileCycles}

	cfg := applyTimerFlags(cmd, file.Apply(pomodoro.DefaultConfig()))
	want := pomodoro.DefaultConfig()
	want.WorkSeconds = 40 * 60
	want.CyclesBeforeLongBreak = 3
	want.SnoozeSeconds = 2 * 60
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestTimerFlagDefaultsMatchDefaultConfig(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addTimerFlags(cmd.Flags())
	if err := cmd.Flags().Parse(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	defaults := pomodoro.DefaultConfig()
	if timerWork*60 != defaults.WorkSeconds || timerCycles != defaults.CyclesBeforeLongBreak {
		t.Fatalf("unexpected flag defaults work=%d cycles=%d", timerWork, timerCycles)
	}
	if cfg := applyTimerFlags(cmd, defaults); cfg != defaults {
		t.Fatalf("expected unchanged config, got %+v", cfg)
	}
}

func TestLinesCmdPrintsDefaults(t *testing.T) {
	linesWrite = false
	cmd := newLinesCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("lines: %v", err)
	}
	if !strings.Contains(buf.String(), "confirm_long_break:") {
		t.Fatalf("expected catalog yaml, got %q", buf.String())
	}
}

func TestRenderGuidePlain(t *testing.T) {
	out, err := renderGuide(80, false)
	if err != nil {
		t.Fatalf("render guide: %v", err)
	}
	if !strings.Contains(out, "pomopal stats") {
		t.Fatalf("expected commands in guide, got %q", out)
	}
}

func TestRenderStatsText(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "pomopal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	end := time.Now()
	rec := model.PhaseRecord{
		Phase:          "work",
		StartedAt:      end.Add(-25 * time.Minute),
		EndedAt:        end,
		PlannedSeconds: 1500,
		FocusedSeconds: 1500,
		Cycle:          1,
	}
	if _, err := st.InsertPhase(context.Background(), rec); err != nil {
		t.Fatalf("insert phase: %v", err)
	}

	var buf bytes.Buffer
	if err := renderStatsText(&buf, st, model.StatsConfig{Window: 7}); err != nil {
		t.Fatalf("render stats: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Pomodoros: 1", "Daily", "Focus minutes per day (7-day average)", "Latest 25m"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
