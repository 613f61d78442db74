package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/pomopal/internal/pomodoro"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load missing config: %v", err)
	}
	if cfg.Pomodoro.Work != nil || cfg.Companion.Name != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigAppliesMinutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[pomodoro]
work = 50
short-break = 10
cycles = 3

[companion]
name = "Mochi"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	applied := cfg.Pomodoro.Apply(pomodoro.DefaultConfig())
	want := pomodoro.DefaultConfig()
	want.WorkSeconds = 50 * 60
	want.ShortBreakSeconds = 10 * 60
	want.CyclesBeforeLongBreak = 3
	if applied != want {
		t.Fatalf("expected %+v, got %+v", want, applied)
	}
	if cfg.Companion.Name == nil || *cfg.Companion.Name != "Mochi" {
		t.Fatalf("companion name not decoded")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("log level not decoded")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[pomodoro]\nwrok = 25\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "pomopal", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "pomopal", "pomopal.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "pomopal", "pomopal.log") {
		t.Fatalf("unexpected log path %s", got)
	}
}
