// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/pomopal/internal/pomodoro"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Pomodoro  PomodoroConfig  `toml:"pomodoro"`
	Companion CompanionConfig `toml:"companion"`
	Server    ServerConfig    `toml:"server"`
	Log       LogConfig       `toml:"log"`
}

// PomodoroConfig maps timer settings. Durations are in minutes.
type PomodoroConfig struct {
	Work       *int `toml:"work"`
	ShortBreak *int `toml:"short-break"`
	LongBreak  *int `toml:"long-break"`
	Cycles     *int `toml:"cycles"`
	Snooze     *int `toml:"snooze"`
}

// CompanionConfig maps companion character settings.
type CompanionConfig struct {
	Name  *string `toml:"name"`
	Lines *string `toml:"lines"`
}

// ServerConfig maps HTTP API settings.
type ServerConfig struct {
	Addr *string `toml:"addr"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Apply overlays the file's minute values onto a pomodoro config.
func (p PomodoroConfig) Apply(cfg pomodoro.Config) pomodoro.Config {
	if p.Work != nil {
		cfg.WorkSeconds = *p.Work * 60
	}
	if p.ShortBreak != nil {
		cfg.ShortBreakSeconds = *p.ShortBreak * 60
	}
	if p.LongBreak != nil {
		cfg.LongBreakSeconds = *p.LongBreak * 60
	}
	if p.Cycles != nil {
		cfg.CyclesBeforeLongBreak = *p.Cycles
	}
	if p.Snooze != nil {
		cfg.SnoozeSeconds = *p.Snooze * 60
	}
	return cfg
}
