package pomodoro

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by Config.Validate failures.
var ErrInvalidConfig = errors.New("invalid pomodoro config")

// Config holds the session durations in seconds.
type Config struct {
	WorkSeconds           int `json:"work_seconds"`
	ShortBreakSeconds     int `json:"short_break_seconds"`
	LongBreakSeconds      int `json:"long_break_seconds"`
	CyclesBeforeLongBreak int `json:"cycles_before_long_break"`
	SnoozeSeconds         int `json:"snooze_seconds"`
}

// DefaultConfig returns the classic 25/5/15 schedule with a 5 minute snooze.
func DefaultConfig() Config {
	return Config{
		WorkSeconds:           25 * 60,
		ShortBreakSeconds:     5 * 60,
		LongBreakSeconds:      15 * 60,
		CyclesBeforeLongBreak: 4,
		SnoozeSeconds:         5 * 60,
	}
}

// Validate checks that every field is positive.
func (cfg Config) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"work", cfg.WorkSeconds},
		{"short break", cfg.ShortBreakSeconds},
		{"long break", cfg.LongBreakSeconds},
		{"cycles before long break", cfg.CyclesBeforeLongBreak},
		{"snooze", cfg.SnoozeSeconds},
	}
	for _, field := range fields {
		if field.value <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %d", ErrInvalidConfig, field.name, field.value)
		}
	}
	return nil
}

// SecondsFor returns the countdown length of a timed phase.
// Awaiting phases report the duration of the phase they gate.
func (cfg Config) SecondsFor(phase Phase) int {
	switch phase {
	case PhaseWork:
		return cfg.WorkSeconds
	case PhaseShortBreak:
		return cfg.ShortBreakSeconds
	case PhaseLongBreak:
		return cfg.LongBreakSeconds
	case PhaseSnoozing:
		return cfg.SnoozeSeconds
	}
	if kind := phase.ConfirmKind(); kind != ConfirmNone {
		return cfg.SecondsFor(kind.TargetPhase())
	}
	return 0
}
