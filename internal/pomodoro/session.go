package pomodoro

import (
	"fmt"
	"log/slog"
)

// Session owns a State and applies transitions to it. Handlers run
// synchronously, in subscription order, after each applied transition.
// A Session is not safe for concurrent use; see Driver.
type Session struct {
	config   Config
	state    State
	handlers []Handler
	logger   *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for transition tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(session *Session) {
		if logger != nil {
			session.logger = logger
		}
	}
}

// NewSession creates an idle session.
func NewSession(config Config, opts ...Option) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	session := &Session{
		config: config,
		state:  IdleState(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(session)
	}
	return session, nil
}

// Subscribe registers an event handler.
func (session *Session) Subscribe(handler Handler) {
	if handler == nil {
		return
	}
	session.handlers = append(session.handlers, handler)
}

// State returns a copy of the current state.
func (session *Session) State() State {
	return session.state
}

// Config returns the active config.
func (session *Session) Config() Config {
	return session.config
}

// SetConfig replaces the config. A pending confirmation immediately
// previews the new duration; a started countdown keeps its remaining time.
func (session *Session) SetConfig(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	session.config = config
	session.state = Reconfigure(config, session.state)
	session.logger.Debug("pomodoro config updated",
		"work", config.WorkSeconds,
		"short_break", config.ShortBreakSeconds,
		"long_break", config.LongBreakSeconds,
		"cycles", config.CyclesBeforeLongBreak,
		"snooze", config.SnoozeSeconds,
		"phase", session.state.Phase,
		"remaining", session.state.Remaining,
	)
	return nil
}

// Start begins work or accepts the pending confirmation.
func (session *Session) Start() bool { return session.apply("start", Start) }

// TogglePause pauses or resumes the running countdown.
func (session *Session) TogglePause() bool { return session.apply("toggle_pause", TogglePause) }

// Tick advances the countdown by one second.
func (session *Session) Tick() bool { return session.apply("tick", Tick) }

// Snooze defers the pending confirmation.
func (session *Session) Snooze() bool { return session.apply("snooze", Snooze) }

// Skip completes the current phase immediately.
func (session *Session) Skip() bool { return session.apply("skip", Skip) }

// Reset returns to idle and clears the cycle count.
func (session *Session) Reset() bool { return session.apply("reset", Reset) }

// Apply runs a named operation and reports rejection as ErrInvalidTransition.
func (session *Session) Apply(name string) error {
	op, ok := operations[name]
	if !ok {
		return fmt.Errorf("unknown operation %q", name)
	}
	if !session.apply(name, op) {
		return fmt.Errorf("%s from %s: %w", name, session.state.Phase, ErrInvalidTransition)
	}
	return nil
}

var operations = map[string]Op{
	"start":        Start,
	"toggle_pause": TogglePause,
	"tick":         Tick,
	"snooze":       Snooze,
	"skip":         Skip,
	"reset":        Reset,
}

func (session *Session) apply(name string, op Op) bool {
	previous := session.state
	next, events, ok := op(session.config, previous)
	if !ok {
		if name != "tick" {
			session.logger.Debug("pomodoro transition rejected", "op", name, "phase", previous.Phase)
		}
		return false
	}
	if err := next.Validate(); err != nil {
		session.logger.Error("pomodoro transition broke state invariant", "op", name, "phase", previous.Phase, "err", err)
		return false
	}
	session.state = next
	if previous.Phase != next.Phase {
		session.logger.Debug("pomodoro transition",
			"op", name,
			"from", previous.Phase,
			"to", next.Phase,
			"remaining", next.Remaining,
			"cycles", next.CompletedCycles,
		)
	}
	for _, event := range events {
		for _, handler := range session.handlers {
			handler(event)
		}
	}
	return true
}
