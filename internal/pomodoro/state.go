package pomodoro

import "fmt"

// State is the mutable session state. Values are only produced by the
// transition functions in this package.
type State struct {
	Phase           Phase       `json:"phase"`
	Remaining       int         `json:"remaining"`
	Running         bool        `json:"running"`
	CompletedCycles int         `json:"completed_cycles"`
	Pending         ConfirmKind `json:"pending_confirm,omitempty"`
}

// IdleState returns the initial state.
func IdleState() State {
	return State{Phase: PhaseIdle}
}

// Validate checks the state invariants.
func (s State) Validate() error {
	if s.Remaining < 0 {
		return fmt.Errorf("remaining is negative: %d", s.Remaining)
	}
	if s.CompletedCycles < 0 {
		return fmt.Errorf("completed cycles is negative: %d", s.CompletedCycles)
	}
	if s.Phase == PhaseIdle && s.Remaining != 0 {
		return fmt.Errorf("idle with remaining %d", s.Remaining)
	}
	if s.Running && !s.Phase.Timed() {
		return fmt.Errorf("running in untimed phase %s", s.Phase)
	}
	gated := s.Phase.Awaiting() || s.Phase == PhaseSnoozing
	if gated != (s.Pending != ConfirmNone) {
		return fmt.Errorf("phase %s with pending confirm %q", s.Phase, s.Pending)
	}
	if s.Phase.Awaiting() && s.Phase.ConfirmKind() != s.Pending {
		return fmt.Errorf("phase %s with mismatched pending confirm %q", s.Phase, s.Pending)
	}
	return nil
}

// CyclesInSet returns how many work sessions of the current big cycle are done.
func (s State) CyclesInSet(cfg Config) int {
	if cfg.CyclesBeforeLongBreak <= 0 {
		return 0
	}
	return s.CompletedCycles % cfg.CyclesBeforeLongBreak
}

// Paused reports whether a timed phase is stopped mid-countdown.
func (s State) Paused() bool {
	return s.Phase.Timed() && !s.Running && s.Remaining > 0
}
