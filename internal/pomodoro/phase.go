// Package pomodoro implements the pomodoro session state machine.
package pomodoro

// Phase is the current stage of the pomodoro cycle.
type Phase string

const (
	PhaseIdle                      Phase = "idle"
	PhaseWork                      Phase = "work"
	PhaseShortBreak                Phase = "short_break"
	PhaseLongBreak                 Phase = "long_break"
	PhaseSnoozing                  Phase = "snoozing"
	PhaseAwaitingWorkConfirm       Phase = "awaiting_work_confirm"
	PhaseAwaitingShortBreakConfirm Phase = "awaiting_short_break_confirm"
	PhaseAwaitingLongBreakConfirm  Phase = "awaiting_long_break_confirm"
)

// Timed reports whether the phase counts down.
func (phase Phase) Timed() bool {
	switch phase {
	case PhaseWork, PhaseShortBreak, PhaseLongBreak, PhaseSnoozing:
		return true
	}
	return false
}

// Awaiting reports whether the phase waits for a user confirmation.
func (phase Phase) Awaiting() bool {
	return phase.ConfirmKind() != ConfirmNone
}

// ConfirmKind returns the kind gated by an awaiting phase, or ConfirmNone.
func (phase Phase) ConfirmKind() ConfirmKind {
	switch phase {
	case PhaseAwaitingWorkConfirm:
		return ConfirmWork
	case PhaseAwaitingShortBreakConfirm:
		return ConfirmShortBreak
	case PhaseAwaitingLongBreakConfirm:
		return ConfirmLongBreak
	}
	return ConfirmNone
}

// Title is a short human label.
func (phase Phase) Title() string {
	switch phase {
	case PhaseIdle:
		return "Idle"
	case PhaseWork:
		return "Working"
	case PhaseShortBreak:
		return "Short break"
	case PhaseLongBreak:
		return "Long break"
	case PhaseSnoozing:
		return "Snoozing"
	case PhaseAwaitingWorkConfirm:
		return "Ready to work"
	case PhaseAwaitingShortBreakConfirm:
		return "Ready for a short break"
	case PhaseAwaitingLongBreakConfirm:
		return "Ready for a long break"
	}
	return string(phase)
}

// ConfirmKind identifies which phase a pending confirmation will start.
type ConfirmKind string

const (
	ConfirmNone       ConfirmKind = ""
	ConfirmWork       ConfirmKind = "work"
	ConfirmShortBreak ConfirmKind = "short_break"
	ConfirmLongBreak  ConfirmKind = "long_break"
)

// AwaitingPhase returns the confirmation phase for the kind.
func (kind ConfirmKind) AwaitingPhase() Phase {
	switch kind {
	case ConfirmWork:
		return PhaseAwaitingWorkConfirm
	case ConfirmShortBreak:
		return PhaseAwaitingShortBreakConfirm
	case ConfirmLongBreak:
		return PhaseAwaitingLongBreakConfirm
	}
	return PhaseIdle
}

// TargetPhase returns the timed phase started once the kind is confirmed.
func (kind ConfirmKind) TargetPhase() Phase {
	switch kind {
	case ConfirmWork:
		return PhaseWork
	case ConfirmShortBreak:
		return PhaseShortBreak
	case ConfirmLongBreak:
		return PhaseLongBreak
	}
	return PhaseIdle
}

// IsBreak reports whether the kind gates a break.
func (kind ConfirmKind) IsBreak() bool {
	return kind == ConfirmShortBreak || kind == ConfirmLongBreak
}
