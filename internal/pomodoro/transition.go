package pomodoro

import "errors"

// ErrInvalidTransition reports an operation with no effect from the current phase.
var ErrInvalidTransition = errors.New("invalid transition")

// Op is a pure state transition. A false result leaves the state unchanged
// and carries no events.
type Op func(cfg Config, s State) (State, []Event, bool)

// Start begins work from idle, or accepts a pending confirmation.
func Start(cfg Config, s State) (State, []Event, bool) {
	var target Phase
	switch {
	case s.Phase == PhaseIdle:
		target = PhaseWork
	case s.Phase.Awaiting():
		target = s.Phase.ConfirmKind().TargetPhase()
	default:
		return s, nil, false
	}

	next := s
	next.Phase = target
	next.Remaining = cfg.SecondsFor(target)
	next.Running = true
	next.Pending = ConfirmNone
	return next, []Event{{
		Type:      EventPhaseStarted,
		Phase:     target,
		Remaining: next.Remaining,
		Running:   true,
	}}, true
}

// TogglePause stops or resumes the countdown of a timed phase.
func TogglePause(_ Config, s State) (State, []Event, bool) {
	if !s.Phase.Timed() || s.Remaining == 0 {
		return s, nil, false
	}
	next := s
	next.Running = !s.Running
	return next, []Event{{
		Type:      EventPauseToggled,
		Phase:     next.Phase,
		Remaining: next.Remaining,
		Running:   next.Running,
	}}, true
}

// Tick advances a running countdown by one second.
func Tick(cfg Config, s State) (State, []Event, bool) {
	if !s.Running || !s.Phase.Timed() {
		return s, nil, false
	}

	next := s
	var events []Event
	if next.Remaining > 0 {
		next.Remaining--
		events = append(events, Event{
			Type:      EventTick,
			Phase:     next.Phase,
			Remaining: next.Remaining,
			Running:   true,
		})
	}
	if next.Remaining == 0 {
		next.Running = false
		var completed []Event
		next, completed = complete(cfg, next, next.Phase, 0, false)
		events = append(events, completed...)
	}
	return next, events, true
}

// Snooze defers a pending confirmation by the snooze duration.
func Snooze(cfg Config, s State) (State, []Event, bool) {
	if !s.Phase.Awaiting() {
		return s, nil, false
	}
	kind := s.Phase.ConfirmKind()
	next := s
	next.Phase = PhaseSnoozing
	next.Remaining = cfg.SnoozeSeconds
	next.Running = true
	next.Pending = kind
	return next, []Event{{
		Type:      EventSnoozeActivated,
		Kind:      kind,
		Remaining: next.Remaining,
		Running:   true,
	}}, true
}

// Skip completes the current timed phase immediately. From a confirmation
// it completes the gated phase without running it, announcing it as
// finished.
func Skip(cfg Config, s State) (State, []Event, bool) {
	switch {
	case s.Phase.Timed():
		unelapsed := s.Remaining
		next := s
		next.Remaining = 0
		next.Running = false
		next, events := complete(cfg, next, s.Phase, unelapsed, true)
		return next, events, true
	case s.Phase.Awaiting():
		finished := s.Phase.ConfirmKind().TargetPhase()
		next := s
		next.Running = false
		next, events := complete(cfg, next, finished, cfg.SecondsFor(finished), true)
		return next, events, true
	}
	return s, nil, false
}

// Reset returns to idle and clears the cycle count. Valid from any phase.
func Reset(_ Config, _ State) (State, []Event, bool) {
	next := IdleState()
	return next, []Event{{Type: EventReset, Phase: PhaseIdle}}, true
}

// Reconfigure re-derives the previewed duration of a confirmation state
// after a config change. Started countdowns are left alone.
func Reconfigure(cfg Config, s State) State {
	if s.Running || !s.Phase.Awaiting() {
		return s
	}
	next := s
	next.Remaining = cfg.SecondsFor(s.Phase)
	return next
}

// complete routes a finished phase into the next confirmation state.
func complete(cfg Config, s State, finished Phase, unelapsed int, skipped bool) (State, []Event) {
	var events []Event
	if finished == PhaseWork || finished == PhaseShortBreak || finished == PhaseLongBreak {
		events = append(events, Event{
			Type:      EventSessionFinished,
			Phase:     finished,
			Remaining: unelapsed,
			Skipped:   skipped,
		})
	}

	var kind ConfirmKind
	switch finished {
	case PhaseWork:
		s.CompletedCycles++
		if s.CompletedCycles%max(cfg.CyclesBeforeLongBreak, 1) == 0 {
			kind = ConfirmLongBreak
		} else {
			kind = ConfirmShortBreak
		}
	case PhaseShortBreak, PhaseLongBreak:
		kind = ConfirmWork
	case PhaseSnoozing:
		kind = s.Pending
	}
	if kind == ConfirmNone {
		// Snooze without a recorded confirmation cannot happen through the
		// public operations; fall back to work.
		kind = ConfirmWork
	}

	s.Phase = kind.AwaitingPhase()
	s.Running = false
	s.Pending = kind
	s.Remaining = cfg.SecondsFor(kind.TargetPhase())
	events = append(events, Event{
		Type:      EventConfirmationRequired,
		Kind:      kind,
		Remaining: s.Remaining,
	})
	return s, events
}
