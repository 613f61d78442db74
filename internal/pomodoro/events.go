package pomodoro

// EventType defines the type of session event.
type EventType string

const (
	EventSessionFinished      EventType = "session_finished"
	EventConfirmationRequired EventType = "confirmation_required"
	EventSnoozeActivated      EventType = "snooze_activated"
	EventTick                 EventType = "tick"
	EventPhaseStarted         EventType = "phase_started"
	EventPauseToggled         EventType = "pause_toggled"
	EventReset                EventType = "reset"
)

// Event represents a session update for observers.
//
// Phase is set for session_finished, tick, phase_started and pause_toggled.
// Kind is set for confirmation_required and snooze_activated.
// For session_finished, Remaining is the countdown left when the phase ended
// (non-zero when it was skipped) and Skipped marks a forced completion.
type Event struct {
	Type      EventType   `json:"type"`
	Phase     Phase       `json:"phase,omitempty"`
	Kind      ConfirmKind `json:"kind,omitempty"`
	Remaining int         `json:"remaining"`
	Running   bool        `json:"running"`
	Skipped   bool        `json:"skipped,omitempty"`
}

// Handler receives session events in emission order.
type Handler func(Event)
