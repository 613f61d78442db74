// Package model defines shared data structures.
package model

import "time"

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since  *time.Time
	Last   int
	Window int
}

// PhaseRecord captures a finished work or break phase.
type PhaseRecord struct {
	ID             int64
	Phase          string
	StartedAt      time.Time
	EndedAt        time.Time
	PlannedSeconds int
	FocusedSeconds int
	Skipped        bool
	Cycle          int
}

// SnoozeRecord captures a deferred confirmation.
type SnoozeRecord struct {
	Kind      string
	SnoozedAt time.Time
}

// DayAggregate summarizes one calendar day of phases.
type DayAggregate struct {
	Day            time.Time
	WorkSessions   int
	FocusedSeconds int
	Breaks         int
	Skipped        int
	Snoozes        int
}
