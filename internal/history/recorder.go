// Package history records finished pomodoro phases into the store.
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/verte-zerg/pomopal/internal/model"
	"github.com/verte-zerg/pomopal/internal/pomodoro"
)

// Sink persists history records.
type Sink interface {
	InsertPhase(ctx context.Context, rec model.PhaseRecord) (int64, error)
	InsertSnooze(ctx context.Context, rec model.SnoozeRecord) error
}

// Recorder turns session events into history records. It is a
// pomodoro.Handler and inherits the caller's serialization.
type Recorder struct {
	sink    Sink
	logger  *slog.Logger
	now     func() time.Time
	timeout time.Duration

	phase     pomodoro.Phase
	startedAt time.Time
	planned   int
	cycle     int
}

// NewRecorder creates a recorder writing to sink.
func NewRecorder(sink Sink, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		sink:    sink,
		logger:  logger,
		now:     time.Now,
		timeout: 5 * time.Second,
	}
}

// Handle consumes one session event.
func (r *Recorder) Handle(event pomodoro.Event) {
	switch event.Type {
	case pomodoro.EventPhaseStarted:
		r.phase = event.Phase
		r.startedAt = r.now()
		r.planned = event.Remaining
	case pomodoro.EventSessionFinished:
		r.finish(event)
	case pomodoro.EventSnoozeActivated:
		r.snooze(event)
	case pomodoro.EventReset:
		r.phase = ""
		r.cycle = 0
	}
}

func (r *Recorder) finish(event pomodoro.Event) {
	endedAt := r.now()
	startedAt := endedAt
	planned := event.Remaining
	if r.phase == event.Phase && !r.startedAt.IsZero() {
		startedAt = r.startedAt
		planned = r.planned
	}
	if event.Phase == pomodoro.PhaseWork {
		r.cycle++
	}
	r.phase = ""
	r.startedAt = time.Time{}

	rec := model.PhaseRecord{
		Phase:          string(event.Phase),
		StartedAt:      startedAt,
		EndedAt:        endedAt,
		PlannedSeconds: planned,
		FocusedSeconds: max(planned-event.Remaining, 0),
		Skipped:        event.Skipped,
		Cycle:          r.cycle,
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if _, err := r.sink.InsertPhase(ctx, rec); err != nil {
		r.logger.Error("record phase", "phase", rec.Phase, "err", err)
	}
}

func (r *Recorder) snooze(event pomodoro.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	rec := model.SnoozeRecord{Kind: string(event.Kind), SnoozedAt: r.now()}
	if err := r.sink.InsertSnooze(ctx, rec); err != nil {
		r.logger.Error("record snooze", "kind", rec.Kind, "err", err)
	}
}
