package history

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/verte-zerg/pomopal/internal/model"
	"github.com/verte-zerg/pomopal/internal/pomodoro"
)

type memorySink struct {
	phases  []model.PhaseRecord
	snoozes []model.SnoozeRecord
	err     error
}

func (m *memorySink) InsertPhase(_ context.Context, rec model.PhaseRecord) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.phases = append(m.phases, rec)
	return int64(len(m.phases)), nil
}

func (m *memorySink) InsertSnooze(_ context.Context, rec model.SnoozeRecord) error {
	if m.err != nil {
		return m.err
	}
	m.snoozes = append(m.snoozes, rec)
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestRecorder(t *testing.T, sink Sink) (*Recorder, *fakeClock, *pomodoro.Session) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	rec := NewRecorder(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec.now = clock.Now
	cfg := pomodoro.Config{
		WorkSeconds:           3,
		ShortBreakSeconds:     2,
		LongBreakSeconds:      4,
		CyclesBeforeLongBreak: 2,
		SnoozeSeconds:         1,
	}
	session, err := pomodoro.NewSession(cfg)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	session.Subscribe(rec.Handle)
	return rec, clock, session
}

func TestRecorderCompletedWork(t *testing.T) {
	sink := &memorySink{}
	_, clock, session := newTestRecorder(t, sink)

	session.Start()
	for range 3 {
		clock.now = clock.now.Add(time.Second)
		session.Tick()
	}

	if len(sink.phases) != 1 {
		t.Fatalf("expected 1 phase, got %d", len(sink.phases))
	}
	got := sink.phases[0]
	if got.Phase != "work" || got.PlannedSeconds != 3 || got.FocusedSeconds != 3 || got.Skipped || got.Cycle != 1 {
		t.Fatalf("unexpected record %+v", got)
	}
	if got.EndedAt.Sub(got.StartedAt) != 3*time.Second {
		t.Fatalf("unexpected span %v", got.EndedAt.Sub(got.StartedAt))
	}
}

func TestRecorderSkippedPhases(t *testing.T) {
	sink := &memorySink{}
	_, _, session := newTestRecorder(t, sink)

	session.Start()
	session.Tick()
	session.Skip()
	// Skip the short break straight from its confirmation.
	session.Skip()

	if len(sink.phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(sink.phases))
	}
	work := sink.phases[0]
	if work.FocusedSeconds != 1 || work.PlannedSeconds != 3 || !work.Skipped {
		t.Fatalf("unexpected work record %+v", work)
	}
	brk := sink.phases[1]
	if brk.Phase != "short_break" || brk.FocusedSeconds != 0 || brk.PlannedSeconds != 2 || !brk.StartedAt.Equal(brk.EndedAt) {
		t.Fatalf("unexpected break record %+v", brk)
	}
}

func TestRecorderSnoozeAndReset(t *testing.T) {
	sink := &memorySink{}
	rec, _, session := newTestRecorder(t, sink)

	session.Start()
	session.Skip()
	session.Snooze()
	if len(sink.snoozes) != 1 || sink.snoozes[0].Kind != "short_break" {
		t.Fatalf("unexpected snoozes %+v", sink.snoozes)
	}
	session.Reset()
	if rec.cycle != 0 {
		t.Fatalf("expected cycle reset, got %d", rec.cycle)
	}
}

func TestRecorderSinkErrorDoesNotPanic(t *testing.T) {
	sink := &memorySink{err: errors.New("disk full")}
	_, _, session := newTestRecorder(t, sink)
	session.Start()
	session.Skip()
	session.Snooze()
	if session.State().Phase != pomodoro.PhaseSnoozing {
		t.Fatalf("unexpected phase %s", session.State().Phase)
	}
}
