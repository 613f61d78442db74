package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/pomopal/internal/companion"
	"github.com/verte-zerg/pomopal/internal/pomodoro"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := pomodoro.Config{
		WorkSeconds:           3,
		ShortBreakSeconds:     2,
		LongBreakSeconds:      4,
		CyclesBeforeLongBreak: 2,
		SnoozeSeconds:         60,
	}
	session, err := pomodoro.NewSession(cfg)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	comp := companion.NewWithSeed("Mochi", companion.DefaultCatalog(), 1)
	return NewModel(session, comp, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func press(m *Model, keys string) {
	for _, r := range keys {
		var msg tea.KeyMsg
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		}
		m.Update(msg)
	}
}

func advance(m *Model, ticks int) {
	for range ticks {
		m.Update(tickMsg{id: m.tickID})
	}
}

func TestMainActionStartsAndPauses(t *testing.T) {
	m := newTestModel(t)
	press(m, " ")
	state := m.session.State()
	if state.Phase != pomodoro.PhaseWork || !state.Running {
		t.Fatalf("expected running work, got %+v", state)
	}
	press(m, " ")
	if m.session.State().Running {
		t.Fatalf("expected paused work")
	}
	if !strings.Contains(m.View(), "(paused)") {
		t.Fatalf("expected paused marker in view")
	}
	press(m, " ")
	if !m.session.State().Running {
		t.Fatalf("expected resumed work")
	}
}

func TestTicksReachConfirmationAndReact(t *testing.T) {
	m := newTestModel(t)
	press(m, " ")
	advance(m, 3)
	state := m.session.State()
	if state.Phase != pomodoro.PhaseAwaitingShortBreakConfirm {
		t.Fatalf("expected short break confirmation, got %s", state.Phase)
	}
	found := false
	for _, line := range companion.DefaultCatalog()[companion.CueConfirmShortBreak] {
		if line.Text == m.line.Text {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a short break confirmation line, got %q", m.line.Text)
	}
	if !m.keys.Snooze.Enabled() {
		t.Fatalf("expected snooze to be enabled while awaiting")
	}

	press(m, "s")
	if m.session.State().Phase != pomodoro.PhaseSnoozing {
		t.Fatalf("expected snoozing, got %s", m.session.State().Phase)
	}
	if !strings.Contains(m.View(), "then ready for a short break") {
		t.Fatalf("expected pending hint in view")
	}
}

func TestSkipAndResetKeys(t *testing.T) {
	m := newTestModel(t)
	if m.keys.Skip.Enabled() {
		t.Fatalf("expected skip disabled while idle")
	}
	press(m, " k")
	if m.session.State().CompletedCycles != 1 {
		t.Fatalf("expected one completed cycle, got %d", m.session.State().CompletedCycles)
	}
	press(m, "r")
	if m.session.State() != pomodoro.IdleState() {
		t.Fatalf("expected idle after reset, got %+v", m.session.State())
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[int]string{0: "00:00", 59: "00:59", 1500: "25:00", 6000: "100:00", -3: "00:00"}
	for seconds, want := range cases {
		if got := formatClock(seconds); got != want {
			t.Fatalf("%d: expected %q, got %q", seconds, want, got)
		}
	}
}

func TestCycleLineAndProgress(t *testing.T) {
	cfg := pomodoro.Config{WorkSeconds: 100, ShortBreakSeconds: 10, LongBreakSeconds: 20, CyclesBeforeLongBreak: 4, SnoozeSeconds: 5}
	state := pomodoro.State{Phase: pomodoro.PhaseWork, Remaining: 25, Running: true, CompletedCycles: 5}
	if got := cycleLine(cfg, state); got != "Cycle 1/4 (total 5)" {
		t.Fatalf("unexpected cycle line %q", got)
	}
	if got := phaseProgress(cfg, state); got != 0.75 {
		t.Fatalf("expected 0.75 progress, got %v", got)
	}
	awaiting := pomodoro.State{Phase: pomodoro.PhaseAwaitingWorkConfirm, Remaining: 100, Pending: pomodoro.ConfirmWork}
	if got := phaseProgress(cfg, awaiting); got != 0 {
		t.Fatalf("expected no progress while awaiting, got %v", got)
	}
}

func TestWrapSpeech(t *testing.T) {
	lines := wrapSpeech("one two three four five six seven eight", 12)
	if len(lines) < 3 {
		t.Fatalf("expected wrapped lines, got %q", lines)
	}
	for _, line := range lines {
		if len(line) > 12 {
			t.Fatalf("line too wide: %q", line)
		}
	}
	if wrapSpeech("   ", 20) != nil {
		t.Fatalf("expected no lines for blank text")
	}
	if got := speechWidth(200); got != maxSpeechWidth {
		t.Fatalf("expected max width, got %d", got)
	}
	if got := speechWidth(20); got != minSpeechWidth {
		t.Fatalf("expected min width, got %d", got)
	}
}

func TestExpressionRelaxesAfterHold(t *testing.T) {
	m := newTestModel(t)
	press(m, " ")
	advance(m, 3)
	if m.line.Cue != companion.CueConfirmShortBreak {
		t.Fatalf("expected confirmation line, got cue %q", m.line.Cue)
	}

	m.setLine(companion.Line{Text: "hello", Pose: companion.PosePositive, Expression: companion.ExpressionBlush, Cue: companion.CueConfirmWork})
	advance(m, 9)
	if m.line.Expression != companion.ExpressionBlush {
		t.Fatalf("expected expression held for 10s, got %q after 9", m.line.Expression)
	}
	advance(m, 1)
	if m.line.Expression != companion.ExpressionNormal {
		t.Fatalf("expected normal expression after hold, got %q", m.line.Expression)
	}
	if m.line.Text != "hello" || m.line.Pose != companion.PosePositive {
		t.Fatalf("expected text and pose kept, got %+v", m.line)
	}

	advance(m, 30)
	if m.line.Expression != companion.ExpressionNormal {
		t.Fatalf("expected expression to stay normal, got %q", m.line.Expression)
	}
}

func TestResumeRestartsTickLoop(t *testing.T) {
	m := newTestModel(t)
	first := m.tickID
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil || m.tickID != first+1 {
		t.Fatalf("expected start to restart the tick loop, id %d", m.tickID)
	}

	press(m, " ")
	paused := m.tickID
	if paused != first+1 {
		t.Fatalf("expected pause to keep the tick loop, id %d", paused)
	}
	press(m, " ")
	if m.tickID != paused+1 {
		t.Fatalf("expected resume to restart the tick loop, id %d", m.tickID)
	}

	remaining := m.session.State().Remaining
	_, cmd = m.Update(tickMsg{id: paused})
	if cmd != nil {
		t.Fatalf("expected stale tick to end its loop")
	}
	if m.session.State().Remaining != remaining {
		t.Fatalf("expected stale tick to be ignored, remaining %d", m.session.State().Remaining)
	}

	advance(m, 1)
	if m.session.State().Remaining != remaining-1 {
		t.Fatalf("expected current tick to count down, remaining %d", m.session.State().Remaining)
	}
}

func TestTalkKeyChatters(t *testing.T) {
	m := newTestModel(t)
	press(m, "t")
	if m.line.Cue != companion.CueChatter {
		t.Fatalf("expected chatter line, got cue %q", m.line.Cue)
	}
	if m.session.State() != pomodoro.IdleState() {
		t.Fatalf("expected talk to leave the session alone")
	}
}
