package companion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/pomopal/internal/pomodoro"
)

func TestDefaultCatalogCoversEveryCue(t *testing.T) {
	catalog := DefaultCatalog()
	for _, cue := range Cues {
		if len(catalog[cue]) == 0 {
			t.Fatalf("cue %s has no lines", cue)
		}
		for _, line := range catalog[cue] {
			if Face(line.Expression) == "" {
				t.Fatalf("cue %s has no face for %q", cue, line.Expression)
			}
		}
	}
}

func TestCueFor(t *testing.T) {
	cases := []struct {
		name  string
		event pomodoro.Event
		cue   Cue
		ok    bool
	}{
		{"work finished", pomodoro.Event{Type: pomodoro.EventSessionFinished, Phase: pomodoro.PhaseWork}, CueWorkFinished, true},
		{"break finished", pomodoro.Event{Type: pomodoro.EventSessionFinished, Phase: pomodoro.PhaseShortBreak}, "", false},
		{"confirm work", pomodoro.Event{Type: pomodoro.EventConfirmationRequired, Kind: pomodoro.ConfirmWork}, CueConfirmWork, true},
		{"confirm short", pomodoro.Event{Type: pomodoro.EventConfirmationRequired, Kind: pomodoro.ConfirmShortBreak}, CueConfirmShortBreak, true},
		{"confirm long", pomodoro.Event{Type: pomodoro.EventConfirmationRequired, Kind: pomodoro.ConfirmLongBreak}, CueConfirmLongBreak, true},
		{"snooze work", pomodoro.Event{Type: pomodoro.EventSnoozeActivated, Kind: pomodoro.ConfirmWork}, CueSnoozeWork, true},
		{"snooze long break", pomodoro.Event{Type: pomodoro.EventSnoozeActivated, Kind: pomodoro.ConfirmLongBreak}, CueSnoozeBreak, true},
		{"reset", pomodoro.Event{Type: pomodoro.EventReset}, CueReset, true},
		{"tick", pomodoro.Event{Type: pomodoro.EventTick, Phase: pomodoro.PhaseWork}, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cue, ok := CueFor(tc.event)
			if cue != tc.cue || ok != tc.ok {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tc.cue, tc.ok, cue, ok)
			}
		})
	}
}

func TestSaySubstitutesName(t *testing.T) {
	catalog := Catalog{CueGreeting: {{Text: "{name} says hi", Pose: PoseNormal, Expression: ExpressionNormal}}}
	c := NewWithSeed("Mochi", catalog, 1)
	line, ok := c.Say(CueGreeting)
	if !ok || line.Text != "Mochi says hi" {
		t.Fatalf("unexpected line %+v", line)
	}
	if line.Cue != CueGreeting {
		t.Fatalf("expected line tagged with its cue, got %q", line.Cue)
	}
	if _, ok := c.Say(CueReset); ok {
		t.Fatalf("expected no line for empty cue")
	}
	if NewWithSeed(" ", catalog, 1).Name() != DefaultName {
		t.Fatalf("expected default name")
	}
}

func TestParseCatalogNormalizes(t *testing.T) {
	catalog, err := ParseCatalog([]byte("reset:\n  - text: bye\n    pose: sideways\n    expression: smug\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	line := catalog[CueReset][0]
	if line.Pose != PoseNormal || line.Expression != ExpressionNormal {
		t.Fatalf("expected fallbacks, got %+v", line)
	}
	if _, err := ParseCatalog([]byte("dance:\n  - text: hi\n")); err == nil {
		t.Fatalf("expected unknown cue error")
	}
	if _, err := ParseCatalog([]byte("reset:\n  - text: \"  \"\n")); err == nil {
		t.Fatalf("expected empty text error")
	}
}

func TestLoadCatalogMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.yaml")
	if err := os.WriteFile(path, []byte("greeting:\n  - text: custom hello\n    pose: positive\n    expression: blush\n"), 0o644); err != nil {
		t.Fatalf("write lines: %v", err)
	}
	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(catalog[CueGreeting]) != 1 || catalog[CueGreeting][0].Text != "custom hello" {
		t.Fatalf("expected greeting override, got %+v", catalog[CueGreeting])
	}
	if len(catalog[CueReset]) == 0 {
		t.Fatalf("expected default reset lines to remain")
	}

	missing, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if len(missing[CueGreeting]) != len(DefaultCatalog()[CueGreeting]) {
		t.Fatalf("expected defaults for missing file")
	}
}

func TestDefaultYAMLIsCopy(t *testing.T) {
	data := DefaultYAML()
	if !strings.Contains(string(data), "greeting:") {
		t.Fatalf("expected greeting cue in default yaml")
	}
	data[0] = 'X'
	if DefaultYAML()[0] == 'X' {
		t.Fatalf("expected a copy of the embedded yaml")
	}
}

func TestFaceFallback(t *testing.T) {
	if Face("unknown") != Face(ExpressionNormal) {
		t.Fatalf("expected normal face fallback")
	}
}

func TestChatterPicksIdleLine(t *testing.T) {
	c := NewWithSeed("Mochi", DefaultCatalog(), 3)
	line, ok := c.Chatter()
	if !ok {
		t.Fatalf("expected a chatter line")
	}
	if line.Cue != CueChatter {
		t.Fatalf("expected chatter cue, got %q", line.Cue)
	}
	if strings.Contains(line.Text, "{name}") {
		t.Fatalf("expected name substitution in %q", line.Text)
	}
}

func TestHoldFor(t *testing.T) {
	cases := map[Cue]time.Duration{
		CueConfirmShortBreak: 10 * time.Second,
		CueWorkFinished:      7 * time.Second,
		CueSnoozeBreak:       7 * time.Second,
		CueChatter:           6 * time.Second,
		CueGreeting:          5 * time.Second,
	}
	for cue, want := range cases {
		if got := HoldFor(cue); got != want {
			t.Fatalf("%s: expected %v, got %v", cue, want, got)
		}
	}
}

func TestRelaxedKeepsPoseAndText(t *testing.T) {
	line := Line{Text: "hi", Pose: PosePositive, Expression: ExpressionBlush, Cue: CueChatter}
	got := Relaxed(line)
	if got.Expression != ExpressionNormal || got.Pose != PosePositive || got.Text != "hi" {
		t.Fatalf("unexpected relaxed line %+v", got)
	}
}
