// Package companion provides the character lines that react to session events.
package companion

import (
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/pomopal/internal/pomodoro"
)

// DefaultName is used when the config does not name the companion.
const DefaultName = "Pal"

// Companion picks lines for session events.
type Companion struct {
	name    string
	catalog Catalog
	rnd     *rand.Rand
}

// New returns a Companion seeded with the current time.
func New(name string, catalog Catalog) *Companion {
	return NewWithSeed(name, catalog, time.Now().UnixNano())
}

// NewWithSeed returns a Companion with a deterministic line choice.
func NewWithSeed(name string, catalog Catalog, seed int64) *Companion {
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}
	return &Companion{
		name:    name,
		catalog: catalog,
		rnd:     rand.New(rand.NewSource(seed)),
	}
}

// Name returns the companion name.
func (c *Companion) Name() string {
	return c.name
}

// Say picks a line for cue.
func (c *Companion) Say(cue Cue) (Line, bool) {
	lines := c.catalog[cue]
	if len(lines) == 0 {
		return Line{}, false
	}
	line := lines[c.rnd.Intn(len(lines))]
	line.Text = strings.ReplaceAll(line.Text, "{name}", c.name)
	line.Cue = cue
	return line, true
}

// Chatter picks a random idle line.
func (c *Companion) Chatter() (Line, bool) {
	return c.Say(CueChatter)
}

// Relaxed returns line with its expression reset to normal. The pose and
// text stay.
func Relaxed(line Line) Line {
	line.Expression = ExpressionNormal
	return line
}

// React picks a line for the cue the event maps to. Events without a cue
// report false.
func (c *Companion) React(event pomodoro.Event) (Line, bool) {
	cue, ok := CueFor(event)
	if !ok {
		return Line{}, false
	}
	return c.Say(cue)
}

// CueFor maps a session event to a cue. Only finished work sessions get a
// reaction; break endings are covered by the following confirmation.
func CueFor(event pomodoro.Event) (Cue, bool) {
	switch event.Type {
	case pomodoro.EventSessionFinished:
		if event.Phase == pomodoro.PhaseWork {
			return CueWorkFinished, true
		}
	case pomodoro.EventConfirmationRequired:
		switch event.Kind {
		case pomodoro.ConfirmWork:
			return CueConfirmWork, true
		case pomodoro.ConfirmShortBreak:
			return CueConfirmShortBreak, true
		case pomodoro.ConfirmLongBreak:
			return CueConfirmLongBreak, true
		}
	case pomodoro.EventSnoozeActivated:
		if event.Kind == pomodoro.ConfirmWork {
			return CueSnoozeWork, true
		}
		if event.Kind.IsBreak() {
			return CueSnoozeBreak, true
		}
	case pomodoro.EventReset:
		return CueReset, true
	}
	return "", false
}

var faces = map[string]string{
	ExpressionNormal:     "(・_・)",
	ExpressionRelieved:   "(´▽`)",
	ExpressionBlush:      "(〃▽〃)",
	ExpressionCurious:    "(・o・)?",
	ExpressionEyesClosed: "(－‿－)",
	ExpressionDeadpan:    "(¬_¬)",
	ExpressionSurprised:  "(°o°)",
	ExpressionDowncast:   "(._.)",
}

// Face returns a kaomoji for expression, falling back to the normal face.
func Face(expression string) string {
	if face, ok := faces[expression]; ok {
		return face
	}
	return faces[ExpressionNormal]
}
