package companion

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Cue names a moment the companion reacts to.
type Cue string

const (
	CueGreeting          Cue = "greeting"
	CueWorkFinished      Cue = "work_finished"
	CueConfirmWork       Cue = "confirm_work"
	CueConfirmShortBreak Cue = "confirm_short_break"
	CueConfirmLongBreak  Cue = "confirm_long_break"
	CueSnoozeWork        Cue = "snooze_work"
	CueSnoozeBreak       Cue = "snooze_break"
	CueReset             Cue = "reset"
	CueChatter           Cue = "chatter"
)

// Cues lists every known cue.
var Cues = []Cue{
	CueGreeting,
	CueWorkFinished,
	CueConfirmWork,
	CueConfirmShortBreak,
	CueConfirmLongBreak,
	CueSnoozeWork,
	CueSnoozeBreak,
	CueReset,
	CueChatter,
}

// HoldFor returns how long the expression of a line for cue stays on the
// face before it relaxes back to normal.
func HoldFor(cue Cue) time.Duration {
	switch cue {
	case CueConfirmWork, CueConfirmShortBreak, CueConfirmLongBreak:
		return 10 * time.Second
	case CueWorkFinished, CueSnoozeWork, CueSnoozeBreak:
		return 7 * time.Second
	case CueChatter:
		return 6 * time.Second
	default:
		return 5 * time.Second
	}
}

// Pose is the body stance shown with a line.
type Pose string

const (
	PoseNormal   Pose = "normal"
	PosePositive Pose = "positive"
	PoseNegative Pose = "negative"
)

// Expressions understood by Face.
const (
	ExpressionNormal     = "normal"
	ExpressionRelieved   = "relieved"
	ExpressionBlush      = "blush"
	ExpressionCurious    = "curious"
	ExpressionEyesClosed = "eyes_closed"
	ExpressionDeadpan    = "deadpan"
	ExpressionSurprised  = "surprised"
	ExpressionDowncast   = "downcast"
)

// Line is one thing the companion can say.
type Line struct {
	Text       string `yaml:"text" json:"text"`
	Pose       Pose   `yaml:"pose,omitempty" json:"pose"`
	Expression string `yaml:"expression,omitempty" json:"expression"`
	Cue        Cue    `yaml:"-" json:"cue,omitempty"`
}

// Catalog maps cues to candidate lines.
type Catalog map[Cue][]Line

//go:embed default_lines.yaml
var defaultLines []byte

// DefaultYAML returns the embedded default catalog source.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultLines))
	copy(out, defaultLines)
	return out
}

// DefaultCatalog parses the embedded catalog.
func DefaultCatalog() Catalog {
	catalog, err := ParseCatalog(defaultLines)
	if err != nil {
		panic(fmt.Sprintf("embedded companion lines: %v", err))
	}
	return catalog
}

// ParseCatalog decodes a YAML catalog. Unknown cues and empty lines are
// errors; missing poses and unknown expressions fall back to normal.
func ParseCatalog(data []byte) (Catalog, error) {
	raw := map[string][]Line{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode lines: %w", err)
	}
	known := make(map[Cue]bool, len(Cues))
	for _, cue := range Cues {
		known[cue] = true
	}
	catalog := Catalog{}
	for name, lines := range raw {
		cue := Cue(name)
		if !known[cue] {
			return nil, fmt.Errorf("unknown cue %q", name)
		}
		for i, line := range lines {
			if strings.TrimSpace(line.Text) == "" {
				return nil, fmt.Errorf("cue %s line %d: empty text", name, i+1)
			}
			lines[i] = normalize(line)
		}
		catalog[cue] = lines
	}
	return catalog, nil
}

// LoadCatalog returns the default catalog with the cues of the YAML file at
// path replacing the defaults. A missing file yields the defaults.
func LoadCatalog(path string) (Catalog, error) {
	catalog := DefaultCatalog()
	if path == "" {
		return catalog, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return catalog, nil
		}
		return nil, fmt.Errorf("read lines: %w", err)
	}
	custom, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for cue, lines := range custom {
		if len(lines) > 0 {
			catalog[cue] = lines
		}
	}
	return catalog, nil
}

func normalize(line Line) Line {
	switch line.Pose {
	case PoseNormal, PosePositive, PoseNegative:
	default:
		line.Pose = PoseNormal
	}
	if _, ok := faces[line.Expression]; !ok {
		line.Expression = ExpressionNormal
	}
	return line
}
