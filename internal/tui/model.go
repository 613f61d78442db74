// Package tui provides the Bubble Tea pomodoro interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/pomopal/internal/companion"
	"github.com/verte-zerg/pomopal/internal/pomodoro"
)

const progressWidth = 40

// tickMsg carries the generation of the tick loop that produced it. A
// countdown that starts running bumps the generation so the next second is
// measured from that moment.
type tickMsg struct {
	id int
}

// Model implements the Bubble Tea pomodoro UI.
type Model struct {
	session   *pomodoro.Session
	companion *companion.Companion
	logger    *slog.Logger

	keys     keyMap
	help     help.Model
	progress progress.Model

	width  int
	height int

	line      companion.Line
	holdTicks int
	events    []pomodoro.Event
	tickDur   time.Duration
	tickID    int
}

var (
	faceStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	pausedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	clockStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	positiveColor = lipgloss.Color("#7FB77E")
	negativeColor = lipgloss.Color("#FF4D4F")
)

// NewModel constructs the pomodoro TUI around session. The model subscribes
// to the session and must be the only code driving it.
func NewModel(session *pomodoro.Session, comp *companion.Companion, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = progressWidth
	m := &Model{
		session:   session,
		companion: comp,
		logger:    logger,
		keys:      newKeyMap(),
		help:      help.New(),
		progress:  bar,
		tickDur:   time.Second,
	}
	session.Subscribe(func(event pomodoro.Event) {
		m.events = append(m.events, event)
	})
	if line, ok := comp.Say(companion.CueGreeting); ok {
		m.setLine(line)
	}
	m.updateKeys()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.tickDur, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (m *Model) restartTick() tea.Cmd {
	m.tickID++
	return m.tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(progressWidth, max(msg.Width-4, 10))
		return m, nil
	case tickMsg:
		if msg.id != m.tickID {
			return m, nil
		}
		m.relax()
		m.session.Tick()
		m.drainEvents()
		return m, m.tick()
	case tea.KeyMsg:
		wasRunning := m.session.State().Running
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Main):
			m.mainAction()
		case key.Matches(msg, m.keys.Snooze):
			m.session.Snooze()
		case key.Matches(msg, m.keys.Skip):
			m.session.Skip()
		case key.Matches(msg, m.keys.Reset):
			m.session.Reset()
		case key.Matches(msg, m.keys.Talk):
			if line, ok := m.companion.Chatter(); ok {
				m.setLine(line)
			}
		}
		m.drainEvents()
		if !wasRunning && m.session.State().Running {
			return m, m.restartTick()
		}
		return m, nil
	default:
		return m, nil
	}
}

// mainAction starts or confirms when nothing is counting down, otherwise
// toggles pause.
func (m *Model) mainAction() {
	state := m.session.State()
	if state.Phase == pomodoro.PhaseIdle || state.Phase.Awaiting() {
		m.session.Start()
		return
	}
	m.session.TogglePause()
}

func (m *Model) drainEvents() {
	for _, event := range m.events {
		if line, ok := m.companion.React(event); ok {
			m.setLine(line)
			m.logger.Debug("companion reacts", "event", event.Type, "expression", line.Expression)
		}
	}
	m.events = m.events[:0]
	m.updateKeys()
}

func (m *Model) setLine(line companion.Line) {
	m.line = line
	m.holdTicks = int(companion.HoldFor(line.Cue) / m.tickDur)
}

// relax counts down the expression hold and resets the face once it runs out.
func (m *Model) relax() {
	if m.holdTicks <= 0 {
		return
	}
	m.holdTicks--
	if m.holdTicks == 0 {
		m.line = companion.Relaxed(m.line)
	}
}

func (m *Model) updateKeys() {
	state := m.session.State()
	cfg := m.session.Config()
	m.keys.Main.SetHelp("space", mainActionLabel(state))
	m.keys.Snooze.SetEnabled(state.Phase.Awaiting())
	m.keys.Snooze.SetHelp("s", fmt.Sprintf("snooze %s", formatMinutes(cfg.SnoozeSeconds)))
	m.keys.Skip.SetEnabled(state.Phase.Timed() || state.Phase.Awaiting())
}

func mainActionLabel(state pomodoro.State) string {
	switch {
	case state.Phase == pomodoro.PhaseIdle:
		return "start"
	case state.Phase.Awaiting():
		return "confirm"
	case state.Running:
		return "pause"
	default:
		return "resume"
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderContent()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderContent() string {
	state := m.session.State()
	cfg := m.session.Config()

	sections := []string{m.renderCompanion(), ""}
	title := titleStyle.Render(state.Phase.Title())
	if state.Paused() {
		title += " " + pausedStyle.Render("(paused)")
	}
	sections = append(sections,
		title,
		clockStyle.Render(formatClock(state.Remaining)),
		m.progress.ViewAs(phaseProgress(cfg, state)),
		footerStyle.Render(cycleLine(cfg, state)),
		"",
		m.help.View(m.keys),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderCompanion() string {
	style := faceStyle
	switch m.line.Pose {
	case companion.PosePositive:
		style = style.Foreground(positiveColor)
	case companion.PoseNegative:
		style = style.Foreground(negativeColor)
	}
	face := style.Render(companion.Face(m.line.Expression))
	speech := renderSpeech(m.line.Text, speechWidth(m.width))
	if speech == "" {
		return face
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, face, "  ", speech)
}

func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func formatMinutes(seconds int) string {
	if seconds%60 == 0 {
		return fmt.Sprintf("%dm", seconds/60)
	}
	return fmt.Sprintf("%ds", seconds)
}

// phaseProgress returns the elapsed fraction of the current countdown.
func phaseProgress(cfg pomodoro.Config, state pomodoro.State) float64 {
	if !state.Phase.Timed() {
		return 0
	}
	total := cfg.SecondsFor(state.Phase)
	if total <= 0 {
		return 0
	}
	done := float64(total-state.Remaining) / float64(total)
	return min(max(done, 0), 1)
}

func cycleLine(cfg pomodoro.Config, state pomodoro.State) string {
	segments := []string{
		fmt.Sprintf("Cycle %d/%d (total %d)", state.CyclesInSet(cfg), cfg.CyclesBeforeLongBreak, state.CompletedCycles),
	}
	if state.Phase == pomodoro.PhaseSnoozing {
		segments = append(segments, fmt.Sprintf("then %s", strings.ToLower(state.Pending.AwaitingPhase().Title())))
	}
	return strings.Join(segments, "  ·  ")
}
