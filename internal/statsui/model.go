// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/pomopal/internal/model"
	"github.com/verte-zerg/pomopal/internal/stats"
)

const (
	tabOverview = iota
	tabDaily
)

const (
	plotHeight    = 10
	fallbackWidth = 80
	windowStep    = 7
)

const (
	inputSince = iota
	inputLast
	inputWindow
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#E0624A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	source stats.Source
	cfg    model.StatsConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	daily     table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a stats UI model and loads the first report.
func NewModel(source stats.Source, cfg model.StatsConfig) *Model {
	if cfg.Window < 1 {
		cfg.Window = 1
	}
	m := &Model{
		source:   source,
		cfg:      cfg,
		tabs:     []string{"Overview", "Daily"},
		overview: viewport.New(0, 0),
		daily:    newDailyTable(),
	}
	m.filterInputs = []textinput.Model{
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last days: "),
		newFilterInput("Average window: "),
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h", "right", "l", "tab":
			m.switchTab()
			return m, tea.ClearScreen
		case "=":
			m.cfg.Window = nextWindow(m.cfg.Window)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.Window = prevWindow(m.cfg.Window)
			m.refreshReport()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabDaily {
				m.daily.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabDaily {
				m.daily.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabDaily {
			m.daily, cmd = m.daily.Update(msg)
		} else {
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func newDailyTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Day", Width: 14},
			{Title: "Pomodoros", Width: 9},
			{Title: "Focus", Width: 7},
			{Title: "Breaks", Width: 6},
			{Title: "Skipped", Width: 7},
			{Title: "Snoozes", Width: 7},
		}),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#5A2E25"))
	t.SetStyles(styles)
	return t
}

// dailyRows lists active days, newest first.
func dailyRows(days []model.DayAggregate) []table.Row {
	rows := make([]table.Row, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- {
		day := days[i]
		if day == (model.DayAggregate{Day: day.Day}) {
			continue
		}
		rows = append(rows, table.Row{
			day.Day.Format("Mon 2006-01-02"),
			strconv.Itoa(day.WorkSessions),
			stats.FormatDuration(day.FocusedSeconds),
			strconv.Itoa(day.Breaks),
			strconv.Itoa(day.Skipped),
			strconv.Itoa(day.Snoozes),
		})
	}
	return rows
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = lipgloss.Height(activeNavStyle.Render("X")) + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.daily.SetWidth(m.width)
	// The header row and its border take two lines.
	m.daily.SetHeight(max(bodyHeight-2, 1))
	for i := range m.filterInputs {
		m.filterInputs[i].Width = max(10, m.width-lipgloss.Width(m.filterInputs[i].Prompt)-2)
	}
}

func (m *Model) switchTab() {
	m.activeTab = (m.activeTab + 1) % len(m.tabs)
	if m.activeTab == tabDaily {
		m.daily.Focus()
	} else {
		m.daily.Blur()
	}
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.source, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.report = stats.Report{}
		m.daily.SetRows(nil)
		m.overview.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.daily.SetRows(dailyRows(report.Days))
	m.renderOverview()
}

func (m *Model) renderOverview() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = fallbackWidth
	}
	m.overview.SetContent(renderOverview(m.report, m.cfg.Window, width))
}

func renderOverview(report stats.Report, window, width int) string {
	if len(report.Days) == 0 {
		return "No pomodoros recorded yet."
	}
	totals := report.Totals
	cards := []string{
		metricCard("Pomodoros", strconv.Itoa(totals.WorkSessions)),
		metricCard("Focus", stats.FormatDuration(totals.FocusedSeconds)),
		metricCard("Avg/day", stats.FormatDuration(totals.FocusedSeconds/len(report.Days))),
		metricCard("Streak", fmt.Sprintf("%dd", report.Streak)),
		metricCard("Lifetime", strconv.Itoa(report.Lifetime)),
		metricCard("Skipped", strconv.Itoa(totals.Skipped)),
		metricCard("Snoozes", strconv.Itoa(totals.Snoozes)),
	}
	var summary string
	if width < fallbackWidth {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:4]...)
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[4:]...)
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}

	var buf bytes.Buffer
	if err := stats.RenderTrend(&buf, report.Days, window, width, plotHeight, true); err != nil {
		return summary + "\n\n" + fmt.Sprintf("Failed to render trend: %v", err)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: since=%s  last=%s  window=%d", since, last, m.cfg.Window)
	return m.renderTabs() + "\n" + headerStyle.Render(runewidth.Truncate(summary, m.width, "..."))
}

func (m *Model) renderBody() string {
	if m.filterMode {
		lines := []string{"Settings (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return strings.Join(lines, "\n")
	}
	if m.activeTab == tabDaily {
		if len(m.daily.Rows()) == 0 {
			return "No pomodoros recorded yet."
		}
		return m.daily.View()
	}
	return m.overview.View()
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Tabs: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Settings: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.filterInputs[inputSince].SetValue("")
	if m.cfg.Since != nil {
		m.filterInputs[inputSince].SetValue(m.cfg.Since.Format("2006-01-02"))
	}
	m.filterInputs[inputLast].SetValue("")
	if m.cfg.Last > 0 {
		m.filterInputs[inputLast].SetValue(strconv.Itoa(m.cfg.Last))
	}
	m.filterInputs[inputWindow].SetValue(strconv.Itoa(m.cfg.Window))
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		cfg, err := m.parseFilter()
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.cfg = cfg
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx%count + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) parseFilter() (model.StatsConfig, error) {
	var cfg model.StatsConfig
	if value := strings.TrimSpace(m.filterInputs[inputSince].Value()); value != "" {
		parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		cfg.Since = &parsed
	}
	if value := strings.TrimSpace(m.filterInputs[inputLast].Value()); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return cfg, fmt.Errorf("invalid last value (use 0 or a positive integer)")
		}
		cfg.Last = parsed
	}
	cfg.Window = 1
	if value := strings.TrimSpace(m.filterInputs[inputWindow].Value()); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 {
			return cfg, fmt.Errorf("invalid average window (use an integer >= 1)")
		}
		cfg.Window = parsed
	}
	return cfg, nil
}

// nextWindow and prevWindow step the average window through whole weeks.
func nextWindow(n int) int {
	return (n/windowStep + 1) * windowStep
}

func prevWindow(n int) int {
	if n <= windowStep {
		return 1
	}
	if n%windowStep != 0 {
		return n / windowStep * windowStep
	}
	return n - windowStep
}

func fitLines(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if gap := width - lipgloss.Width(line); gap > 0 {
			lines[i] = line + strings.Repeat(" ", gap)
		}
	}
	return strings.Join(lines, "\n")
}
