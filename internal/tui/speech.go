package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

const (
	maxSpeechWidth = 48
	minSpeechWidth = 12
)

var speechStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#8C8C8C")).
	Foreground(lipgloss.Color("#F0F0F0")).
	Padding(0, 1)

// wrapSpeech wraps text to at most width cells and returns the lines.
func wrapSpeech(text string, width int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if width < minSpeechWidth {
		width = minSpeechWidth
	}
	wrapped := wordwrap.String(text, width)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
		if runewidth.StringWidth(lines[i]) > width {
			lines[i] = runewidth.Truncate(lines[i], width, "…")
		}
	}
	return lines
}

func renderSpeech(text string, width int) string {
	lines := wrapSpeech(text, width)
	if len(lines) == 0 {
		return ""
	}
	return speechStyle.Render(strings.Join(lines, "\n"))
}

// speechWidth picks a bubble width for a terminal of the given width.
func speechWidth(termWidth int) int {
	if termWidth <= 0 {
		return maxSpeechWidth
	}
	// Leave room for the face, borders and padding.
	width := termWidth - 16
	return max(min(width, maxSpeechWidth), minSpeechWidth)
}
