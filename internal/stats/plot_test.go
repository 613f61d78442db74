package stats

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

const blankCell = "⠀"

func plotRows(t *testing.T, series []Series, width, height int) []string {
	t.Helper()
	var buf bytes.Buffer
	if err := PlotSeriesWithColor(&buf, "", series, width, height, false); err != nil {
		t.Fatalf("plot: %v", err)
	}
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func plotArea(row string) string {
	_, area, _ := strings.Cut(row, axisSeparator)
	return area
}

func TestPlotSeriesRowWidth(t *testing.T) {
	rows := plotRows(t, []Series{{Name: "Focus", Values: []float64{10, 50, 25, 0}}}, 12, 3)
	if len(rows) != 4 {
		t.Fatalf("expected 3 rows and a legend, got %d", len(rows))
	}
	for _, row := range rows[:3] {
		if got := utf8.RuneCountInString(row); got != 20 {
			t.Fatalf("expected row width 20, got %d (%q)", got, row)
		}
	}
	if !strings.HasPrefix(rows[0], "   50") || !strings.HasPrefix(rows[2], "    0") {
		t.Fatalf("unexpected axis labels %q / %q", rows[0], rows[2])
	}
}

func TestPlotSeriesZerosSitOnBottomRow(t *testing.T) {
	rows := plotRows(t, []Series{{Name: "Focus", Values: []float64{0, 0, 0}}}, 10, 3)
	if area := plotArea(rows[0]); area != strings.Repeat(blankCell, 10) {
		t.Fatalf("expected empty top row, got %q", area)
	}
	if area := plotArea(rows[2]); area == strings.Repeat(blankCell, 10) {
		t.Fatalf("expected zero line on bottom row")
	}
}

func TestPlotSeriesKeepsRecentValues(t *testing.T) {
	values := make([]float64, 100)
	values[99] = 10
	rows := plotRows(t, []Series{{Name: "Focus", Values: values}}, 10, 2)
	top := []rune(plotArea(rows[0]))
	if top[len(top)-1] == '⠀' {
		t.Fatalf("expected the latest value at the right edge, got %q", string(top))
	}
	if top[0] != '⠀' {
		t.Fatalf("expected older values at the bottom, got %q", string(top))
	}
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeriesWithColor(&buf, "title", []Series{{Name: "none"}}, 10, 3, false); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 72 {
		t.Fatalf("expected 72, got %d", got)
	}
	if got := PlotWidthFor(5); got != minPlotWidth {
		t.Fatalf("expected min width, got %d", got)
	}
}
