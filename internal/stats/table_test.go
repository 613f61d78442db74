package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Day", "Work", "Focus"}
	rows := [][]string{
		{"Mon 03-02", "4", "1h40m"},
		{"Tue 03-03", "12", "5h"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Day        Work  Focus" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Mon 03-02     4  1h40m" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Tue 03-03    12     5h" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	if got := displayWidth("集中"); got != 4 {
		t.Fatalf("expected width 4, got %d", got)
	}
	if got := padCell("集中", 6, false); got != "集中  " {
		t.Fatalf("unexpected padding %q", got)
	}
}
