package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/pomopal/internal/model"
)

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// FormatDuration renders seconds as a compact hours/minutes string.
func FormatDuration(seconds int) string {
	d := time.Duration(seconds) * time.Second
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh%02dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// RenderSummary prints totals and the current streak.
func RenderSummary(w io.Writer, report Report) error {
	if len(report.Days) == 0 {
		_, err := fmt.Fprintln(w, "No pomodoros recorded yet.")
		return err
	}
	totals := report.Totals
	avg := totals.FocusedSeconds / len(report.Days)
	lines := []string{
		"Summary",
		fmt.Sprintf("Days: %d", len(report.Days)),
		fmt.Sprintf("Pomodoros: %d", totals.WorkSessions),
		fmt.Sprintf("Focus time: %s", FormatDuration(totals.FocusedSeconds)),
		fmt.Sprintf("Avg focus/day: %s", FormatDuration(avg)),
		fmt.Sprintf("Breaks: %d", totals.Breaks),
		fmt.Sprintf("Skipped: %d", totals.Skipped),
		fmt.Sprintf("Snoozes: %d", totals.Snoozes),
		fmt.Sprintf("Streak: %d day(s)", report.Streak),
		fmt.Sprintf("Lifetime pomodoros: %d", report.Lifetime),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDaily prints one aligned row per active day, newest last.
func RenderDaily(w io.Writer, days []model.DayAggregate) error {
	headers := []string{"Day", "Pomodoros", "Focus", "Breaks", "Skipped", "Snoozes"}
	var rows [][]string
	for _, day := range days {
		if day == (model.DayAggregate{Day: day.Day}) {
			continue
		}
		rows = append(rows, []string{
			day.Day.Format("Mon 2006-01-02"),
			fmt.Sprintf("%d", day.WorkSessions),
			FormatDuration(day.FocusedSeconds),
			fmt.Sprintf("%d", day.Breaks),
			fmt.Sprintf("%d", day.Skipped),
			fmt.Sprintf("%d", day.Snoozes),
		})
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Daily"); err != nil {
		return err
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrend plots focus minutes per day against their moving average.
// The plot fills totalWidth columns; height is in text rows.
func RenderTrend(w io.Writer, days []model.DayAggregate, window, totalWidth, height int, useColor bool) error {
	if len(days) == 0 {
		return nil
	}
	window = max(window, 1)
	focus := make([]float64, len(days))
	for i, day := range days {
		focus[i] = float64(day.FocusedSeconds) / 60
	}
	avg := MovingAverage(focus, window)

	title := fmt.Sprintf("Focus minutes per day (%d-day average)", window)
	err := PlotSeriesWithColor(w, title, []Series{
		{Name: "Focus", Values: focus},
		{Name: fmt.Sprintf("%d-day avg", window), Values: avg},
	}, PlotWidthFor(totalWidth), height, useColor)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Latest %.0fm, avg %.1fm\n\n", focus[len(focus)-1], avg[len(avg)-1])
	return err
}
