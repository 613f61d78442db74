// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"time"

	"github.com/verte-zerg/pomopal/internal/model"
)

// Source provides the history a report is built from.
type Source interface {
	ListPhases(ctx context.Context, cfg model.StatsConfig) ([]model.PhaseRecord, error)
	ListSnoozes(ctx context.Context, cfg model.StatsConfig) ([]model.SnoozeRecord, error)
	CountCompletedWork(ctx context.Context) (int, error)
}

// Totals sums every day in a report.
type Totals struct {
	WorkSessions   int
	FocusedSeconds int
	Breaks         int
	Skipped        int
	Snoozes        int
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Days     []model.DayAggregate
	Totals   Totals
	Streak   int
	Lifetime int
}

var now = time.Now

// BuildReport loads history and aggregates it per calendar day in local
// time. Days without activity inside the covered range are kept as zero
// rows so trends line up with the calendar.
func BuildReport(ctx context.Context, src Source, cfg model.StatsConfig) (Report, error) {
	phases, err := src.ListPhases(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	snoozes, err := src.ListSnoozes(ctx, cfg)
	if err != nil {
		return Report{}, err
	}

	today := dayOf(now())
	byDay := map[time.Time]*model.DayAggregate{}
	get := func(t time.Time) *model.DayAggregate {
		day := dayOf(t)
		agg, ok := byDay[day]
		if !ok {
			agg = &model.DayAggregate{Day: day}
			byDay[day] = agg
		}
		return agg
	}
	for _, p := range phases {
		agg := get(p.EndedAt)
		if p.Skipped {
			agg.Skipped++
		}
		switch p.Phase {
		case "work":
			agg.FocusedSeconds += p.FocusedSeconds
			if !p.Skipped {
				agg.WorkSessions++
			}
		default:
			agg.Breaks++
		}
	}
	for _, s := range snoozes {
		get(s.SnoozedAt).Snoozes++
	}
	lifetime, err := src.CountCompletedWork(ctx)
	if err != nil {
		return Report{}, err
	}
	if len(byDay) == 0 {
		return Report{Lifetime: lifetime}, nil
	}

	first := today
	for day := range byDay {
		if day.Before(first) {
			first = day
		}
	}
	if cfg.Last > 0 {
		if start := today.AddDate(0, 0, -(cfg.Last - 1)); start.After(first) {
			first = start
		}
	}

	report := Report{Lifetime: lifetime}
	for day := first; !day.After(today); day = day.AddDate(0, 0, 1) {
		agg := model.DayAggregate{Day: day}
		if found, ok := byDay[day]; ok {
			agg = *found
		}
		report.Days = append(report.Days, agg)
		report.Totals.WorkSessions += agg.WorkSessions
		report.Totals.FocusedSeconds += agg.FocusedSeconds
		report.Totals.Breaks += agg.Breaks
		report.Totals.Skipped += agg.Skipped
		report.Totals.Snoozes += agg.Snoozes
	}
	report.Streak = streak(report.Days)
	return report, nil
}

// streak counts consecutive days with a completed work session, ending
// today or, when today has none yet, yesterday.
func streak(days []model.DayAggregate) int {
	i := len(days) - 1
	if i >= 0 && days[i].WorkSessions == 0 {
		i--
	}
	count := 0
	for ; i >= 0 && days[i].WorkSessions > 0; i-- {
		count++
	}
	return count
}

func dayOf(t time.Time) time.Time {
	local := t.In(time.Local)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}
