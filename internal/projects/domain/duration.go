package domain

import "time"

// Duration describes a project's derived timeline: the effective start and
// end dates, the total and working-day spans, and the signed counts of days
// remaining relative to an externally supplied "today". All fields are nil
// when no milestone carries a date.
//
// Duration values are recomputed on every call and never persisted as a
// source of truth; the remaining counts go negative once the end date has
// passed.
type Duration struct {
	StartDate            *time.Time
	EndDate              *time.Time
	TotalDays            *int
	WorkingDays          *int
	TotalDaysRemaining   *int
	WorkingDaysRemaining *int
}

// HasDates returns true when the timeline could be derived.
func (d Duration) HasDates() bool {
	return d.StartDate != nil && d.EndDate != nil
}

// DurationBetween derives a timeline from explicit dates. Either date being
// nil yields a duration without spans, which classifies as unknown.
func DurationBetween(start, end *time.Time, today time.Time) Duration {
	if start == nil || end == nil {
		return Duration{StartDate: cloneTime(start), EndDate: cloneTime(end)}
	}

	total := TotalDays(*start, *end)
	working := WorkingDays(*start, *end)
	remaining := DaysUntil(today, *end)
	workingRemaining := WorkingDaysUntil(today, *end)

	return Duration{
		StartDate:            cloneTime(start),
		EndDate:              cloneTime(end),
		TotalDays:            &total,
		WorkingDays:          &working,
		TotalDaysRemaining:   &remaining,
		WorkingDaysRemaining: &workingRemaining,
	}
}

// ProjectDuration returns the project's effective timeline: the pinned dates
// when overridden, otherwise the milestone-derived span.
func ProjectDuration(p *Project, today time.Time) Duration {
	if p.DatesOverridden() {
		return DurationBetween(p.StartDate(), p.EndDate(), today)
	}
	return ComputeDuration(p.Milestones(), today)
}

// ComputeDuration derives the project timeline from milestone dates.
// The effective start is the earliest milestone date; the effective end is
// the latest of each milestone's end date, falling back to its date.
// Milestones without a date are skipped entirely, and callers supply today
// explicitly so identical inputs always produce identical results.
func ComputeDuration(milestones []*Milestone, today time.Time) Duration {
	var start, end *time.Time
	for _, m := range milestones {
		if m == nil || m.Date() == nil {
			continue
		}
		date := *m.Date()
		if start == nil || date.Before(*start) {
			s := date
			start = &s
		}
		effective := *m.EffectiveEnd()
		if end == nil || effective.After(*end) {
			e := effective
			end = &e
		}
	}
	if start == nil || end == nil {
		return Duration{}
	}

	total := TotalDays(*start, *end)
	working := WorkingDays(*start, *end)
	remaining := DaysUntil(today, *end)
	workingRemaining := WorkingDaysUntil(today, *end)

	return Duration{
		StartDate:            start,
		EndDate:              end,
		TotalDays:            &total,
		WorkingDays:          &working,
		TotalDaysRemaining:   &remaining,
		WorkingDaysRemaining: &workingRemaining,
	}
}
