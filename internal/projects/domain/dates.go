package domain

import "time"

// Date override control. A project's stored start/end dates are in one of
// two modes: automatic, where they continuously follow the computed
// timeline, or manual, where a caller-edited pair is frozen until the
// override is released. Both dates always move together.

// SyncDates adopts the computed timeline while dates are in automatic mode.
// It returns true when either stored date actually changed, letting callers
// skip redundant writes. In manual mode it is a no-op.
func (p *Project) SyncDates(d Duration) bool {
	if p.datesOverridden {
		return false
	}

	changed := false
	if !sameDate(p.startDate, d.StartDate) {
		p.startDate = cloneTime(d.StartDate)
		changed = true
	}
	if !sameDate(p.endDate, d.EndDate) {
		p.endDate = cloneTime(d.EndDate)
		changed = true
	}
	if changed {
		p.Touch()
	}
	return changed
}

// OverrideDates freezes the stored dates at the given caller-edited pair
// and stops the automatic sync.
func (p *Project) OverrideDates(start, end *time.Time) {
	p.datesOverridden = true
	p.startDate = cloneTime(start)
	p.endDate = cloneTime(end)
	p.Touch()
	p.AddDomainEvent(NewDatesChangedEvent(p.ID(), p.userID))
}

// ResetDates releases a manual override: the manual dates are discarded and
// the current computed timeline is re-adopted.
func (p *Project) ResetDates(d Duration) {
	p.datesOverridden = false
	p.startDate = cloneTime(d.StartDate)
	p.endDate = cloneTime(d.EndDate)
	p.Touch()
	p.AddDomainEvent(NewDatesChangedEvent(p.ID(), p.userID))
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
