package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timelineProject(t *testing.T) *Project {
	t.Helper()
	p, err := NewProject(uuid.New(), "Dated")
	require.NoError(t, err)
	return p
}

func TestSyncDates_AdoptsComputedTimeline(t *testing.T) {
	p := timelineProject(t)
	d := DurationBetween(ptrTo(day(2024, time.March, 1)), ptrTo(day(2024, time.March, 31)), day(2024, time.March, 10))

	changed := p.SyncDates(d)

	assert.True(t, changed)
	require.NotNil(t, p.StartDate())
	assert.True(t, p.StartDate().Equal(day(2024, time.March, 1)))
	require.NotNil(t, p.EndDate())
	assert.True(t, p.EndDate().Equal(day(2024, time.March, 31)))
}

func TestSyncDates_ReportsNoChange(t *testing.T) {
	p := timelineProject(t)
	d := DurationBetween(ptrTo(day(2024, time.March, 1)), ptrTo(day(2024, time.March, 31)), day(2024, time.March, 10))

	require.True(t, p.SyncDates(d))
	assert.False(t, p.SyncDates(d), "identical dates must not report a change")
}

func TestSyncDates_ClearsWhenTimelineDisappears(t *testing.T) {
	p := timelineProject(t)
	require.True(t, p.SyncDates(DurationBetween(ptrTo(day(2024, time.March, 1)), ptrTo(day(2024, time.March, 31)), day(2024, time.March, 10))))

	// All milestones lost their dates; the stored pair follows.
	changed := p.SyncDates(Duration{})

	assert.True(t, changed)
	assert.Nil(t, p.StartDate())
	assert.Nil(t, p.EndDate())
}

func TestSyncDates_NoOpWhileOverridden(t *testing.T) {
	p := timelineProject(t)
	p.OverrideDates(ptrTo(day(2024, time.January, 1)), ptrTo(day(2024, time.June, 30)))

	d := DurationBetween(ptrTo(day(2024, time.March, 1)), ptrTo(day(2024, time.March, 31)), day(2024, time.March, 10))
	changed := p.SyncDates(d)

	assert.False(t, changed)
	assert.True(t, p.StartDate().Equal(day(2024, time.January, 1)), "pinned dates stay put")
}

func TestOverrideDates_RecordsEvent(t *testing.T) {
	p := timelineProject(t)
	p.ClearDomainEvents()

	p.OverrideDates(ptrTo(day(2024, time.February, 1)), ptrTo(day(2024, time.April, 30)))

	assert.True(t, p.DatesOverridden())
	events := p.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventDatesChanged, events[0].RoutingKey())
}

func TestResetDates_ReturnsToComputedTimeline(t *testing.T) {
	p := timelineProject(t)
	p.AddMilestone("anchor", ptrTo(day(2024, time.May, 15)))
	p.OverrideDates(ptrTo(day(2024, time.January, 1)), ptrTo(day(2024, time.December, 31)))
	p.ClearDomainEvents()

	d := ComputeDuration(p.Milestones(), day(2024, time.May, 1))
	p.ResetDates(d)

	assert.False(t, p.DatesOverridden())
	require.NotNil(t, p.StartDate())
	assert.True(t, p.StartDate().Equal(day(2024, time.May, 15)))
	require.NotNil(t, p.EndDate())
	assert.True(t, p.EndDate().Equal(day(2024, time.May, 15)))

	events := p.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventDatesChanged, events[0].RoutingKey())
}

func TestResetDates_WithoutMilestonesClearsDates(t *testing.T) {
	p := timelineProject(t)
	p.OverrideDates(ptrTo(day(2024, time.January, 1)), ptrTo(day(2024, time.December, 31)))

	p.ResetDates(ComputeDuration(p.Milestones(), day(2024, time.May, 1)))

	assert.False(t, p.DatesOverridden())
	assert.Nil(t, p.StartDate())
	assert.Nil(t, p.EndDate())
}
