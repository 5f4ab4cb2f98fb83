package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func durationOf(total, remaining int) Duration {
	return Duration{TotalDays: &total, TotalDaysRemaining: &remaining}
}

func TestClassifyTimeRemaining_Unknown(t *testing.T) {
	assert.Equal(t, TimeUnknown, ClassifyTimeRemaining(Duration{}).Bucket)
	assert.Nil(t, ClassifyTimeRemaining(Duration{}).Percentage)

	zero := 0
	rem := 5
	d := Duration{TotalDays: &zero, TotalDaysRemaining: &rem}
	assert.Equal(t, TimeUnknown, ClassifyTimeRemaining(d).Bucket, "zero total can't be divided")
}

func TestClassifyTimeRemaining_Overdue(t *testing.T) {
	got := ClassifyTimeRemaining(durationOf(10, -1))
	assert.Equal(t, TimeOverdue, got.Bucket)
	require.NotNil(t, got.Percentage)
	assert.Equal(t, 0, *got.Percentage)
}

func TestClassifyTimeRemaining_Buckets(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		remaining int
		pct       int
		bucket    TimeBucket
	}{
		{"all time left", 10, 10, 100, TimeSubstantial},
		{"just above plenty", 100, 61, 61, TimeSubstantial},
		{"upper plenty edge", 100, 60, 60, TimePlenty},
		{"lower plenty edge", 100, 30, 30, TimePlenty},
		{"upper moderate edge", 100, 29, 29, TimeModerate},
		{"lower moderate edge", 100, 15, 15, TimeModerate},
		{"upper little edge", 100, 14, 14, TimeLittle},
		{"deadline day", 100, 0, 0, TimeLittle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyTimeRemaining(durationOf(tt.total, tt.remaining))
			require.NotNil(t, got.Percentage)
			assert.Equal(t, tt.pct, *got.Percentage)
			assert.Equal(t, tt.bucket, got.Bucket)
		})
	}
}

func TestClassifyTimeRemaining_RoundsRatio(t *testing.T) {
	// 2/7 = 28.57% -> 29, landing in moderate instead of little.
	got := ClassifyTimeRemaining(durationOf(7, 2))
	require.NotNil(t, got.Percentage)
	assert.Equal(t, 29, *got.Percentage)
	assert.Equal(t, TimeModerate, got.Bucket)
}

func TestClassifyTimeRemaining_CanExceedHundred(t *testing.T) {
	// Editing milestones can shrink the total span below the days still
	// counted as remaining; the raw ratio is preserved.
	got := ClassifyTimeRemaining(durationOf(5, 9))
	require.NotNil(t, got.Percentage)
	assert.Equal(t, 180, *got.Percentage)
	assert.Equal(t, TimeSubstantial, got.Bucket)
}
