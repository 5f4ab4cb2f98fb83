package domain

import "math"

// TimeBucket is a discrete urgency category derived from the ratio of
// remaining to total project duration.
type TimeBucket string

const (
	// TimeUnknown means no timeline data is available.
	TimeUnknown TimeBucket = "unknown"
	// TimeOverdue means the end date has passed.
	TimeOverdue TimeBucket = "overdue"
	// TimeSubstantial means more than 60% of the timeline remains.
	TimeSubstantial TimeBucket = "substantial"
	// TimePlenty means 30-60% of the timeline remains.
	TimePlenty TimeBucket = "plenty"
	// TimeModerate means 15-29% of the timeline remains.
	TimeModerate TimeBucket = "moderate"
	// TimeLittle means less than 15% of the timeline remains.
	TimeLittle TimeBucket = "little"
)

// String returns the string representation of the bucket.
func (b TimeBucket) String() string {
	return string(b)
}

// TimeRemaining pairs the remaining-time percentage with its urgency
// bucket. Percentage is nil when the bucket is TimeUnknown.
type TimeRemaining struct {
	Percentage *int
	Bucket     TimeBucket
}

// ClassifyTimeRemaining converts a duration profile into a time-remaining
// percentage and urgency bucket. The percentage can exceed 100 when
// milestone edits shrink the total span after the original end date has
// passed; the raw value is preserved rather than clamped so downstream
// consumers can surface it with an explanation.
func ClassifyTimeRemaining(d Duration) TimeRemaining {
	if d.TotalDays == nil || *d.TotalDays == 0 || d.TotalDaysRemaining == nil {
		return TimeRemaining{Bucket: TimeUnknown}
	}

	remaining := *d.TotalDaysRemaining
	if remaining < 0 {
		zero := 0
		return TimeRemaining{Percentage: &zero, Bucket: TimeOverdue}
	}

	pct := int(math.Round(float64(remaining) / float64(*d.TotalDays) * 100))

	var bucket TimeBucket
	switch {
	case pct > 60:
		bucket = TimeSubstantial
	case pct >= 30:
		bucket = TimePlenty
	case pct >= 15:
		bucket = TimeModerate
	default:
		bucket = TimeLittle
	}

	return TimeRemaining{Percentage: &pct, Bucket: bucket}
}
