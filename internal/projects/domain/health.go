package domain

import (
	"fmt"
	"time"
)

// Color represents the traffic-light health status of a project.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
)

// String returns the string representation of the color.
func (c Color) String() string {
	return string(c)
}

// IsValid returns true if the color is a known value.
func (c Color) IsValid() bool {
	return c == ColorGreen || c == ColorYellow || c == ColorRed
}

// ParseColor parses a string into a Color.
func ParseColor(s string) (Color, error) {
	color := Color(s)
	if !color.IsValid() {
		return "", ErrInvalidColor
	}
	return color, nil
}

// Health is the computed health of a project: a color, the completion
// percentage backing it, and a reasoning string identifying which rule
// fired and the numeric inputs used. It is recomputed on every invocation
// and carries no lifecycle of its own.
type Health struct {
	Color      Color
	Percentage int
	Reasoning  string
}

// ComputeHealth classifies a project's overall health. Decision order,
// first match wins:
//
//  1. manual calculation mode uses the caller-supplied color and percentage
//  2. completed projects are green at 100%
//  3. cancelled projects are red at 0%
//  4. draft and on-hold projects are yellow at their completion percentage
//  5. active projects with milestones are classified by weighted completion
//     against time-aware thresholds that tighten as the deadline nears
//  6. active projects without milestones get the benefit of the doubt
//
// Today is supplied by the caller so the result is reproducible.
func ComputeHealth(p *Project, today time.Time) Health {
	if p.CalculationType() == CalculationManual {
		return manualHealth(p)
	}

	switch p.Status() {
	case StatusCompleted:
		return Health{ColorGreen, 100, "project is completed"}
	case StatusCancelled:
		return Health{ColorRed, 0, "project was cancelled"}
	case StatusDraft, StatusOnHold:
		completion := WeightedCompletion(p.Milestones())
		return Health{
			Color:      ColorYellow,
			Percentage: completion,
			Reasoning:  fmt.Sprintf("project is %s at %d%% completion", p.Status(), completion),
		}
	}

	milestones := p.Milestones()
	if len(milestones) == 0 {
		return Health{ColorGreen, 0, "active project with no milestones yet"}
	}

	completion := WeightedCompletion(milestones)
	remaining := ClassifyTimeRemaining(ProjectDuration(p, today))
	return timeAwareHealth(completion, remaining)
}

// manualHealth applies the caller-supplied override, falling back to green
// and 0% when the manual fields are absent.
func manualHealth(p *Project) Health {
	color := ColorGreen
	colorNote := " (no color set, defaulting to green)"
	if p.ManualColor() != nil {
		color = *p.ManualColor()
		colorNote = ""
	}

	percentage := 0
	pctNote := " (no percentage set, defaulting to 0)"
	if p.ManualPercentage() != nil {
		percentage = clampCompletion(*p.ManualPercentage())
		pctNote = ""
	}

	return Health{
		Color:      color,
		Percentage: percentage,
		Reasoning:  fmt.Sprintf("health set manually to %s at %d%%%s%s", color, percentage, colorNote, pctNote),
	}
}

// timeAwareHealth picks the completion thresholds for the time-remaining
// bucket. Thresholds loosen when plenty of time remains and tighten as the
// deadline approaches or passes.
func timeAwareHealth(completion int, remaining TimeRemaining) Health {
	switch remaining.Bucket {
	case TimeOverdue:
		color := ColorRed
		if completion >= 90 {
			color = ColorYellow
		}
		return Health{
			Color:      color,
			Percentage: completion,
			Reasoning:  fmt.Sprintf("%d%% complete and past the end date", completion),
		}

	case TimeSubstantial:
		return bucketHealth(completion, remaining, 10, 5)
	case TimePlenty:
		return bucketHealth(completion, remaining, 20, 10)
	case TimeModerate:
		return bucketHealth(completion, remaining, 40, 25)
	case TimeLittle:
		return bucketHealth(completion, remaining, 80, 60)

	default: // TimeUnknown
		return Health{
			Color:      thresholdColor(completion, 70, 40),
			Percentage: completion,
			Reasoning:  fmt.Sprintf("%d%% complete with no timeline data", completion),
		}
	}
}

func bucketHealth(completion int, remaining TimeRemaining, greenMin, yellowMin int) Health {
	timeLeft := *remaining.Percentage
	reasoning := fmt.Sprintf("%d%% complete with %d%% of the timeline remaining (%s)",
		completion, timeLeft, remaining.Bucket)
	if timeLeft > 100 {
		reasoning += "; the timeline shrank after its end date passed"
	}
	return Health{
		Color:      thresholdColor(completion, greenMin, yellowMin),
		Percentage: completion,
		Reasoning:  reasoning,
	}
}

func thresholdColor(completion, greenMin, yellowMin int) Color {
	switch {
	case completion >= greenMin:
		return ColorGreen
	case completion >= yellowMin:
		return ColorYellow
	default:
		return ColorRed
	}
}
