package domain

import "math"

// WeightedCompletion reduces a milestone list to a single completion
// percentage. Each milestone contributes its completion multiplied by its
// importance weight; the result is the weighted average rounded to the
// nearest integer. An empty list yields 0.
//
// Malformed milestones degrade instead of failing: completion is clamped to
// 0-100 and weights outside 1-5 count as the default weight.
func WeightedCompletion(milestones []*Milestone) int {
	if len(milestones) == 0 {
		return 0
	}

	totalWeighted := 0
	totalWeight := 0
	for _, m := range milestones {
		if m == nil {
			continue
		}
		weight := m.NormalizedWeight()
		totalWeighted += clampCompletion(m.Completion()) * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0
	}

	return int(math.Round(float64(totalWeighted) / float64(totalWeight)))
}
