package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func milestoneWith(completion, weight int) *Milestone {
	m := NewMilestone(uuid.New(), "m", nil)
	m.SetCompletion(completion)
	m.SetWeight(weight)
	return m
}

func TestWeightedCompletion_Empty(t *testing.T) {
	assert.Equal(t, 0, WeightedCompletion(nil))
	assert.Equal(t, 0, WeightedCompletion([]*Milestone{}))
}

func TestWeightedCompletion_SingleMilestone(t *testing.T) {
	assert.Equal(t, 42, WeightedCompletion([]*Milestone{milestoneWith(42, 3)}))
}

func TestWeightedCompletion_EqualWeights(t *testing.T) {
	milestones := []*Milestone{
		milestoneWith(100, 3),
		milestoneWith(0, 3),
	}
	assert.Equal(t, 50, WeightedCompletion(milestones))
}

func TestWeightedCompletion_WeightsBias(t *testing.T) {
	// (100*5 + 0*1) / 6 = 83.33 -> 83
	milestones := []*Milestone{
		milestoneWith(100, 5),
		milestoneWith(0, 1),
	}
	assert.Equal(t, 83, WeightedCompletion(milestones))
}

func TestWeightedCompletion_RoundsToNearest(t *testing.T) {
	// (0*3 + 25*3) / 6 = 12.5 -> 13
	milestones := []*Milestone{
		milestoneWith(0, 3),
		milestoneWith(25, 3),
	}
	assert.Equal(t, 13, WeightedCompletion(milestones))
}

func TestWeightedCompletion_OutOfRangeWeightUsesDefault(t *testing.T) {
	// A weight of 0 or 9 never reaches the struct through setters, but
	// persistence could hand one back; the calculation substitutes the
	// default weight instead of skipping the milestone.
	now := time.Now().UTC()
	bad := RehydrateMilestone(
		uuid.New(), uuid.New(), "bad", "", nil, nil,
		100, 0, MilestoneOnTrack, 0, now, now,
	)
	good := milestoneWith(0, 3)

	assert.Equal(t, 50, WeightedCompletion([]*Milestone{bad, good}))
}

func TestWeightedCompletion_SkipsNilEntries(t *testing.T) {
	milestones := []*Milestone{nil, milestoneWith(80, 3), nil}
	assert.Equal(t, 80, WeightedCompletion(milestones))
}

func TestWeightedCompletion_ClampsPersistedCompletion(t *testing.T) {
	now := time.Now().UTC()
	over := RehydrateMilestone(
		uuid.New(), uuid.UUID{}, "over", "", nil, nil,
		250, 3, MilestoneOnTrack, 0, now, now,
	)
	assert.Equal(t, 100, WeightedCompletion([]*Milestone{over}))
}
