package services

import (
	"testing"

	. "reworn/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoalService() *GoalService {
	return NewGoalService(NewCurrencyFormatter("$"))
}

func TestAverageCPWGoalProgress(t *testing.T) {
	service := newGoalService()

	tests := []struct {
		name            string
		target          float64
		items           []*WardrobeItem
		expectedPercent float64
		completed       bool
	}{
		{
			name:            "no worn items gives zero progress",
			target:          5,
			items:           []*WardrobeItem{testItem(100, 0, "Tops")},
			expectedPercent: 0,
			completed:       false,
		},
		{
			name:   "halfway to target",
			target: 5,
			items: []*WardrobeItem{
				testItem(100, 10, "Tops"), // cpw 10, average 10
			},
			expectedPercent: 0.5,
			completed:       false,
		},
		{
			name:   "average at target completes the goal",
			target: 5,
			items: []*WardrobeItem{
				testItem(50, 10, "Tops"), // cpw 5
			},
			expectedPercent: 1,
			completed:       true,
		},
		{
			name:   "progress is capped at one when average beats target",
			target: 5,
			items: []*WardrobeItem{
				testItem(10, 10, "Tops"), // cpw 1
			},
			expectedPercent: 1,
			completed:       true,
		},
		{
			name:   "tiny average is floored before dividing",
			target: 5,
			items: []*WardrobeItem{
				testItem(0.001, 1, "Tops"),
			},
			expectedPercent: 1,
			completed:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := &SustainabilityGoal{
				Title:       "Lower my CPW",
				GoalType:    GoalTypeAverageCPW,
				TargetValue: decimal.NewFromFloat(tt.target),
			}

			snapshot := &Snapshot{ActiveItems: tt.items, AllItems: tt.items}
			progress := service.Progress(goal, snapshot)

			assert.InDelta(t, tt.expectedPercent, progress.Percent, 0.001)
			assert.Equal(t, tt.completed, progress.Completed)
		})
	}
}

func TestWearCountGoalProgress(t *testing.T) {
	service := newGoalService()

	item := testItem(100, 25, "Tops")
	snapshot := &Snapshot{
		ActiveItems: []*WardrobeItem{item},
		AllItems:    []*WardrobeItem{item},
	}

	goalFor := func(itemID *uuid.UUID, target int64) *SustainabilityGoal {
		return &SustainabilityGoal{
			Title:        "Wear it out",
			GoalType:     GoalTypeWearCount,
			TargetValue:  decimal.NewFromInt(target),
			LinkedItemID: itemID,
		}
	}

	t.Run("halfway there", func(t *testing.T) {
		progress := service.Progress(goalFor(&item.ID, 50), snapshot)
		assert.InDelta(t, 0.5, progress.Percent, 0.001)
		assert.False(t, progress.Completed)
		assert.Equal(t, "25 wears", progress.CurrentValueDisplay)
	})

	t.Run("capped at one past the target", func(t *testing.T) {
		progress := service.Progress(goalFor(&item.ID, 10), snapshot)
		assert.Equal(t, 1.0, progress.Percent)
		assert.True(t, progress.Completed)
	})

	t.Run("dangling item reference degrades to zero", func(t *testing.T) {
		missing := uuid.Must(uuid.NewV7())
		progress := service.Progress(goalFor(&missing, 50), snapshot)
		assert.Equal(t, 0.0, progress.Percent)
		assert.False(t, progress.Completed)
	})

	t.Run("nil item reference degrades to zero", func(t *testing.T) {
		progress := service.Progress(goalFor(nil, 50), snapshot)
		assert.Equal(t, 0.0, progress.Percent)
		assert.False(t, progress.Completed)
	})
}

func TestAchievements(t *testing.T) {
	service := newGoalService()

	t.Run("empty wardrobe unlocks nothing", func(t *testing.T) {
		achievements := service.Achievements(&Snapshot{})
		require.Len(t, achievements, len(achievementCatalog))
		for _, achievement := range achievements {
			assert.False(t, achievement.Unlocked, achievement.ID)
		}
	})

	t.Run("archived items still count", func(t *testing.T) {
		archived := testItem(100, 100, "Tops")
		archived.Archived = true

		snapshot := &Snapshot{
			ActiveItems: []*WardrobeItem{},
			AllItems:    []*WardrobeItem{archived},
		}

		achievements := service.Achievements(snapshot)
		byID := make(map[string]bool, len(achievements))
		for _, achievement := range achievements {
			byID[achievement.ID] = achievement.Unlocked
		}

		assert.True(t, byID["first_item"])
		assert.True(t, byID["century_club"])
		assert.True(t, byID["outfit_regular"], "100 wears passes the 50-wear threshold")
		assert.False(t, byID["collector"])
	})

	t.Run("category spread", func(t *testing.T) {
		items := []*WardrobeItem{
			testItem(10, 1, "Tops"),
			testItem(10, 1, "Shoes"),
			testItem(10, 1, "Coats"),
			testItem(10, 1, "Hats"),
			testItem(10, 1, ""),
		}

		achievements := service.Achievements(&Snapshot{AllItems: items})
		for _, achievement := range achievements {
			if achievement.ID == "well_rounded" {
				assert.True(t, achievement.Unlocked,
					"blank category defaults to Other and counts as a fifth category")
			}
		}
	})

	t.Run("evaluation is repeatable", func(t *testing.T) {
		item := testItem(10, 20, "Tops")
		snapshot := &Snapshot{AllItems: []*WardrobeItem{item}}

		assert.Equal(t, service.Achievements(snapshot), service.Achievements(snapshot))
	})
}
