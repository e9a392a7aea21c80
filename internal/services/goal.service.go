package services

import (
	"fmt"

	"reworn/internal/logger"
	. "reworn/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// minimumAverageCPW floors the divisor when computing average-CPW goal
// progress so a near-zero average cannot blow the ratio up.
var minimumAverageCPW = decimal.NewFromFloat(0.01)

type GoalProgress struct {
	Percent             float64 `json:"percent"`
	Completed           bool    `json:"completed"`
	CurrentValueDisplay string  `json:"currentValueDisplay"`
}

// achievementDef pairs achievement metadata with its unlock predicate.
// Adding an achievement means adding a row, not touching evaluation logic.
type achievementDef struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Predicate   func(snapshot *Snapshot) bool
}

// The fixed achievement catalog. Predicates run over the full snapshot,
// archived items included, and are re-evaluated fresh on every read; unlock
// state is never stored.
var achievementCatalog = []achievementDef{
	{
		ID:          "first_item",
		Title:       "Getting Started",
		Description: "Add your first wardrobe item",
		Icon:        "tshirt",
		Predicate: func(snapshot *Snapshot) bool {
			return len(snapshot.AllItems) > 0
		},
	},
	{
		ID:          "first_wear",
		Title:       "First Wear",
		Description: "Log your first wear",
		Icon:        "checkmark.seal",
		Predicate: func(snapshot *Snapshot) bool {
			return len(snapshot.Logs) > 0
		},
	},
	{
		ID:          "collector",
		Title:       "Collector",
		Description: "Build a wardrobe of 10 items",
		Icon:        "square.grid.3x3",
		Predicate: func(snapshot *Snapshot) bool {
			return len(snapshot.AllItems) >= 10
		},
	},
	{
		ID:          "bargain_hunter",
		Title:       "Bargain Hunter",
		Description: "Get any worn item under 1.00 cost per wear",
		Icon:        "tag",
		Predicate: func(snapshot *Snapshot) bool {
			one := decimal.NewFromInt(1)
			for _, item := range snapshot.AllItems {
				if item.WearCount > 0 && item.CostPerWear().LessThan(one) {
					return true
				}
			}
			return false
		},
	},
	{
		ID:          "century_club",
		Title:       "Century Club",
		Description: "Wear a single item 100 times",
		Icon:        "100.circle",
		Predicate: func(snapshot *Snapshot) bool {
			for _, item := range snapshot.AllItems {
				if item.WearCount >= 100 {
					return true
				}
			}
			return false
		},
	},
	{
		ID:          "smart_shopper",
		Title:       "Smart Shopper",
		Description: "Keep your average cost per wear under 5.00",
		Icon:        "chart.line.downtrend",
		Predicate: func(snapshot *Snapshot) bool {
			average := AverageCPW(snapshot.AllItems)
			return average.IsPositive() && average.LessThan(decimal.NewFromInt(5))
		},
	},
	{
		ID:          "outfit_regular",
		Title:       "Outfit Regular",
		Description: "Log 50 total wears",
		Icon:        "repeat",
		Predicate: func(snapshot *Snapshot) bool {
			return TotalWears(snapshot.AllItems) >= 50
		},
	},
	{
		ID:          "well_rounded",
		Title:       "Well Rounded",
		Description: "Own items across 5 different categories",
		Icon:        "square.stack.3d.up",
		Predicate: func(snapshot *Snapshot) bool {
			categories := make(map[string]bool)
			for _, item := range snapshot.AllItems {
				categories[item.CategoryOrDefault()] = true
			}
			return len(categories) >= 5
		},
	},
	{
		ID:          "curator",
		Title:       "Curator",
		Description: "Build a wardrobe of 25 items",
		Icon:        "building.columns",
		Predicate: func(snapshot *Snapshot) bool {
			return len(snapshot.AllItems) >= 25
		},
	},
}

// GoalService evaluates sustainability goals and the achievement catalog
// against an item/log snapshot.
type GoalService struct {
	formatter CurrencyFormatter
	log       logger.Logger
}

func NewGoalService(formatter CurrencyFormatter) *GoalService {
	return &GoalService{
		formatter: formatter,
		log:       logger.New("goalService"),
	}
}

// Progress computes how far along a goal is, in [0, 1]. Dangling item
// references and empty snapshots degrade to zero progress, never an error.
func (s *GoalService) Progress(goal *SustainabilityGoal, snapshot *Snapshot) GoalProgress {
	switch goal.GoalType {
	case GoalTypeAverageCPW:
		return s.averageCPWProgress(goal, snapshot)
	case GoalTypeWearCount:
		return s.wearCountProgress(goal, snapshot)
	default:
		s.log.Warn("unknown goal type", "goalID", goal.ID, "goalType", goal.GoalType)
		return GoalProgress{}
	}
}

// averageCPWProgress increases as the wardrobe's average CPW falls toward or
// below the target.
func (s *GoalService) averageCPWProgress(
	goal *SustainabilityGoal,
	snapshot *Snapshot,
) GoalProgress {
	average := AverageCPW(snapshot.ActiveItems)
	if average.IsZero() {
		return GoalProgress{CurrentValueDisplay: s.formatter.Format(decimal.Zero)}
	}

	divisor := average
	if divisor.LessThan(minimumAverageCPW) {
		divisor = minimumAverageCPW
	}

	percent, _ := goal.TargetValue.Div(divisor).Float64()
	if percent > 1 {
		percent = 1
	}

	return GoalProgress{
		Percent:             percent,
		Completed:           percent >= 1,
		CurrentValueDisplay: s.formatter.Format(average),
	}
}

func (s *GoalService) wearCountProgress(
	goal *SustainabilityGoal,
	snapshot *Snapshot,
) GoalProgress {
	if goal.LinkedItemID == nil || !goal.TargetValue.IsPositive() {
		return GoalProgress{CurrentValueDisplay: "0 wears"}
	}

	item := findItem(snapshot.AllItems, *goal.LinkedItemID)
	if item == nil {
		// Dangling reference: the linked item was deleted.
		return GoalProgress{CurrentValueDisplay: "0 wears"}
	}

	percent, _ := decimal.NewFromInt(int64(item.WearCount)).
		Div(goal.TargetValue).
		Float64()
	if percent > 1 {
		percent = 1
	}

	return GoalProgress{
		Percent:             percent,
		Completed:           percent >= 1,
		CurrentValueDisplay: fmt.Sprintf("%d wears", item.WearCount),
	}
}

// Achievements evaluates the whole catalog against the snapshot.
func (s *GoalService) Achievements(snapshot *Snapshot) []Achievement {
	achievements := make([]Achievement, 0, len(achievementCatalog))
	for _, def := range achievementCatalog {
		achievements = append(achievements, Achievement{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			Unlocked:    def.Predicate(snapshot),
		})
	}
	return achievements
}

func findItem(items []*WardrobeItem, itemID uuid.UUID) *WardrobeItem {
	for _, item := range items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}
