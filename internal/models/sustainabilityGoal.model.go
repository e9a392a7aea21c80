package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GoalType string

const (
	GoalTypeAverageCPW GoalType = "average_cpw"
	GoalTypeWearCount  GoalType = "wear_count"
)

// SustainabilityGoal is user-created and user-deleted, never edited in place.
// The item link is a weak reference: a dangling LinkedItemID degrades to zero
// progress rather than failing.
type SustainabilityGoal struct {
	BaseUUIDModel
	Title        string          `gorm:"type:text;not null"                    json:"title"`
	GoalType     GoalType        `gorm:"type:text;not null"                    json:"goalType"`
	TargetValue  decimal.Decimal `gorm:"type:decimal(10,2);not null"           json:"targetValue"`
	LinkedItemID *uuid.UUID      `gorm:"type:uuid"                             json:"linkedItemId,omitempty"`
}

func (g *SustainabilityGoal) IsValidType() bool {
	return g.GoalType == GoalTypeAverageCPW || g.GoalType == GoalTypeWearCount
}
