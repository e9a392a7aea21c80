package models

import (
	"time"

	"reworn/internal/utils"

	"github.com/shopspring/decimal"
)

const (
	DefaultItemName     = "Unnamed Item"
	DefaultItemCategory = "Other"

	// EfficiencySaturationWears is the wear count at which the efficiency
	// ramp reaches 100, regardless of price.
	EfficiencySaturationWears = 30

	// UnusedItemGraceDays is how long a new purchase can sit unworn before
	// it counts as unused.
	UnusedItemGraceDays = 30
)

type WardrobeItem struct {
	BaseUUIDModel
	Name          string          `gorm:"type:text;not null"                     json:"name"`
	Category      string          `gorm:"type:text;not null;index"               json:"category"`
	Brand         *string         `gorm:"type:text"                              json:"brand,omitempty"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"  json:"purchasePrice"`
	PurchaseDate  time.Time       `gorm:"not null"                               json:"purchaseDate"`
	PhotoRef      string          `gorm:"type:text"                              json:"photoRef,omitempty"`
	WearCount     int             `gorm:"type:int;not null;default:0"            json:"wearCount"`
	Archived      bool            `gorm:"type:bool;not null;default:false;index" json:"archived"`
}

// CPWPoint is one sample of an item's cost-per-wear history.
type CPWPoint struct {
	Date time.Time       `json:"date"`
	CPW  decimal.Decimal `json:"cpw"`
}

// DisplayName falls back to the documented default for items saved without a
// name.
func (i *WardrobeItem) DisplayName() string {
	if i.Name == "" {
		return DefaultItemName
	}
	return i.Name
}

// CategoryOrDefault falls back to the documented default category.
func (i *WardrobeItem) CategoryOrDefault() string {
	if i.Category == "" {
		return DefaultItemCategory
	}
	return i.Category
}

// CostPerWear returns purchase price divided by wear count. An unworn item
// reports its full sticker price, the worst case so far.
func (i *WardrobeItem) CostPerWear() decimal.Decimal {
	if i.WearCount == 0 {
		return i.PurchasePrice
	}
	return i.PurchasePrice.Div(decimal.NewFromInt(int64(i.WearCount)))
}

// EfficiencyScore returns a 0-100 value ramping linearly to 100 at
// EfficiencySaturationWears wears. Unworn or free items score 0.
func (i *WardrobeItem) EfficiencyScore() float64 {
	if i.WearCount == 0 || !i.PurchasePrice.IsPositive() {
		return 0
	}

	ratio := float64(i.WearCount) / float64(EfficiencySaturationWears)
	if ratio > 1 {
		ratio = 1
	}
	return ratio * 100
}

// EfficiencyGrade maps the item's efficiency score to a badge grade.
func (i *WardrobeItem) EfficiencyGrade() string {
	return GradeForScore(i.EfficiencyScore())
}

// GradeForScore maps a 0-100 efficiency score to a badge grade.
func GradeForScore(score float64) string {
	switch {
	case score >= 80:
		return "A+"
	case score >= 60:
		return "A"
	case score >= 40:
		return "B"
	case score >= 20:
		return "C"
	default:
		return "D"
	}
}

// DaysSincePurchase returns whole calendar days since the purchase date,
// floored at zero so a future-dated purchase can never go negative.
func (i *WardrobeItem) DaysSincePurchase(now time.Time) int {
	days := utils.DaysBetween(i.PurchaseDate, now)
	if days < 0 {
		return 0
	}
	return days
}

// WearsPerMonth returns the item's wear rate per 30-day month. The ownership
// period is floored at one month so an item bought today does not report an
// explosive rate.
func (i *WardrobeItem) WearsPerMonth(now time.Time) float64 {
	months := float64(i.DaysSincePurchase(now)) / 30.0
	if months < 1 {
		months = 1
	}
	return float64(i.WearCount) / months
}

// WearsPerWeek returns the item's wear rate per 7-day week, with the same
// one-period floor as WearsPerMonth.
func (i *WardrobeItem) WearsPerWeek(now time.Time) float64 {
	weeks := float64(i.DaysSincePurchase(now)) / 7.0
	if weeks < 1 {
		weeks = 1
	}
	return float64(i.WearCount) / weeks
}

// ProjectedYearlyWears extrapolates the current monthly wear rate to a year.
func (i *WardrobeItem) ProjectedYearlyWears(now time.Time) int {
	return int(i.WearsPerMonth(now) * 12)
}

// ProjectedYearlyCPW returns the cost per wear the item would reach a year
// from now at the current wear rate. Falls back to the purchase price when
// the projected total is not positive.
func (i *WardrobeItem) ProjectedYearlyCPW(now time.Time) decimal.Decimal {
	projected := float64(i.WearCount) + i.WearsPerMonth(now)*12
	if projected <= 0 {
		return i.PurchasePrice
	}
	return i.PurchasePrice.Div(decimal.NewFromFloat(projected))
}

// CPWOverTime builds the item's cost-per-wear history: the purchase date at
// full price, then one point per wear log in chronological order. The series
// is non-increasing after the first element and has wearCount+1 points when
// logs are complete.
func (i *WardrobeItem) CPWOverTime(logs []*WearLog) []CPWPoint {
	points := make([]CPWPoint, 0, len(logs)+1)
	points = append(points, CPWPoint{Date: i.PurchaseDate, CPW: i.PurchasePrice})

	for index, log := range logs {
		points = append(points, CPWPoint{
			Date: log.WornAt,
			CPW:  i.PurchasePrice.Div(decimal.NewFromInt(int64(index + 1))),
		})
	}

	return points
}

// DaysSinceLastWorn returns whole days since the most recent wear log, or nil
// for an item that has never been worn.
func (i *WardrobeItem) DaysSinceLastWorn(logs []*WearLog, now time.Time) *int {
	if len(logs) == 0 {
		return nil
	}

	latest := logs[0].WornAt
	for _, log := range logs[1:] {
		if log.WornAt.After(latest) {
			latest = log.WornAt
		}
	}

	days := utils.DaysBetween(latest, now)
	if days < 0 {
		days = 0
	}
	return &days
}

// IsUnused reports whether the item has never been worn and is past the
// grace period for new purchases.
func (i *WardrobeItem) IsUnused(now time.Time) bool {
	return i.WearCount == 0 && i.DaysSincePurchase(now) > UnusedItemGraceDays
}
