package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(price string, wearCount int, purchaseDate time.Time) *WardrobeItem {
	return &WardrobeItem{
		Name:          "Test Item",
		Category:      "Tops",
		PurchasePrice: decimal.RequireFromString(price),
		PurchaseDate:  purchaseDate,
		WearCount:     wearCount,
	}
}

func TestCostPerWear(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		price     string
		wearCount int
		expected  string
	}{
		{
			name:      "Unworn item reports full sticker price",
			price:     "100.00",
			wearCount: 0,
			expected:  "100",
		},
		{
			name:      "Worn item divides price by wear count",
			price:     "90.00",
			wearCount: 30,
			expected:  "3",
		},
		{
			name:      "Free item stays at zero",
			price:     "0",
			wearCount: 5,
			expected:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newItem(tt.price, tt.wearCount, now.AddDate(0, -6, 0))
			assert.True(t, item.CostPerWear().Equal(decimal.RequireFromString(tt.expected)),
				"expected %s got %s", tt.expected, item.CostPerWear())
		})
	}
}

func TestEfficiencyScore(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		price     string
		wearCount int
		expected  float64
		grade     string
	}{
		{
			name:      "Unworn item scores zero with grade D",
			price:     "100.00",
			wearCount: 0,
			expected:  0,
			grade:     "D",
		},
		{
			name:      "Thirty wears saturates at 100 with grade A+",
			price:     "90.00",
			wearCount: 30,
			expected:  100,
			grade:     "A+",
		},
		{
			name:      "Score stays at 100 beyond saturation",
			price:     "90.00",
			wearCount: 90,
			expected:  100,
			grade:     "A+",
		},
		{
			name:      "Fifteen wears is halfway up the ramp",
			price:     "50.00",
			wearCount: 15,
			expected:  50,
			grade:     "B",
		},
		{
			name:      "Free item scores zero regardless of wears",
			price:     "0",
			wearCount: 40,
			expected:  0,
			grade:     "D",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newItem(tt.price, tt.wearCount, now.AddDate(-1, 0, 0))
			assert.InDelta(t, tt.expected, item.EfficiencyScore(), 0.0001)
			assert.Equal(t, tt.grade, item.EfficiencyGrade())
		})
	}
}

func TestEfficiencyScoreMonotonic(t *testing.T) {
	previous := -1.0
	for wears := 0; wears <= 40; wears++ {
		item := newItem("75.00", wears, time.Now().AddDate(0, -3, 0))
		score := item.EfficiencyScore()
		assert.GreaterOrEqual(t, score, previous, "score decreased at %d wears", wears)
		if wears >= EfficiencySaturationWears {
			assert.InDelta(t, 100.0, score, 0.0001)
		}
		previous = score
	}
}

func TestDaysSincePurchase(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name         string
		purchaseDate time.Time
		expected     int
	}{
		{
			name:         "Purchased ten days ago",
			purchaseDate: now.AddDate(0, 0, -10),
			expected:     10,
		},
		{
			name:         "Purchased today",
			purchaseDate: now,
			expected:     0,
		},
		{
			name:         "Future purchase date floors at zero",
			purchaseDate: now.AddDate(0, 0, 5),
			expected:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newItem("20.00", 0, tt.purchaseDate)
			assert.Equal(t, tt.expected, item.DaysSincePurchase(now))
		})
	}
}

func TestWearRates(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// 60 days of ownership, 10 wears: 5 per month, 1.166... per week.
	item := newItem("80.00", 10, now.AddDate(0, 0, -60))
	assert.InDelta(t, 5.0, item.WearsPerMonth(now), 0.0001)
	assert.InDelta(t, 10.0/(60.0/7.0), item.WearsPerWeek(now), 0.0001)

	// Purchased today: denominator floors at one period.
	fresh := newItem("80.00", 3, now)
	assert.InDelta(t, 3.0, fresh.WearsPerMonth(now), 0.0001)
	assert.InDelta(t, 3.0, fresh.WearsPerWeek(now), 0.0001)
}

func TestProjections(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// 5 wears/month projects to 60 wears/year; CPW trends toward
	// price / (current + projected).
	item := newItem("140.00", 10, now.AddDate(0, 0, -60))
	assert.Equal(t, 60, item.ProjectedYearlyWears(now))

	projected := item.ProjectedYearlyCPW(now)
	assert.InDelta(t, 2.0, projected.InexactFloat64(), 0.0001)

	// Unworn item with no rate falls back to sticker price.
	unworn := newItem("140.00", 0, now.AddDate(0, 0, -60))
	assert.True(t, unworn.ProjectedYearlyCPW(now).Equal(unworn.PurchasePrice))
}

func TestCPWOverTime(t *testing.T) {
	purchase := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	item := newItem("60.00", 3, purchase)

	logs := []*WearLog{
		{WornAt: purchase.AddDate(0, 0, 3)},
		{WornAt: purchase.AddDate(0, 0, 10)},
		{WornAt: purchase.AddDate(0, 0, 20)},
	}

	points := item.CPWOverTime(logs)
	require.Len(t, points, 4, "expected wearCount+1 points")

	assert.True(t, points[0].Date.Equal(purchase))
	assert.True(t, points[0].CPW.Equal(decimal.RequireFromString("60")))
	assert.True(t, points[1].CPW.Equal(decimal.RequireFromString("60")))
	assert.True(t, points[2].CPW.Equal(decimal.RequireFromString("30")))
	assert.True(t, points[3].CPW.Equal(decimal.RequireFromString("20")))

	for i := 1; i < len(points); i++ {
		assert.False(t, points[i].CPW.GreaterThan(points[i-1].CPW),
			"series increased at index %d", i)
	}
}

func TestDaysSinceLastWorn(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	item := newItem("45.00", 2, now.AddDate(0, -2, 0))

	assert.Nil(t, item.DaysSinceLastWorn(nil, now), "never worn items have no value")

	logs := []*WearLog{
		{WornAt: now.AddDate(0, 0, -12)},
		{WornAt: now.AddDate(0, 0, -4)},
	}
	days := item.DaysSinceLastWorn(logs, now)
	require.NotNil(t, days)
	assert.Equal(t, 4, *days)
}

func TestIsUnused(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	recent := newItem("30.00", 0, now.AddDate(0, 0, -10))
	assert.False(t, recent.IsUnused(now), "inside the grace period")

	stale := newItem("30.00", 0, now.AddDate(0, 0, -45))
	assert.True(t, stale.IsUnused(now))

	worn := newItem("30.00", 1, now.AddDate(0, 0, -45))
	assert.False(t, worn.IsUnused(now))
}

func TestDisplayDefaults(t *testing.T) {
	item := &WardrobeItem{}
	assert.Equal(t, DefaultItemName, item.DisplayName())
	assert.Equal(t, DefaultItemCategory, item.CategoryOrDefault())

	named := &WardrobeItem{Name: "Denim Jacket", Category: "Outerwear"}
	assert.Equal(t, "Denim Jacket", named.DisplayName())
	assert.Equal(t, "Outerwear", named.CategoryOrDefault())
}
