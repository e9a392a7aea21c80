package services

import (
	"testing"
	"time"

	. "reworn/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(price float64, wears int, category string) *WardrobeItem {
	item := &WardrobeItem{
		Name:          "Test Item",
		Category:      category,
		PurchasePrice: decimal.NewFromFloat(price),
		PurchaseDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		WearCount:     wears,
	}
	item.ID = uuid.Must(uuid.NewV7())
	return item
}

func testLog(item *WardrobeItem, wornAt time.Time) *WearLog {
	log := &WearLog{
		ItemID: item.ID,
		WornAt: wornAt,
	}
	log.ID = uuid.Must(uuid.NewV7())
	return log
}

func TestAverageCPW(t *testing.T) {
	tests := []struct {
		name     string
		items    []*WardrobeItem
		expected string
	}{
		{
			name:     "no items",
			items:    nil,
			expected: "0",
		},
		{
			name: "unworn items excluded from the average",
			items: []*WardrobeItem{
				testItem(100, 0, "Tops"),
				testItem(60, 30, "Shoes"),
			},
			expected: "2",
		},
		{
			name: "mean across worn items",
			items: []*WardrobeItem{
				testItem(100, 10, "Tops"),
				testItem(60, 30, "Shoes"),
			},
			expected: "6",
		},
		{
			name: "all unworn yields zero",
			items: []*WardrobeItem{
				testItem(100, 0, "Tops"),
				testItem(60, 0, "Shoes"),
			},
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AverageCPW(tt.items)
			assert.True(t, result.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, result)
		})
	}
}

func TestWardrobeAggregates(t *testing.T) {
	items := []*WardrobeItem{
		testItem(100, 10, "Tops"),
		testItem(50, 0, "Shoes"),
		testItem(30, 5, "Tops"),
	}

	assert.True(t, TotalWardrobeValue(items).Equal(decimal.NewFromInt(180)))
	assert.Equal(t, 15, TotalWears(items))
	assert.True(t, IdleValue(items).Equal(decimal.NewFromInt(50)))
	assert.InDelta(t, 66.66, UtilizationRate(items), 0.01)
}

func TestWardrobeEfficiencyScore(t *testing.T) {
	t.Run("empty wardrobe scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, WardrobeEfficiencyScore(nil))
	})

	t.Run("only worn items counted", func(t *testing.T) {
		items := []*WardrobeItem{
			testItem(100, 30, "Tops"),  // score 100
			testItem(100, 15, "Shoes"), // score 50
			testItem(100, 0, "Hats"),   // unworn, excluded
		}
		assert.InDelta(t, 75.0, WardrobeEfficiencyScore(items), 0.001)
	})
}

func TestUnusedItems(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	recent := testItem(40, 0, "Tops")
	recent.PurchaseDate = now.AddDate(0, 0, -10)

	old := testItem(80, 0, "Shoes")
	old.PurchaseDate = now.AddDate(0, 0, -45)

	worn := testItem(60, 3, "Hats")
	worn.PurchaseDate = now.AddDate(0, 0, -200)

	unused := UnusedItems([]*WardrobeItem{recent, old, worn}, now)
	require.Len(t, unused, 1)
	assert.Equal(t, old.ID, unused[0].ID)
}

func TestCPWByCategory(t *testing.T) {
	items := []*WardrobeItem{
		testItem(100, 10, "Tops"),  // cpw 10
		testItem(20, 10, "Tops"),   // cpw 2, category avg 6
		testItem(30, 10, "Shoes"),  // cpw 3, category avg 3
		testItem(500, 0, "Coats"),  // unworn, excluded
	}

	result := CPWByCategory(items)
	require.Len(t, result, 2)

	assert.Equal(t, "Shoes", result[0].Category)
	assert.True(t, result[0].AverageCPW.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 1, result[0].ItemCount)

	assert.Equal(t, "Tops", result[1].Category)
	assert.True(t, result[1].AverageCPW.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, 2, result[1].ItemCount)
}

func TestItemsByCategory(t *testing.T) {
	items := []*WardrobeItem{
		testItem(100, 0, "Tops"),
		testItem(50, 2, "Tops"),
		testItem(30, 1, "Shoes"),
		testItem(10, 0, ""),
	}

	result := ItemsByCategory(items)
	require.Len(t, result, 3)

	assert.Equal(t, "Tops", result[0].Category)
	assert.Equal(t, 2, result[0].ItemCount)
	assert.True(t, result[0].TotalValue.Equal(decimal.NewFromInt(150)))

	// Count tie between Shoes and Other resolves alphabetically.
	assert.Equal(t, "Other", result[1].Category)
	assert.Equal(t, "Shoes", result[2].Category)
}

func TestWearsPerDayLast30(t *testing.T) {
	now := time.Date(2026, 6, 30, 15, 30, 0, 0, time.UTC)
	item := testItem(50, 3, "Tops")

	logs := []*WearLog{
		testLog(item, now.Add(-time.Hour)),                  // today
		testLog(item, now.AddDate(0, 0, -1)),                // yesterday
		testLog(item, now.AddDate(0, 0, -1).Add(time.Hour)), // yesterday again
		testLog(item, now.AddDate(0, 0, -31)),               // outside the window
	}

	result := WearsPerDayLast30(logs, now)
	require.Len(t, result, 30)

	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), result[0].Date)
	assert.Equal(t, 0, result[0].Count)

	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), result[29].Date)
	assert.Equal(t, 1, result[29].Count)
	assert.Equal(t, 2, result[28].Count)

	total := 0
	for _, day := range result {
		total += day.Count
	}
	assert.Equal(t, 3, total, "log outside the window must not be counted")
}

func TestWeeklyWearTrend(t *testing.T) {
	now := time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)
	item := testItem(50, 2, "Tops")

	logs := []*WearLog{
		testLog(item, now.AddDate(0, 0, -2)), // current window
		testLog(item, now.AddDate(0, 0, -8)), // previous window
	}

	result := WeeklyWearTrend(logs, now)
	require.Len(t, result, 12)

	assert.Equal(t, 1, result[11].Count)
	assert.Equal(t, 1, result[10].Count)
	for _, window := range result[:10] {
		assert.Equal(t, 0, window.Count)
	}
}

func TestMonthlySpending(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	current := testItem(120, 0, "Tops")
	current.PurchaseDate = time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

	archived := testItem(80, 5, "Shoes")
	archived.PurchaseDate = time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	archived.Archived = true

	ancient := testItem(999, 1, "Coats")
	ancient.PurchaseDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	result := MonthlySpending([]*WardrobeItem{current, archived, ancient}, now)
	require.Len(t, result, 6)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), result[0].Month)
	assert.True(t, result[0].TotalSpend.IsZero(), "months with no purchases are zero-filled")

	april := result[3]
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), april.Month)
	assert.True(t, april.TotalSpend.Equal(decimal.NewFromInt(80)),
		"archived purchases still count as spending")
	assert.Equal(t, 1, april.ItemCount)

	june := result[5]
	assert.True(t, june.TotalSpend.Equal(decimal.NewFromInt(120)))
}

func TestCurrentStreak(t *testing.T) {
	now := time.Date(2026, 6, 30, 20, 0, 0, 0, time.UTC)
	item := testItem(50, 0, "Tops")

	tests := []struct {
		name     string
		logs     []*WearLog
		expected int
	}{
		{
			name:     "no logs",
			logs:     nil,
			expected: 0,
		},
		{
			name: "three consecutive days ending today",
			logs: []*WearLog{
				testLog(item, now),
				testLog(item, now.AddDate(0, 0, -1)),
				testLog(item, now.AddDate(0, 0, -2)),
			},
			expected: 3,
		},
		{
			name: "gap yesterday breaks the streak",
			logs: []*WearLog{
				testLog(item, now),
				testLog(item, now.AddDate(0, 0, -2)),
			},
			expected: 1,
		},
		{
			name: "no wear today means no current streak",
			logs: []*WearLog{
				testLog(item, now.AddDate(0, 0, -1)),
				testLog(item, now.AddDate(0, 0, -2)),
			},
			expected: 0,
		},
		{
			name: "multiple wears on one day count once",
			logs: []*WearLog{
				testLog(item, now),
				testLog(item, now.Add(-2*time.Hour)),
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CurrentStreak(tt.logs, now))
		})
	}
}

func TestBestStreak(t *testing.T) {
	item := testItem(50, 0, "Tops")
	day := func(d int) time.Time {
		return time.Date(2026, 6, d, 10, 0, 0, 0, time.UTC)
	}

	logs := []*WearLog{
		testLog(item, day(1)),
		testLog(item, day(2)),
		// gap on the 3rd
		testLog(item, day(4)),
		testLog(item, day(5)),
		testLog(item, day(6)),
		testLog(item, day(6)), // duplicate day
	}

	assert.Equal(t, 3, BestStreak(logs))
	assert.Equal(t, 0, BestStreak(nil))
}

func TestMostActiveDayOfWeek(t *testing.T) {
	item := testItem(50, 0, "Tops")

	t.Run("nil when no logs", func(t *testing.T) {
		assert.Nil(t, MostActiveDayOfWeek(nil))
	})

	t.Run("picks the busiest weekday", func(t *testing.T) {
		// 2026-06-29 is a Monday, 2026-06-30 a Tuesday.
		logs := []*WearLog{
			testLog(item, time.Date(2026, 6, 29, 9, 0, 0, 0, time.UTC)),
			testLog(item, time.Date(2026, 6, 30, 9, 0, 0, 0, time.UTC)),
			testLog(item, time.Date(2026, 6, 23, 9, 0, 0, 0, time.UTC)), // Tuesday
		}

		result := MostActiveDayOfWeek(logs)
		require.NotNil(t, result)
		assert.Equal(t, time.Tuesday, *result)
	})

	t.Run("tie resolves to the earlier weekday", func(t *testing.T) {
		logs := []*WearLog{
			testLog(item, time.Date(2026, 6, 28, 9, 0, 0, 0, time.UTC)), // Sunday
			testLog(item, time.Date(2026, 6, 29, 9, 0, 0, 0, time.UTC)), // Monday
		}

		result := MostActiveDayOfWeek(logs)
		require.NotNil(t, result)
		assert.Equal(t, time.Sunday, *result)
	})
}

func TestCPWTrendMonthly(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	item := testItem(100, 2, "Tops")
	logs := []*WearLog{
		testLog(item, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)),
		testLog(item, time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)),
	}

	result := CPWTrendMonthly([]*WardrobeItem{item}, logs, now)

	// January through April have no worn items yet and are omitted entirely.
	require.Len(t, result, 2)

	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), result[0].Month)
	assert.True(t, result[0].AverageCPW.Equal(decimal.NewFromInt(100)),
		"one wear by end of May gives CPW 100")

	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), result[1].Month)
	assert.True(t, result[1].AverageCPW.Equal(decimal.NewFromInt(50)),
		"two wears by end of June gives CPW 50")
}

func TestWearCountForDate(t *testing.T) {
	item := testItem(50, 0, "Tops")
	date := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	logs := []*WearLog{
		testLog(item, date.Add(8*time.Hour)),
		testLog(item, date.Add(20*time.Hour)),
		testLog(item, date.AddDate(0, 0, 1)),
	}

	assert.Equal(t, 2, WearCountForDate(logs, date))
	assert.Equal(t, 0, WearCountForDate(logs, date.AddDate(0, 0, -1)))
}

func TestCategoriesWornOnDate(t *testing.T) {
	date := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	top := testItem(50, 2, "Tops")
	shoes := testItem(80, 1, "Shoes")
	secondTop := testItem(30, 1, "Tops")

	logs := []*WearLog{
		testLog(shoes, date.Add(7*time.Hour)),
		testLog(top, date.Add(9*time.Hour)),
		testLog(secondTop, date.Add(12*time.Hour)), // duplicate category
	}

	items := []*WardrobeItem{top, shoes, secondTop}

	result := CategoriesWornOnDate(items, logs, date)
	assert.Equal(t, []string{"Shoes", "Tops"}, result, "first-worn order, deduplicated")

	t.Run("logs for deleted items are skipped", func(t *testing.T) {
		orphan := testLog(top, date.Add(6*time.Hour))
		orphan.ItemID = uuid.Must(uuid.NewV7())

		result := CategoriesWornOnDate(items, append(logs, orphan), date)
		assert.Equal(t, []string{"Shoes", "Tops"}, result)
	})
}

func TestAggregateIdempotence(t *testing.T) {
	// Derived metrics are pure reads: recomputing over the same snapshot
	// must yield identical results.
	now := time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)
	items := []*WardrobeItem{
		testItem(100, 10, "Tops"),
		testItem(50, 0, "Shoes"),
	}
	item := items[0]
	logs := []*WearLog{
		testLog(item, now),
		testLog(item, now.AddDate(0, 0, -1)),
	}

	first := AverageCPW(items)
	second := AverageCPW(items)
	assert.True(t, first.Equal(second))

	assert.Equal(t, CurrentStreak(logs, now), CurrentStreak(logs, now))
	assert.Equal(t, WearsPerDayLast30(logs, now), WearsPerDayLast30(logs, now))
}
