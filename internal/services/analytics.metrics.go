package services

import (
	"sort"
	"time"

	. "reworn/internal/models"
	"reworn/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	wearsPerDayWindow  = 30
	weeklyTrendWindows = 12
	monthlyTrendMonths = 6
	streakLookbackDays = 365
)

type CategoryCPW struct {
	Category   string          `json:"category"`
	AverageCPW decimal.Decimal `json:"averageCpw"`
	ItemCount  int             `json:"itemCount"`
}

type CategoryBreakdown struct {
	Category   string          `json:"category"`
	ItemCount  int             `json:"itemCount"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

type DailyWearCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

type WeeklyWearCount struct {
	WeekStart time.Time `json:"weekStart"`
	Count     int       `json:"count"`
}

type MonthlySpend struct {
	Month      time.Time       `json:"month"`
	TotalSpend decimal.Decimal `json:"totalSpend"`
	ItemCount  int             `json:"itemCount"`
}

type MonthlyCPWPoint struct {
	Month      time.Time       `json:"month"`
	AverageCPW decimal.Decimal `json:"averageCpw"`
}

// wornItems filters to items with at least one recorded wear.
func wornItems(items []*WardrobeItem) []*WardrobeItem {
	worn := make([]*WardrobeItem, 0, len(items))
	for _, item := range items {
		if item.WearCount > 0 {
			worn = append(worn, item)
		}
	}
	return worn
}

// AverageCPW is the mean cost-per-wear across worn items. Zero when nothing
// has been worn.
func AverageCPW(items []*WardrobeItem) decimal.Decimal {
	worn := wornItems(items)
	if len(worn) == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, item := range worn {
		total = total.Add(item.CostPerWear())
	}
	return total.Div(decimal.NewFromInt(int64(len(worn))))
}

// TotalWardrobeValue sums purchase prices.
func TotalWardrobeValue(items []*WardrobeItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.PurchasePrice)
	}
	return total
}

// TotalWears sums denormalized wear counts.
func TotalWears(items []*WardrobeItem) int {
	total := 0
	for _, item := range items {
		total += item.WearCount
	}
	return total
}

// UnusedItems returns items never worn and past the new-purchase grace
// period.
func UnusedItems(items []*WardrobeItem, now time.Time) []*WardrobeItem {
	unused := make([]*WardrobeItem, 0)
	for _, item := range items {
		if item.IsUnused(now) {
			unused = append(unused, item)
		}
	}
	return unused
}

// WardrobeEfficiencyScore is the mean efficiency score across worn items.
// Zero when nothing has been worn.
func WardrobeEfficiencyScore(items []*WardrobeItem) float64 {
	worn := wornItems(items)
	if len(worn) == 0 {
		return 0
	}

	total := 0.0
	for _, item := range worn {
		total += item.EfficiencyScore()
	}
	return total / float64(len(worn))
}

// UtilizationRate is the percentage (0-100) of items worn at least once.
func UtilizationRate(items []*WardrobeItem) float64 {
	if len(items) == 0 {
		return 0
	}
	return float64(len(wornItems(items))) / float64(len(items)) * 100
}

// IdleValue sums the purchase price of items never worn.
func IdleValue(items []*WardrobeItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.WearCount == 0 {
			total = total.Add(item.PurchasePrice)
		}
	}
	return total
}

// CPWByCategory groups worn items by category and averages cost-per-wear per
// group, cheapest categories first.
func CPWByCategory(items []*WardrobeItem) []CategoryCPW {
	type bucket struct {
		total decimal.Decimal
		count int
	}

	buckets := make(map[string]*bucket)
	for _, item := range wornItems(items) {
		category := item.CategoryOrDefault()
		b, ok := buckets[category]
		if !ok {
			b = &bucket{total: decimal.Zero}
			buckets[category] = b
		}
		b.total = b.total.Add(item.CostPerWear())
		b.count++
	}

	result := make([]CategoryCPW, 0, len(buckets))
	for category, b := range buckets {
		result = append(result, CategoryCPW{
			Category:   category,
			AverageCPW: b.total.Div(decimal.NewFromInt(int64(b.count))),
			ItemCount:  b.count,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if cmp := result[i].AverageCPW.Cmp(result[j].AverageCPW); cmp != 0 {
			return cmp < 0
		}
		return result[i].Category < result[j].Category
	})

	return result
}

// ItemsByCategory groups every item by category with count and summed value,
// largest categories first.
func ItemsByCategory(items []*WardrobeItem) []CategoryBreakdown {
	buckets := make(map[string]*CategoryBreakdown)
	for _, item := range items {
		category := item.CategoryOrDefault()
		b, ok := buckets[category]
		if !ok {
			b = &CategoryBreakdown{Category: category, TotalValue: decimal.Zero}
			buckets[category] = b
		}
		b.ItemCount++
		b.TotalValue = b.TotalValue.Add(item.PurchasePrice)
	}

	result := make([]CategoryBreakdown, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, *b)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ItemCount != result[j].ItemCount {
			return result[i].ItemCount > result[j].ItemCount
		}
		return result[i].Category < result[j].Category
	})

	return result
}

// dayKey collapses a timestamp to its calendar day for bucketing.
func dayKey(t time.Time) int {
	year, month, day := t.Date()
	return year*10000 + int(month)*100 + day
}

func logCountByDay(logs []*WearLog) map[int]int {
	counts := make(map[int]int, len(logs))
	for _, log := range logs {
		counts[dayKey(log.WornAt)]++
	}
	return counts
}

// WearsPerDayLast30 counts wear logs for each of the last 30 calendar days,
// oldest to newest, today included.
func WearsPerDayLast30(logs []*WearLog, now time.Time) []DailyWearCount {
	counts := logCountByDay(logs)
	today := utils.StartOfDay(now)

	result := make([]DailyWearCount, 0, wearsPerDayWindow)
	for offset := wearsPerDayWindow - 1; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		result = append(result, DailyWearCount{
			Date:  day,
			Count: counts[dayKey(day)],
		})
	}

	return result
}

// WeeklyWearTrend counts wear logs in each of the last 12 seven-day windows
// anchored to now, oldest to newest.
func WeeklyWearTrend(logs []*WearLog, now time.Time) []WeeklyWearCount {
	result := make([]WeeklyWearCount, 0, weeklyTrendWindows)

	for n := weeklyTrendWindows - 1; n >= 0; n-- {
		weekStart := utils.StartOfDay(now.AddDate(0, 0, -7*n))
		weekEnd := weekStart.AddDate(0, 0, 7)

		count := 0
		for _, log := range logs {
			if !log.WornAt.Before(weekStart) && log.WornAt.Before(weekEnd) {
				count++
			}
		}

		result = append(result, WeeklyWearCount{WeekStart: weekStart, Count: count})
	}

	return result
}

// MonthlySpending sums purchase price and item count per calendar month for
// the last 6 months, oldest to newest. Archived items count: spending
// happened regardless of what was archived later.
func MonthlySpending(allItems []*WardrobeItem, now time.Time) []MonthlySpend {
	base := utils.StartOfMonth(now)
	result := make([]MonthlySpend, 0, monthlyTrendMonths)

	for n := monthlyTrendMonths - 1; n >= 0; n-- {
		monthStart := base.AddDate(0, -n, 0)
		nextMonth := monthStart.AddDate(0, 1, 0)

		spend := MonthlySpend{Month: monthStart, TotalSpend: decimal.Zero}
		for _, item := range allItems {
			if !item.PurchaseDate.Before(monthStart) && item.PurchaseDate.Before(nextMonth) {
				spend.TotalSpend = spend.TotalSpend.Add(item.PurchasePrice)
				spend.ItemCount++
			}
		}

		result = append(result, spend)
	}

	return result
}

// CurrentStreak walks backward from today counting consecutive days with at
// least one wear log, stopping at the first gap. Lookback is capped at 365
// days.
func CurrentStreak(logs []*WearLog, now time.Time) int {
	counts := logCountByDay(logs)
	day := utils.StartOfDay(now)

	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		if counts[dayKey(day)] == 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}

// BestStreak finds the longest run of consecutive days with at least one
// wear log between the earliest and latest log.
func BestStreak(logs []*WearLog) int {
	if len(logs) == 0 {
		return 0
	}

	counts := logCountByDay(logs)

	earliest := logs[0].WornAt
	latest := logs[0].WornAt
	for _, log := range logs[1:] {
		if log.WornAt.Before(earliest) {
			earliest = log.WornAt
		}
		if log.WornAt.After(latest) {
			latest = log.WornAt
		}
	}

	best := 0
	run := 0
	for day := utils.StartOfDay(earliest); !day.After(latest); day = day.AddDate(0, 0, 1) {
		if counts[dayKey(day)] > 0 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}

	return best
}

// MostActiveDayOfWeek returns the weekday with the most wear logs, or nil
// when there are none. Ties resolve to the earliest weekday, Sunday first.
func MostActiveDayOfWeek(logs []*WearLog) *time.Weekday {
	if len(logs) == 0 {
		return nil
	}

	var counts [7]int
	for _, log := range logs {
		counts[log.WornAt.Weekday()]++
	}

	best := time.Sunday
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		if counts[weekday] > counts[best] {
			best = weekday
		}
	}

	return &best
}

// CPWTrendMonthly averages, for each of the last 6 calendar months, the
// cost-per-wear each item had reached by that month's end. Months where no
// item had been worn yet are omitted rather than zero-filled.
func CPWTrendMonthly(
	items []*WardrobeItem,
	logs []*WearLog,
	now time.Time,
) []MonthlyCPWPoint {
	logsByItem := make(map[uuid.UUID][]*WearLog, len(items))
	for _, log := range logs {
		logsByItem[log.ItemID] = append(logsByItem[log.ItemID], log)
	}

	base := utils.StartOfMonth(now)
	result := make([]MonthlyCPWPoint, 0, monthlyTrendMonths)

	for n := monthlyTrendMonths - 1; n >= 0; n-- {
		monthStart := base.AddDate(0, -n, 0)
		nextMonth := monthStart.AddDate(0, 1, 0)

		total := decimal.Zero
		qualifying := 0
		for _, item := range items {
			wears := 0
			for _, log := range logsByItem[item.ID] {
				if log.WornAt.Before(nextMonth) {
					wears++
				}
			}
			if wears == 0 {
				continue
			}

			total = total.Add(item.PurchasePrice.Div(decimal.NewFromInt(int64(wears))))
			qualifying++
		}

		if qualifying == 0 {
			continue
		}

		result = append(result, MonthlyCPWPoint{
			Month:      monthStart,
			AverageCPW: total.Div(decimal.NewFromInt(int64(qualifying))),
		})
	}

	return result
}

// WearCountForDate counts wear logs on the given calendar day.
func WearCountForDate(logs []*WearLog, date time.Time) int {
	count := 0
	for _, log := range logs {
		if utils.SameDay(log.WornAt, date) {
			count++
		}
	}
	return count
}

// CategoriesWornOnDate lists the distinct categories worn on the given day,
// in first-worn order.
func CategoriesWornOnDate(
	items []*WardrobeItem,
	logs []*WearLog,
	date time.Time,
) []string {
	itemsByID := make(map[uuid.UUID]*WardrobeItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, log := range logs {
		if !utils.SameDay(log.WornAt, date) {
			continue
		}

		item, ok := itemsByID[log.ItemID]
		if !ok {
			continue
		}

		category := item.CategoryOrDefault()
		if !seen[category] {
			seen[category] = true
			categories = append(categories, category)
		}
	}

	return categories
}
