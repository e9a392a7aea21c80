package analyticsController

import (
	"context"
	"errors"
	"time"

	"reworn/config"
	"reworn/internal/database"
	"reworn/internal/logger"
	. "reworn/internal/models"
	"reworn/internal/services"

	"github.com/shopspring/decimal"
)

var ErrValidation = errors.New("validation error")

type AnalyticsController struct {
	analyticsService *services.AnalyticsService
	db               database.DB
	Config           config.Config
}

// CategorySummary bundles the two category groupings into one response.
type CategorySummary struct {
	CostPerWear []services.CategoryCPW       `json:"costPerWear"`
	Breakdown   []services.CategoryBreakdown `json:"breakdown"`
}

// TrendSummary bundles the time-bucketed series for the trends screen.
type TrendSummary struct {
	WearsPerDay     []services.DailyWearCount  `json:"wearsPerDay"`
	WeeklyWears     []services.WeeklyWearCount `json:"weeklyWears"`
	MonthlySpending []services.MonthlySpend    `json:"monthlySpending"`
	CPWTrend        []services.MonthlyCPWPoint `json:"cpwTrend"`
}

// CalendarDay describes wear activity on a single calendar date.
type CalendarDay struct {
	Date       time.Time `json:"date"`
	WearCount  int       `json:"wearCount"`
	Categories []string  `json:"categories"`
}

type UnusedItemsSummary struct {
	Items     []*WardrobeItem `json:"items"`
	IdleValue decimal.Decimal `json:"idleValue"`
}

type AnalyticsControllerInterface interface {
	Dashboard(ctx context.Context) (*services.DashboardSummary, error)
	Categories(ctx context.Context) (*CategorySummary, error)
	Trends(ctx context.Context) (*TrendSummary, error)
	Calendar(ctx context.Context, dateStr string) (*CalendarDay, error)
	UnusedItems(ctx context.Context) (*UnusedItemsSummary, error)
}

func New(services services.Service, config config.Config, db database.DB) AnalyticsControllerInterface {
	return &AnalyticsController{
		analyticsService: services.Analytics,
		db:               db,
		Config:           config,
	}
}

func (c *AnalyticsController) Dashboard(ctx context.Context) (*services.DashboardSummary, error) {
	return c.analyticsService.Dashboard(ctx)
}

func (c *AnalyticsController) Categories(ctx context.Context) (*CategorySummary, error) {
	log := logger.NewWithContext(ctx, "analyticsController").Function("Categories")

	costPerWear, err := c.analyticsService.CPWByCategory(ctx)
	if err != nil {
		return nil, log.Error("failed to compute category cost per wear", "error", err)
	}

	breakdown, err := c.analyticsService.ItemsByCategory(ctx)
	if err != nil {
		return nil, log.Error("failed to compute category breakdown", "error", err)
	}

	return &CategorySummary{
		CostPerWear: costPerWear,
		Breakdown:   breakdown,
	}, nil
}

func (c *AnalyticsController) Trends(ctx context.Context) (*TrendSummary, error) {
	log := logger.NewWithContext(ctx, "analyticsController").Function("Trends")

	wearsPerDay, err := c.analyticsService.WearsPerDayLast30(ctx)
	if err != nil {
		return nil, log.Error("failed to compute daily wear counts", "error", err)
	}

	weeklyWears, err := c.analyticsService.WeeklyWearTrend(ctx)
	if err != nil {
		return nil, log.Error("failed to compute weekly wear trend", "error", err)
	}

	monthlySpending, err := c.analyticsService.MonthlySpending(ctx)
	if err != nil {
		return nil, log.Error("failed to compute monthly spending", "error", err)
	}

	cpwTrend, err := c.analyticsService.CPWTrendMonthly(ctx)
	if err != nil {
		return nil, log.Error("failed to compute monthly cost per wear trend", "error", err)
	}

	return &TrendSummary{
		WearsPerDay:     wearsPerDay,
		WeeklyWears:     weeklyWears,
		MonthlySpending: monthlySpending,
		CPWTrend:        cpwTrend,
	}, nil
}

// Calendar resolves wear activity for one date. An empty date defaults to
// today.
func (c *AnalyticsController) Calendar(
	ctx context.Context,
	dateStr string,
) (*CalendarDay, error) {
	log := logger.NewWithContext(ctx, "analyticsController").Function("Calendar")

	date := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, log.ErrorWithType(
				ErrValidation,
				"invalid date format, expected YYYY-MM-DD",
				"date", dateStr,
			)
		}
		date = parsed
	}

	wearCount, err := c.analyticsService.WearCountForDate(ctx, date)
	if err != nil {
		return nil, log.Error("failed to count wears for date", "error", err)
	}

	categories, err := c.analyticsService.CategoriesWornOnDate(ctx, date)
	if err != nil {
		return nil, log.Error("failed to resolve categories for date", "error", err)
	}

	return &CalendarDay{
		Date:       date,
		WearCount:  wearCount,
		Categories: categories,
	}, nil
}

func (c *AnalyticsController) UnusedItems(ctx context.Context) (*UnusedItemsSummary, error) {
	log := logger.NewWithContext(ctx, "analyticsController").Function("UnusedItems")

	items, err := c.analyticsService.UnusedItems(ctx)
	if err != nil {
		return nil, log.Error("failed to compute unused items", "error", err)
	}

	idle := decimal.Zero
	for _, item := range items {
		idle = idle.Add(item.PurchasePrice)
	}

	return &UnusedItemsSummary{
		Items:     items,
		IdleValue: idle,
	}, nil
}
