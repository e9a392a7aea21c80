package services

import (
	"context"
	"sync"
	"time"

	"reworn/internal/database"
	"reworn/internal/logger"
	. "reworn/internal/models"
	"reworn/internal/repositories"

	"github.com/shopspring/decimal"
)

// Snapshot is the in-memory view of the store the engine computes from.
// Active items drive most aggregates; all items and all logs feed the
// history-based and achievement computations.
type Snapshot struct {
	ActiveItems []*WardrobeItem
	AllItems    []*WardrobeItem
	Logs        []*WearLog
}

// AnalyticsService derives wardrobe metrics from item and wear-log
// snapshots. It holds a three-slot memo cache (active items, all items, all
// logs); callers sequence writes-then-Refresh-then-read. A stale read after
// a write without Refresh is a documented limitation, not a bug.
type AnalyticsService struct {
	itemRepo  repositories.ItemRepository
	logRepo   repositories.WearLogRepository
	db        database.DB
	formatter CurrencyFormatter
	log       logger.Logger

	now func() time.Time

	mu          sync.Mutex
	activeItems []*WardrobeItem
	allItems    []*WardrobeItem
	allLogs     []*WearLog
}

type DashboardSummary struct {
	AverageCPW                decimal.Decimal `json:"averageCpw"`
	AverageCPWDisplay         string          `json:"averageCpwDisplay"`
	TotalWardrobeValue        decimal.Decimal `json:"totalWardrobeValue"`
	TotalWardrobeValueDisplay string          `json:"totalWardrobeValueDisplay"`
	TotalWears                int             `json:"totalWears"`
	WardrobeEfficiencyScore   float64         `json:"wardrobeEfficiencyScore"`
	WardrobeEfficiencyGrade   string          `json:"wardrobeEfficiencyGrade"`
	UtilizationRate           float64         `json:"utilizationRate"`
	IdleValue                 decimal.Decimal `json:"idleValue"`
	IdleValueDisplay          string          `json:"idleValueDisplay"`
	UnusedItemCount           int             `json:"unusedItemCount"`
	CurrentStreak             int             `json:"currentStreak"`
	BestStreak                int             `json:"bestStreak"`
	MostActiveDayOfWeek       *string         `json:"mostActiveDayOfWeek,omitempty"`
}

func NewAnalyticsService(
	repos repositories.Repository,
	db database.DB,
	formatter CurrencyFormatter,
) *AnalyticsService {
	return &AnalyticsService{
		itemRepo:  repos.Item,
		logRepo:   repos.WearLog,
		db:        db,
		formatter: formatter,
		log:       logger.New("analyticsService"),
		now:       time.Now,
	}
}

// Refresh invalidates the memoized snapshot. Callers invoke it after any
// write before reading aggregates again.
func (s *AnalyticsService) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeItems = nil
	s.allItems = nil
	s.allLogs = nil
}

// Snapshot fetches (or reuses) the three cache slots as one consistent view.
func (s *AnalyticsService) Snapshot(ctx context.Context) (*Snapshot, error) {
	activeItems, err := s.getActiveItems(ctx)
	if err != nil {
		return nil, err
	}

	allItems, err := s.getAllItems(ctx)
	if err != nil {
		return nil, err
	}

	logs, err := s.getAllLogs(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		ActiveItems: activeItems,
		AllItems:    allItems,
		Logs:        logs,
	}, nil
}

func (s *AnalyticsService) getActiveItems(ctx context.Context) ([]*WardrobeItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeItems != nil {
		return s.activeItems, nil
	}

	items, err := s.itemRepo.GetActiveItems(ctx, s.db.SQLWithContext(ctx))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*WardrobeItem{}
	}

	s.activeItems = items
	return items, nil
}

func (s *AnalyticsService) getAllItems(ctx context.Context) ([]*WardrobeItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.allItems != nil {
		return s.allItems, nil
	}

	items, err := s.itemRepo.GetAllItems(ctx, s.db.SQLWithContext(ctx))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*WardrobeItem{}
	}

	s.allItems = items
	return items, nil
}

func (s *AnalyticsService) getAllLogs(ctx context.Context) ([]*WearLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.allLogs != nil {
		return s.allLogs, nil
	}

	logs, err := s.logRepo.GetAllLogs(ctx, s.db.SQLWithContext(ctx))
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []*WearLog{}
	}

	s.allLogs = logs
	return logs, nil
}

// Dashboard assembles the headline aggregates with display formatting.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	log := s.log.Function("Dashboard")

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, log.Err("failed to build snapshot", err)
	}

	now := s.now()

	averageCPW := AverageCPW(snapshot.ActiveItems)
	totalValue := TotalWardrobeValue(snapshot.ActiveItems)
	idleValue := IdleValue(snapshot.ActiveItems)
	efficiency := WardrobeEfficiencyScore(snapshot.ActiveItems)

	summary := &DashboardSummary{
		AverageCPW:                averageCPW,
		AverageCPWDisplay:         s.formatter.Format(averageCPW),
		TotalWardrobeValue:        totalValue,
		TotalWardrobeValueDisplay: s.formatter.Format(totalValue),
		TotalWears:                TotalWears(snapshot.ActiveItems),
		WardrobeEfficiencyScore:   efficiency,
		WardrobeEfficiencyGrade:   GradeForScore(efficiency),
		UtilizationRate:           UtilizationRate(snapshot.ActiveItems),
		IdleValue:                 idleValue,
		IdleValueDisplay:          s.formatter.Format(idleValue),
		UnusedItemCount:           len(UnusedItems(snapshot.ActiveItems, now)),
		CurrentStreak:             CurrentStreak(snapshot.Logs, now),
		BestStreak:                BestStreak(snapshot.Logs),
	}

	if weekday := MostActiveDayOfWeek(snapshot.Logs); weekday != nil {
		name := weekday.String()
		summary.MostActiveDayOfWeek = &name
	}

	return summary, nil
}

func (s *AnalyticsService) AverageCPW(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.getActiveItems(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return AverageCPW(items), nil
}

func (s *AnalyticsService) TotalWardrobeValue(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.getActiveItems(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return TotalWardrobeValue(items), nil
}

func (s *AnalyticsService) UnusedItems(ctx context.Context) ([]*WardrobeItem, error) {
	items, err := s.getActiveItems(ctx)
	if err != nil {
		return nil, err
	}
	return UnusedItems(items, s.now()), nil
}

func (s *AnalyticsService) CPWByCategory(ctx context.Context) ([]CategoryCPW, error) {
	items, err := s.getActiveItems(ctx)
	if err != nil {
		return nil, err
	}
	return CPWByCategory(items), nil
}

func (s *AnalyticsService) ItemsByCategory(ctx context.Context) ([]CategoryBreakdown, error) {
	items, err := s.getActiveItems(ctx)
	if err != nil {
		return nil, err
	}
	return ItemsByCategory(items), nil
}

func (s *AnalyticsService) WearsPerDayLast30(ctx context.Context) ([]DailyWearCount, error) {
	logs, err := s.getAllLogs(ctx)
	if err != nil {
		return nil, err
	}
	return WearsPerDayLast30(logs, s.now()), nil
}

func (s *AnalyticsService) WeeklyWearTrend(ctx context.Context) ([]WeeklyWearCount, error) {
	logs, err := s.getAllLogs(ctx)
	if err != nil {
		return nil, err
	}
	return WeeklyWearTrend(logs, s.now()), nil
}

func (s *AnalyticsService) MonthlySpending(ctx context.Context) ([]MonthlySpend, error) {
	items, err := s.getAllItems(ctx)
	if err != nil {
		return nil, err
	}
	return MonthlySpending(items, s.now()), nil
}

func (s *AnalyticsService) CPWTrendMonthly(ctx context.Context) ([]MonthlyCPWPoint, error) {
	items, err := s.getActiveItems(ctx)
	if err != nil {
		return nil, err
	}

	logs, err := s.getAllLogs(ctx)
	if err != nil {
		return nil, err
	}

	return CPWTrendMonthly(items, logs, s.now()), nil
}

func (s *AnalyticsService) WearCountForDate(ctx context.Context, date time.Time) (int, error) {
	logs, err := s.getAllLogs(ctx)
	if err != nil {
		return 0, err
	}
	return WearCountForDate(logs, date), nil
}

func (s *AnalyticsService) CategoriesWornOnDate(
	ctx context.Context,
	date time.Time,
) ([]string, error) {
	items, err := s.getAllItems(ctx)
	if err != nil {
		return nil, err
	}

	logs, err := s.getAllLogs(ctx)
	if err != nil {
		return nil, err
	}

	return CategoriesWornOnDate(items, logs, date), nil
}
