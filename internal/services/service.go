package services

import (
	"reworn/config"
	"reworn/internal/database"
	"reworn/internal/repositories"
)

type Service struct {
	Transaction *TransactionService
	Scheduler   *SchedulerService
	Analytics   *AnalyticsService
	Goal        *GoalService
	Currency    CurrencyFormatter
}

func New(db database.DB, config config.Config) (Service, error) {
	transactionService := NewTransactionService(db)
	repos := repositories.New(db)

	currencyFormatter := NewCurrencyFormatter(config.CurrencySymbol)
	schedulerService := NewSchedulerService()
	analyticsService := NewAnalyticsService(repos, db, currencyFormatter)
	goalService := NewGoalService(currencyFormatter)

	return Service{
		Transaction: transactionService,
		Scheduler:   schedulerService,
		Analytics:   analyticsService,
		Goal:        goalService,
		Currency:    currencyFormatter,
	}, nil
}
