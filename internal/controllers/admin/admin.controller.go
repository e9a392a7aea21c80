package adminController

import (
	"context"
	"errors"

	"reworn/config"
	"reworn/internal/database"
	"reworn/internal/logger"
	. "reworn/internal/models"
	"reworn/internal/repositories"
	"reworn/internal/services"

	"gorm.io/gorm"
)

var ErrValidation = errors.New("validation error")

type AdminController struct {
	itemRepo           repositories.ItemRepository
	wearLogRepo        repositories.WearLogRepository
	goalRepo           repositories.GoalRepository
	settingsRepo       repositories.SettingsRepository
	transactionService *services.TransactionService
	analyticsService   *services.AnalyticsService
	db                 database.DB
	Config             config.Config
}

type UpdateSettingsRequest struct {
	CurrencySymbol *string `json:"currencySymbol,omitempty"`
}

type ResetResponse struct {
	Message string `json:"message"`
}

type AdminControllerInterface interface {
	ResetAllData(ctx context.Context) (*ResetResponse, error)
	GetSettings(ctx context.Context) (*UserSettings, error)
	UpdateSettings(ctx context.Context, request *UpdateSettingsRequest) (*UserSettings, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) AdminControllerInterface {
	return &AdminController{
		itemRepo:           repos.Item,
		wearLogRepo:        repos.WearLog,
		goalRepo:           repos.Goal,
		settingsRepo:       repos.Settings,
		transactionService: services.Transaction,
		analyticsService:   services.Analytics,
		db:                 db,
		Config:             config,
	}
}

// ResetAllData wipes items, wear logs, and goals in one transaction and
// flushes every cache. Settings survive the reset.
func (c *AdminController) ResetAllData(ctx context.Context) (*ResetResponse, error) {
	log := logger.NewWithContext(ctx, "adminController").Function("ResetAllData")

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.wearLogRepo.DeleteAll(ctx, tx); err != nil {
			return log.Error("failed to delete wear logs in transaction", "error", err)
		}

		if err := c.goalRepo.DeleteAll(ctx, tx); err != nil {
			return log.Error("failed to delete goals in transaction", "error", err)
		}

		if err := c.itemRepo.DeleteAll(ctx, tx); err != nil {
			return log.Error("failed to delete items in transaction", "error", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := c.db.FlushAllCaches(); err != nil {
		log.Warn("failed to flush caches after reset", "error", err)
	}

	c.analyticsService.Refresh()

	log.Info("All wardrobe data reset")

	return &ResetResponse{Message: "all data deleted"}, nil
}

func (c *AdminController) GetSettings(ctx context.Context) (*UserSettings, error) {
	return c.settingsRepo.Get(ctx, c.db.SQLWithContext(ctx))
}

func (c *AdminController) UpdateSettings(
	ctx context.Context,
	request *UpdateSettingsRequest,
) (*UserSettings, error) {
	log := logger.NewWithContext(ctx, "adminController").Function("UpdateSettings")

	updates := make(map[string]any)

	if request.CurrencySymbol != nil {
		if *request.CurrencySymbol == "" {
			return nil, log.ErrorWithType(ErrValidation, "currencySymbol cannot be empty")
		}
		updates["currency_symbol"] = *request.CurrencySymbol
	}

	if len(updates) == 0 {
		return nil, log.ErrorWithType(ErrValidation, "no fields to update")
	}

	settings, err := c.settingsRepo.Update(ctx, c.db.SQLWithContext(ctx), updates)
	if err != nil {
		return nil, log.Error("failed to update settings", "error", err)
	}

	log.Info("Settings updated successfully")

	return settings, nil
}
