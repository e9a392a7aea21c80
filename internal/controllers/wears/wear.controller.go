package wearController

import (
	"context"
	"errors"
	"time"

	"reworn/config"
	"reworn/internal/database"
	"reworn/internal/logger"
	. "reworn/internal/models"
	"reworn/internal/repositories"
	"reworn/internal/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type WearController struct {
	itemRepo           repositories.ItemRepository
	wearLogRepo        repositories.WearLogRepository
	transactionService *services.TransactionService
	analyticsService   *services.AnalyticsService
	db                 database.DB
	Config             config.Config
}

type LogWearRequest struct {
	ItemID uuid.UUID `json:"itemId"`
	WornAt string    `json:"wornAt,omitempty"`
}

type WearControllerInterface interface {
	LogWear(ctx context.Context, request *LogWearRequest) (*WearLog, error)
	GetLogsForItem(ctx context.Context, itemID uuid.UUID) ([]*WearLog, error)
	GetLogsForDate(ctx context.Context, date time.Time) ([]*WearLog, error)
	HasLoggedToday(ctx context.Context, itemID uuid.UUID) (bool, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) WearControllerInterface {
	return &WearController{
		itemRepo:           repos.Item,
		wearLogRepo:        repos.WearLog,
		transactionService: services.Transaction,
		analyticsService:   services.Analytics,
		db:                 db,
		Config:             config,
	}
}

func parseWornAt(wornAtStr string) (time.Time, error) {
	if wornAtStr == "" {
		return time.Now(), nil
	}

	if t, err := time.Parse(time.RFC3339, wornAtStr); err == nil {
		return t, nil
	}

	t, err := time.Parse("2006-01-02", wornAtStr)
	if err != nil {
		return time.Time{}, errors.New("invalid wornAt format, expected RFC3339 or YYYY-MM-DD")
	}

	return t, nil
}

// LogWear records a wear and bumps the item's denormalized wear count in the
// same transaction. Multiple wears of one item on the same day are allowed;
// the has-logged-today check belongs to the caller's edit boundary.
func (c *WearController) LogWear(
	ctx context.Context,
	request *LogWearRequest,
) (*WearLog, error) {
	log := logger.NewWithContext(ctx, "wearController").Function("LogWear")

	if request.ItemID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "itemId is required")
	}

	wornAt, err := parseWornAt(request.WornAt)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid wornAt", "error", err)
	}

	if wornAt.After(time.Now()) {
		return nil, log.ErrorWithType(ErrValidation, "wornAt cannot be in the future")
	}

	if _, err := c.itemRepo.GetByID(ctx, c.db.SQLWithContext(ctx), request.ItemID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "item not found", "itemID", request.ItemID)
		}
		return nil, log.Error("failed to get item", "error", err, "itemID", request.ItemID)
	}

	wearLog := &WearLog{
		ItemID: request.ItemID,
		WornAt: wornAt,
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.wearLogRepo.Create(ctx, tx, wearLog); err != nil {
			return log.Error(
				"failed to create wear log in transaction",
				"error", err,
				"itemID", request.ItemID,
			)
		}

		if err := c.itemRepo.IncrementWearCount(ctx, tx, request.ItemID); err != nil {
			return log.Error(
				"failed to increment wear count in transaction",
				"error", err,
				"itemID", request.ItemID,
			)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	c.analyticsService.Refresh()

	log.Info(
		"Wear logged successfully",
		"itemID", request.ItemID,
		"wearLogID", wearLog.ID,
		"wornAt", wornAt,
	)

	return wearLog, nil
}

func (c *WearController) GetLogsForItem(
	ctx context.Context,
	itemID uuid.UUID,
) ([]*WearLog, error) {
	log := logger.NewWithContext(ctx, "wearController").Function("GetLogsForItem")

	if itemID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "itemId is required")
	}

	return c.wearLogRepo.GetLogsForItem(ctx, c.db.SQLWithContext(ctx), itemID)
}

func (c *WearController) GetLogsForDate(
	ctx context.Context,
	date time.Time,
) ([]*WearLog, error) {
	return c.wearLogRepo.GetLogsForDate(ctx, c.db.SQLWithContext(ctx), date)
}

// HasLoggedToday reports whether the item already has a wear log for the
// current calendar day.
func (c *WearController) HasLoggedToday(
	ctx context.Context,
	itemID uuid.UUID,
) (bool, error) {
	log := logger.NewWithContext(ctx, "wearController").Function("HasLoggedToday")

	if itemID == uuid.Nil {
		return false, log.ErrorWithType(ErrValidation, "itemId is required")
	}

	return c.wearLogRepo.HasLogForDate(ctx, c.db.SQLWithContext(ctx), itemID, time.Now())
}
