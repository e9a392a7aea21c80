package repositories

import (
	"context"
	"time"

	"reworn/internal/constants"
	"reworn/internal/database"
	"reworn/internal/logger"
	. "reworn/internal/models"
	"reworn/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WearLogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, wearLog *WearLog) error
	GetAllLogs(ctx context.Context, tx *gorm.DB) ([]*WearLog, error)
	GetLogsForItem(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) ([]*WearLog, error)
	GetLogsForDate(ctx context.Context, tx *gorm.DB, date time.Time) ([]*WearLog, error)
	CountLogsForDate(ctx context.Context, tx *gorm.DB, date time.Time) (int64, error)
	CountLogsForItem(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (int64, error)
	HasLogForDate(
		ctx context.Context,
		tx *gorm.DB,
		itemID uuid.UUID,
		date time.Time,
	) (bool, error)
	DeleteForItem(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
	ClearCache(ctx context.Context)
}

type wearLogRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewWearLogRepository(cache database.CacheClient) WearLogRepository {
	return &wearLogRepository{
		cache: cache,
		log:   logger.New("wearLogRepository"),
	}
}

func (r *wearLogRepository) Create(ctx context.Context, tx *gorm.DB, wearLog *WearLog) error {
	log := r.log.Function("Create")

	if err := gorm.G[WearLog](tx).Create(ctx, wearLog); err != nil {
		return log.Err("failed to create wear log", err, "itemID", wearLog.ItemID)
	}

	r.ClearCache(ctx)

	return nil
}

// GetAllLogs returns every wear log, active and archived items alike,
// ordered by wear date ascending.
func (r *wearLogRepository) GetAllLogs(ctx context.Context, tx *gorm.DB) ([]*WearLog, error) {
	log := r.log.Function("GetAllLogs")

	var cached []*WearLog
	found, err := database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithHash(constants.WearLogsCachePrefix).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get wear logs from cache", "error", err)
	}

	if found {
		return cached, nil
	}

	logs, err := gorm.G[*WearLog](tx).
		Order("worn_at ASC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to get wear logs", err)
	}

	err = database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithHash(constants.WearLogsCachePrefix).
		WithStruct(logs).
		WithTTL(constants.WardrobeCacheExpiry).
		Set()
	if err != nil {
		log.Warn("failed to set wear logs in cache", "error", err)
	}

	return logs, nil
}

func (r *wearLogRepository) GetLogsForItem(
	ctx context.Context,
	tx *gorm.DB,
	itemID uuid.UUID,
) ([]*WearLog, error) {
	log := r.log.Function("GetLogsForItem")

	logs, err := gorm.G[*WearLog](tx).
		Where("item_id = ?", itemID).
		Order("worn_at ASC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to get wear logs for item", err, "itemID", itemID)
	}

	return logs, nil
}

func (r *wearLogRepository) GetLogsForDate(
	ctx context.Context,
	tx *gorm.DB,
	date time.Time,
) ([]*WearLog, error) {
	log := r.log.Function("GetLogsForDate")

	dayStart := utils.StartOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	logs, err := gorm.G[*WearLog](tx).
		Where("worn_at >= ? AND worn_at < ?", dayStart, dayEnd).
		Order("worn_at ASC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to get wear logs for date", err, "date", dayStart)
	}

	return logs, nil
}

func (r *wearLogRepository) CountLogsForDate(
	ctx context.Context,
	tx *gorm.DB,
	date time.Time,
) (int64, error) {
	log := r.log.Function("CountLogsForDate")

	dayStart := utils.StartOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	count, err := gorm.G[WearLog](tx).
		Where("worn_at >= ? AND worn_at < ?", dayStart, dayEnd).
		Count(ctx, "id")
	if err != nil {
		return 0, log.Err("failed to count wear logs for date", err, "date", dayStart)
	}

	return count, nil
}

func (r *wearLogRepository) CountLogsForItem(
	ctx context.Context,
	tx *gorm.DB,
	itemID uuid.UUID,
) (int64, error) {
	log := r.log.Function("CountLogsForItem")

	count, err := gorm.G[WearLog](tx).
		Where("item_id = ?", itemID).
		Count(ctx, "id")
	if err != nil {
		return 0, log.Err("failed to count wear logs for item", err, "itemID", itemID)
	}

	return count, nil
}

// HasLogForDate backs the "already logged today" check at the edit boundary.
// Duplicate daily logs remain permitted by the write path itself.
func (r *wearLogRepository) HasLogForDate(
	ctx context.Context,
	tx *gorm.DB,
	itemID uuid.UUID,
	date time.Time,
) (bool, error) {
	log := r.log.Function("HasLogForDate")

	dayStart := utils.StartOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	count, err := gorm.G[WearLog](tx).
		Where("item_id = ? AND worn_at >= ? AND worn_at < ?", itemID, dayStart, dayEnd).
		Count(ctx, "id")
	if err != nil {
		return false, log.Err("failed to check wear log for date", err, "itemID", itemID)
	}

	return count > 0, nil
}

func (r *wearLogRepository) DeleteForItem(
	ctx context.Context,
	tx *gorm.DB,
	itemID uuid.UUID,
) error {
	log := r.log.Function("DeleteForItem")

	if _, err := gorm.G[*WearLog](tx).Where("item_id = ?", itemID).Delete(ctx); err != nil {
		return log.Err("failed to delete wear logs for item", err, "itemID", itemID)
	}

	r.ClearCache(ctx)

	return nil
}

func (r *wearLogRepository) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	log := r.log.Function("DeleteAll")

	if err := tx.Where("1 = 1").Delete(&WearLog{}).Error; err != nil {
		return log.Err("failed to delete all wear logs", err)
	}

	r.ClearCache(ctx)

	return nil
}

func (r *wearLogRepository) ClearCache(ctx context.Context) {
	err := database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithHash(constants.WearLogsCachePrefix).
		Delete()
	if err != nil {
		r.log.Warn("failed to clear wear log cache", "error", err)
	}
}
