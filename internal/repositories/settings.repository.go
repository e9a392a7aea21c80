package repositories

import (
	"context"

	"reworn/internal/constants"
	"reworn/internal/database"
	"reworn/internal/logger"
	. "reworn/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get(ctx context.Context, tx *gorm.DB) (*UserSettings, error)
	Update(
		ctx context.Context,
		tx *gorm.DB,
		updates map[string]any,
	) (*UserSettings, error)
}

type settingsRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewSettingsRepository(cache database.CacheClient) SettingsRepository {
	return &settingsRepository{
		cache: cache,
		log:   logger.New("settingsRepository"),
	}
}

// Get returns the single settings row, creating it with defaults on first
// access.
func (r *settingsRepository) Get(ctx context.Context, tx *gorm.DB) (*UserSettings, error) {
	log := r.log.Function("Get")

	var cached UserSettings
	found, err := database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithHash(constants.SettingsCachePrefix).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get settings from cache", "error", err)
	}

	if found {
		return &cached, nil
	}

	settings, err := gorm.G[*UserSettings](tx).First(ctx)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, log.Err("failed to get settings", err)
		}

		settings = &UserSettings{CurrencySymbol: "$"}
		if err := gorm.G[UserSettings](tx).Create(ctx, settings); err != nil {
			return nil, log.Err("failed to create default settings", err)
		}
	}

	err = database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithHash(constants.SettingsCachePrefix).
		WithStruct(settings).
		WithTTL(constants.WardrobeCacheExpiry).
		Set()
	if err != nil {
		log.Warn("failed to set settings in cache", "error", err)
	}

	return settings, nil
}

func (r *settingsRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	updates map[string]any,
) (*UserSettings, error) {
	log := r.log.Function("Update")

	settings, err := r.Get(ctx, tx)
	if err != nil {
		return nil, err
	}

	result := tx.Model(&UserSettings{}).Where("id = ?", settings.ID).Updates(updates)
	if result.Error != nil {
		return nil, log.Err("failed to update settings", result.Error)
	}

	err = database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithHash(constants.SettingsCachePrefix).
		Delete()
	if err != nil {
		log.Warn("failed to clear settings cache", "error", err)
	}

	return r.Get(ctx, tx)
}
