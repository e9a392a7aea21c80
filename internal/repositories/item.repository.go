package repositories

import (
	"context"
	"fmt"

	"reworn/internal/constants"
	"reworn/internal/database"
	"reworn/internal/logger"
	. "reworn/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(ctx context.Context, tx *gorm.DB, item *WardrobeItem) error
	GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*WardrobeItem, error)
	GetActiveItems(ctx context.Context, tx *gorm.DB) ([]*WardrobeItem, error)
	GetAllItems(ctx context.Context, tx *gorm.DB) ([]*WardrobeItem, error)
	Update(
		ctx context.Context,
		tx *gorm.DB,
		itemID uuid.UUID,
		updates map[string]any,
	) (*WardrobeItem, error)
	IncrementWearCount(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
	SetWearCount(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, count int) error
	Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
	ClearCache(ctx context.Context)
}

type itemRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewItemRepository(cache database.CacheClient) ItemRepository {
	return &itemRepository{
		cache: cache,
		log:   logger.New("itemRepository"),
	}
}

func (r *itemRepository) Create(ctx context.Context, tx *gorm.DB, item *WardrobeItem) error {
	log := r.log.Function("Create")

	if err := gorm.G[WardrobeItem](tx).Create(ctx, item); err != nil {
		return log.Err("failed to create wardrobe item", err, "name", item.Name)
	}

	r.ClearCache(ctx)

	return nil
}

func (r *itemRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	itemID uuid.UUID,
) (*WardrobeItem, error) {
	log := r.log.Function("GetByID")

	item, err := gorm.G[*WardrobeItem](tx).
		Where("id = ?", itemID).
		First(ctx)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get wardrobe item", err, "itemID", itemID)
	}

	return item, nil
}

// GetActiveItems returns non-archived items ordered by creation time
// descending, matching display order.
func (r *itemRepository) GetActiveItems(
	ctx context.Context,
	tx *gorm.DB,
) ([]*WardrobeItem, error) {
	log := r.log.Function("GetActiveItems")

	var cached []*WardrobeItem
	found, err := database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithHash(constants.ActiveItemsCachePrefix).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get active items from cache", "error", err)
	}

	if found {
		return cached, nil
	}

	items, err := gorm.G[*WardrobeItem](tx).
		Where("archived = ?", false).
		Order("created_at DESC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to get active items", err)
	}

	err = database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithHash(constants.ActiveItemsCachePrefix).
		WithStruct(items).
		WithTTL(constants.WardrobeCacheExpiry).
		Set()
	if err != nil {
		log.Warn("failed to set active items in cache", "error", err)
	}

	return items, nil
}

func (r *itemRepository) GetAllItems(
	ctx context.Context,
	tx *gorm.DB,
) ([]*WardrobeItem, error) {
	log := r.log.Function("GetAllItems")

	var cached []*WardrobeItem
	found, err := database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithHash(constants.AllItemsCachePrefix).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get all items from cache", "error", err)
	}

	if found {
		return cached, nil
	}

	items, err := gorm.G[*WardrobeItem](tx).
		Order("created_at DESC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to get all items", err)
	}

	err = database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithHash(constants.AllItemsCachePrefix).
		WithStruct(items).
		WithTTL(constants.WardrobeCacheExpiry).
		Set()
	if err != nil {
		log.Warn("failed to set all items in cache", "error", err)
	}

	return items, nil
}

func (r *itemRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	itemID uuid.UUID,
	updates map[string]any,
) (*WardrobeItem, error) {
	log := r.log.Function("Update")

	result := tx.Model(&WardrobeItem{}).Where("id = ?", itemID).Updates(updates)
	if result.Error != nil {
		return nil, log.Err("failed to update wardrobe item", result.Error, "itemID", itemID)
	}

	item, err := gorm.G[*WardrobeItem](tx).
		Where("id = ?", itemID).
		First(ctx)
	if err != nil {
		return nil, log.Err("failed to retrieve updated item", err, "itemID", itemID)
	}

	r.ClearCache(ctx)

	return item, nil
}

func (r *itemRepository) IncrementWearCount(
	ctx context.Context,
	tx *gorm.DB,
	itemID uuid.UUID,
) error {
	log := r.log.Function("IncrementWearCount")

	result := tx.Model(&WardrobeItem{}).
		Where("id = ?", itemID).
		UpdateColumn("wear_count", gorm.Expr("wear_count + 1"))
	if result.Error != nil {
		return log.Err("failed to increment wear count", result.Error, "itemID", itemID)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.ClearCache(ctx)

	return nil
}

func (r *itemRepository) SetWearCount(
	ctx context.Context,
	tx *gorm.DB,
	itemID uuid.UUID,
	count int,
) error {
	log := r.log.Function("SetWearCount")

	result := tx.Model(&WardrobeItem{}).
		Where("id = ?", itemID).
		UpdateColumn("wear_count", count)
	if result.Error != nil {
		return log.Err("failed to set wear count", result.Error, "itemID", itemID)
	}

	r.ClearCache(ctx)

	return nil
}

func (r *itemRepository) Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	log := r.log.Function("Delete")

	rowsAffected, err := gorm.G[*WardrobeItem](tx).
		Where("id = ?", itemID).
		Delete(ctx)
	if err != nil {
		return log.Err("failed to delete wardrobe item", err, "itemID", itemID)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("wardrobe item not found")
	}

	r.ClearCache(ctx)

	return nil
}

func (r *itemRepository) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	log := r.log.Function("DeleteAll")

	if err := tx.Where("1 = 1").Delete(&WardrobeItem{}).Error; err != nil {
		return log.Err("failed to delete all wardrobe items", err)
	}

	r.ClearCache(ctx)

	return nil
}

func (r *itemRepository) ClearCache(ctx context.Context) {
	for _, prefix := range []string{
		constants.ActiveItemsCachePrefix,
		constants.AllItemsCachePrefix,
	} {
		err := database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
			WithContext(ctx).
			WithHash(prefix).
			Delete()
		if err != nil {
			r.log.Warn("failed to clear item cache", "prefix", prefix, "error", err)
		}
	}
}
