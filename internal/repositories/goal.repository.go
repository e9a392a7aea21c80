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

type GoalRepository interface {
	Create(ctx context.Context, tx *gorm.DB, goal *SustainabilityGoal) error
	GetByID(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) (*SustainabilityGoal, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*SustainabilityGoal, error)
	Delete(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
	ClearCache(ctx context.Context)
}

type goalRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewGoalRepository(cache database.CacheClient) GoalRepository {
	return &goalRepository{
		cache: cache,
		log:   logger.New("goalRepository"),
	}
}

func (r *goalRepository) Create(ctx context.Context, tx *gorm.DB, goal *SustainabilityGoal) error {
	log := r.log.Function("Create")

	if err := gorm.G[SustainabilityGoal](tx).Create(ctx, goal); err != nil {
		return log.Err("failed to create goal", err, "title", goal.Title)
	}

	r.ClearCache(ctx)

	return nil
}

func (r *goalRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	goalID uuid.UUID,
) (*SustainabilityGoal, error) {
	log := r.log.Function("GetByID")

	goal, err := gorm.G[*SustainabilityGoal](tx).
		Where("id = ?", goalID).
		First(ctx)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get goal", err, "goalID", goalID)
	}

	return goal, nil
}

func (r *goalRepository) GetAll(
	ctx context.Context,
	tx *gorm.DB,
) ([]*SustainabilityGoal, error) {
	log := r.log.Function("GetAll")

	var cached []*SustainabilityGoal
	found, err := database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithHash(constants.GoalsCachePrefix).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get goals from cache", "error", err)
	}

	if found {
		return cached, nil
	}

	goals, err := gorm.G[*SustainabilityGoal](tx).
		Order("created_at DESC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to get goals", err)
	}

	err = database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithHash(constants.GoalsCachePrefix).
		WithStruct(goals).
		WithTTL(constants.WardrobeCacheExpiry).
		Set()
	if err != nil {
		log.Warn("failed to set goals in cache", "error", err)
	}

	return goals, nil
}

func (r *goalRepository) Delete(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) error {
	log := r.log.Function("Delete")

	rowsAffected, err := gorm.G[*SustainabilityGoal](tx).
		Where("id = ?", goalID).
		Delete(ctx)
	if err != nil {
		return log.Err("failed to delete goal", err, "goalID", goalID)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("goal not found")
	}

	r.ClearCache(ctx)

	return nil
}

func (r *goalRepository) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	log := r.log.Function("DeleteAll")

	if err := tx.Where("1 = 1").Delete(&SustainabilityGoal{}).Error; err != nil {
		return log.Err("failed to delete all goals", err)
	}

	r.ClearCache(ctx)

	return nil
}

func (r *goalRepository) ClearCache(ctx context.Context) {
	err := database.NewCacheBuilder(r.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithHash(constants.GoalsCachePrefix).
		Delete()
	if err != nil {
		r.log.Warn("failed to clear goal cache", "error", err)
	}
}
