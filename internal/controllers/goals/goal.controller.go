package goalController

import (
	"context"
	"errors"

	"reworn/config"
	"reworn/internal/database"
	"reworn/internal/logger"
	. "reworn/internal/models"
	"reworn/internal/repositories"
	"reworn/internal/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const MaxTitleLength = 200

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type GoalController struct {
	goalRepo         repositories.GoalRepository
	itemRepo         repositories.ItemRepository
	goalService      *services.GoalService
	analyticsService *services.AnalyticsService
	db               database.DB
	Config           config.Config
}

type CreateGoalRequest struct {
	Title        string     `json:"title"`
	GoalType     string     `json:"goalType"`
	TargetValue  string     `json:"targetValue"`
	LinkedItemID *uuid.UUID `json:"linkedItemId,omitempty"`
}

// GoalWithProgress pairs a stored goal with its freshly computed progress.
type GoalWithProgress struct {
	Goal     *SustainabilityGoal   `json:"goal"`
	Progress services.GoalProgress `json:"progress"`
}

type GoalControllerInterface interface {
	Create(ctx context.Context, request *CreateGoalRequest) (*SustainabilityGoal, error)
	GetAllWithProgress(ctx context.Context) ([]GoalWithProgress, error)
	Delete(ctx context.Context, goalID uuid.UUID) error
	GetAchievements(ctx context.Context) ([]Achievement, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) GoalControllerInterface {
	return &GoalController{
		goalRepo:         repos.Goal,
		itemRepo:         repos.Item,
		goalService:      services.Goal,
		analyticsService: services.Analytics,
		db:               db,
		Config:           config,
	}
}

func (c *GoalController) Create(
	ctx context.Context,
	request *CreateGoalRequest,
) (*SustainabilityGoal, error) {
	log := logger.NewWithContext(ctx, "goalController").Function("Create")

	if request.Title == "" {
		return nil, log.ErrorWithType(ErrValidation, "title is required")
	}

	if len(request.Title) > MaxTitleLength {
		return nil, log.ErrorWithType(ErrValidation, "title exceeds maximum length")
	}

	goalType := GoalType(request.GoalType)

	targetValue, err := decimal.NewFromString(request.TargetValue)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid targetValue", "error", err)
	}

	if !targetValue.IsPositive() {
		return nil, log.ErrorWithType(ErrValidation, "targetValue must be positive")
	}

	goal := &SustainabilityGoal{
		Title:        request.Title,
		GoalType:     goalType,
		TargetValue:  targetValue,
		LinkedItemID: request.LinkedItemID,
	}

	if !goal.IsValidType() {
		return nil, log.ErrorWithType(ErrValidation, "unknown goalType", "goalType", request.GoalType)
	}

	if goalType == GoalTypeWearCount {
		if request.LinkedItemID == nil {
			return nil, log.ErrorWithType(ErrValidation, "wear count goals require linkedItemId")
		}

		if _, err := c.itemRepo.GetByID(ctx, c.db.SQLWithContext(ctx), *request.LinkedItemID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, log.ErrorWithType(ErrNotFound, "linked item not found")
			}
			return nil, log.Error("failed to verify linked item", "error", err)
		}
	}

	if err := c.goalRepo.Create(ctx, c.db.SQLWithContext(ctx), goal); err != nil {
		return nil, log.Error("failed to create goal", "error", err, "title", request.Title)
	}

	log.Info("Goal created successfully", "goalID", goal.ID, "goalType", goalType)

	return goal, nil
}

// GetAllWithProgress returns every goal with progress computed against the
// current snapshot. A goal whose linked item was deleted reports zero
// progress rather than failing the whole listing.
func (c *GoalController) GetAllWithProgress(ctx context.Context) ([]GoalWithProgress, error) {
	log := logger.NewWithContext(ctx, "goalController").Function("GetAllWithProgress")

	goals, err := c.goalRepo.GetAll(ctx, c.db.SQLWithContext(ctx))
	if err != nil {
		return nil, log.Error("failed to get goals", "error", err)
	}

	snapshot, err := c.analyticsService.Snapshot(ctx)
	if err != nil {
		return nil, log.Error("failed to build snapshot", "error", err)
	}

	result := make([]GoalWithProgress, 0, len(goals))
	for _, goal := range goals {
		result = append(result, GoalWithProgress{
			Goal:     goal,
			Progress: c.goalService.Progress(goal, snapshot),
		})
	}

	return result, nil
}

func (c *GoalController) Delete(ctx context.Context, goalID uuid.UUID) error {
	log := logger.NewWithContext(ctx, "goalController").Function("Delete")

	if goalID == uuid.Nil {
		return log.ErrorWithType(ErrValidation, "goalId is required")
	}

	if err := c.goalRepo.Delete(ctx, c.db.SQLWithContext(ctx), goalID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return log.ErrorWithType(ErrNotFound, "goal not found", "goalID", goalID)
		}
		return log.Error("failed to delete goal", "error", err, "goalID", goalID)
	}

	log.Info("Goal deleted successfully", "goalID", goalID)

	return nil
}

func (c *GoalController) GetAchievements(ctx context.Context) ([]Achievement, error) {
	log := logger.NewWithContext(ctx, "goalController").Function("GetAchievements")

	snapshot, err := c.analyticsService.Snapshot(ctx)
	if err != nil {
		return nil, log.Error("failed to build snapshot", "error", err)
	}

	return c.goalService.Achievements(snapshot), nil
}
