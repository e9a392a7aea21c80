package itemController

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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MaxNameLength     = 200
	MaxCategoryLength = 100
	MaxBrandLength    = 100
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type ItemController struct {
	itemRepo           repositories.ItemRepository
	wearLogRepo        repositories.WearLogRepository
	transactionService *services.TransactionService
	analyticsService   *services.AnalyticsService
	currencyFormatter  services.CurrencyFormatter
	db                 database.DB
	Config             config.Config
}

type CreateItemRequest struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Brand         *string `json:"brand,omitempty"`
	PurchasePrice string  `json:"purchasePrice"`
	PurchaseDate  string  `json:"purchaseDate"`
	PhotoRef      string  `json:"photoRef,omitempty"`
}

type UpdateItemRequest struct {
	Name          *string `json:"name,omitempty"`
	Category      *string `json:"category,omitempty"`
	Brand         *string `json:"brand,omitempty"`
	PurchasePrice *string `json:"purchasePrice,omitempty"`
	PurchaseDate  *string `json:"purchaseDate,omitempty"`
	PhotoRef      *string `json:"photoRef,omitempty"`
}

// ItemDetail carries an item together with its derived per-item metrics.
type ItemDetail struct {
	Item                 *WardrobeItem   `json:"item"`
	CostPerWear          decimal.Decimal `json:"costPerWear"`
	CostPerWearDisplay   string          `json:"costPerWearDisplay"`
	EfficiencyScore      float64         `json:"efficiencyScore"`
	EfficiencyGrade      string          `json:"efficiencyGrade"`
	DaysSincePurchase    int             `json:"daysSincePurchase"`
	WearsPerMonth        float64         `json:"wearsPerMonth"`
	WearsPerWeek         float64         `json:"wearsPerWeek"`
	ProjectedYearlyWears int             `json:"projectedYearlyWears"`
	ProjectedYearlyCPW   decimal.Decimal `json:"projectedYearlyCpw"`
	DaysSinceLastWorn    *int            `json:"daysSinceLastWorn,omitempty"`
	CPWOverTime          []CPWPoint      `json:"cpwOverTime"`
}

type ItemControllerInterface interface {
	Create(ctx context.Context, request *CreateItemRequest) (*WardrobeItem, error)
	GetActiveItems(ctx context.Context) ([]*WardrobeItem, error)
	GetAllItems(ctx context.Context) ([]*WardrobeItem, error)
	GetDetail(ctx context.Context, itemID uuid.UUID) (*ItemDetail, error)
	Update(ctx context.Context, itemID uuid.UUID, request *UpdateItemRequest) (*WardrobeItem, error)
	SetArchived(ctx context.Context, itemID uuid.UUID, archived bool) (*WardrobeItem, error)
	Delete(ctx context.Context, itemID uuid.UUID) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) ItemControllerInterface {
	return &ItemController{
		itemRepo:           repos.Item,
		wearLogRepo:        repos.WearLog,
		transactionService: services.Transaction,
		analyticsService:   services.Analytics,
		currencyFormatter:  services.Currency,
		db:                 db,
		Config:             config,
	}
}

func parseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, errors.New("date is required")
	}

	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t, nil
	}

	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, errors.New("invalid date format, expected RFC3339 or YYYY-MM-DD")
	}

	return t, nil
}

func parsePrice(priceStr string) (decimal.Decimal, error) {
	if priceStr == "" {
		return decimal.Zero, nil
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return decimal.Zero, errors.New("invalid price format")
	}

	if price.IsNegative() {
		return decimal.Zero, errors.New("price cannot be negative")
	}

	return price, nil
}

func validateTextFields(name, category string, brand *string) error {
	if len(name) > MaxNameLength {
		return errors.New("name exceeds maximum length")
	}
	if len(category) > MaxCategoryLength {
		return errors.New("category exceeds maximum length")
	}
	if brand != nil && len(*brand) > MaxBrandLength {
		return errors.New("brand exceeds maximum length")
	}
	return nil
}

func (c *ItemController) Create(
	ctx context.Context,
	request *CreateItemRequest,
) (*WardrobeItem, error) {
	log := logger.NewWithContext(ctx, "itemController").Function("Create")

	if err := validateTextFields(request.Name, request.Category, request.Brand); err != nil {
		return nil, log.ErrorWithType(ErrValidation, err.Error())
	}

	price, err := parsePrice(request.PurchasePrice)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid purchasePrice", "error", err)
	}

	purchaseDate, err := parseDate(request.PurchaseDate)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid purchaseDate", "error", err)
	}
	if purchaseDate.After(time.Now()) {
		return nil, log.ErrorWithType(ErrValidation, "purchaseDate cannot be in the future")
	}

	name := request.Name
	if name == "" {
		name = DefaultItemName
	}

	category := request.Category
	if category == "" {
		category = DefaultItemCategory
	}

	item := &WardrobeItem{
		Name:          name,
		Category:      category,
		Brand:         request.Brand,
		PurchasePrice: price,
		PurchaseDate:  purchaseDate,
		PhotoRef:      request.PhotoRef,
	}

	if err := c.itemRepo.Create(ctx, c.db.SQLWithContext(ctx), item); err != nil {
		return nil, log.Error("failed to create item", "error", err, "name", request.Name)
	}

	c.analyticsService.Refresh()

	log.Info("Wardrobe item created successfully", "itemID", item.ID, "name", item.DisplayName())

	return item, nil
}

func (c *ItemController) GetActiveItems(ctx context.Context) ([]*WardrobeItem, error) {
	return c.itemRepo.GetActiveItems(ctx, c.db.SQLWithContext(ctx))
}

func (c *ItemController) GetAllItems(ctx context.Context) ([]*WardrobeItem, error) {
	return c.itemRepo.GetAllItems(ctx, c.db.SQLWithContext(ctx))
}

// GetDetail loads an item with its full derived metric set, including the
// cost-per-wear history built from its wear logs.
func (c *ItemController) GetDetail(
	ctx context.Context,
	itemID uuid.UUID,
) (*ItemDetail, error) {
	log := logger.NewWithContext(ctx, "itemController").Function("GetDetail")

	if itemID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "itemId is required")
	}

	tx := c.db.SQLWithContext(ctx)

	item, err := c.itemRepo.GetByID(ctx, tx, itemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "item not found", "itemID", itemID)
		}
		return nil, log.Error("failed to get item", "error", err, "itemID", itemID)
	}

	logs, err := c.wearLogRepo.GetLogsForItem(ctx, tx, itemID)
	if err != nil {
		return nil, log.Error("failed to get wear logs", "error", err, "itemID", itemID)
	}

	now := time.Now()
	cpw := item.CostPerWear()

	return &ItemDetail{
		Item:                 item,
		CostPerWear:          cpw,
		CostPerWearDisplay:   c.currencyFormatter.Format(cpw),
		EfficiencyScore:      item.EfficiencyScore(),
		EfficiencyGrade:      item.EfficiencyGrade(),
		DaysSincePurchase:    item.DaysSincePurchase(now),
		WearsPerMonth:        item.WearsPerMonth(now),
		WearsPerWeek:         item.WearsPerWeek(now),
		ProjectedYearlyWears: item.ProjectedYearlyWears(now),
		ProjectedYearlyCPW:   item.ProjectedYearlyCPW(now),
		DaysSinceLastWorn:    item.DaysSinceLastWorn(logs, now),
		CPWOverTime:          item.CPWOverTime(logs),
	}, nil
}

func (c *ItemController) Update(
	ctx context.Context,
	itemID uuid.UUID,
	request *UpdateItemRequest,
) (*WardrobeItem, error) {
	log := logger.NewWithContext(ctx, "itemController").Function("Update")

	if itemID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "itemId is required")
	}

	updates := make(map[string]any)

	if request.Name != nil {
		if len(*request.Name) > MaxNameLength {
			return nil, log.ErrorWithType(ErrValidation, "name exceeds maximum length")
		}
		updates["name"] = *request.Name
	}

	if request.Category != nil {
		if len(*request.Category) > MaxCategoryLength {
			return nil, log.ErrorWithType(ErrValidation, "category exceeds maximum length")
		}
		updates["category"] = *request.Category
	}

	if request.Brand != nil {
		if len(*request.Brand) > MaxBrandLength {
			return nil, log.ErrorWithType(ErrValidation, "brand exceeds maximum length")
		}
		updates["brand"] = *request.Brand
	}

	if request.PurchasePrice != nil {
		price, err := parsePrice(*request.PurchasePrice)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, "invalid purchasePrice", "error", err)
		}
		updates["purchase_price"] = price
	}

	if request.PurchaseDate != nil {
		purchaseDate, err := parseDate(*request.PurchaseDate)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, "invalid purchaseDate", "error", err)
		}
		if purchaseDate.After(time.Now()) {
			return nil, log.ErrorWithType(ErrValidation, "purchaseDate cannot be in the future")
		}
		updates["purchase_date"] = purchaseDate
	}

	if request.PhotoRef != nil {
		updates["photo_ref"] = *request.PhotoRef
	}

	if len(updates) == 0 {
		return nil, log.ErrorWithType(ErrValidation, "no fields to update")
	}

	item, err := c.itemRepo.Update(ctx, c.db.SQLWithContext(ctx), itemID, updates)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "item not found", "itemID", itemID)
		}
		return nil, log.Error("failed to update item", "error", err, "itemID", itemID)
	}

	c.analyticsService.Refresh()

	log.Info("Wardrobe item updated successfully", "itemID", itemID)

	return item, nil
}

// SetArchived toggles the archived flag. Archived items drop out of active
// aggregates but keep their wear history.
func (c *ItemController) SetArchived(
	ctx context.Context,
	itemID uuid.UUID,
	archived bool,
) (*WardrobeItem, error) {
	log := logger.NewWithContext(ctx, "itemController").Function("SetArchived")

	if itemID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "itemId is required")
	}

	item, err := c.itemRepo.Update(
		ctx,
		c.db.SQLWithContext(ctx),
		itemID,
		map[string]any{"archived": archived},
	)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "item not found", "itemID", itemID)
		}
		return nil, log.Error("failed to set archived flag", "error", err, "itemID", itemID)
	}

	c.analyticsService.Refresh()

	log.Info("Wardrobe item archive state changed", "itemID", itemID, "archived", archived)

	return item, nil
}

// Delete removes an item and its wear logs permanently in one transaction.
func (c *ItemController) Delete(ctx context.Context, itemID uuid.UUID) error {
	log := logger.NewWithContext(ctx, "itemController").Function("Delete")

	if itemID == uuid.Nil {
		return log.ErrorWithType(ErrValidation, "itemId is required")
	}

	if _, err := c.itemRepo.GetByID(ctx, c.db.SQLWithContext(ctx), itemID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return log.ErrorWithType(ErrNotFound, "item not found", "itemID", itemID)
		}
		return log.Error("failed to get item", "error", err, "itemID", itemID)
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.wearLogRepo.DeleteForItem(ctx, tx, itemID); err != nil {
			return log.Error(
				"failed to delete wear logs in transaction",
				"error", err,
				"itemID", itemID,
			)
		}

		if err := c.itemRepo.Delete(ctx, tx, itemID); err != nil {
			return log.Error(
				"failed to delete item in transaction",
				"error", err,
				"itemID", itemID,
			)
		}

		return nil
	})
	if err != nil {
		return err
	}

	c.analyticsService.Refresh()

	log.Info("Wardrobe item deleted successfully", "itemID", itemID)

	return nil
}
