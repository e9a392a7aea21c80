package seed

import (
	"time"

	"reworn/config"
	"reworn/internal/logger"
	. "reworn/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	now := time.Now()

	items := []WardrobeItem{
		{
			BaseUUIDModel: BaseUUIDModel{ID: uuid.Must(uuid.NewV7())},
			Name:          "White Oxford Shirt",
			Category:      "Tops",
			Brand:         stringPtr("Uniqlo"),
			PurchasePrice: decimal.NewFromFloat(39.90),
			PurchaseDate:  now.AddDate(0, -5, 0),
		},
		{
			BaseUUIDModel: BaseUUIDModel{ID: uuid.Must(uuid.NewV7())},
			Name:          "Selvedge Jeans",
			Category:      "Bottoms",
			Brand:         stringPtr("Nudie"),
			PurchasePrice: decimal.NewFromFloat(189.00),
			PurchaseDate:  now.AddDate(0, -4, 0),
		},
		{
			BaseUUIDModel: BaseUUIDModel{ID: uuid.Must(uuid.NewV7())},
			Name:          "Leather Chelsea Boots",
			Category:      "Shoes",
			Brand:         stringPtr("Blundstone"),
			PurchasePrice: decimal.NewFromFloat(219.95),
			PurchaseDate:  now.AddDate(0, -3, 0),
		},
		{
			BaseUUIDModel: BaseUUIDModel{ID: uuid.Must(uuid.NewV7())},
			Name:          "Wool Overcoat",
			Category:      "Outerwear",
			PurchasePrice: decimal.NewFromFloat(320.00),
			PurchaseDate:  now.AddDate(0, -2, 0),
		},
	}

	for i := range items {
		var existing WardrobeItem
		if err := db.First(&existing, "name = ?", items[i].Name).Error; err == nil {
			log.Info("Item already exists", "name", items[i].Name)
			continue
		}
		log.Info("Seeding item", "name", items[i].Name)
		if err := db.Create(&items[i]).Error; err != nil {
			log.Er("failed to create item", err, "name", items[i].Name)
		}
	}

	// Give the first two items a short wear history so the dashboard has
	// something to show out of the box.
	for i := range items[:2] {
		for daysAgo := 1; daysAgo <= 5; daysAgo += 2 {
			wearLog := WearLog{
				ItemID: items[i].ID,
				WornAt: now.AddDate(0, 0, -daysAgo),
			}
			if err := db.Create(&wearLog).Error; err != nil {
				log.Er("failed to create wear log", err, "itemName", items[i].Name)
				continue
			}

			err := db.Model(&WardrobeItem{}).
				Where("id = ?", items[i].ID).
				UpdateColumn("wear_count", gorm.Expr("wear_count + 1")).Error
			if err != nil {
				log.Er("failed to bump wear count", err, "itemName", items[i].Name)
			}
		}
	}

	return nil
}
