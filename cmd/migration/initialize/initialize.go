package initialize

import (
	"reworn/config"
	"reworn/internal/logger"
	. "reworn/internal/models"

	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeSettings(db, config, log); err != nil {
		return log.Err("failed to initialize settings", err)
	}

	log.Info("Table initialization complete")
	return nil
}

// initializeSettings ensures the single settings row exists so the API never
// races on first-access creation.
func initializeSettings(db *gorm.DB, config config.Config, log logger.Logger) error {
	var existing UserSettings
	if err := db.First(&existing).Error; err == nil {
		log.Debug("Settings row already exists")
		return nil
	}

	symbol := config.CurrencySymbol
	if symbol == "" {
		symbol = "$"
	}

	settings := UserSettings{CurrencySymbol: symbol}
	if err := db.Create(&settings).Error; err != nil {
		return log.Err("failed to create settings row", err)
	}

	log.Info("Settings row initialized", "currencySymbol", symbol)
	return nil
}
