package database

import (
	"reworn/internal/logger"
	"reworn/internal/models"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []interface{}{
		&models.WardrobeItem{},
		&models.WearLog{},
		&models.SustainabilityGoal{},
		&models.UserSettings{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates additional indexes that GORM doesn't create automatically
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_wear_logs_item_worn_at ON wear_logs(item_id, worn_at)",
		"CREATE INDEX IF NOT EXISTS idx_wear_logs_worn_at ON wear_logs(worn_at)",
		"CREATE INDEX IF NOT EXISTS idx_wardrobe_items_archived_created ON wardrobe_items(archived, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_wardrobe_items_category ON wardrobe_items(category)",
	}

	for _, index := range indexes {
		if err := db.SQL.Exec(index).Error; err != nil {
			return log.Err("Failed to create index", err, "index", index)
		}
	}

	log.Info("Additional indexes created successfully")
	return nil
}
