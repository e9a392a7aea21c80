package repositories

import (
	"reworn/internal/database"
)

type Repository struct {
	Item     ItemRepository
	WearLog  WearLogRepository
	Goal     GoalRepository
	Settings SettingsRepository
}

func New(db database.DB) Repository {
	return Repository{
		Item:     NewItemRepository(db.Cache.Wardrobe),
		WearLog:  NewWearLogRepository(db.Cache.Wardrobe),
		Goal:     NewGoalRepository(db.Cache.Wardrobe),
		Settings: NewSettingsRepository(db.Cache.Wardrobe),
	}
}
