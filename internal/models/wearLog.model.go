package models

import (
	"time"

	"github.com/google/uuid"
)

type WearLog struct {
	BaseUUIDModel
	ItemID uuid.UUID    `gorm:"type:uuid;not null;index" json:"itemId"`
	Item   WardrobeItem `gorm:"foreignKey:ItemID"        json:"item"`
	WornAt time.Time    `gorm:"not null;index"           json:"wornAt"`
}
