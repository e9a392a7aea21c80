package models

import (
	"gorm.io/datatypes"
)

// UserSettings is a single-row table holding display preferences for the
// device owner.
type UserSettings struct {
	BaseUUIDModel
	CurrencySymbol string         `gorm:"type:text;not null;default:'$'" json:"currencySymbol"`
	Preferences    datatypes.JSON `gorm:"type:jsonb"                     json:"preferences,omitempty"`
}
