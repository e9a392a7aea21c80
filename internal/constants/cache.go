package constants

import "time"

const (
	ActiveItemsCachePrefix = "wardrobe_items_active" // CacheBuilder adds colon
	AllItemsCachePrefix    = "wardrobe_items_all"
	WearLogsCachePrefix    = "wear_logs"
	GoalsCachePrefix       = "goals"
	SettingsCachePrefix    = "settings"

	WardrobeCacheExpiry = 24 * time.Hour

	// CollectionCacheKey is the key used for whole-collection cache entries.
	CollectionCacheKey = "all"
)
