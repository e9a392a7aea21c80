package database

import (
	"fmt"

	"reworn/config"

	"github.com/valkey-io/valkey-go"
)

// Valkey database index organization. Each index gives logical separation for
// a cache category.
const (
	// GENERAL_CACHE_INDEX (DB 0) - miscellaneous cache operations
	GENERAL_CACHE_INDEX = iota

	// WARDROBE_CACHE_INDEX (DB 1) - wardrobe data:
	// items, wear logs, goals, settings
	WARDROBE_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.ErrMsg("failed to initialize cache database: address or port is empty")
	}

	var cacheDB Cache

	var err error
	cacheDB.General, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    GENERAL_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create general valkey client", err)
	}

	cacheDB.Wardrobe, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    WARDROBE_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create wardrobe valkey client", err)
	}

	s.Cache = cacheDB
	log.Info("cache database initialized")

	return nil
}
