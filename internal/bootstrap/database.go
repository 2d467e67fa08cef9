package bootstrap

import (
	"fmt"
	"log"

	"github.com/SunilThagyal/fbase-api/internal/config"
	"github.com/SunilThagyal/fbase-api/internal/store"
)

// initializeDatabase opens the user record store
func initializeDatabase(cfg *config.Config) (*store.Store, error) {
	db, err := store.New(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log.Printf("User record store initialized (driver: %s)", cfg.DatabaseDriver)
	return db, nil
}
