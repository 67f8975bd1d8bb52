// Command seed fills the configured database with sample data. It is
// additive: existing records are kept.
package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/GameXcalibur/LynxATS/internal/config"
	"github.com/GameXcalibur/LynxATS/internal/database"
	"github.com/GameXcalibur/LynxATS/internal/logger"
	"github.com/GameXcalibur/LynxATS/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Setup(cfg.Logger); err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	defer logger.Cleanup()

	backend, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Infof("Seeding %s database...", backend.Name())
	counts, seedErr := seed.Run(ctx, backend, time.Now())
	if err := backend.Close(ctx); err != nil {
		log.Errorf("Error closing database: %v", err)
	}
	if seedErr != nil {
		log.Fatalf("Seed failed after creating %s: %v", counts, seedErr)
	}
	log.Infof("Seed complete: %s", counts)
}
