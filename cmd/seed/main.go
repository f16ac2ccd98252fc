package main

import (
	"context"
	"log"

	"talentbridge-ai/internal/bootstrap"
	"talentbridge-ai/internal/config"
	"talentbridge-ai/pkg/database"
	"talentbridge-ai/pkg/knowledge"
)

// Seeds the preset platform Q&A into the knowledge store. Safe to rerun:
// near-duplicate questions update their answers instead of inserting.
func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	container := bootstrap.NewContainer(db, cfg, nil)
	defer container.Logger.Sync()

	log.Println("Seeding preset knowledge...")
	stored := knowledge.SeedPresets(context.Background(), container.Knowledge, container.Logger)
	log.Printf("Done: %d preset pairs stored.", stored)
}
