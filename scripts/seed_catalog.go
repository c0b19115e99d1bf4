// Seeds worlds, challenges and practice exercises.
//
// Seeding also runs on start with -seed. This script covers loading a
// custom catalog file into an existing database.
//
// Usage: go run scripts/seed_catalog.go [-catalog path/to/catalog.yaml]

package main

import (
	"flag"
	"log"

	"pygely_backend/internal/config"
	"pygely_backend/pkg/database"
	"pygely_backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	catalogPath := flag.String("catalog", "", "catalog yaml file, defaults to the embedded catalog")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	var catalog *database.Catalog
	if *catalogPath != "" {
		catalog, err = database.LoadCatalogFile(*catalogPath)
	} else {
		catalog, err = database.DefaultCatalog()
	}
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	if err := database.SeedCatalog(db, catalog); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d worlds and %d practice exercises", len(catalog.Worlds), len(catalog.Practice))
}
