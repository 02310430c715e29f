package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"lotuslab/internal/config"
	"lotuslab/internal/repository"
	"lotuslab/internal/seed"
	"lotuslab/internal/service/library"
)

func main() {
	file := flag.String("file", "", "YAML seed file (defaults to the built-in sample library)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	clearData := flag.Bool("clear-data", false, "Drop and recreate every library table, then exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Destructive operations are never allowed against production
	if cfg.Environment == "prod" && *clearData {
		log.Fatalf("BLOCKED: -clear-data is not allowed in the prod environment")
	}

	logger := config.NewLogger(cfg, os.Stdout)

	if cfg.DBDriver == config.DriverMemory && !*schemaOnly {
		logger.Warn("seeding the in-memory store; the data is discarded when this command exits")
	}

	ctx := context.Background()

	// Opening the backend applies the schema
	backend, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer backend.Close()

	if *schemaOnly {
		logger.Info("schema ready", "driver", backend.Driver)
		return
	}

	if *clearData {
		if err := backend.Reset(ctx); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		logger.Info("data cleared", "driver", backend.Driver)
		return
	}

	tree, err := loadTree(*file)
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	seeder := seed.NewSeeder(library.New(backend.Store, logger), logger)
	if _, err := seeder.Seed(ctx, tree); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func loadTree(path string) (*seed.Tree, error) {
	if path == "" {
		return seed.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return seed.Parse(f)
}
