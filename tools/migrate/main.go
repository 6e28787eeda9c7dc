package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/orgball2608/harrow-downloader/internal/db"
	"github.com/orgball2608/harrow-downloader/pkg/config"
	"github.com/pressly/goose/v3"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|status|reset|version]")
	}

	command := os.Args[1]

	cfg, err := config.New(os.Getenv("HARROW_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	provider, err := db.NewProvider(conn, cfg.Catalog.Driver)
	if err != nil {
		log.Fatalf("Failed to create migration provider: %v", err)
	}

	ctx := context.Background()
	fmt.Printf("Running %s against %s catalog\n", command, cfg.Catalog.Driver)

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		printResults(results)
		fmt.Println("Migrations applied successfully")
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			log.Fatalf("Failed to rollback migration: %v", err)
		}
		printResults([]*goose.MigrationResult{result})
		fmt.Println("Migration rollback successful")
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
		for _, s := range statuses {
			fmt.Printf("%-8s %d %s\n", s.State, s.Source.Version, s.Source.Path)
		}
	case "reset":
		results, err := provider.DownTo(ctx, 0)
		if err != nil {
			log.Fatalf("Failed to reset migrations: %v", err)
		}
		printResults(results)
		fmt.Println("All migrations have been rolled back")
	case "version":
		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			log.Fatalf("Failed to get version: %v", err)
		}
		fmt.Printf("Current version: %d\n", version)
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func printResults(results []*goose.MigrationResult) {
	for _, r := range results {
		if r == nil {
			continue
		}
		fmt.Printf("%s %d (%s)\n", r.Direction, r.Source.Version, r.Duration)
	}
}
