package main

import (
	"context"
	"field-route-service/internal/adapters/repositories"
	"field-route-service/internal/config"
	"field-route-service/internal/platform/db"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
)

// dbtool creates the stops and route_state tables for the configured SQL backend
// and loads the stop seed file into them.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()
	if err := initAndSeed(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, cfg config.Config) error {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return fmt.Errorf("dbtool: DATABASE_URL is required for %s", cfg.StoreBackend)
		}
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		log.Println("Initializing postgres schema...")
		if err := repositories.InitSQLSchema(ctx, conn); err != nil {
			return fmt.Errorf("dbtool: schema initialization failed: %w", err)
		}
		log.Printf("Seeding stops from %s...", cfg.SeedPath)
		if err := repositories.SeedSQLFromJSON(ctx, conn, cfg.SeedPath); err != nil {
			return fmt.Errorf("dbtool: seeding failed: %w", err)
		}

	case config.BackendSqlite:
		conn, err := db.OpenSqlite(cfg.DBPath)
		if err != nil {
			return err
		}
		defer conn.Close()

		log.Printf("Initializing sqlite schema at %s...", cfg.DBPath)
		if err := repositories.InitSchema(conn); err != nil {
			return fmt.Errorf("dbtool: schema initialization failed: %w", err)
		}
		log.Printf("Seeding stops from %s...", cfg.SeedPath)
		if err := repositories.SeedFromJSON(conn, cfg.SeedPath); err != nil {
			return fmt.Errorf("dbtool: seeding failed: %w", err)
		}

	default:
		return fmt.Errorf("dbtool: STORE_BACKEND %q has no SQL schema", cfg.StoreBackend)
	}

	log.Println("Seeding complete.")
	return nil
}
