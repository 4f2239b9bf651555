package main

import (
	"context"
	"database/sql"
	"field-route-service/internal/adapters/repositories"
	"field-route-service/internal/adapters/store"
	"field-route-service/internal/api"
	"field-route-service/internal/api/handlers"
	"field-route-service/internal/config"
	"field-route-service/internal/platform/db"
	"field-route-service/internal/platform/metrics"
	"field-route-service/internal/ports"
	"field-route-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

// main is the application composition root.
// It wires the configured store backend behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	stack, err := openBackend(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer stack.close()

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	settings := services.Settings{
		StartTime:           cfg.RouteStartTime,
		StopDurationMinutes: cfg.StopDurationMinutes,
		GraceMinutes:        cfg.GraceMinutes,
		Seeding:             services.SeedFirstOccurrence,
	}
	if cfg.SeedEarliestTime {
		settings.Seeding = services.SeedEarliestTime
	}

	svc := services.NewRouteService(stack.stops, stack.routes, settings, collector)
	health := &handlers.HealthHandler{Backend: cfg.StoreBackend, Ping: stack.ping}
	router := api.NewRouter(svc, health, collector, reg)

	log.Printf("Server listening addr=:%s backend=%s", cfg.Port, cfg.StoreBackend)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// backend bundles the adapters selected by STORE_BACKEND.
type backend struct {
	stops  ports.StopRepository
	routes ports.RouteStore
	ping   func(ctx context.Context) error
	close  func() error
}

// openBackend builds the stop repository and route store for cfg.StoreBackend.
func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	switch cfg.StoreBackend {
	case config.BackendSqlite:
		sqlDB, err := db.OpenSqlite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		// Initialize schema and seed demo data on startup for local runs.
		if err := initAndSeed(sqlDB, cfg.SeedPath); err != nil {
			sqlDB.Close()
			return nil, err
		}
		return &backend{
			stops:  repositories.NewSqliteStopRepository(sqlDB),
			routes: store.NewKVRouteStore(store.NewSqliteKeyValueStore(sqlDB)),
			ping:   sqlDB.PingContext,
			close:  sqlDB.Close,
		}, nil

	case config.BackendPostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, fmt.Errorf("open backend: DATABASE_URL is required for %s", cfg.StoreBackend)
		}
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := repositories.InitSQLSchema(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, err
		}
		return &backend{
			stops:  repositories.NewSQLStopRepository(sqlDB),
			routes: store.NewKVRouteStore(store.NewSQLKeyValueStore(sqlDB)),
			ping:   sqlDB.PingContext,
			close:  sqlDB.Close,
		}, nil

	case config.BackendRedis:
		stops, err := repositories.NewMemoryStopRepositoryFromJSON(cfg.SeedPath)
		if err != nil {
			return nil, err
		}
		kv := store.NewRedisKeyValueStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
		if err := kv.Ping(ctx); err != nil {
			kv.Close()
			return nil, fmt.Errorf("open backend: ping redis %s: %w", cfg.RedisAddr, err)
		}
		return &backend{
			stops:  stops,
			routes: store.NewKVRouteStore(kv),
			ping:   kv.Ping,
			close:  kv.Close,
		}, nil

	case config.BackendMemory:
		stops, err := repositories.NewMemoryStopRepositoryFromJSON(cfg.SeedPath)
		if err != nil {
			return nil, err
		}
		return &backend{
			stops:  stops,
			routes: store.NewKVRouteStore(store.NewMemoryKeyValueStore()),
			close:  func() error { return nil },
		}, nil
	}

	return nil, fmt.Errorf("open backend: unknown STORE_BACKEND %q", cfg.StoreBackend)
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

