package config

import (
	"field-route-service/internal/domain"
	"log"
	"os"
	"strconv"
	"strings"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendSqlite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	Port         string
	StoreBackend string
	DBPath       string
	DatabaseURL  string
	SeedPath     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	RouteStartTime      string
	StopDurationMinutes int
	GraceMinutes        int
	SeedEarliestTime    bool
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt parses an integer environment value, logging and using fallback when invalid.
func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// GetBool parses a boolean environment value, logging and using fallback when invalid.
func GetBool(key string, fallback bool) bool {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: %s=%q is not a boolean, using %t", key, v, fallback)
		return fallback
	}
	return b
}

// GetClock reads a 24-hour "HH:MM" environment value, logging and using fallback when invalid.
func GetClock(key, fallback string) string {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	if _, ok := domain.MinutesOf24Hour(v); !ok {
		log.Printf("config: %s=%q is not HH:MM, using %s", key, v, fallback)
		return fallback
	}
	return v
}

// Load reads the service configuration from the environment.
func Load() Config {
	return Config{
		Port:         Get("PORT", "8080"),
		StoreBackend: strings.ToLower(Get("STORE_BACKEND", BackendSqlite)),
		DBPath:       Get("DB_PATH", "data/app.db"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		SeedPath:     Get("SEED_PATH", "data/seeds/stops.json"),

		RedisAddr:     Get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: Get("REDIS_PASSWORD", ""),
		RedisDB:       GetInt("REDIS_DB", 0),
		RedisPrefix:   Get("REDIS_PREFIX", ""),

		RouteStartTime:      GetClock("ROUTE_START_TIME", "09:00"),
		StopDurationMinutes: GetInt("STOP_DURATION_MINUTES", 60),
		GraceMinutes:        GetInt("PROGRESS_GRACE_MINUTES", 30),
		SeedEarliestTime:    GetBool("SEED_CUSTOMER_TIME_EARLIEST", false),
	}
}
