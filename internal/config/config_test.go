package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_BACKEND", "DB_PATH", "ROUTE_START_TIME", "STOP_DURATION_MINUTES", "PROGRESS_GRACE_MINUTES", "SEED_CUSTOMER_TIME_EARLIEST"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StoreBackend != BackendSqlite {
		t.Fatalf("StoreBackend = %q, want %q", cfg.StoreBackend, BackendSqlite)
	}
	if cfg.RouteStartTime != "09:00" || cfg.StopDurationMinutes != 60 || cfg.GraceMinutes != 30 {
		t.Fatalf("sequencing defaults = %q/%d/%d", cfg.RouteStartTime, cfg.StopDurationMinutes, cfg.GraceMinutes)
	}
	if cfg.SeedEarliestTime {
		t.Fatalf("SeedEarliestTime = true, want false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", " Redis ")
	t.Setenv("STOP_DURATION_MINUTES", "45")
	t.Setenv("PROGRESS_GRACE_MINUTES", "fifteen")
	t.Setenv("SEED_CUSTOMER_TIME_EARLIEST", "true")

	cfg := Load()
	if cfg.StoreBackend != BackendRedis {
		t.Fatalf("StoreBackend = %q, want %q", cfg.StoreBackend, BackendRedis)
	}
	if cfg.StopDurationMinutes != 45 {
		t.Fatalf("StopDurationMinutes = %d, want 45", cfg.StopDurationMinutes)
	}
	if cfg.GraceMinutes != 30 {
		t.Fatalf("GraceMinutes = %d, want fallback 30", cfg.GraceMinutes)
	}
	if !cfg.SeedEarliestTime {
		t.Fatalf("SeedEarliestTime = false, want true")
	}
}

func TestLoadRejectsMalformedStartTime(t *testing.T) {
	for _, v := range []string{"9am", "25:00", "+9:00", "09:00 AM"} {
		t.Setenv("ROUTE_START_TIME", v)

		if got := Load().RouteStartTime; got != "09:00" {
			t.Fatalf("ROUTE_START_TIME=%q: RouteStartTime = %q, want fallback 09:00", v, got)
		}
	}

	t.Setenv("ROUTE_START_TIME", "07:30")
	if got := Load().RouteStartTime; got != "07:30" {
		t.Fatalf("RouteStartTime = %q, want 07:30", got)
	}
}
