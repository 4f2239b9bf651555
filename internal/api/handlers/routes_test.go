package handlers

import (
	"encoding/json"
	"field-route-service/internal/adapters/repositories"
	"field-route-service/internal/adapters/store"
	"field-route-service/internal/api/dto"
	"field-route-service/internal/domain"
	"field-route-service/internal/services"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newRouteHandler(now time.Time) *RouteHandler {
	stops := repositories.NewMemoryStopRepository([]domain.Stop{
		{ID: "S1", CustomerName: "Acme", ScheduledTime: "09:00 AM", Status: domain.StatusScheduled, TechnicianID: "tech-1", Date: "2026-03-04"},
		{ID: "S2", CustomerName: "Beta", ScheduledTime: "10:00 AM", Status: domain.StatusScheduled, TechnicianID: "tech-1", Date: "2026-03-04"},
		{ID: "S9", CustomerName: "Gamma", ScheduledTime: "09:00 AM", Status: domain.StatusScheduled, TechnicianID: "tech-1", Date: "2026-03-05"},
	})
	svc := services.NewRouteService(stops, store.NewKVRouteStore(store.NewMemoryKeyValueStore()), services.DefaultSettings(), nil)

	return &RouteHandler{Service: svc, Now: func() time.Time { return now }}
}

func TestGetRouteDefaultsToToday(t *testing.T) {
	h := newRouteHandler(time.Date(2026, 3, 4, 9, 5, 0, 0, time.UTC))

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/routes?technician_id=tech-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got dto.RouteResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Date != "2026-03-04" {
		t.Fatalf("date = %q, want 2026-03-04", got.Date)
	}
	if len(got.Stops) != 2 || got.Stops[0].StopID != "S1" {
		t.Fatalf("stops = %+v, want S1 then S2", got.Stops)
	}
	if got.CurrentIndex != 0 {
		t.Fatalf("current = %d, want 0", got.CurrentIndex)
	}
}

func TestGetRouteExplicitDateWins(t *testing.T) {
	h := newRouteHandler(time.Date(2026, 3, 4, 9, 5, 0, 0, time.UTC))

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/routes?technician_id=tech-1&date=2026-03-05", nil))

	var got dto.RouteResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Date != "2026-03-05" || len(got.Stops) != 1 || got.Stops[0].StopID != "S9" {
		t.Fatalf("route = %+v, want only S9 on 2026-03-05", got)
	}
}

func TestGetRouteRequiresTechnician(t *testing.T) {
	h := newRouteHandler(time.Date(2026, 3, 4, 9, 5, 0, 0, time.UTC))

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/routes", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
