package api

import (
	"field-route-service/internal/api/handlers"
	"field-route-service/internal/platform/metrics"
	"field-route-service/internal/services"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	svc *services.RouteService,
	health *handlers.HealthHandler,
	collector *metrics.Collector,
	gatherer prometheus.Gatherer,
) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Service: svc}
	reorderHandler := &handlers.ReorderHandler{Service: svc}

	if health == nil {
		health = &handlers.HealthHandler{}
	}

	mux.HandleFunc("/health", health.Health)
	mux.HandleFunc("/routes", routeHandler.Get)
	mux.HandleFunc("/routes/schedule", routeHandler.Schedule)
	mux.HandleFunc("/routes/status", routeHandler.Status)
	mux.HandleFunc("/routes/reorder/start", reorderHandler.Start)
	mux.HandleFunc("/routes/reorder/drag", reorderHandler.Drag)
	mux.HandleFunc("/routes/reorder/customer-time", reorderHandler.CustomerTime)
	mux.HandleFunc("/routes/reorder/preview", reorderHandler.Preview)
	mux.HandleFunc("/routes/reorder/confirm", reorderHandler.Confirm)
	mux.HandleFunc("/routes/reorder/cancel", reorderHandler.Cancel)

	if gatherer != nil {
		mux.Handle("/metrics", metrics.Handler(gatherer))
	}

	return loggingMiddleware(collector, mux)
}
