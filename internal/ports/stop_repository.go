package ports

import (
	"context"
	"field-route-service/internal/domain"
)

// Port: a boundary for retrieving the stops assigned to a technician on a day.
type StopRepository interface {
	// Return stops for the route in their upstream (assignment) order.
	ListStops(ctx context.Context, key domain.RouteKey) ([]domain.Stop, error)
}
