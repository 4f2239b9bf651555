package ports

import (
	"context"
	"field-route-service/internal/domain"
)

// Port: persisted route order, status and time overrides scoped by RouteKey.
//
// Load never fails on malformed stored values: an unreadable entry is returned as absent
// (nil order or empty map) and the remaining entries still load. Errors are reserved for
// backend failures.
type RouteStore interface {
	Load(ctx context.Context, key domain.RouteKey) (domain.RouteSnapshot, error)
	Save(ctx context.Context, key domain.RouteKey, snap domain.RouteSnapshot) error
}
