package services

import (
	"context"
	"errors"
	"field-route-service/internal/domain"
)

var errStoreDown = errors.New("store down")

// memRouteStore is an in-memory RouteStore that can be told to fail.
type memRouteStore struct {
	snaps   map[domain.RouteKey]domain.RouteSnapshot
	saves   int
	loadErr error
	saveErr error
}

func newMemRouteStore() *memRouteStore {
	return &memRouteStore{snaps: make(map[domain.RouteKey]domain.RouteSnapshot)}
}

func (s *memRouteStore) Load(ctx context.Context, key domain.RouteKey) (domain.RouteSnapshot, error) {
	if s.loadErr != nil {
		return domain.RouteSnapshot{}, s.loadErr
	}
	snap, ok := s.snaps[key]
	if !ok {
		return domain.NewRouteSnapshot(), nil
	}
	return snap, nil
}

func (s *memRouteStore) Save(ctx context.Context, key domain.RouteKey, snap domain.RouteSnapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.snaps[key] = snap
	return nil
}

type stopList []domain.Stop

func (l stopList) ListStops(ctx context.Context, key domain.RouteKey) ([]domain.Stop, error) {
	return domain.CloneStops(l), nil
}

type countingObserver struct {
	committed int
	cancelled int
	rejected  int
	degraded  int
}

func (o *countingObserver) ReorderCommitted()  { o.committed++ }
func (o *countingObserver) ReorderCancelled()  { o.cancelled++ }
func (o *countingObserver) DragRejected()      { o.rejected++ }
func (o *countingObserver) StoreLoadDegraded() { o.degraded++ }

var testKey = domain.RouteKey{TechnicianID: "tech-1", Date: "2026-03-04"}

func stop(id, customer, time12 string) domain.Stop {
	return domain.Stop{
		ID:            id,
		CustomerName:  customer,
		ScheduledTime: time12,
		Status:        domain.StatusScheduled,
		TechnicianID:  testKey.TechnicianID,
		Date:          testKey.Date,
	}
}

func ids(stops []domain.Stop) []string {
	return domain.StopIDs(stops)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
