package repositories

import (
	"context"
	"field-route-service/internal/domain"
)

// In-memory StopRepository keyed by route, for tests and the memory backend.
type MemoryStopRepository struct {
	stops map[domain.RouteKey][]domain.Stop
}

func NewMemoryStopRepository(stops []domain.Stop) *MemoryStopRepository {
	m := make(map[domain.RouteKey][]domain.Stop)
	for _, s := range stops {
		k := domain.RouteKey{TechnicianID: s.TechnicianID, Date: s.Date}
		m[k] = append(m[k], s)
	}
	return &MemoryStopRepository{stops: m}
}

// NewMemoryStopRepositoryFromJSON loads stops from a seed file.
func NewMemoryStopRepositoryFromJSON(jsonPath string) (*MemoryStopRepository, error) {
	rows, err := readStopSeeds(jsonPath)
	if err != nil {
		return nil, err
	}

	stops := make([]domain.Stop, 0, len(rows))
	for _, r := range rows {
		stops = append(stops, r.stop)
	}
	return NewMemoryStopRepository(stops), nil
}

func (r *MemoryStopRepository) ListStops(ctx context.Context, key domain.RouteKey) ([]domain.Stop, error) {
	return domain.CloneStops(r.stops[key]), nil
}
