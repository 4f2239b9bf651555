package repositories

import (
	"context"
	"database/sql"
	"errors"
	"field-route-service/internal/domain"
	"field-route-service/internal/platform/obs"
	"fmt"
)

// Postgres-backed implementation of the StopRepository port.
type SQLStopRepository struct{ DB *sql.DB }

func NewSQLStopRepository(db *sql.DB) *SQLStopRepository {
	return &SQLStopRepository{DB: db}
}

func (s *SQLStopRepository) ListStops(ctx context.Context, key domain.RouteKey) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "stops.sql.ListStops")(&err)

	if s.DB == nil {
		return nil, errors.New("sql stop repository: DB is nil")
	}

	query := `
	SELECT stop_id, customer_name, scheduled_time, status
	FROM stops
	WHERE technician_id = $1 AND route_date = $2::date
	ORDER BY position, stop_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, key.TechnicianID, key.Date)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	return scanStops(rows, key)
}
