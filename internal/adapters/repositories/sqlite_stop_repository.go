package repositories

import (
	"context"
	"database/sql"
	"errors"
	"field-route-service/internal/domain"
	"fmt"
)

// SQLite-backed implementation of the StopRepository port.
type SqliteStopRepository struct{ DB *sql.DB }

func NewSqliteStopRepository(db *sql.DB) *SqliteStopRepository {
	return &SqliteStopRepository{DB: db}
}

// Return the route's stops in assignment order.
func (s *SqliteStopRepository) ListStops(ctx context.Context, key domain.RouteKey) ([]domain.Stop, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite stop repository: DB is nil")
	}

	query := `
	SELECT
		stop_id,
		customer_name,
		scheduled_time,
		status
	FROM stops
	WHERE technician_id = ? AND route_date = ?
	ORDER BY position, stop_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, key.TechnicianID, key.Date)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	return scanStops(rows, key)
}

func scanStops(rows *sql.Rows, key domain.RouteKey) ([]domain.Stop, error) {
	stops := make([]domain.Stop, 0, 16)
	for rows.Next() {
		var id, customer, scheduled, status string
		if err := rows.Scan(&id, &customer, &scheduled, &status); err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}

		st, ok := domain.ParseStatus(status)
		if !ok {
			st = domain.StatusScheduled
		}

		stops = append(stops, domain.Stop{
			ID:            id,
			CustomerName:  customer,
			ScheduledTime: scheduled,
			Status:        st,
			TechnicianID:  key.TechnicianID,
			Date:          key.Date,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}
