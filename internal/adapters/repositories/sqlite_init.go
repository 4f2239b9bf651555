package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		stop_id TEXT NOT NULL,
		technician_id TEXT NOT NULL,
		route_date TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		scheduled_time TEXT NOT NULL,
		status TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (technician_id, route_date, stop_id)
	);
	`

	createRouteStateQuery := `
	CREATE TABLE IF NOT EXISTS route_state (
        state_key TEXT PRIMARY KEY,
        state_value TEXT NOT NULL
    );
	`

	statements := []string{
		createStopsQuery,
		createRouteStateQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with stop data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	rows, err := readStopSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stops: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO stops (
		stop_id,
		technician_id,
		route_date,
		customer_name,
		scheduled_time,
		status,
		position
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed stops: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		s := r.stop
		if _, err := stmt.Exec(s.ID, s.TechnicianID, s.Date, s.CustomerName, s.ScheduledTime, string(s.Status), r.position); err != nil {
			return fmt.Errorf("seed stops: insert stop_id=%s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stops: commit tx: %w", err)
	}

	return nil
}
