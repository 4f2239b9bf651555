package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitSQLSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init sql schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init sql schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS stops (
			stop_id TEXT NOT NULL,
			technician_id TEXT NOT NULL,
			route_date DATE NOT NULL,
			customer_name TEXT NOT NULL,
			scheduled_time TEXT NOT NULL,
			status TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (technician_id, route_date, stop_id)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS route_state (
			state_key TEXT PRIMARY KEY,
			state_value TEXT NOT NULL
		);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init sql schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init sql schema: commit tx: %w", err)
	}

	return nil
}

// Upsert stop data from a JSON file into Postgres.
func SeedSQLFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	rows, err := readStopSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed stops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO stops (stop_id, technician_id, route_date, customer_name, scheduled_time, status, position)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (technician_id, route_date, stop_id) DO UPDATE
	SET customer_name = EXCLUDED.customer_name,
		scheduled_time = EXCLUDED.scheduled_time,
		status = EXCLUDED.status,
		position = EXCLUDED.position;
	`)
	if err != nil {
		return fmt.Errorf("seed stops: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		s := r.stop
		if _, err := stmt.ExecContext(ctx, s.ID, s.TechnicianID, s.Date, s.CustomerName, s.ScheduledTime, string(s.Status), r.position); err != nil {
			return fmt.Errorf("seed stops: insert stop_id=%s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stops: commit tx: %w", err)
	}

	return nil
}
