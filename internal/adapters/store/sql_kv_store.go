package store

import (
	"context"
	"database/sql"
	"errors"
	"field-route-service/internal/platform/obs"
	"fmt"
	"strings"
)

// SQLKeyValueStore is a Postgres-backed key-value store over the route_state table.
type SQLKeyValueStore struct {
	DB *sql.DB
}

func NewSQLKeyValueStore(db *sql.DB) *SQLKeyValueStore {
	return &SQLKeyValueStore{DB: db}
}

func (s *SQLKeyValueStore) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "route.kv.sql.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("sql kv store: db is nil")
	}

	q := `
	SELECT state_value
    FROM route_state
    WHERE state_key = $1;
	`

	var value string
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get route state %q: %w", key, err)
	}

	return value, true, nil
}

// Upsert all entries in one transaction.
func (s *SQLKeyValueStore) SetMany(ctx context.Context, entries map[string]string) (err error) {
	defer obs.Time(ctx, "route.kv.sql.SetMany")(&err)

	if s.DB == nil {
		return errors.New("sql kv store: db is nil")
	}

	if len(entries) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set route state: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO route_state (state_key, state_value)
    VALUES ($1, $2)
	ON CONFLICT (state_key) DO UPDATE
	SET state_value = EXCLUDED.state_value;
	`)
	if err != nil {
		return fmt.Errorf("set route state: db prepare: %w", err)
	}
	defer stmt.Close()

	for k, v := range entries {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("set route state: empty key")
		}

		if _, err := stmt.ExecContext(ctx, k, v); err != nil {
			return fmt.Errorf("set route state key=%q: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set route state commit: %w", err)
	}

	return nil
}
