package store

import (
	"context"
	"database/sql"
	"errors"
	"field-route-service/internal/platform/obs"
	"fmt"
	"strings"
)

// SQLite backed key-value store over the route_state table.
// The schema is created by repositories.InitSchema.
type SqliteKeyValueStore struct {
	DB *sql.DB
}

func NewSqliteKeyValueStore(db *sql.DB) *SqliteKeyValueStore {
	return &SqliteKeyValueStore{DB: db}
}

func (s *SqliteKeyValueStore) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "route.kv.sqlite.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("sqlite kv store: db is nil")
	}

	q := `
	SELECT state_value
	FROM route_state
	WHERE state_key = ?;
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

// Write all entries in one transaction.
func (s *SqliteKeyValueStore) SetMany(ctx context.Context, entries map[string]string) (err error) {
	defer obs.Time(ctx, "route.kv.sqlite.SetMany")(&err)

	if s.DB == nil {
		return errors.New("sqlite kv store: db is nil")
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
	INSERT OR REPLACE INTO route_state (
        state_key,
        state_value
    )
    VALUES (?, ?);
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
