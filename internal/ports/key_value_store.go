package ports

import "context"

// Port: a flat string key-value store backing RouteStore.
type KeyValueStore interface {
	// Return the value for key; found is false when the key has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Write all entries together.
	SetMany(ctx context.Context, entries map[string]string) error
}
