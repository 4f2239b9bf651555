package store

import (
	"context"
	"encoding/json"
	"errors"
	"field-route-service/internal/domain"
	"field-route-service/internal/platform/obs"
	"field-route-service/internal/ports"
	"fmt"
	"log"
)

// Key prefixes for the three independently stored route values.
const (
	orderPrefix         = "route_order_"
	statusesPrefix      = "route_statuses_"
	timeOverridesPrefix = "job_time_overrides_"
)

func OrderKey(k domain.RouteKey) string         { return orderPrefix + k.String() }
func StatusesKey(k domain.RouteKey) string      { return statusesPrefix + k.String() }
func TimeOverridesKey(k domain.RouteKey) string { return timeOverridesPrefix + k.String() }

// KVRouteStore implements RouteStore as three JSON values in a key-value store.
type KVRouteStore struct {
	KV ports.KeyValueStore
}

func NewKVRouteStore(kv ports.KeyValueStore) *KVRouteStore {
	return &KVRouteStore{KV: kv}
}

// Load reads order, statuses and time overrides independently.
// A value that fails to decode is logged and treated as absent.
func (s *KVRouteStore) Load(ctx context.Context, key domain.RouteKey) (_ domain.RouteSnapshot, err error) {
	defer obs.Time(ctx, "route.store.Load")(&err)

	if s.KV == nil {
		return domain.RouteSnapshot{}, errors.New("route store: key-value store is nil")
	}

	snap := domain.NewRouteSnapshot()

	raw, found, err := s.KV.Get(ctx, OrderKey(key))
	if err != nil {
		return domain.RouteSnapshot{}, fmt.Errorf("load route %s: get order: %w", key, err)
	}
	if found {
		var order []string
		if err := json.Unmarshal([]byte(raw), &order); err != nil || order == nil {
			log.Printf("route store: discarding unreadable order key=%s err=%v", OrderKey(key), err)
		} else {
			snap.Order = order
		}
	}

	raw, found, err = s.KV.Get(ctx, StatusesKey(key))
	if err != nil {
		return domain.RouteSnapshot{}, fmt.Errorf("load route %s: get statuses: %w", key, err)
	}
	if found {
		var statuses map[string]string
		if err := json.Unmarshal([]byte(raw), &statuses); err != nil {
			log.Printf("route store: discarding unreadable statuses key=%s err=%v", StatusesKey(key), err)
			statuses = nil
		}
		for id, v := range statuses {
			if st, ok := domain.ParseStatus(v); ok {
				snap.Statuses[id] = st
			}
		}
	}

	raw, found, err = s.KV.Get(ctx, TimeOverridesKey(key))
	if err != nil {
		return domain.RouteSnapshot{}, fmt.Errorf("load route %s: get time overrides: %w", key, err)
	}
	if found {
		var overrides map[string]string
		if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
			log.Printf("route store: discarding unreadable time overrides key=%s err=%v", TimeOverridesKey(key), err)
			overrides = nil
		}
		for id, t := range overrides {
			snap.TimeOverrides[id] = t
		}
	}

	return snap, nil
}

// Save writes all three values for the route.
func (s *KVRouteStore) Save(ctx context.Context, key domain.RouteKey, snap domain.RouteSnapshot) (err error) {
	defer obs.Time(ctx, "route.store.Save")(&err)

	if s.KV == nil {
		return errors.New("route store: key-value store is nil")
	}

	order := snap.Order
	if order == nil {
		order = []string{}
	}
	orderJSON, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("save route %s: encode order: %w", key, err)
	}

	statuses := make(map[string]string, len(snap.Statuses))
	for id, st := range snap.Statuses {
		statuses[id] = string(st)
	}
	statusesJSON, err := json.Marshal(statuses)
	if err != nil {
		return fmt.Errorf("save route %s: encode statuses: %w", key, err)
	}

	overrides := snap.TimeOverrides
	if overrides == nil {
		overrides = map[string]string{}
	}
	overridesJSON, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("save route %s: encode time overrides: %w", key, err)
	}

	entries := map[string]string{
		OrderKey(key):         string(orderJSON),
		StatusesKey(key):      string(statusesJSON),
		TimeOverridesKey(key): string(overridesJSON),
	}
	if err := s.KV.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("save route %s: %w", key, err)
	}

	return nil
}
