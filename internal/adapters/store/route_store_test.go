package store

import (
	"context"
	"field-route-service/internal/domain"
	"field-route-service/internal/services"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = domain.RouteKey{TechnicianID: "tech-1", Date: "2026-03-04"}

func TestKVRouteStoreKeys(t *testing.T) {
	assert.Equal(t, "route_order_tech-1_2026-03-04", OrderKey(testKey))
	assert.Equal(t, "route_statuses_tech-1_2026-03-04", StatusesKey(testKey))
	assert.Equal(t, "job_time_overrides_tech-1_2026-03-04", TimeOverridesKey(testKey))
}

func TestKVRouteStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKeyValueStore()
	rs := NewKVRouteStore(kv)

	snap := domain.NewRouteSnapshot()
	snap.Order = []string{"S2", "S1"}
	snap.Statuses["S1"] = domain.StatusCancelled
	snap.TimeOverrides["S2"] = "08:00 AM"
	require.NoError(t, rs.Save(ctx, testKey, snap))

	raw, found, err := kv.Get(ctx, OrderKey(testKey))
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `["S2","S1"]`, raw)

	raw, _, _ = kv.Get(ctx, StatusesKey(testKey))
	assert.JSONEq(t, `{"S1":"cancelled"}`, raw)

	loaded, err := rs.Load(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestKVRouteStoreLoadEmpty(t *testing.T) {
	loaded, err := NewKVRouteStore(NewMemoryKeyValueStore()).Load(context.Background(), testKey)
	require.NoError(t, err)

	assert.Nil(t, loaded.Order)
	assert.Empty(t, loaded.Statuses)
	assert.Empty(t, loaded.TimeOverrides)
}

func TestKVRouteStoreMalformedEntriesAreIndependent(t *testing.T) {
	kv := NewMemoryKeyValueStore()
	kv.Set(OrderKey(testKey), `["S1",`)
	kv.Set(StatusesKey(testKey), `{"S1":"cancelled","S2":"paused"}`)
	kv.Set(TimeOverridesKey(testKey), `{"S1":"07:30 AM"}`)

	loaded, err := NewKVRouteStore(kv).Load(context.Background(), testKey)
	require.NoError(t, err)

	assert.Nil(t, loaded.Order)
	assert.Equal(t, map[string]domain.Status{"S1": domain.StatusCancelled}, loaded.Statuses)
	assert.Equal(t, map[string]string{"S1": "07:30 AM"}, loaded.TimeOverrides)
}

func TestKVRouteStoreDiscardsPartiallyDecodedMaps(t *testing.T) {
	kv := NewMemoryKeyValueStore()
	kv.Set(OrderKey(testKey), `null`)
	kv.Set(StatusesKey(testKey), `{"S1":"cancelled","S2":7}`)
	kv.Set(TimeOverridesKey(testKey), `["07:30 AM"]`)

	loaded, err := NewKVRouteStore(kv).Load(context.Background(), testKey)
	require.NoError(t, err)

	assert.Nil(t, loaded.Order)
	assert.Empty(t, loaded.Statuses)
	assert.Empty(t, loaded.TimeOverrides)
}

type fixedStops []domain.Stop

func (f fixedStops) ListStops(ctx context.Context, key domain.RouteKey) ([]domain.Stop, error) {
	return domain.CloneStops(f), nil
}

func TestMalformedOrderFallsBackToDefaultSort(t *testing.T) {
	kv := NewMemoryKeyValueStore()
	kv.Set(OrderKey(testKey), `{not json`)

	stops := fixedStops{
		{ID: "late", CustomerName: "A", ScheduledTime: "03:00 PM", Status: domain.StatusScheduled},
		{ID: "early", CustomerName: "B", ScheduledTime: "08:00 AM", Status: domain.StatusScheduled},
	}
	svc := services.NewRouteService(stops, NewKVRouteStore(kv), services.DefaultSettings(), nil)

	route, err := svc.LoadRoute(context.Background(), testKey)
	require.NoError(t, err)

	assert.True(t, route.DefaultOrdered)
	assert.Equal(t, []string{"early", "late"}, domain.StopIDs(route.Stops))
}
