package services

import (
	"context"
	"errors"
	"field-route-service/internal/domain"
	"field-route-service/internal/ports"
	"fmt"
	"log"
)

// Settings are the tunable constants of route sequencing.
type Settings struct {
	StartTime           string
	StopDurationMinutes int
	GraceMinutes        int
	Seeding             CustomerTimeSeeding
}

func DefaultSettings() Settings {
	return Settings{
		StartTime:           DefaultRouteStart,
		StopDurationMinutes: DefaultStopDurationMinutes,
		GraceMinutes:        DefaultGraceMinutes,
		Seeding:             SeedFirstOccurrence,
	}
}

// RouteObserver receives route-level events in addition to reorder outcomes.
type RouteObserver interface {
	ReorderObserver
	StoreLoadDegraded()
}

// Progress is the tracking view of a route at a point in time.
type Progress struct {
	Route          *domain.Route
	PredictedTimes []string
	Current        int
	Next           int
}

// RouteService is the single entry point used by both the scheduling and the tracking surface,
// so stop order and times are derived the same way for each.
type RouteService struct {
	stops    ports.StopRepository
	store    ports.RouteStore
	settings Settings
	observer RouteObserver
	reorders *ReorderRegistry
}

func NewRouteService(
	stops ports.StopRepository,
	store ports.RouteStore,
	settings Settings,
	observer RouteObserver,
) *RouteService {
	if observer == nil {
		observer = nopRouteObserver{}
	}
	if settings.StartTime == "" {
		settings.StartTime = DefaultRouteStart
	} else if _, ok := domain.MinutesOf24Hour(settings.StartTime); !ok {
		log.Printf("route service: start time %q is not HH:MM, using %s", settings.StartTime, DefaultRouteStart)
		settings.StartTime = DefaultRouteStart
	}

	return &RouteService{
		stops:    stops,
		store:    store,
		settings: settings,
		observer: observer,
		reorders: NewReorderRegistry(),
	}
}

func (s *RouteService) Settings() Settings { return s.settings }

// LoadRoute lists the route's stops and applies persisted statuses, time overrides and order.
//
// Persisted state that cannot be read degrades to defaults: stops keep their upstream status and
// time and are ordered by time of day. Only a stop repository failure is returned as an error.
func (s *RouteService) LoadRoute(ctx context.Context, key domain.RouteKey) (*domain.Route, error) {
	stops, err := s.stops.ListStops(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load route %s: list stops: %w", key, err)
	}

	snap, err := s.store.Load(ctx, key)
	if err != nil {
		log.Printf("load route %s: store unavailable, using defaults: %v", key, err)
		s.observer.StoreLoadDegraded()
		snap = domain.NewRouteSnapshot()
	}

	route := &domain.Route{
		Key:           key,
		Statuses:      map[string]domain.Status{},
		TimeOverrides: map[string]string{},
	}

	for i := range stops {
		id := stops[i].ID
		if st, ok := snap.Statuses[id]; ok {
			stops[i].Status = st
			route.Statuses[id] = st
		}
		if t, ok := snap.TimeOverrides[id]; ok {
			stops[i].ScheduledTime = t
			route.TimeOverrides[id] = t
		}
	}

	if snap.Order == nil {
		route.Stops = DefaultOrder(stops)
		route.DefaultOrdered = true
	} else {
		route.Stops = ApplyOrder(stops, Reconcile(snap.Order, domain.StopIDs(stops)))
	}

	return route, nil
}

// PredictTimes schedules the route from the configured start time and stop duration.
func (s *RouteService) PredictTimes(route *domain.Route) []string {
	return Schedule(route.Stops, s.settings.StartTime, s.settings.StopDurationMinutes)
}

// Track loads the route and marks the current and next stop for nowMinutes.
func (s *RouteService) Track(ctx context.Context, key domain.RouteKey, nowMinutes int) (*Progress, error) {
	route, err := s.LoadRoute(ctx, key)
	if err != nil {
		return nil, err
	}

	tracker := NewProgressTracker(s.settings.GraceMinutes)
	current := tracker.CurrentStopIndex(route.Stops, nowMinutes)

	return &Progress{
		Route:          route,
		PredictedTimes: s.PredictTimes(route),
		Current:        current,
		Next:           tracker.NextStopIndex(route.Stops, current),
	}, nil
}

// ApplySchedule commits sequential times for the route's current order and persists it.
func (s *RouteService) ApplySchedule(
	ctx context.Context,
	key domain.RouteKey,
	startTime24 string,
	durationMinutes int,
) (*domain.Route, error) {
	if _, ok := domain.MinutesOf24Hour(startTime24); !ok {
		return nil, fmt.Errorf("apply schedule %s: start %q: %w", key, startTime24, ErrInvalidTime)
	}
	if durationMinutes < 0 {
		return nil, fmt.Errorf("apply schedule %s: %w", key, ErrInvalidDuration)
	}
	if s.reorders.Active(key) {
		return nil, fmt.Errorf("apply schedule %s: %w", key, ErrReorderInProgress)
	}

	route, err := s.LoadRoute(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("apply schedule: %w", err)
	}

	times := Schedule(route.Stops, startTime24, durationMinutes)
	for i, stop := range route.Stops {
		route.SetTime(stop.ID, times[i])
	}

	if err := s.store.Save(ctx, key, route.Snapshot()); err != nil {
		return nil, fmt.Errorf("apply schedule %s: save: %w", key, err)
	}

	return route, nil
}

// SetStopStatus marks a stop scheduled or cancelled on the scheduling surface.
func (s *RouteService) SetStopStatus(
	ctx context.Context,
	key domain.RouteKey,
	stopID string,
	status domain.Status,
) (*domain.Route, error) {
	if !status.Editable() {
		return nil, fmt.Errorf("set stop status %s: %q: %w", key, status, ErrInvalidStatus)
	}
	if s.reorders.Active(key) {
		return nil, fmt.Errorf("set stop status %s: %w", key, ErrReorderInProgress)
	}

	route, err := s.LoadRoute(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("set stop status: %w", err)
	}

	if !route.SetStatus(stopID, status) {
		return nil, fmt.Errorf("set stop status %s: stop %q: %w", key, stopID, ErrUnknownStop)
	}

	if err := s.store.Save(ctx, key, route.Snapshot()); err != nil {
		return nil, fmt.Errorf("set stop status %s: save: %w", key, err)
	}

	return route, nil
}

// BeginReorder opens a reorder session for the route and starts a drag on it.
// Stops enter the session with scheduling-surface statuses.
func (s *RouteService) BeginReorder(ctx context.Context, key domain.RouteKey) (*ReorderPipeline, error) {
	p, err := s.reorders.Start(key, func() (*ReorderPipeline, error) {
		route, err := s.LoadRoute(ctx, key)
		if err != nil {
			return nil, err
		}
		for i := range route.Stops {
			route.Stops[i].Status = domain.EditableStatus(route.Stops[i].Status)
		}

		opts := ReorderOptions{
			StartTime:           s.settings.StartTime,
			StopDurationMinutes: s.settings.StopDurationMinutes,
			Seeding:             s.settings.Seeding,
		}
		return NewReorderPipeline(route, s.store, opts, s.observer), nil
	})
	if err != nil {
		return nil, fmt.Errorf("begin reorder %s: %w", key, err)
	}
	return p, nil
}

// WithReorder runs fn against the open reorder session for key.
func (s *RouteService) WithReorder(key domain.RouteKey, fn func(p *ReorderPipeline) error) error {
	err := s.reorders.Do(key, fn)
	if errors.Is(err, ErrNoPendingReorder) {
		return fmt.Errorf("reorder %s: %w", key, err)
	}
	return err
}

type nopRouteObserver struct{ nopObserver }

func (nopRouteObserver) StoreLoadDegraded() {}
