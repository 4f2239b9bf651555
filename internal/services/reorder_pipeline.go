package services

import (
	"context"
	"field-route-service/internal/domain"
	"field-route-service/internal/ports"
	"fmt"
	"log"
	"slices"

	"github.com/google/uuid"
)

type ReorderState int

const (
	ReorderIdle ReorderState = iota
	ReorderDragging
	ReorderPendingConfirmation
)

func (s ReorderState) String() string {
	switch s {
	case ReorderIdle:
		return "idle"
	case ReorderDragging:
		return "dragging"
	case ReorderPendingConfirmation:
		return "pending_confirmation"
	}
	return fmt.Sprintf("ReorderState(%d)", int(s))
}

// CustomerTimeSeeding selects which stop supplies a customer's initial time when a drag completes.
type CustomerTimeSeeding int

const (
	// The customer's first stop in the candidate order wins.
	SeedFirstOccurrence CustomerTimeSeeding = iota
	// The customer's earliest scheduled stop wins.
	SeedEarliestTime
)

// ReorderObserver receives pipeline outcomes, e.g. for metrics.
type ReorderObserver interface {
	ReorderCommitted()
	ReorderCancelled()
	DragRejected()
}

type ReorderOptions struct {
	StartTime           string
	StopDurationMinutes int
	Seeding             CustomerTimeSeeding
}

// The in-flight result of a drag: the moved order and a 24-hour time per customer.
type PendingReorder struct {
	CandidateOrder        []domain.Stop
	CustomerTimeOverrides map[string]string
}

// ReorderPipeline turns one drag-and-drop move into a committed or discarded reordering.
//
// States: Idle -> Dragging -> PendingConfirmation -> Idle (on Confirm or Cancel).
// The committed route is never touched before Confirm, so Cancel always restores it exactly.
// A pipeline is not safe for concurrent use; ReorderRegistry serializes access.
type ReorderPipeline struct {
	id       uuid.UUID
	route    domain.Route
	store    ports.RouteStore
	opts     ReorderOptions
	observer ReorderObserver

	state    ReorderState
	original []domain.Stop
	pending  *PendingReorder
}

func NewReorderPipeline(
	route *domain.Route,
	store ports.RouteStore,
	opts ReorderOptions,
	observer ReorderObserver,
) *ReorderPipeline {
	if opts.StartTime == "" {
		opts.StartTime = DefaultRouteStart
	}
	if observer == nil {
		observer = nopObserver{}
	}

	return &ReorderPipeline{
		id:       uuid.New(),
		route:    cloneRoute(route),
		store:    store,
		opts:     opts,
		observer: observer,
	}
}

func (p *ReorderPipeline) ID() string           { return p.id.String() }
func (p *ReorderPipeline) State() ReorderState  { return p.state }
func (p *ReorderPipeline) Key() domain.RouteKey { return p.route.Key }

// Stops returns the committed order.
func (p *ReorderPipeline) Stops() []domain.Stop {
	return domain.CloneStops(p.route.Stops)
}

// Pending returns a copy of the in-flight reorder, or nil.
func (p *ReorderPipeline) Pending() *PendingReorder {
	if p.pending == nil {
		return nil
	}
	return &PendingReorder{
		CandidateOrder:        domain.CloneStops(p.pending.CandidateOrder),
		CustomerTimeOverrides: cloneStrings(p.pending.CustomerTimeOverrides),
	}
}

// OnDragStart snapshots the committed order for discard.
func (p *ReorderPipeline) OnDragStart() bool {
	if p.state != ReorderIdle {
		return false
	}
	p.original = domain.CloneStops(p.route.Stops)
	p.state = ReorderDragging
	return true
}

// OnDragEnd moves movedID to targetID's position and opens confirmation.
//
// A drop on itself or on nothing ends the drag without a change. Ids outside the route are
// ignored and the drag stays open.
func (p *ReorderPipeline) OnDragEnd(movedID, targetID string) bool {
	if p.state != ReorderDragging {
		return false
	}

	if movedID == "" || targetID == "" || movedID == targetID {
		p.original = nil
		p.state = ReorderIdle
		return false
	}

	from := indexOfStop(p.route.Stops, movedID)
	to := indexOfStop(p.route.Stops, targetID)
	if from == -1 || to == -1 {
		log.Printf("reorder session=%s route=%s drag rejected moved=%q target=%q", p.ID(), p.route.Key, movedID, targetID)
		p.observer.DragRejected()
		return false
	}

	candidate := moveStop(p.route.Stops, from, to)
	p.pending = &PendingReorder{
		CandidateOrder:        candidate,
		CustomerTimeOverrides: seedCustomerTimes(candidate, p.opts.Seeding),
	}
	p.state = ReorderPendingConfirmation
	return true
}

// SetCustomerTime overrides the time for every stop of a customer in the pending reorder.
func (p *ReorderPipeline) SetCustomerTime(customerName, time24 string) bool {
	if p.state != ReorderPendingConfirmation {
		return false
	}
	if _, ok := p.pending.CustomerTimeOverrides[customerName]; !ok {
		return false
	}

	total, ok := domain.MinutesOf24Hour(time24)
	if !ok {
		return false
	}

	p.pending.CustomerTimeOverrides[customerName] = domain.FormatMinutes(total)
	return true
}

// PreviewSortedOrder returns the candidate order sorted by effective customer time,
// ties kept in candidate order. Without a pending reorder it returns the committed order.
func (p *ReorderPipeline) PreviewSortedOrder() []domain.Stop {
	if p.pending == nil {
		return p.Stops()
	}

	out := domain.CloneStops(p.pending.CandidateOrder)
	slices.SortStableFunc(out, func(a, b domain.Stop) int {
		return p.effectiveMinutes(a) - p.effectiveMinutes(b)
	})
	return out
}

// PredictedTimes schedules the previewed order from the configured start time.
func (p *ReorderPipeline) PredictedTimes() []string {
	return Schedule(p.PreviewSortedOrder(), p.opts.StartTime, p.opts.StopDurationMinutes)
}

// Confirm commits the previewed order, rewriting each stop's time from its customer override,
// and persists the route. On a persistence error the reorder stays pending.
func (p *ReorderPipeline) Confirm(ctx context.Context) ([]domain.Stop, error) {
	if p.state != ReorderPendingConfirmation {
		return nil, ErrNoPendingReorder
	}

	next := cloneRoute(&p.route)
	next.Stops = p.PreviewSortedOrder()
	for _, s := range next.Stops {
		if t, ok := p.pending.CustomerTimeOverrides[s.CustomerName]; ok {
			next.SetTime(s.ID, domain.To12Hour(t))
		}
	}

	if p.store != nil {
		if err := p.store.Save(ctx, next.Key, next.Snapshot()); err != nil {
			return nil, fmt.Errorf("confirm reorder: save route %s: %w", next.Key, err)
		}
	}

	p.route = next
	p.pending = nil
	p.original = nil
	p.state = ReorderIdle
	p.observer.ReorderCommitted()

	log.Printf("reorder session=%s route=%s committed stops=%d", p.ID(), p.route.Key, len(p.route.Stops))
	return p.Stops(), nil
}

// Cancel discards a drag or pending reorder and restores the order captured at drag start.
func (p *ReorderPipeline) Cancel() bool {
	if p.state != ReorderPendingConfirmation && p.state != ReorderDragging {
		return false
	}

	if p.original != nil {
		p.route.Stops = p.original
	}
	p.pending = nil
	p.original = nil
	p.state = ReorderIdle
	p.observer.ReorderCancelled()

	log.Printf("reorder session=%s route=%s cancelled", p.ID(), p.route.Key)
	return true
}

func (p *ReorderPipeline) effectiveMinutes(s domain.Stop) int {
	if t, ok := p.pending.CustomerTimeOverrides[s.CustomerName]; ok {
		if total, ok := domain.MinutesOf24Hour(t); ok {
			return total
		}
	}
	return s.Minutes()
}

// moveStop removes the stop at from and reinserts it at index to, list-splice style.
func moveStop(stops []domain.Stop, from, to int) []domain.Stop {
	out := domain.CloneStops(stops)
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, moved)
}

func seedCustomerTimes(candidate []domain.Stop, seeding CustomerTimeSeeding) map[string]string {
	times := make(map[string]string)
	for _, s := range candidate {
		t := domain.To24Hour(s.ScheduledTime)
		prev, ok := times[s.CustomerName]
		if !ok {
			times[s.CustomerName] = t
			continue
		}
		if seeding == SeedEarliestTime {
			pm, _ := domain.MinutesOf24Hour(prev)
			tm, _ := domain.MinutesOf24Hour(t)
			if tm < pm {
				times[s.CustomerName] = t
			}
		}
	}
	return times
}

func indexOfStop(stops []domain.Stop, id string) int {
	return slices.IndexFunc(stops, func(s domain.Stop) bool { return s.ID == id })
}

func cloneRoute(r *domain.Route) domain.Route {
	out := domain.Route{
		Key:            r.Key,
		Stops:          domain.CloneStops(r.Stops),
		Statuses:       make(map[string]domain.Status, len(r.Statuses)),
		TimeOverrides:  cloneStrings(r.TimeOverrides),
		DefaultOrdered: r.DefaultOrdered,
	}
	for id, st := range r.Statuses {
		out.Statuses[id] = st
	}
	return out
}

func cloneStrings(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type nopObserver struct{}

func (nopObserver) ReorderCommitted() {}
func (nopObserver) ReorderCancelled() {}
func (nopObserver) DragRejected()     {}
