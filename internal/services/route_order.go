package services

import (
	"field-route-service/internal/domain"
	"slices"
)

// Reconcile repairs a stored order against the stops currently known for the route.
//
// Known ids missing from order are appended in discovery order, then ids that are no longer
// known are dropped. Duplicate ids keep their first position. The result contains every known
// id exactly once and is stable under repeated application.
func Reconcile(order []string, knownIDs []string) []string {
	known := make(map[string]struct{}, len(knownIDs))
	for _, id := range knownIDs {
		known[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(order)+len(knownIDs))
	out := make([]string, 0, len(knownIDs))

	for _, id := range order {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if _, ok := known[id]; ok {
			out = append(out, id)
		}
	}

	for _, id := range knownIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

// DefaultOrder sorts stops by scheduled time of day, ascending.
// Times are compared as minutes since midnight; equal times keep their input order.
func DefaultOrder(stops []domain.Stop) []domain.Stop {
	out := domain.CloneStops(stops)
	slices.SortStableFunc(out, func(a, b domain.Stop) int {
		return a.Minutes() - b.Minutes()
	})
	return out
}

// ApplyOrder arranges stops by an id order. Ids without a stop are skipped and stops absent
// from order are appended in their input order, so no stop is ever lost.
func ApplyOrder(stops []domain.Stop, order []string) []domain.Stop {
	byID := make(map[string]domain.Stop, len(stops))
	for _, s := range stops {
		byID[s.ID] = s
	}

	out := make([]domain.Stop, 0, len(stops))
	placed := make(map[string]struct{}, len(stops))
	for _, id := range order {
		s, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := placed[id]; dup {
			continue
		}
		placed[id] = struct{}{}
		out = append(out, s)
	}

	for _, s := range stops {
		if _, ok := placed[s.ID]; !ok {
			placed[s.ID] = struct{}{}
			out = append(out, s)
		}
	}

	return out
}
