package services

import "field-route-service/internal/domain"

// DefaultGraceMinutes is how far in the past a stop may be and still count as current.
const DefaultGraceMinutes = 30

// ProgressTracker decides which stop of an ordered route is current and which is next.
// Both methods are pure functions of their arguments.
type ProgressTracker struct {
	GraceMinutes int
}

func NewProgressTracker(graceMinutes int) ProgressTracker {
	if graceMinutes < 0 {
		graceMinutes = DefaultGraceMinutes
	}
	return ProgressTracker{GraceMinutes: graceMinutes}
}

// CurrentStopIndex returns the index of the current stop, or -1.
//
// Completed stops are ignored. Among stops no more than GraceMinutes in the past the one
// closest to now wins; if every remaining stop is older than that, the closest past stop wins.
// With no remaining stops the first in-progress stop is used.
func (p ProgressTracker) CurrentStopIndex(stops []domain.Stop, nowMinutes int) int {
	best, bestDiff := -1, 0
	fallback, fallbackDiff := -1, 0

	for i, s := range stops {
		if s.Status == domain.StatusCompleted {
			continue
		}

		t := s.Minutes()
		diff := absInt(t - nowMinutes)

		if fallback == -1 || diff < fallbackDiff {
			fallback, fallbackDiff = i, diff
		}

		if t < nowMinutes-p.GraceMinutes {
			continue
		}
		if best == -1 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}

	if best != -1 {
		return best
	}
	if fallback != -1 {
		return fallback
	}

	for i, s := range stops {
		if s.Status == domain.StatusInProgress {
			return i
		}
	}
	return -1
}

// NextStopIndex returns the first scheduled stop after current, falling back to the first
// scheduled stop anywhere in the route, or -1.
func (p ProgressTracker) NextStopIndex(stops []domain.Stop, current int) int {
	if current >= 0 && current < len(stops)-1 {
		for i := current + 1; i < len(stops); i++ {
			if stops[i].Status == domain.StatusScheduled {
				return i
			}
		}
	}

	for i, s := range stops {
		if s.Status == domain.StatusScheduled {
			return i
		}
	}
	return -1
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
