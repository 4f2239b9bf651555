package services

import "field-route-service/internal/domain"

const (
	DefaultRouteStart          = "09:00"
	DefaultStopDurationMinutes = 60
)

// Schedule predicts a display time for each stop strictly by position.
//
// The stop at index i is assigned start + i*durationMinutes, wrapping at midnight.
// Travel time between stops is not modeled.
func Schedule(stops []domain.Stop, startTime24 string, durationMinutes int) []string {
	times := make([]string, 0, len(stops))
	for i := range stops {
		times = append(times, domain.To12Hour(domain.AddMinutes(startTime24, i*durationMinutes)))
	}
	return times
}
