package domain

import "strings"

// Status is the lifecycle state of a single stop.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusCancelled  Status = "cancelled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ParseStatus accepts the persisted/wire spelling of a status, case-insensitively.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusScheduled:
		return StatusScheduled, true
	case StatusCancelled:
		return StatusCancelled, true
	case StatusInProgress:
		return StatusInProgress, true
	case StatusCompleted:
		return StatusCompleted, true
	}
	return "", false
}

// Editable reports whether the status belongs to the scheduling surface (scheduled or cancelled).
func (s Status) Editable() bool {
	return s == StatusScheduled || s == StatusCancelled
}

// EditableStatus narrows a full-lifecycle status to the scheduling surface.
// Anything that is not cancelled is still a visit to be scheduled there.
func EditableStatus(s Status) Status {
	if s == StatusCancelled {
		return StatusCancelled
	}
	return StatusScheduled
}

// Represents one technician visit within a route.
// ScheduledTime is a 12-hour display string ("HH:MM AM/PM").
type Stop struct {
	ID            string
	CustomerName  string
	ScheduledTime string
	Status        Status
	TechnicianID  string
	Date          string
}

// Minutes returns the stop's scheduled time as minutes since midnight.
func (s Stop) Minutes() int {
	return MinutesOf12Hour(s.ScheduledTime)
}

// StopIDs returns the ids of stops in their current order.
func StopIDs(stops []Stop) []string {
	ids := make([]string, 0, len(stops))
	for _, s := range stops {
		ids = append(ids, s.ID)
	}
	return ids
}

// CloneStops returns a shallow copy so callers can reorder without aliasing.
func CloneStops(stops []Stop) []Stop {
	out := make([]Stop, len(stops))
	copy(out, stops)
	return out
}
