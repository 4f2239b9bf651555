package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Identifies one technician's route on one calendar day.
// Date is kept as "YYYY-MM-DD" so keys compare by value, not by timestamp.
type RouteKey struct {
	TechnicianID string
	Date         string
}

// NewRouteKey validates and normalizes a technician id and date string.
func NewRouteKey(technicianID, date string) (RouteKey, error) {
	technicianID = strings.TrimSpace(technicianID)
	if technicianID == "" {
		return RouteKey{}, errors.New("route key: technician id must not be empty")
	}

	day, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return RouteKey{}, fmt.Errorf("route key: invalid date %q: %w", date, err)
	}

	return RouteKey{TechnicianID: technicianID, Date: day.Format(dateLayout)}, nil
}

// RouteKeyForDay builds a key from a timestamp, keeping only its calendar day.
func RouteKeyForDay(technicianID string, day time.Time) RouteKey {
	return RouteKey{TechnicianID: technicianID, Date: day.Format(dateLayout)}
}

func (k RouteKey) String() string {
	return k.TechnicianID + "_" + k.Date
}

// Persisted per-route state: stop order, status overrides and display time overrides.
// A nil Order means no order has been stored yet.
type RouteSnapshot struct {
	Order         []string
	Statuses      map[string]Status
	TimeOverrides map[string]string
}

// NewRouteSnapshot returns an empty snapshot with non-nil maps.
func NewRouteSnapshot() RouteSnapshot {
	return RouteSnapshot{
		Statuses:      map[string]Status{},
		TimeOverrides: map[string]string{},
	}
}

// The ordered stops for one technician and day, after persisted state has been applied.
// Statuses and TimeOverrides hold only the values this engine has set, keyed by stop id.
type Route struct {
	Key           RouteKey
	Stops         []Stop
	Statuses      map[string]Status
	TimeOverrides map[string]string
	// Persisted order was missing or unreadable and the default time-ascending order was used.
	DefaultOrdered bool
}

// SetStatus changes a stop's status and records it for persistence.
func (r *Route) SetStatus(stopID string, status Status) bool {
	for i := range r.Stops {
		if r.Stops[i].ID == stopID {
			r.Stops[i].Status = status
			if r.Statuses == nil {
				r.Statuses = map[string]Status{}
			}
			r.Statuses[stopID] = status
			return true
		}
	}
	return false
}

// SetTime changes a stop's display time and records it for persistence.
func (r *Route) SetTime(stopID, time12 string) bool {
	for i := range r.Stops {
		if r.Stops[i].ID == stopID {
			r.Stops[i].ScheduledTime = time12
			if r.TimeOverrides == nil {
				r.TimeOverrides = map[string]string{}
			}
			r.TimeOverrides[stopID] = time12
			return true
		}
	}
	return false
}

// Snapshot captures the route's order and override maps for persistence.
func (r *Route) Snapshot() RouteSnapshot {
	snap := NewRouteSnapshot()
	snap.Order = StopIDs(r.Stops)
	for id, st := range r.Statuses {
		snap.Statuses[id] = st
	}
	for id, t := range r.TimeOverrides {
		snap.TimeOverrides[id] = t
	}
	return snap
}
