package handlers

import (
	"field-route-service/internal/api/dto"
	"field-route-service/internal/domain"
	"field-route-service/internal/services"
	"net/http"
	"strings"
	"time"
)

// RouteHandler serves the tracking view and the scheduling-surface edits of a route.
type RouteHandler struct {
	Service *services.RouteService
	// Now defaults to time.Now; the wall clock is only read here, never inside the engine.
	Now func() time.Time
}

// Get returns the ordered route with predicted times and the current/next stop.
// The optional now query parameter ("HH:MM") overrides the wall clock.
// Without a date the route for today's calendar day is returned.
func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	req := dto.RouteKeyRequest{
		TechnicianID: q.Get("technician_id"),
		Date:         strings.TrimSpace(q.Get("date")),
	}
	if req.Date == "" {
		req.Date = domain.RouteKeyForDay(req.TechnicianID, h.clock()).Date
	}
	key, ok := routeKey(w, r, req)
	if !ok {
		return
	}

	nowMinutes, ok := h.nowMinutes(strings.TrimSpace(q.Get("now")))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "now must be HH:MM")
		return
	}

	progress, err := h.Service.Track(r.Context(), key, nowMinutes)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RouteResponse{
		TechnicianID:   key.TechnicianID,
		Date:           key.Date,
		DefaultOrdered: progress.Route.DefaultOrdered,
		Stops:          stopResponses(progress.Route.Stops, progress.PredictedTimes),
		CurrentIndex:   progress.Current,
		NextIndex:      progress.Next,
	})
}

// Schedule commits sequential times for the route's current order.
func (h *RouteHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	key, ok := routeKey(w, r, req.RouteKeyRequest)
	if !ok {
		return
	}

	settings := h.Service.Settings()
	start := strings.TrimSpace(req.StartTime)
	if start == "" {
		start = settings.StartTime
	}
	duration := settings.StopDurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}

	route, err := h.Service.ApplySchedule(r.Context(), key, start, duration)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.writeRoute(w, r, route)
}

// Status marks a stop scheduled or cancelled.
func (h *RouteHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.StopStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	key, ok := routeKey(w, r, req.RouteKeyRequest)
	if !ok {
		return
	}

	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "status must be scheduled or cancelled")
		return
	}

	route, err := h.Service.SetStopStatus(r.Context(), key, strings.TrimSpace(req.StopID), status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.writeRoute(w, r, route)
}

func (h *RouteHandler) writeRoute(w http.ResponseWriter, r *http.Request, route *domain.Route) {
	nowMinutes, _ := h.nowMinutes("")
	tracker := services.NewProgressTracker(h.Service.Settings().GraceMinutes)
	current := tracker.CurrentStopIndex(route.Stops, nowMinutes)

	writeJSON(w, r, http.StatusOK, dto.RouteResponse{
		TechnicianID:   route.Key.TechnicianID,
		Date:           route.Key.Date,
		DefaultOrdered: route.DefaultOrdered,
		Stops:          stopResponses(route.Stops, h.Service.PredictTimes(route)),
		CurrentIndex:   current,
		NextIndex:      tracker.NextStopIndex(route.Stops, current),
	})
}

func (h *RouteHandler) nowMinutes(param string) (int, bool) {
	if param != "" {
		return domain.MinutesOf24Hour(param)
	}

	t := h.clock()
	return t.Hour()*60 + t.Minute(), true
}

func (h *RouteHandler) clock() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
