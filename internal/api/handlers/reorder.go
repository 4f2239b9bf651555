package handlers

import (
	"field-route-service/internal/api/dto"
	"field-route-service/internal/domain"
	"field-route-service/internal/services"
	"net/http"
	"strings"
)

// ReorderHandler adapts drag-and-drop gestures to the reorder pipeline of a route.
type ReorderHandler struct {
	Service *services.RouteService
}

// Start opens a reorder session (drag start).
func (h *ReorderHandler) Start(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteKeyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	key, ok := routeKey(w, r, req)
	if !ok {
		return
	}

	p, err := h.Service.BeginReorder(r.Context(), key)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, reorderResponse(p, true))
}

// Drag applies a drag-end move.
func (h *ReorderHandler) Drag(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.DragRequest
	if !decodeBody(w, r, &req) {
		return
	}

	h.do(w, r, req.RouteKeyRequest, func(p *services.ReorderPipeline) (bool, error) {
		return p.OnDragEnd(strings.TrimSpace(req.MovedID), strings.TrimSpace(req.TargetID)), nil
	})
}

// CustomerTime sets the negotiated time for one customer.
func (h *ReorderHandler) CustomerTime(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CustomerTimeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	h.do(w, r, req.RouteKeyRequest, func(p *services.ReorderPipeline) (bool, error) {
		return p.SetCustomerTime(req.CustomerName, strings.TrimSpace(req.Time)), nil
	})
}

// Preview returns the sorted candidate order with predicted times.
func (h *ReorderHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	h.do(w, r, dto.RouteKeyRequest{TechnicianID: q.Get("technician_id"), Date: q.Get("date")},
		func(p *services.ReorderPipeline) (bool, error) { return false, nil })
}

// Confirm commits the pending reorder.
func (h *ReorderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteKeyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	h.do(w, r, req, func(p *services.ReorderPipeline) (bool, error) {
		if _, err := p.Confirm(r.Context()); err != nil {
			return false, err
		}
		return true, nil
	})
}

// Cancel discards the drag or pending reorder.
func (h *ReorderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteKeyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	h.do(w, r, req, func(p *services.ReorderPipeline) (bool, error) {
		return p.Cancel(), nil
	})
}

func (h *ReorderHandler) do(
	w http.ResponseWriter,
	r *http.Request,
	req dto.RouteKeyRequest,
	fn func(p *services.ReorderPipeline) (bool, error),
) {
	key, ok := routeKey(w, r, req)
	if !ok {
		return
	}

	var res dto.ReorderResponse
	err := h.Service.WithReorder(key, func(p *services.ReorderPipeline) error {
		applied, err := fn(p)
		if err != nil {
			return err
		}
		res = reorderResponse(p, applied)
		return nil
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

func reorderResponse(p *services.ReorderPipeline, applied bool) dto.ReorderResponse {
	res := dto.ReorderResponse{
		SessionID: p.ID(),
		State:     p.State().String(),
		Applied:   applied,
	}

	var stops []domain.Stop
	if pending := p.Pending(); pending != nil {
		stops = p.PreviewSortedOrder()
		res.CustomerTimes = pending.CustomerTimeOverrides
	} else {
		stops = p.Stops()
	}
	res.Stops = stopResponses(stops, p.PredictedTimes())

	return res
}
