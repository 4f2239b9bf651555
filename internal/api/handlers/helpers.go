package handlers

import (
	"encoding/json"
	"errors"
	"field-route-service/internal/api/dto"
	"field-route-service/internal/domain"
	"field-route-service/internal/services"
	"io"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// allowMethod rejects requests whose method differs from method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// decodeBody decodes exactly one JSON object with no unknown fields into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func routeKey(w http.ResponseWriter, r *http.Request, req dto.RouteKeyRequest) (domain.RouteKey, bool) {
	key, err := domain.NewRouteKey(req.TechnicianID, req.Date)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "technician_id and date (YYYY-MM-DD) are required")
		return domain.RouteKey{}, false
	}
	return key, true
}

// writeServiceError maps service sentinel errors to client errors and logs everything else.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNoPendingReorder), errors.Is(err, services.ErrReorderInProgress):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUnknownStop):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTime),
		errors.Is(err, services.ErrInvalidDuration):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func stopResponses(stops []domain.Stop, predicted []string) []dto.StopResponse {
	out := make([]dto.StopResponse, 0, len(stops))
	for i, s := range stops {
		res := dto.StopResponse{
			StopID:        s.ID,
			CustomerName:  s.CustomerName,
			ScheduledTime: s.ScheduledTime,
			Status:        string(s.Status),
		}
		if i < len(predicted) {
			res.PredictedTime = predicted[i]
		}
		out = append(out, res)
	}
	return out
}
