package dto

type RouteKeyRequest struct {
	TechnicianID string `json:"technician_id"`
	Date         string `json:"date"`
}

type ScheduleRequest struct {
	RouteKeyRequest
	StartTime       string `json:"start_time"`
	DurationMinutes *int   `json:"duration_minutes"`
}

type StopStatusRequest struct {
	RouteKeyRequest
	StopID string `json:"stop_id"`
	Status string `json:"status"`
}

type StopResponse struct {
	StopID        string `json:"stop_id"`
	CustomerName  string `json:"customer_name"`
	ScheduledTime string `json:"scheduled_time"`
	PredictedTime string `json:"predicted_time"`
	Status        string `json:"status"`
}

type RouteResponse struct {
	TechnicianID   string         `json:"technician_id"`
	Date           string         `json:"date"`
	DefaultOrdered bool           `json:"default_ordered"`
	Stops          []StopResponse `json:"stops"`
	CurrentIndex   int            `json:"current_index"`
	NextIndex      int            `json:"next_index"`
}
