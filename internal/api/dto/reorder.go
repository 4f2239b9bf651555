package dto

type DragRequest struct {
	RouteKeyRequest
	MovedID  string `json:"moved_id"`
	TargetID string `json:"target_id"`
}

type CustomerTimeRequest struct {
	RouteKeyRequest
	CustomerName string `json:"customer_name"`
	Time         string `json:"time"`
}

type ReorderResponse struct {
	SessionID     string            `json:"session_id"`
	State         string            `json:"state"`
	Applied       bool              `json:"applied"`
	Stops         []StopResponse    `json:"stops"`
	CustomerTimes map[string]string `json:"customer_times,omitempty"`
}
