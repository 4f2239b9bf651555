package repositories

import (
	"encoding/json"
	"field-route-service/internal/domain"
	"fmt"
	"os"
	"strings"
)

type StopSeed struct {
	StopID        string `json:"stop_id"`
	TechnicianID  string `json:"technician_id"`
	Date          string `json:"date"`
	CustomerName  string `json:"customer_name"`
	ScheduledTime string `json:"scheduled_time"`
	Status        string `json:"status"`
}

// stopRow is a validated seed with its position in the source file.
type stopRow struct {
	key      domain.RouteKey
	stop     domain.Stop
	position int
}

// Read and validate stop seeds from a JSON file.
func readStopSeeds(jsonPath string) ([]stopRow, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed stops: read %q: %w", jsonPath, err)
	}

	var data []StopSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed stops: parse json: %w", err)
	}

	rows := make([]stopRow, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.StopID)
		if id == "" {
			return nil, fmt.Errorf("seed stops: item at index %d: stop_id cannot be empty", i+1)
		}

		key, err := domain.NewRouteKey(item.TechnicianID, item.Date)
		if err != nil {
			return nil, fmt.Errorf("seed stops: stop_id=%s: %w", id, err)
		}

		status := domain.StatusScheduled
		if strings.TrimSpace(item.Status) != "" {
			st, ok := domain.ParseStatus(item.Status)
			if !ok {
				return nil, fmt.Errorf("seed stops: stop_id=%s: unknown status %q", id, item.Status)
			}
			status = st
		}

		rows = append(rows, stopRow{
			key: key,
			stop: domain.Stop{
				ID:            id,
				CustomerName:  strings.TrimSpace(item.CustomerName),
				ScheduledTime: strings.TrimSpace(item.ScheduledTime),
				Status:        status,
				TechnicianID:  key.TechnicianID,
				Date:          key.Date,
			},
			position: i,
		})
	}

	return rows, nil
}
