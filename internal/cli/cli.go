// Package cli implements routectl, an offline view of route sequencing over a YAML stop file.
//
// Command structure:
//
//	routectl
//	├── schedule   predicted times by position   (--file, --start, --duration, --keep-order)
//	└── progress   current and next stop at a time (--file, --now, --grace)
//
// Stop file format:
//
//	technician_id: tech-1
//	date: 2026-10-17
//	stops:
//	  - id: S1
//	    customer: Acme
//	    time: "09:00 AM"
//	    status: scheduled
package cli

import (
	"fmt"
	"io"
	"os"

	"field-route-service/internal/domain"
	"field-route-service/internal/services"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// RouteFile is the YAML layout read by every command.
type RouteFile struct {
	TechnicianID string `yaml:"technician_id"`
	Date         string `yaml:"date"`
	Stops        []struct {
		ID       string `yaml:"id"`
		Customer string `yaml:"customer"`
		Time     string `yaml:"time"`
		Status   string `yaml:"status"`
	} `yaml:"stops"`
}

func BuildCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "routectl",
		Short:         "Inspect technician route order, times and progress",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(buildScheduleCmd(), buildProgressCmd())
	return rootCmd
}

func buildScheduleCmd() *cobra.Command {
	var (
		file      string
		start     string
		duration  int
		keepOrder bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print stops with sequential predicted times",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := domain.MinutesOf24Hour(start); !ok {
				return fmt.Errorf("schedule: --start %q: %w", start, services.ErrInvalidTime)
			}
			if duration < 0 {
				return fmt.Errorf("schedule: %w", services.ErrInvalidDuration)
			}

			stops, err := loadStops(file)
			if err != nil {
				return err
			}
			if !keepOrder {
				stops = services.DefaultOrder(stops)
			}

			printStops(cmd.OutOrStdout(), stops, services.Schedule(stops, start, duration), -1, -1)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "route YAML file")
	cmd.Flags().StringVar(&start, "start", services.DefaultRouteStart, "route start time (HH:MM, 24-hour)")
	cmd.Flags().IntVar(&duration, "duration", services.DefaultStopDurationMinutes, "minutes per stop")
	cmd.Flags().BoolVar(&keepOrder, "keep-order", false, "keep file order instead of sorting by time")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func buildProgressCmd() *cobra.Command {
	var (
		file  string
		now   string
		grace int
	)

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Print the current and next stop at a given time",
		RunE: func(cmd *cobra.Command, args []string) error {
			nowMinutes, ok := domain.MinutesOf24Hour(now)
			if !ok {
				return fmt.Errorf("progress: --now %q: %w", now, services.ErrInvalidTime)
			}

			stops, err := loadStops(file)
			if err != nil {
				return err
			}
			stops = services.DefaultOrder(stops)

			tracker := services.NewProgressTracker(grace)
			current := tracker.CurrentStopIndex(stops, nowMinutes)
			next := tracker.NextStopIndex(stops, current)

			out := cmd.OutOrStdout()
			printStops(out, stops, nil, current, next)
			fmt.Fprintf(out, "current=%s next=%s\n", stopLabel(stops, current), stopLabel(stops, next))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "route YAML file")
	cmd.Flags().StringVar(&now, "now", "", "wall-clock time (HH:MM, 24-hour)")
	cmd.Flags().IntVar(&grace, "grace", services.DefaultGraceMinutes, "minutes a past stop still counts as current")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("now")

	return cmd
}

// loadStops reads a route file into stops for its technician and date.
func loadStops(path string) ([]domain.Stop, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read route file %q: %w", path, err)
	}

	var rf RouteFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse route file %q: %w", path, err)
	}

	stops := make([]domain.Stop, 0, len(rf.Stops))
	for i, s := range rf.Stops {
		if s.ID == "" {
			return nil, fmt.Errorf("route file %q: stop #%d has no id", path, i+1)
		}

		status := domain.StatusScheduled
		if s.Status != "" {
			st, ok := domain.ParseStatus(s.Status)
			if !ok {
				return nil, fmt.Errorf("route file %q: stop %s: unknown status %q", path, s.ID, s.Status)
			}
			status = st
		}

		stops = append(stops, domain.Stop{
			ID:            s.ID,
			CustomerName:  s.Customer,
			ScheduledTime: s.Time,
			Status:        status,
			TechnicianID:  rf.TechnicianID,
			Date:          rf.Date,
		})
	}

	return stops, nil
}

func printStops(w io.Writer, stops []domain.Stop, predicted []string, current, next int) {
	for i, s := range stops {
		marker := " "
		switch i {
		case current:
			marker = ">"
		case next:
			marker = "+"
		}

		line := fmt.Sprintf("%s %2d  %-10s %-20s %-9s %-12s", marker, i+1, s.ID, s.CustomerName, s.ScheduledTime, s.Status)
		if i < len(predicted) {
			line += "  -> " + predicted[i]
		}
		fmt.Fprintln(w, line)
	}
}

func stopLabel(stops []domain.Stop, i int) string {
	if i < 0 || i >= len(stops) {
		return "none"
	}
	return stops[i].ID
}
