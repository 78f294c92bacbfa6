// Package calendar is the side-effecting calendar collaborator. Bookings
// remain authoritative in the appointment store; calendar writes are
// best-effort and their failures never escalate past a logged warning.
package calendar

import (
	"context"
	"fmt"
	"time"
)

// Event is the payload sent to the calendar bridge. Start and End are
// ISO-8601 local timestamps interpreted in Timezone.
type Event struct {
	ID          string `json:"id,omitempty"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Timezone    string `json:"timezone"`
}

// Service is consumed by the scheduling orchestrator. Implementations must
// be safe for concurrent use.
type Service interface {
	// CreateEvent inserts an event into the given calendar and returns the
	// external event identifier.
	CreateEvent(ctx context.Context, calendarID string, ev Event) (string, error)
	// UpdateEvent patches the times of an existing event.
	UpdateEvent(ctx context.Context, calendarID, eventID string, ev Event) error
	// DeleteEvent removes an event. Deleting an unknown event is an error
	// the caller is expected to swallow.
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// NewAppointmentEvent builds the one-hour event for a booking: the summary
// names the patient, the description carries the visit reason.
func NewAppointmentEvent(patient, reason, date, timeOfDay, timezone string) (Event, error) {
	start, err := time.Parse("2006-01-02 15:04:05", date+" "+timeOfDay)
	if err != nil {
		return Event{}, fmt.Errorf("parse appointment datetime: %w", err)
	}
	end := start.Add(time.Hour)

	return Event{
		Summary:     "Appointment with " + patient,
		Description: reason,
		Start:       start.Format("2006-01-02T15:04:05"),
		End:         end.Format("2006-01-02T15:04:05"),
		Timezone:    timezone,
	}, nil
}
