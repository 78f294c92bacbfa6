package callhistory

import (
	"time"

	"github.com/google/uuid"
)

// Appointment outcome of a call, as shown in the clinic's call log. A call
// starts as Not Booked and is upgraded once by the scheduling flow.
const (
	StatusNotBooked   = "Not Booked"
	StatusBooked      = "Booked"
	StatusRescheduled = "Rescheduled"
	StatusCancelled   = "Cancelled"
)

// ValidStatus reports whether s is one of the recognized call outcomes.
func ValidStatus(s string) bool {
	switch s {
	case StatusNotBooked, StatusBooked, StatusRescheduled, StatusCancelled:
		return true
	}
	return false
}

// Record is one finished phone call: who called, when, how long, how the
// call ended, and the free-text summary produced by the voice layer.
type Record struct {
	ID                uuid.UUID  `json:"id"`
	CallID            string     `json:"call_id"`
	ClinicID          uuid.UUID  `json:"clinic_id"`
	CallerNumber      string     `json:"caller_number,omitempty"`
	CalledNumber      string     `json:"called_number,omitempty"`
	CallStart         *time.Time `json:"call_start,omitempty"`
	CallEnd           *time.Time `json:"call_end,omitempty"`
	CallDuration      int        `json:"call_duration_seconds,omitempty"`
	CallStatus        string     `json:"call_status,omitempty"`
	AppointmentStatus string     `json:"appointment_status"`
	Summary           string     `json:"summary,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
