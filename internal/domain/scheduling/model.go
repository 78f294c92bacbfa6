package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Storage statuses. A reschedule keeps the appointment scheduled; only the
// call log distinguishes booked from rescheduled.
const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

// Appointment is one booked visit. Date and time are kept as strings in the
// wire formats the voice layer speaks (YYYY-MM-DD and HH:MM:SS); the
// database columns are proper DATE and TIME and are cast on read.
type Appointment struct {
	ID             uuid.UUID `json:"id"`
	AppointmentID  string    `json:"appointment_id"`
	ClinicID       uuid.UUID `json:"clinic_id"`
	CallID         string    `json:"call_id"`
	PatientName    string    `json:"patient_name"`
	Reason         string    `json:"reason,omitempty"`
	Date           string    `json:"appointment_date"`
	Time           string    `json:"appointment_time"`
	AssignedDoctor string    `json:"assigned_doctor"`
	Status         string    `json:"current_status"`
	EventID        string    `json:"event_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BookRequest carries the caller's booking intent as extracted by the voice
// layer.
type BookRequest struct {
	PatientName string `json:"patient_name"`
	Reason      string `json:"reason"`
	Date        string `json:"appointment_date"`
	Time        string `json:"appointment_time"`
	Doctor      string `json:"doctor_name"`
}

// OutcomeKind tags how an operation concluded, so downstream consumers can
// branch without parsing the spoken message.
type OutcomeKind string

const (
	// OutcomeSuccess means the requested change was made.
	OutcomeSuccess OutcomeKind = "success"
	// OutcomeAlternatives means the requested slot is unavailable; Slots
	// holds up to four openings on the same day (possibly none).
	OutcomeAlternatives OutcomeKind = "alternatives"
	// OutcomeClosed means the doctor is not working on the requested date.
	OutcomeClosed OutcomeKind = "closed"
	// OutcomeFailure means the operation could not be carried out at all,
	// e.g. the appointment to change was not found.
	OutcomeFailure OutcomeKind = "failure"
)

// Outcome is the structured result of a scheduling operation. Message is a
// complete sentence ready to be spoken; its vocabulary is pinned by tests
// because downstream call trackers match on it. Warnings carry non-fatal
// side-effect problems (calendar sync, call log) that must never be spoken.
type Outcome struct {
	Kind          OutcomeKind `json:"outcome"`
	Message       string      `json:"result"`
	AppointmentID string      `json:"appointment_id,omitempty"`
	Slots         []string    `json:"slots,omitempty"`
	Warnings      []string    `json:"warnings,omitempty"`
}

// Filter narrows an appointment lookup. PatientName is required by the
// service; Doctor and Date are optional.
type Filter struct {
	PatientName string
	Doctor      string
	Date        string
}
