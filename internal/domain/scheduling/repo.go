package scheduling

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, a *Appointment) error
	GetByAppointmentID(ctx context.Context, clinicID uuid.UUID, appointmentID string) (*Appointment, error)
	UpdateSchedule(ctx context.Context, clinicID uuid.UUID, appointmentID, newDate, newTime string) error
	UpdateStatus(ctx context.Context, clinicID uuid.UUID, appointmentID, status string) error
	SetEventID(ctx context.Context, clinicID uuid.UUID, appointmentID, eventID string) error
	BookedTimes(ctx context.Context, clinicID uuid.UUID, doctor, date string) ([]string, error)
	FindDuplicate(ctx context.Context, clinicID uuid.UUID, callID, patient, doctor, date, timeOfDay string) (bool, error)
	ListIDsByPrefix(ctx context.Context, prefix string) ([]string, error)
	Find(ctx context.Context, clinicID uuid.UUID, f Filter, limit, offset int) ([]*Appointment, int, error)
	ListUpcoming(ctx context.Context, clinicID uuid.UUID, patient, fromDate string) ([]*Appointment, error)
}
