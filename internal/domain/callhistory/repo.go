package callhistory

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Upsert(ctx context.Context, rec *Record) error
	GetByCallID(ctx context.Context, callID string) (*Record, error)
	UpdateAppointmentStatus(ctx context.Context, clinicID uuid.UUID, callID, status string) error
	ListByClinic(ctx context.Context, clinicID uuid.UUID, limit, offset int) ([]*Record, int, error)
}
