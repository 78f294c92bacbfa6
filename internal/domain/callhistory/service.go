package callhistory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicvoice/clinicvoice/internal/platform/db"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add persists a finished call. Called once at call end by the voice layer.
func (s *Service) Add(ctx context.Context, rec *Record) error {
	if rec.CallID == "" {
		return fmt.Errorf("call_id is required")
	}
	if rec.ClinicID == uuid.Nil {
		return fmt.Errorf("clinic_id is required")
	}
	if rec.AppointmentStatus == "" {
		rec.AppointmentStatus = StatusNotBooked
	}
	if !ValidStatus(rec.AppointmentStatus) {
		return fmt.Errorf("invalid appointment status: %s", rec.AppointmentStatus)
	}
	if rec.CallDuration == 0 && rec.CallStart != nil && rec.CallEnd != nil {
		rec.CallDuration = int(rec.CallEnd.Sub(*rec.CallStart).Seconds())
	}
	return s.repo.Upsert(ctx, rec)
}

// UpdateAppointmentStatus patches the call's scheduling outcome mid-call.
func (s *Service) UpdateAppointmentStatus(ctx context.Context, clinicID uuid.UUID, callID, status string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("invalid appointment status: %s", status)
	}
	return s.repo.UpdateAppointmentStatus(ctx, clinicID, callID, status)
}

func (s *Service) GetByCallID(ctx context.Context, callID string) (*Record, error) {
	rec, err := s.repo.GetByCallID(ctx, callID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("call %s not found", callID)
		}
		return nil, err
	}
	return rec, nil
}

func (s *Service) ListByClinic(ctx context.Context, clinicID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	return s.repo.ListByClinic(ctx, clinicID, limit, offset)
}
