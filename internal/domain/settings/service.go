package settings

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

func (s *Service) GetByClinicID(ctx context.Context, clinicID uuid.UUID) (*ClinicSettings, error) {
	cs, err := s.repo.GetByClinicID(ctx, clinicID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("clinic %s not found", clinicID)
		}
		return nil, err
	}
	return cs, nil
}

// GetDoctorDetails returns the roster entry for a named doctor, or the whole
// roster when name is empty.
func (s *Service) GetDoctorDetails(ctx context.Context, clinicID uuid.UUID, name string) ([]Doctor, error) {
	cs, err := s.GetByClinicID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return cs.Doctors, nil
	}
	d, ok := cs.DoctorByName(name)
	if !ok {
		return nil, fmt.Errorf("doctor %q not found", name)
	}
	return []Doctor{d}, nil
}

// ClinicIDByAgentPhone resolves which clinic an inbound call belongs to from
// the number the caller dialed.
func (s *Service) ClinicIDByAgentPhone(ctx context.Context, phone string) (uuid.UUID, error) {
	if phone == "" {
		return uuid.Nil, fmt.Errorf("agent_phone is required")
	}
	cs, err := s.repo.GetByAgentPhone(ctx, phone)
	if err != nil {
		if db.IsNoRows(err) {
			return uuid.Nil, fmt.Errorf("no clinic registered for %s", phone)
		}
		return uuid.Nil, err
	}
	return cs.ClinicID, nil
}
