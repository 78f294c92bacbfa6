package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type mockRepo struct {
	byID    map[uuid.UUID]*ClinicSettings
	byPhone map[string]*ClinicSettings
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		byID:    make(map[uuid.UUID]*ClinicSettings),
		byPhone: make(map[string]*ClinicSettings),
	}
}

func (m *mockRepo) add(cs *ClinicSettings) {
	m.byID[cs.ClinicID] = cs
	m.byPhone[cs.AgentPhone] = cs
}

func (m *mockRepo) GetByClinicID(_ context.Context, clinicID uuid.UUID) (*ClinicSettings, error) {
	cs, ok := m.byID[clinicID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cs, nil
}

func (m *mockRepo) GetByAgentPhone(_ context.Context, phone string) (*ClinicSettings, error) {
	cs, ok := m.byPhone[phone]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cs, nil
}

func testClinic() *ClinicSettings {
	return &ClinicSettings{
		ClinicID:     uuid.New(),
		DisplayName:  "Sunrise Clinic",
		AgentPhone:   "+911234567890",
		WorkingHours: "Monday-Friday: 09:00 - 17:00",
		LunchHours:   "Monday-Friday: 13:00 - 14:00",
		Doctors: []Doctor{
			{Name: "Dr. Mehta", Specialty: "General Medicine", WorkingHours: "Monday-Friday: 10:00 - 16:00"},
			{Name: "Rao", Specialty: "Pediatrics"},
		},
	}
}

func TestGetByClinicID(t *testing.T) {
	repo := newMockRepo()
	clinic := testClinic()
	repo.add(clinic)
	svc := NewService(repo)

	got, err := svc.GetByClinicID(context.Background(), clinic.ClinicID)
	if err != nil {
		t.Fatalf("GetByClinicID: %v", err)
	}
	if got.DisplayName != "Sunrise Clinic" {
		t.Errorf("unexpected clinic: %+v", got)
	}

	if _, err := svc.GetByClinicID(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown clinic")
	}
}

func TestGetDoctorDetails(t *testing.T) {
	repo := newMockRepo()
	clinic := testClinic()
	repo.add(clinic)
	svc := NewService(repo)
	ctx := context.Background()

	all, err := svc.GetDoctorDetails(ctx, clinic.ClinicID, "")
	if err != nil {
		t.Fatalf("GetDoctorDetails: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected full roster, got %d doctors", len(all))
	}

	// Title and case are ignored when matching.
	got, err := svc.GetDoctorDetails(ctx, clinic.ClinicID, "dr. mehta")
	if err != nil {
		t.Fatalf("GetDoctorDetails: %v", err)
	}
	if len(got) != 1 || got[0].Specialty != "General Medicine" {
		t.Errorf("unexpected match: %+v", got)
	}

	got, err = svc.GetDoctorDetails(ctx, clinic.ClinicID, "Dr. Rao")
	if err != nil {
		t.Fatalf("GetDoctorDetails: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Rao" {
		t.Errorf("unexpected match: %+v", got)
	}

	if _, err := svc.GetDoctorDetails(ctx, clinic.ClinicID, "Dr. Nobody"); err == nil {
		t.Error("expected error for unknown doctor")
	}
}

func TestClinicIDByAgentPhone(t *testing.T) {
	repo := newMockRepo()
	clinic := testClinic()
	repo.add(clinic)
	svc := NewService(repo)
	ctx := context.Background()

	got, err := svc.ClinicIDByAgentPhone(ctx, "+911234567890")
	if err != nil {
		t.Fatalf("ClinicIDByAgentPhone: %v", err)
	}
	if got != clinic.ClinicID {
		t.Errorf("expected %s, got %s", clinic.ClinicID, got)
	}

	if _, err := svc.ClinicIDByAgentPhone(ctx, "+910000000000"); err == nil {
		t.Error("expected error for unregistered number")
	}
	if _, err := svc.ClinicIDByAgentPhone(ctx, ""); err == nil {
		t.Error("expected error for empty number")
	}
}
