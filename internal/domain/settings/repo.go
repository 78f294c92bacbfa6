package settings

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByClinicID(ctx context.Context, clinicID uuid.UUID) (*ClinicSettings, error)
	GetByAgentPhone(ctx context.Context, phone string) (*ClinicSettings, error)
}
