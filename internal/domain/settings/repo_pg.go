package settings

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicvoice/clinicvoice/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const settingsCols = `clinic_id, display_name, agent_phone, working_hours, lunch_hours,
	doctors, calendar_auth, created_at, updated_at`

func (r *repoPG) scanSettings(row pgx.Row) (*ClinicSettings, error) {
	var s ClinicSettings
	err := row.Scan(&s.ClinicID, &s.DisplayName, &s.AgentPhone, &s.WorkingHours, &s.LunchHours,
		&s.Doctors, &s.CalendarAuth, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *repoPG) GetByClinicID(ctx context.Context, clinicID uuid.UUID) (*ClinicSettings, error) {
	return r.scanSettings(r.conn(ctx).QueryRow(ctx,
		`SELECT `+settingsCols+` FROM clinic_settings WHERE clinic_id = $1`, clinicID))
}

func (r *repoPG) GetByAgentPhone(ctx context.Context, phone string) (*ClinicSettings, error) {
	return r.scanSettings(r.conn(ctx).QueryRow(ctx,
		`SELECT `+settingsCols+` FROM clinic_settings WHERE agent_phone = $1`, phone))
}
