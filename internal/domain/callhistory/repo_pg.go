package callhistory

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

const recordCols = `id, call_id, clinic_id, caller_number, called_number,
	call_start, call_end, call_duration_seconds, call_status,
	appointment_status, summary, created_at, updated_at`

func (r *repoPG) scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.CallID, &rec.ClinicID, &rec.CallerNumber, &rec.CalledNumber,
		&rec.CallStart, &rec.CallEnd, &rec.CallDuration, &rec.CallStatus,
		&rec.AppointmentStatus, &rec.Summary, &rec.CreatedAt, &rec.UpdatedAt)
	return &rec, err
}

// Upsert writes the call-end record. The scheduling flow may already have
// created a stub row to hold the appointment status mid-call; in that case
// the stub's status wins over a default "Not Booked" sent by the voice layer.
func (r *repoPG) Upsert(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO call_history (id, call_id, clinic_id, caller_number, called_number,
			call_start, call_end, call_duration_seconds, call_status,
			appointment_status, summary)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (call_id) DO UPDATE SET
			caller_number = EXCLUDED.caller_number,
			called_number = EXCLUDED.called_number,
			call_start = EXCLUDED.call_start,
			call_end = EXCLUDED.call_end,
			call_duration_seconds = EXCLUDED.call_duration_seconds,
			call_status = EXCLUDED.call_status,
			summary = EXCLUDED.summary,
			appointment_status = CASE
				WHEN EXCLUDED.appointment_status <> 'Not Booked' THEN EXCLUDED.appointment_status
				ELSE call_history.appointment_status
			END,
			updated_at = NOW()`,
		rec.ID, rec.CallID, rec.ClinicID, rec.CallerNumber, rec.CalledNumber,
		rec.CallStart, rec.CallEnd, rec.CallDuration, rec.CallStatus,
		rec.AppointmentStatus, rec.Summary)
	return err
}

func (r *repoPG) GetByCallID(ctx context.Context, callID string) (*Record, error) {
	return r.scanRecord(r.conn(ctx).QueryRow(ctx,
		`SELECT `+recordCols+` FROM call_history WHERE call_id = $1`, callID))
}

// UpdateAppointmentStatus records the scheduling outcome for a call. The
// full record arrives only at call end, so a stub row is created if needed.
func (r *repoPG) UpdateAppointmentStatus(ctx context.Context, clinicID uuid.UUID, callID, status string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO call_history (id, call_id, clinic_id, appointment_status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (call_id) DO UPDATE SET
			appointment_status = EXCLUDED.appointment_status,
			updated_at = NOW()`,
		uuid.New(), callID, clinicID, status)
	return err
}

func (r *repoPG) ListByClinic(ctx context.Context, clinicID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM call_history WHERE clinic_id = $1`, clinicID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+recordCols+` FROM call_history WHERE clinic_id = $1 ORDER BY call_start DESC NULLS LAST LIMIT $2 OFFSET $3`,
		clinicID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Record
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, nil
}
