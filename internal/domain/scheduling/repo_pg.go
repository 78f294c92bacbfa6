package scheduling

import (
	"context"
	"fmt"

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

// Date and time columns are cast to text so the model keeps the exact wire
// strings the voice layer speaks.
const apptCols = `id, appointment_id, clinic_id, call_id, patient_name, reason,
	appointment_date::text, appointment_time::text, assigned_doctor,
	current_status, event_id, created_at, updated_at`

func (r *repoPG) scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.AppointmentID, &a.ClinicID, &a.CallID, &a.PatientName, &a.Reason,
		&a.Date, &a.Time, &a.AssignedDoctor,
		&a.Status, &a.EventID, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Insert(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment_details (id, appointment_id, clinic_id, call_id,
			patient_name, reason, appointment_date, appointment_time,
			assigned_doctor, current_status, event_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.AppointmentID, a.ClinicID, a.CallID,
		a.PatientName, a.Reason, a.Date, a.Time,
		a.AssignedDoctor, a.Status, a.EventID)
	return err
}

func (r *repoPG) GetByAppointmentID(ctx context.Context, clinicID uuid.UUID, appointmentID string) (*Appointment, error) {
	return r.scanAppt(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment_details WHERE clinic_id = $1 AND appointment_id = $2`,
		clinicID, appointmentID))
}

func (r *repoPG) UpdateSchedule(ctx context.Context, clinicID uuid.UUID, appointmentID, newDate, newTime string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment_details
		SET appointment_date = $3, appointment_time = $4, updated_at = NOW()
		WHERE clinic_id = $1 AND appointment_id = $2`,
		clinicID, appointmentID, newDate, newTime)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, clinicID uuid.UUID, appointmentID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment_details
		SET current_status = $3, updated_at = NOW()
		WHERE clinic_id = $1 AND appointment_id = $2`,
		clinicID, appointmentID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) SetEventID(ctx context.Context, clinicID uuid.UUID, appointmentID, eventID string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment_details
		SET event_id = $3, updated_at = NOW()
		WHERE clinic_id = $1 AND appointment_id = $2`,
		clinicID, appointmentID, eventID)
	return err
}

func (r *repoPG) BookedTimes(ctx context.Context, clinicID uuid.UUID, doctor, date string) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT appointment_time::text FROM appointment_details
		WHERE clinic_id = $1 AND assigned_doctor = $2 AND appointment_date = $3
		  AND current_status = 'scheduled'`,
		clinicID, doctor, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (r *repoPG) FindDuplicate(ctx context.Context, clinicID uuid.UUID, callID, patient, doctor, date, timeOfDay string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointment_details
			WHERE clinic_id = $1 AND call_id = $2 AND patient_name = $3
			  AND assigned_doctor = $4 AND appointment_date = $5
			  AND appointment_time = $6 AND current_status = 'scheduled'
		)`,
		clinicID, callID, patient, doctor, date, timeOfDay).Scan(&exists)
	return exists, err
}

func (r *repoPG) ListIDsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT appointment_id FROM appointment_details WHERE appointment_id LIKE $1`,
		prefix+"-%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repoPG) Find(ctx context.Context, clinicID uuid.UUID, f Filter, limit, offset int) ([]*Appointment, int, error) {
	query := `SELECT ` + apptCols + ` FROM appointment_details WHERE clinic_id = $1`
	countQuery := `SELECT COUNT(*) FROM appointment_details WHERE clinic_id = $1`
	args := []interface{}{clinicID}
	idx := 2

	if f.PatientName != "" {
		query += fmt.Sprintf(` AND patient_name ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND patient_name ILIKE $%d`, idx)
		args = append(args, f.PatientName)
		idx++
	}
	if f.Doctor != "" {
		query += fmt.Sprintf(` AND assigned_doctor = $%d`, idx)
		countQuery += fmt.Sprintf(` AND assigned_doctor = $%d`, idx)
		args = append(args, f.Doctor)
		idx++
	}
	if f.Date != "" {
		query += fmt.Sprintf(` AND appointment_date = $%d`, idx)
		countQuery += fmt.Sprintf(` AND appointment_date = $%d`, idx)
		args = append(args, f.Date)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY appointment_date DESC, appointment_time DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppt(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

func (r *repoPG) ListUpcoming(ctx context.Context, clinicID uuid.UUID, patient, fromDate string) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+` FROM appointment_details
		WHERE clinic_id = $1 AND patient_name ILIKE $2 AND appointment_date >= $3
		ORDER BY appointment_date ASC, appointment_time ASC`,
		clinicID, patient, fromDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppt(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
