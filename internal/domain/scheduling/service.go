package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicvoice/clinicvoice/internal/domain/callhistory"
	"github.com/clinicvoice/clinicvoice/internal/domain/settings"
	"github.com/clinicvoice/clinicvoice/internal/platform/calendar"
	"github.com/clinicvoice/clinicvoice/internal/platform/callctx"
	"github.com/clinicvoice/clinicvoice/internal/platform/db"
	"github.com/clinicvoice/clinicvoice/internal/platform/timetext"
)

// SettingsReader is the slice of the settings domain the scheduler needs.
type SettingsReader interface {
	GetByClinicID(ctx context.Context, clinicID uuid.UUID) (*settings.ClinicSettings, error)
}

// CallStatusUpdater patches the call log with the scheduling outcome.
// Satisfied by the callhistory service.
type CallStatusUpdater interface {
	UpdateAppointmentStatus(ctx context.Context, clinicID uuid.UUID, callID, status string) error
}

type Service struct {
	repo     Repository
	settings SettingsReader
	calls    CallStatusUpdater
	calendar calendar.Service
	timezone string
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(repo Repository, sr SettingsReader, calls CallStatusUpdater, cal calendar.Service, timezone string, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		settings: sr,
		calls:    calls,
		calendar: cal,
		timezone: timezone,
		logger:   logger,
		now:      time.Now,
	}
}

// Book runs the full booking flow: normalize the requested time, gate on
// clinic hours and lunch, check the slot, short-circuit duplicates from the
// same call, allocate an id, insert, then patch the call log and the
// doctor's calendar best-effort.
func (s *Service) Book(ctx context.Context, id callctx.Identity, req BookRequest) (Outcome, error) {
	if req.PatientName == "" {
		return Outcome{}, fmt.Errorf("patient_name is required")
	}
	if req.Doctor == "" {
		return Outcome{}, fmt.Errorf("doctor_name is required")
	}
	clinicID, date, timeOfDay, err := s.normalizeRequest(id, req.Date, req.Time)
	if err != nil {
		return Outcome{}, err
	}

	cs, err := s.settings.GetByClinicID(ctx, clinicID)
	if err != nil {
		return Outcome{}, fmt.Errorf("load clinic settings: %w", err)
	}

	if !withinClinicHours(cs, date, timeOfDay) {
		slots := s.openSlots(ctx, clinicID, cs, req.Doctor, req.Date)
		if len(slots) > 0 {
			return Outcome{
				Kind:    OutcomeAlternatives,
				Message: msgOutsideHoursWithSlots(req.Doctor, timetext.FormatForSpeech(timeOfDay), req.Date, slots),
				Slots:   slots,
			}, nil
		}
		return Outcome{
			Kind:    OutcomeClosed,
			Message: msgNotWorking(req.Doctor, req.Date),
		}, nil
	}

	// The same call retrying the same booking gets the success answer back
	// without a second row. This must run before the slot check, which would
	// otherwise see the retry's own booking as a conflict.
	dup, err := s.repo.FindDuplicate(ctx, clinicID, id.CallID, req.PatientName, req.Doctor, req.Date, timeOfDay)
	if err != nil {
		return Outcome{}, fmt.Errorf("duplicate check: %w", err)
	}
	if dup {
		return Outcome{Kind: OutcomeSuccess, Message: msgBooked}, nil
	}

	if !s.isSlotFree(ctx, clinicID, req.Doctor, req.Date, timeOfDay) {
		return s.slotTakenOutcome(ctx, clinicID, cs, req.Doctor, req.Date, timeOfDay), nil
	}

	apptID, err := s.nextAppointmentID(ctx, cs.DisplayName)
	if err != nil {
		return Outcome{}, err
	}

	appt := &Appointment{
		AppointmentID:  apptID,
		ClinicID:       clinicID,
		CallID:         id.CallID,
		PatientName:    req.PatientName,
		Reason:         req.Reason,
		Date:           req.Date,
		Time:           timeOfDay,
		AssignedDoctor: req.Doctor,
		Status:         StatusScheduled,
	}
	if err := s.repo.Insert(ctx, appt); err != nil {
		if db.IsUniqueViolation(err) {
			// Lost the race for the slot between the check and the insert.
			return s.slotTakenOutcome(ctx, clinicID, cs, req.Doctor, req.Date, timeOfDay), nil
		}
		return Outcome{}, fmt.Errorf("insert appointment: %w", err)
	}

	out := Outcome{Kind: OutcomeSuccess, Message: msgBooked, AppointmentID: apptID}
	s.patchCallStatus(ctx, &out, clinicID, id.CallID, callhistory.StatusBooked)
	s.createCalendarEvent(ctx, &out, cs, appt)
	return out, nil
}

// CheckAvailability answers the read-only question without booking anything.
func (s *Service) CheckAvailability(ctx context.Context, id callctx.Identity, doctor, reqDate, reqTime string) (Outcome, error) {
	if doctor == "" {
		return Outcome{}, fmt.Errorf("doctor_name is required")
	}
	clinicID, date, timeOfDay, err := s.normalizeRequest(id, reqDate, reqTime)
	if err != nil {
		return Outcome{}, err
	}

	cs, err := s.settings.GetByClinicID(ctx, clinicID)
	if err != nil {
		return Outcome{}, fmt.Errorf("load clinic settings: %w", err)
	}

	speech := timetext.FormatForSpeech(timeOfDay)
	if !withinClinicHours(cs, date, timeOfDay) {
		return Outcome{
			Kind:    OutcomeClosed,
			Message: msgNotAvailableOutsideHours(doctor, speech, reqDate),
		}, nil
	}
	if !s.isSlotFree(ctx, clinicID, doctor, reqDate, timeOfDay) {
		return Outcome{
			Kind:    OutcomeAlternatives,
			Message: msgNotAvailable(doctor, speech, reqDate),
			Slots:   s.openSlots(ctx, clinicID, cs, doctor, reqDate),
		}, nil
	}
	return Outcome{Kind: OutcomeSuccess, Message: msgAvailable(doctor, speech, reqDate)}, nil
}

// Reschedule moves an existing appointment in place. The new slot is not
// re-validated against hours or bookings; the caller negotiated it with the
// availability tools first.
func (s *Service) Reschedule(ctx context.Context, id callctx.Identity, appointmentID, newDate, newTime string) (Outcome, error) {
	if appointmentID == "" {
		return Outcome{}, fmt.Errorf("appointment_id is required")
	}
	clinicID, _, timeOfDay, err := s.normalizeRequest(id, newDate, newTime)
	if err != nil {
		return Outcome{}, err
	}

	appt, err := s.repo.GetByAppointmentID(ctx, clinicID, appointmentID)
	if err != nil {
		if db.IsNoRows(err) {
			return Outcome{Kind: OutcomeFailure, Message: msgNotFoundReschedule}, nil
		}
		return Outcome{}, fmt.Errorf("load appointment: %w", err)
	}

	out := Outcome{Kind: OutcomeSuccess, Message: msgRescheduled, AppointmentID: appointmentID}

	cs, err := s.settings.GetByClinicID(ctx, clinicID)
	if err != nil {
		return Outcome{}, fmt.Errorf("load clinic settings: %w", err)
	}
	s.deleteCalendarEvent(ctx, &out, cs, appt)

	if err := s.repo.UpdateSchedule(ctx, clinicID, appointmentID, newDate, timeOfDay); err != nil {
		return Outcome{}, fmt.Errorf("update appointment: %w", err)
	}
	appt.Date = newDate
	appt.Time = timeOfDay

	s.patchCallStatus(ctx, &out, clinicID, id.CallID, callhistory.StatusRescheduled)
	s.createCalendarEvent(ctx, &out, cs, appt)
	return out, nil
}

// Cancel flips the appointment to cancelled. Re-cancelling is harmless.
func (s *Service) Cancel(ctx context.Context, id callctx.Identity, appointmentID string) (Outcome, error) {
	if appointmentID == "" {
		return Outcome{}, fmt.Errorf("appointment_id is required")
	}
	clinicID, err := uuid.Parse(id.ClinicID)
	if err != nil {
		return Outcome{}, fmt.Errorf("invalid clinic id")
	}

	appt, err := s.repo.GetByAppointmentID(ctx, clinicID, appointmentID)
	if err != nil {
		if db.IsNoRows(err) {
			return Outcome{Kind: OutcomeFailure, Message: msgNotFoundCancel}, nil
		}
		return Outcome{}, fmt.Errorf("load appointment: %w", err)
	}

	if err := s.repo.UpdateStatus(ctx, clinicID, appointmentID, StatusCancelled); err != nil {
		return Outcome{}, fmt.Errorf("cancel appointment: %w", err)
	}

	out := Outcome{Kind: OutcomeSuccess, Message: msgCancelled, AppointmentID: appointmentID}
	s.patchCallStatus(ctx, &out, clinicID, id.CallID, callhistory.StatusCancelled)

	cs, err := s.settings.GetByClinicID(ctx, clinicID)
	if err != nil {
		s.warn(&out, "load clinic settings for calendar cleanup", err)
		return out, nil
	}
	s.deleteCalendarEvent(ctx, &out, cs, appt)
	return out, nil
}

// GetAvailableSlots lists up to four openings as HH:MM:SS times.
func (s *Service) GetAvailableSlots(ctx context.Context, id callctx.Identity, doctor, date string) ([]string, error) {
	if doctor == "" {
		return nil, fmt.Errorf("doctor_name is required")
	}
	clinicID, err := uuid.Parse(id.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic id")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid appointment_date %q", date)
	}
	cs, err := s.settings.GetByClinicID(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("load clinic settings: %w", err)
	}
	return s.openSlots(ctx, clinicID, cs, doctor, date), nil
}

// GetAppointmentDetails looks appointments up by patient, optionally
// narrowed by doctor and date.
func (s *Service) GetAppointmentDetails(ctx context.Context, id callctx.Identity, f Filter, limit, offset int) ([]*Appointment, int, error) {
	if f.PatientName == "" {
		return nil, 0, fmt.Errorf("patient_name is required")
	}
	clinicID, err := uuid.Parse(id.ClinicID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid clinic id")
	}
	return s.repo.Find(ctx, clinicID, f, limit, offset)
}

// ListAppointmentsForPatient returns the patient's visits from today on,
// soonest first, whatever their status.
func (s *Service) ListAppointmentsForPatient(ctx context.Context, id callctx.Identity, patient string) ([]*Appointment, error) {
	if patient == "" {
		return nil, fmt.Errorf("patient_name is required")
	}
	clinicID, err := uuid.Parse(id.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic id")
	}
	today := s.now().Format("2006-01-02")
	return s.repo.ListUpcoming(ctx, clinicID, patient, today)
}

// normalizeRequest validates the identity and date and normalizes the time.
// An unrecognized time format is logged and carried through as-is; the hours
// gate will reject it downstream.
func (s *Service) normalizeRequest(id callctx.Identity, reqDate, reqTime string) (uuid.UUID, time.Time, string, error) {
	clinicID, err := uuid.Parse(id.ClinicID)
	if err != nil {
		return uuid.Nil, time.Time{}, "", fmt.Errorf("invalid clinic id")
	}
	date, err := time.Parse("2006-01-02", reqDate)
	if err != nil {
		return uuid.Nil, time.Time{}, "", fmt.Errorf("invalid appointment_date %q", reqDate)
	}
	timeOfDay, err := timetext.Normalize(reqTime)
	if err != nil {
		s.logger.Warn().Str("time", reqTime).Msg("unrecognized time format, using as-is")
	}
	return clinicID, date, timeOfDay, nil
}

func (s *Service) slotTakenOutcome(ctx context.Context, clinicID uuid.UUID, cs *settings.ClinicSettings, doctor, date, timeOfDay string) Outcome {
	slots := s.openSlots(ctx, clinicID, cs, doctor, date)
	if len(slots) > 0 {
		return Outcome{
			Kind:    OutcomeAlternatives,
			Message: msgSlotTakenWithSlots(doctor, timetext.FormatForSpeech(timeOfDay), date, slots),
			Slots:   slots,
		}
	}
	return Outcome{
		Kind:    OutcomeAlternatives,
		Message: msgSlotTakenNoSlots(doctor, timeOfDay, date),
	}
}

func (s *Service) warn(out *Outcome, what string, err error) {
	s.logger.Warn().Err(err).Msg(what + " failed")
	out.Warnings = append(out.Warnings, what+" failed")
}

func (s *Service) patchCallStatus(ctx context.Context, out *Outcome, clinicID uuid.UUID, callID, status string) {
	if s.calls == nil || callID == "" {
		return
	}
	if err := s.calls.UpdateAppointmentStatus(ctx, clinicID, callID, status); err != nil {
		s.warn(out, "call record update", err)
	}
}

func (s *Service) createCalendarEvent(ctx context.Context, out *Outcome, cs *settings.ClinicSettings, appt *Appointment) {
	if s.calendar == nil {
		return
	}
	d, ok := cs.DoctorByName(appt.AssignedDoctor)
	if !ok || d.CalendarID == "" {
		return
	}
	ev, err := calendar.NewAppointmentEvent(appt.PatientName, appt.Reason, appt.Date, appt.Time, s.timezone)
	if err != nil {
		s.warn(out, "calendar event build", err)
		return
	}
	eventID, err := s.calendar.CreateEvent(ctx, d.CalendarID, ev)
	if err != nil {
		s.warn(out, "calendar event create", err)
		return
	}
	if err := s.repo.SetEventID(ctx, appt.ClinicID, appt.AppointmentID, eventID); err != nil {
		s.warn(out, "calendar event id persist", err)
		return
	}
	appt.EventID = eventID
}

func (s *Service) deleteCalendarEvent(ctx context.Context, out *Outcome, cs *settings.ClinicSettings, appt *Appointment) {
	if s.calendar == nil || appt.EventID == "" {
		return
	}
	d, ok := cs.DoctorByName(appt.AssignedDoctor)
	if !ok || d.CalendarID == "" {
		return
	}
	if err := s.calendar.DeleteEvent(ctx, d.CalendarID, appt.EventID); err != nil {
		s.warn(out, "calendar event delete", err)
		return
	}
	appt.EventID = ""
}
