package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicvoice/clinicvoice/internal/domain/settings"
)

const (
	slotStep = 30 * time.Minute
	maxSlots = 4
)

// openSlots lists up to four free HH:MM:SS times for a doctor on a date.
// The doctor's own hours govern here, not the clinic's; a doctor without
// personal hours inherits the clinic's. Unknown doctors and storage errors
// yield no slots: never offer a time we cannot defend. Speech formatting
// happens at message-rendering time, never on the wire.
func (s *Service) openSlots(ctx context.Context, clinicID uuid.UUID, cs *settings.ClinicSettings, doctor, date string) []string {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}

	d, ok := cs.DoctorByName(doctor)
	if !ok {
		return nil
	}
	hoursSpec := d.WorkingHours
	if hoursSpec == "" {
		hoursSpec = cs.WorkingHours
	}

	iv, working := ResolveInterval(hoursSpec, day)
	if !working {
		return nil
	}

	bookedTimes, err := s.repo.BookedTimes(ctx, clinicID, doctor, date)
	if err != nil {
		s.logger.Warn().Err(err).Str("doctor", doctor).Str("date", date).
			Msg("could not load booked times")
		return nil
	}
	booked := make(map[string]bool, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = true
	}

	start, err := time.Parse("15:04:05", iv.Start)
	if err != nil {
		return nil
	}
	end, err := time.Parse("15:04:05", iv.End)
	if err != nil {
		return nil
	}

	var slots []string
	for cur := start; cur.Before(end) && len(slots) < maxSlots; cur = cur.Add(slotStep) {
		t := cur.Format("15:04:05")
		if booked[t] {
			continue
		}
		slots = append(slots, t)
	}
	return slots
}

// isSlotFree reports whether no scheduled appointment holds the slot. A
// storage error counts as taken.
func (s *Service) isSlotFree(ctx context.Context, clinicID uuid.UUID, doctor, date, timeOfDay string) bool {
	bookedTimes, err := s.repo.BookedTimes(ctx, clinicID, doctor, date)
	if err != nil {
		s.logger.Warn().Err(err).Str("doctor", doctor).Str("date", date).
			Msg("could not check slot availability")
		return false
	}
	for _, t := range bookedTimes {
		if t == timeOfDay {
			return false
		}
	}
	return true
}

// withinClinicHours applies the clinic-wide gate: inside the clinic's window
// for the date and not during lunch. Doctors' personal hours are not
// consulted here; they only shape the alternative slots.
func withinClinicHours(cs *settings.ClinicSettings, date time.Time, timeOfDay string) bool {
	iv, open := ResolveInterval(cs.WorkingHours, date)
	if !open || !iv.Contains(timeOfDay) {
		return false
	}
	if cs.LunchHours != "" {
		if lunch, ok := ResolveInterval(cs.LunchHours, date); ok && lunch.Contains(timeOfDay) {
			return false
		}
	}
	return true
}
