package scheduling

import (
	"fmt"
	"strings"

	"github.com/clinicvoice/clinicvoice/internal/platform/timetext"
)

// Spoken responses. The wording is load-bearing: clinic-side call trackers
// have historically matched on these phrases, so changes here are breaking.
const (
	msgBooked      = "Appointment scheduled successfully."
	msgRescheduled = "Appointment rescheduled successfully."
	msgCancelled   = "Appointment cancelled successfully."

	msgNotFoundReschedule = "Appointment not found for rescheduling."
	msgNotFoundCancel     = "Appointment not found for cancellation."
)

func msgNotWorking(doctor, date string) string {
	return fmt.Sprintf("Doctor %s is not working on %s. Please choose a different date.", doctor, date)
}

// speechTimes renders HH:MM:SS slots the way they are read out loud.
func speechTimes(slots []string) string {
	spoken := make([]string, len(slots))
	for i, s := range slots {
		spoken[i] = timetext.FormatForSpeech(s)
	}
	return strings.Join(spoken, ", ")
}

func msgOutsideHoursWithSlots(doctor, speechTime, date string, slots []string) string {
	return fmt.Sprintf("Doctor %s is not available at %s on %s (outside working hours). However, they have openings at: %s. Would any of these times work for you?",
		doctor, speechTime, date, speechTimes(slots))
}

func msgSlotTakenWithSlots(doctor, speechTime, date string, slots []string) string {
	return fmt.Sprintf("Doctor %s is not available at %s on %s. However, they have openings at: %s. Would any of these times work for you?",
		doctor, speechTime, date, speechTimes(slots))
}

// The no-alternatives wording uses the normalized HH:MM:SS time rather than
// the speech form. Odd, but pinned.
func msgSlotTakenNoSlots(doctor, rawTime, date string) string {
	return fmt.Sprintf("Doctor %s is not available at %s on %s, and there are no other available slots on that day.",
		doctor, rawTime, date)
}

func msgAvailable(doctor, speechTime, date string) string {
	return fmt.Sprintf("Doctor %s is available at %s on %s.", doctor, speechTime, date)
}

func msgNotAvailable(doctor, speechTime, date string) string {
	return fmt.Sprintf("Doctor %s is not available at %s on %s.", doctor, speechTime, date)
}

func msgNotAvailableOutsideHours(doctor, speechTime, date string) string {
	return fmt.Sprintf("Doctor %s is not available at %s on %s (outside working hours).", doctor, speechTime, date)
}
