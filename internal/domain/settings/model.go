package settings

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Doctor is one entry in a clinic's roster, stored as jsonb inside the
// clinic_settings row.
type Doctor struct {
	Name         string   `json:"name"`
	Specialty    string   `json:"specialty,omitempty"`
	Services     []string `json:"services,omitempty"`
	CalendarID   string   `json:"calendar_id,omitempty"`
	WorkingHours string   `json:"working_hours,omitempty"`
}

// ClinicSettings holds everything the voice layer needs to know about a
// clinic: identity, opening hours, lunch break, and the doctor roster.
// CalendarAuth carries provider credentials and is never serialized out.
type ClinicSettings struct {
	ClinicID     uuid.UUID       `json:"clinic_id"`
	DisplayName  string          `json:"display_name"`
	AgentPhone   string          `json:"agent_phone"`
	WorkingHours string          `json:"working_hours"`
	LunchHours   string          `json:"lunch_hours,omitempty"`
	Doctors      []Doctor        `json:"doctors"`
	CalendarAuth json.RawMessage `json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DoctorByName finds a roster entry by name, case-insensitively. A leading
// "Dr." or "Dr" title on either side is ignored so that "Dr. Mehta" matches
// a roster entry stored as "Mehta" and vice versa.
func (s *ClinicSettings) DoctorByName(name string) (Doctor, bool) {
	want := normalizeDoctorName(name)
	if want == "" {
		return Doctor{}, false
	}
	for _, d := range s.Doctors {
		if normalizeDoctorName(d.Name) == want {
			return d, true
		}
	}
	return Doctor{}, false
}

func normalizeDoctorName(name string) string {
	n := strings.TrimSpace(strings.ToLower(name))
	n = strings.TrimPrefix(n, "dr.")
	n = strings.TrimPrefix(n, "dr ")
	return strings.TrimSpace(n)
}
