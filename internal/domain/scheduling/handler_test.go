package scheduling

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicvoice/clinicvoice/internal/platform/callctx"
)

func newToolContext(t *testing.T, f *fixture, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(callctx.WithIdentity(req.Context(), f.identity))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestScheduleAppointmentHandler(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)

	body := `{
		"patient_name": "Asha Rao",
		"reason": "checkup",
		"appointment_date": "2026-09-07",
		"appointment_time": "10:00 AM",
		"doctor_name": "Dr. Mehta"
	}`
	c, rec := newToolContext(t, f, "/schedule_appointment", body)
	if err := h.ScheduleAppointment(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got struct {
		Result        string `json:"result"`
		Outcome       string `json:"outcome"`
		AppointmentID string `json:"appointment_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Result != "Appointment scheduled successfully." {
		t.Errorf("result = %q", got.Result)
	}
	if got.Outcome != string(OutcomeSuccess) {
		t.Errorf("outcome = %q", got.Outcome)
	}
	if got.AppointmentID == "" {
		t.Error("appointment_id missing from envelope")
	}
}

func TestScheduleAppointmentHandlerAdvisoryEnvelope(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)

	body := `{
		"patient_name": "Asha Rao",
		"appointment_date": "2026-09-07",
		"appointment_time": "6:00 PM",
		"doctor_name": "Dr. Mehta"
	}`
	c, rec := newToolContext(t, f, "/schedule_appointment", body)
	if err := h.ScheduleAppointment(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	var got struct {
		Outcome string   `json:"outcome"`
		Slots   []string `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Outcome != string(OutcomeAlternatives) {
		t.Errorf("outcome = %q", got.Outcome)
	}
	if len(got.Slots) != 4 {
		t.Errorf("slots = %v", got.Slots)
	}
}

func TestScheduleAppointmentHandlerValidation(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)

	c, _ := newToolContext(t, f, "/schedule_appointment", `{"appointment_date":"2026-09-07"}`)
	err := h.ScheduleAppointment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestCancelAppointmentHandlerNotFound(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)

	c, rec := newToolContext(t, f, "/cancel_appointment", `{"appointment_id":"SUN-999999"}`)
	if err := h.CancelAppointment(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	// Not-found is an outcome, not a transport error: the voice layer always
	// gets a sentence to speak.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Result  string `json:"result"`
		Outcome string `json:"outcome"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Outcome != string(OutcomeFailure) || got.Result != "Appointment not found for cancellation." {
		t.Errorf("envelope = %+v", got)
	}
}

func TestGetAvailableSlotsHandler(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)

	c, rec := newToolContext(t, f, "/get_available_slots",
		`{"doctor_name":"Dr. Mehta","appointment_date":"2026-09-07"}`)
	if err := h.GetAvailableSlots(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	var got struct {
		Result []string `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Result) != 4 || got.Result[0] != "10:00:00" {
		t.Errorf("result = %v", got.Result)
	}
}

func TestListAppointmentsForPatientHandler(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)
	f.svc.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	f.book(t, mehtaAt(monday, "10:00 AM"))

	c, rec := newToolContext(t, f, "/list_appointments_for_patient",
		`{"patient_name":"Asha Rao"}`)
	if err := h.ListAppointmentsForPatient(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	var got struct {
		Result []Appointment `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Result) != 1 || got.Result[0].AppointmentID != "SUN-000001" {
		t.Errorf("result = %+v", got.Result)
	}
}
