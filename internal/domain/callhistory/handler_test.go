package callhistory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicvoice/clinicvoice/internal/platform/callctx"
)

func newTestContext(t *testing.T, method, path, body string, id callctx.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(callctx.WithIdentity(req.Context(), id))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAddCallHistoryHandler(t *testing.T) {
	repo := newMockRepo()
	h := NewHandler(NewService(repo))
	clinicID := uuid.New()
	identity := callctx.Identity{
		ClinicID: clinicID.String(),
		CallID:   "11111111-1111-1111-1111-111111111111",
	}

	body := `{
		"caller_number": "+919876543210",
		"called_number": "+911234567890",
		"call_start": "2026-09-01T10:00:00Z",
		"call_end": "2026-09-01T10:03:00Z",
		"call_status": "completed",
		"summary": "caller booked a checkup"
	}`
	c, rec := newTestContext(t, http.MethodPost, "/add_call_history", body, identity)
	if err := h.AddCallHistory(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	stored, err := repo.GetByCallID(c.Request().Context(), identity.CallID)
	if err != nil {
		t.Fatalf("record not stored: %v", err)
	}
	if stored.ClinicID != clinicID {
		t.Errorf("clinic id = %s, want %s", stored.ClinicID, clinicID)
	}
	if stored.CallDuration != 180 {
		t.Errorf("duration = %d, want 180", stored.CallDuration)
	}
	if stored.AppointmentStatus != StatusNotBooked {
		t.Errorf("status = %q, want %q", stored.AppointmentStatus, StatusNotBooked)
	}
}

func TestListCallHistoryHandler(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	h := NewHandler(svc)
	clinicID := uuid.New()

	for _, callID := range []string{
		"11111111-1111-1111-1111-111111111111",
		"22222222-2222-2222-2222-222222222222",
	} {
		if err := svc.Add(context.Background(), &Record{CallID: callID, ClinicID: clinicID}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	identity := callctx.Identity{
		ClinicID: clinicID.String(),
		CallID:   "33333333-3333-3333-3333-333333333333",
	}
	c, rec := newTestContext(t, http.MethodGet, "/call_history", "", identity)
	if err := h.ListCallHistory(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	var got struct {
		Result []Record `json:"result"`
		Total  int      `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Total != 2 || len(got.Result) != 2 {
		t.Errorf("total = %d result = %d, want 2 of each", got.Total, len(got.Result))
	}
}
