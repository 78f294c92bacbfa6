package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestID(t *testing.T) {
	e := echo.New()

	t.Run("generates id when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := RequestID()(func(c echo.Context) error {
			if rid, _ := c.Get("request_id").(string); rid == "" {
				t.Error("request_id not set on context")
			}
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatal(err)
		}
		if rec.Header().Get(HeaderRequestID) == "" {
			t.Error("response missing X-Request-ID header")
		}
	})

	t.Run("honors caller-supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "caller-chosen")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := RequestID()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatal(err)
		}
		if got := rec.Header().Get(HeaderRequestID); got != "caller-chosen" {
			t.Errorf("expected caller id echoed back, got %q", got)
		}
	})
}

func TestRecovery(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Recovery(zerolog.Nop())(func(c echo.Context) error {
		panic("boom")
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from recovered panic, got %v", err)
	}
}

func TestRateLimit(t *testing.T) {
	e := echo.New()
	cfg := RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2}

	handler := RateLimit(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	allowed := 0
	var limited bool
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "10.0.0.1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		if err == nil {
			allowed++
			continue
		}
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusTooManyRequests {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Header().Get("Retry-After") == "" {
			t.Error("429 response missing Retry-After header")
		}
		limited = true
	}

	if allowed != 2 {
		t.Errorf("expected burst of 2 allowed, got %d", allowed)
	}
	if !limited {
		t.Error("expected requests beyond burst to be limited")
	}
}

func TestRateLimitKeyedByClinic(t *testing.T) {
	e := echo.New()
	cfg := RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1}
	handler := RateLimit(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	send := func(clinicID string) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "10.0.0.2")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("clinic_id", clinicID)
		return handler(c)
	}

	if err := send("clinic-a"); err != nil {
		t.Fatalf("first clinic-a request should pass: %v", err)
	}
	if err := send("clinic-a"); err == nil {
		t.Error("second clinic-a request should be limited")
	}
	// Different clinic from the same IP gets its own bucket.
	if err := send("clinic-b"); err != nil {
		t.Errorf("clinic-b request should pass: %v", err)
	}
}

func TestTimeout(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Timeout(10 * time.Millisecond)(func(c echo.Context) error {
		select {
		case <-c.Request().Context().Done():
			return nil
		case <-time.After(time.Second):
			t.Error("handler context never cancelled")
			return nil
		}
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %v", err)
	}
}
