package callctx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestCanonical(t *testing.T) {
	got, err := Canonical("123E4567-E89B-12D3-A456-426614174000")
	if err != nil {
		t.Fatalf("Canonical returned error: %v", err)
	}
	if got != "123e4567-e89b-12d3-a456-426614174000" {
		t.Errorf("expected lowercase canonical form, got %q", got)
	}

	if _, err := Canonical("not-a-uuid"); !errors.Is(err, ErrInvalidIdentifier) {
		t.Errorf("expected ErrInvalidIdentifier, got %v", err)
	}
	if _, err := Canonical(""); !errors.Is(err, ErrInvalidIdentifier) {
		t.Errorf("expected ErrInvalidIdentifier for empty input, got %v", err)
	}
}

func TestMiddleware(t *testing.T) {
	e := echo.New()

	handler := Middleware()(func(c echo.Context) error {
		id := FromContext(c.Request().Context())
		if id.ClinicID == "" || id.CallID == "" {
			t.Error("identity missing from request context")
		}
		return c.NoContent(http.StatusOK)
	})

	t.Run("valid headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(HeaderClinicID, "123e4567-e89b-12d3-a456-426614174000")
		req.Header.Set(HeaderCallID, "223e4567-e89b-12d3-a456-426614174000")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("malformed clinic id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(HeaderClinicID, "bogus")
		req.Header.Set(HeaderCallID, "223e4567-e89b-12d3-a456-426614174000")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %v", err)
		}
	})

	t.Run("missing headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %v", err)
		}
	})
}

func TestCallOnly(t *testing.T) {
	e := echo.New()
	handler := CallOnly()(func(c echo.Context) error {
		id := FromContext(c.Request().Context())
		if id.CallID == "" {
			t.Error("call id missing from request context")
		}
		if id.ClinicID != "" {
			t.Error("clinic id should be empty for call-only requests")
		}
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(HeaderCallID, "223e4567-e89b-12d3-a456-426614174000")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
