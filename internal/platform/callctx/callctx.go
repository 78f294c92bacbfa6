// Package callctx carries the per-request clinic and call identity. Every
// tool invocation from the voice layer is correlated by two headers; they
// are validated once at the edge and threaded through context so handlers
// and services never consult shared mutable state.
package callctx

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// HeaderClinicID identifies the clinic the call belongs to.
	HeaderClinicID = "X-Clinic-Id"
	// HeaderCallID identifies the phone call issuing the operation.
	HeaderCallID = "X-Call-Id"
)

// ErrInvalidIdentifier is returned when an identifier is not UUID-shaped.
// Unlike time normalization this failure is fatal to the calling operation.
var ErrInvalidIdentifier = errors.New("invalid identifier")

type contextKey string

const identityKey contextKey = "call_identity"

// Identity is the immutable request-scoped correlation pair.
type Identity struct {
	ClinicID string
	CallID   string
}

// Canonical parses an identifier as a UUID and returns its canonical
// lowercase hyphenated form.
func Canonical(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	return u.String(), nil
}

// Middleware validates both correlation headers and stores the resulting
// Identity in the request context. Requests with missing or malformed
// identifiers are rejected before any storage access.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clinicID, err := Canonical(c.Request().Header.Get(HeaderClinicID))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid or missing "+HeaderClinicID+" header")
			}
			callID, err := Canonical(c.Request().Header.Get(HeaderCallID))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid or missing "+HeaderCallID+" header")
			}

			id := Identity{ClinicID: clinicID, CallID: callID}
			ctx := context.WithValue(c.Request().Context(), identityKey, id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("clinic_id", clinicID)
			c.Set("call_id", callID)

			return next(c)
		}
	}
}

// CallOnly validates just the call identifier. Used by the inbound-call
// routing lookup, which runs before the clinic is known.
func CallOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			callID, err := Canonical(c.Request().Header.Get(HeaderCallID))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid or missing "+HeaderCallID+" header")
			}

			id := Identity{CallID: callID}
			ctx := context.WithValue(c.Request().Context(), identityKey, id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("call_id", callID)

			return next(c)
		}
	}
}

// FromContext retrieves the request identity. The zero Identity is returned
// when no middleware ran, which only happens in tests.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey).(Identity)
	return id
}

// WithIdentity returns a context carrying the given identity. Intended for
// tests and internal callers outside the HTTP path.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
