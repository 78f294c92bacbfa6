// Package middleware holds the HTTP middleware stack: request logging,
// panic recovery, request identifiers, per-caller rate limiting, and
// request timeouts.
package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Logger emits one structured log line per request, correlated by the
// request id and, when the identity middleware has run, by clinic and call.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid, _ := c.Get("request_id").(string)

			err := next(c)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}

			if clinicID, ok := c.Get("clinic_id").(string); ok && clinicID != "" {
				evt = evt.Str("clinic_id", clinicID)
			}
			if callID, ok := c.Get("call_id").(string); ok && callID != "" {
				evt = evt.Str("call_id", callID)
			}

			evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return err
		}
	}
}
