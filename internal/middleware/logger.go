package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/gotanda-lunch/internal/logging"
)

// RequestLogger attaches a child of base, tagged with the request id, to
// every request context and writes one line per completed request.  It must
// run after echo's RequestID middleware.
func RequestLogger(base zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			logger := base.With().Str("request_id", rid).Logger()
			c.SetRequest(req.WithContext(logging.WithLogger(req.Context(), &logger)))

			err := next(c)
			if err != nil {
				// Let echo's error handler write the response before we read the status.
				c.Error(err)
			}

			status := c.Response().Status
			ev := logger.Info()
			if status >= 500 {
				ev = logger.Error()
			}
			ev.Str("method", req.Method).
				Str("path", c.Path()).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Msg("request")
			return nil
		}
	}
}
