// Package logger configures zerolog and the echo request logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// New returns the base logger. format "console" gives human readable output,
// anything else JSON.
func New(level, format string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(lvl).With().
		Timestamp().
		Str("service", "candidate-application").
		Logger()
}

// WithComponent returns a child logger annotated with the component name.
func WithComponent(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// RequestLogger logs one event per request and stores a request scoped
// logger in the request context.
func RequestLogger(l zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		BeforeNextFunc: func(c echo.Context) {
			reqLogger := l.With().Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).Logger()
			req := c.Request()
			c.SetRequest(req.WithContext(reqLogger.WithContext(req.Context())))
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := l.Info()
			if v.Error != nil {
				ev = l.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
