package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventops/rooming-dashboard/internal/metrics"
)

// PanicError is a recovered panic together with the stack that raised it.
type PanicError struct {
	Err   error
	Stack []byte
}

func (e *PanicError) Error() string { return "panic: " + e.Err.Error() }

func (e *PanicError) Unwrap() error { return e.Err }

// ErrorBoundary turns a panic in a page handler into a *PanicError so the
// error handler can render the recovery page.
func ErrorBoundary(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				perr, ok := r.(error)
				if !ok {
					perr = fmt.Errorf("%v", r)
				}
				stack := debug.Stack()
				metrics.RecoveredPanicsTotal.Inc()
				log.Error().
					Err(perr).
					Str("path", c.Request().URL.Path).
					Bytes("stack", stack).
					Msg("recovered panic")
				err = &PanicError{Err: perr, Stack: stack}
			}()
			return next(c)
		}
	}
}
