package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventops/rooming-dashboard/internal/apiclient"
	"github.com/eventops/rooming-dashboard/internal/web/handler"
	"github.com/eventops/rooming-dashboard/internal/web/middleware"
	"github.com/eventops/rooming-dashboard/internal/web/view"
)

const (
	headingBoundary = "Oops! Something went wrong"
	msgBoundary     = "An unexpected error occurred while loading this page."
)

// NewHTTPErrorHandler renders failed page requests. An expired session goes
// back to the login page; everything else gets the recovery page, with the
// error and stack in dev mode.
func NewHTTPErrorHandler(base handler.Base, devMode bool, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, apiclient.ErrUnauthorized) {
			_ = c.Redirect(http.StatusFound, apiclient.LoginPath)
			return
		}

		ev := resolveError(err)
		ev.RetryURL = c.Request().URL.RequestURI()
		if ev.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("page request failed")
			if devMode {
				ev.Detail = err.Error()
				var pe *middleware.PanicError
				if errors.As(err, &pe) {
					ev.Stack = string(pe.Stack)
				}
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(ev.Code)
			return
		}
		if rerr := handler.Render(c, ev.Code, "error", base.Page(ev.Heading, "", ev)); rerr != nil {
			log.Error().Err(rerr).Msg("render error page")
			_ = c.String(ev.Code, ev.Heading)
		}
	}
}

func resolveError(err error) view.ErrorPage {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code < http.StatusInternalServerError {
			return view.ErrorPage{Code: he.Code, Heading: http.StatusText(he.Code), Message: fmt.Sprintf("%v", he.Message)}
		}
		return view.ErrorPage{Code: he.Code, Heading: headingBoundary, Message: msgBoundary}
	}

	switch {
	case errors.Is(err, apiclient.ErrForbidden):
		return view.ErrorPage{Code: http.StatusForbidden, Heading: "Access forbidden", Message: apiclient.HandleError(err).Message}
	case errors.Is(err, apiclient.ErrNotFound):
		return view.ErrorPage{Code: http.StatusNotFound, Heading: "Not found", Message: apiclient.HandleError(err).Message}
	}

	var ne *apiclient.NetworkError
	if errors.As(err, &ne) {
		return view.ErrorPage{Code: http.StatusBadGateway, Heading: headingBoundary, Message: apiclient.HandleError(err).Message}
	}
	return view.ErrorPage{Code: http.StatusInternalServerError, Heading: headingBoundary, Message: msgBoundary}
}
