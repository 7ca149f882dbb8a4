package apiclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// LoginPath is where the operator is sent after the server rejects the session.
const LoginPath = "/login"

// RequestInterceptor may modify an outgoing request. A non-nil error aborts it.
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor observes every response before the caller sees it.
type ResponseInterceptor func(req *http.Request, resp *http.Response)

// Session is the read/terminate view of the auth store used by the transport.
type Session interface {
	Token() string
	EndSession(ctx context.Context, token string) bool
}

// Navigator moves the operator to another page.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// BearerToken attaches the current session token to every request. The token
// is read at send time, so a logout takes effect on the very next call.
func BearerToken(session Session) RequestInterceptor {
	return func(req *http.Request) error {
		if token := session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	}
}

// SessionGuard reacts to auth and server failures. On 401 it ends the session
// the request was made with and navigates to the login page; the first
// response to end a session is the only one that navigates.
func SessionGuard(session Session, nav Navigator, log zerolog.Logger) ResponseInterceptor {
	return func(req *http.Request, resp *http.Response) {
		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			token := bearerFrom(req)
			if session.EndSession(req.Context(), token) {
				log.Info().Str("path", req.URL.Path).Msg("session rejected by server, redirecting to login")
				if nav != nil {
					nav.Navigate(LoginPath)
				}
			}
		case resp.StatusCode == http.StatusForbidden:
			log.Warn().Str("method", req.Method).Str("path", req.URL.Path).Msg("access forbidden")
		case resp.StatusCode >= http.StatusInternalServerError:
			log.Warn().
				Int("status", resp.StatusCode).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Msg("server error occurred")
		}
	}
}

func bearerFrom(req *http.Request) string {
	parts := strings.SplitN(req.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
