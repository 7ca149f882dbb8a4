package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// Error codes reported by HandleError when the server sent no usable body.
const (
	CodeNetworkError = "NETWORK_ERROR"
	CodeUnknownError = "UNKNOWN_ERROR"
)

const (
	msgNetworkError = "Network error - please check your connection"
	msgUnknownError = "An unexpected error occurred"
)

// HTTPError is returned for any response with status >= 400.
type HTTPError struct {
	StatusCode int
	Method     string
	URL        string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// Is lets callers match well-known statuses with errors.Is.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// NetworkError means the request was sent but no response came back.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusCode extracts the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode, true
	}
	return 0, false
}

// APIError is the uniform error record shown to the operator.
type APIError struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Status  int            `json:"-"`
}

func (e APIError) Error() string { return e.Message }

// HandleError converts any transport error into an APIError. A decodable
// server body wins; otherwise the error is classified as a network failure
// when no response arrived, or as unknown.
func HandleError(err error) APIError {
	var he *HTTPError
	if errors.As(err, &he) {
		var body APIError
		if len(he.Body) > 0 && json.Unmarshal(he.Body, &body) == nil && (body.Message != "" || body.Code != "") {
			body.Status = he.StatusCode
			return body
		}
		return APIError{Message: err.Error(), Code: CodeUnknownError, Status: he.StatusCode}
	}

	var ne *NetworkError
	if errors.As(err, &ne) {
		return APIError{Message: msgNetworkError, Code: CodeNetworkError}
	}

	msg := msgUnknownError
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return APIError{Message: msg, Code: CodeUnknownError}
}
