package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingCredential is returned by constructors when the API key is empty
var ErrMissingCredential = errors.New("missing provider credential")

// ErrorKind classifies upstream failures
type ErrorKind string

const (
	ErrorAuth          ErrorKind = "auth"
	ErrorQuota         ErrorKind = "quota"
	ErrorBadResponse   ErrorKind = "bad_response"
	ErrorUnavailable   ErrorKind = "unavailable"
	ErrorUpstream      ErrorKind = "upstream"
	ErrorNetwork       ErrorKind = "network"
	ErrorTimeout       ErrorKind = "timeout"
	ErrorNotConfigured ErrorKind = "not_configured"
)

// Error is the typed failure returned by every adapter
type Error struct {
	Provider   Kind
	Kind       ErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s transcription failed (%s)", e.Provider, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage is the client-facing explanation of the failure
func (e *Error) UserMessage() string {
	switch e.Kind {
	case ErrorAuth:
		return fmt.Sprintf("Invalid or unauthorized API key for %s. Please check your configuration.", e.Provider)
	case ErrorQuota:
		return fmt.Sprintf("%s quota or rate limit exceeded. Please try again later.", e.Provider)
	case ErrorNotConfigured:
		return fmt.Sprintf("%s is not configured on this server.", e.Provider)
	case ErrorBadResponse:
		return fmt.Sprintf("%s returned an empty or unreadable transcription.", e.Provider)
	case ErrorTimeout:
		return fmt.Sprintf("%s did not respond in time.", e.Provider)
	case ErrorUnavailable, ErrorNetwork:
		return fmt.Sprintf("%s is currently unavailable. Please try again later.", e.Provider)
	default:
		return fmt.Sprintf("Transcription with %s failed.", e.Provider)
	}
}

// AsError returns the provider error in err's chain
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// kindForStatus maps an upstream HTTP status to an ErrorKind
func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorAuth
	case status == http.StatusPaymentRequired || status == http.StatusTooManyRequests:
		return ErrorQuota
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ErrorTimeout
	case status >= 500:
		return ErrorUnavailable
	default:
		return ErrorUpstream
	}
}

func statusError(provider Kind, status int, body string) *Error {
	return &Error{Provider: provider, Kind: kindForStatus(status), StatusCode: status, Body: body}
}

func transportError(provider Kind, err error) *Error {
	kind := ErrorNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		kind = ErrorTimeout
	}
	return &Error{Provider: provider, Kind: kind, Err: err}
}

func badResponse(provider Kind, err error) *Error {
	return &Error{Provider: provider, Kind: ErrorBadResponse, Err: err}
}

func notConfigured(provider Kind, envVar string) *Error {
	return &Error{
		Provider: provider,
		Kind:     ErrorNotConfigured,
		Err:      fmt.Errorf("%w: set %s", ErrMissingCredential, envVar),
	}
}
