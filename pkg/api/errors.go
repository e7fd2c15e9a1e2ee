package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthenticated signals that no session token is present locally. The
// call was never issued; UI flow should have prevented it.
var ErrUnauthenticated = errors.New("not authenticated")

// ErrSessionExpired signals that the server rejected the bearer token. By
// the time a caller sees this the stored session has already been cleared.
var ErrSessionExpired = errors.New("session expired")

// RequestError is a non-2xx response with whatever the server said about
// it. Message and Details come from the server's error envelope and must be
// surfaced verbatim; they fall back to the raw body when the envelope does
// not decode.
type RequestError struct {
	Status  int
	Message string
	Details []string
}

func (e *RequestError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("request failed (%d): %s (%s)", e.Status, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

// IsValidation reports whether the failure is a 4xx rejection whose
// message should be shown to the user as-is.
func (e *RequestError) IsValidation() bool {
	return e.Status >= 400 && e.Status < 500
}

// IsServer reports whether the failure is a 5xx server fault.
func (e *RequestError) IsServer() bool {
	return e.Status >= 500
}

// DecodeError is a data-integrity failure: the server answered 2xx but the
// body did not decode into the expected record shape. Distinct from a
// transport failure so callers can tell "network broke" from "server sent
// garbage".
type DecodeError struct {
	Entity string
	Field  string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode %s: missing required field %q", e.Entity, e.Field)
	}
	return fmt.Sprintf("decode %s: %v", e.Entity, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError is a network-level failure; the request may or may not
// have reached the server.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// missingField builds the DecodeError for a required field absent from (or
// null in) a wire record.
func missingField(entity, field string) error {
	return &DecodeError{Entity: entity, Field: field}
}

// UserMessage flattens any client error into the single human-readable
// string the presentation layer renders. Validation rejections keep the
// server's wording; everything else gets a stable phrasing.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return "You are not signed in."
	case errors.Is(err, ErrSessionExpired):
		return "Your session has expired. Please sign in again."
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		if reqErr.IsValidation() {
			msg := reqErr.Message
			if len(reqErr.Details) > 0 {
				msg += ": " + strings.Join(reqErr.Details, "; ")
			}
			return msg
		}
		return "The server could not complete the request. Please try again later."
	}
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return "The server returned an unexpected response."
	}
	var trErr *TransportError
	if errors.As(err, &trErr) {
		return "Could not reach the server. Check your connection."
	}
	return err.Error()
}
