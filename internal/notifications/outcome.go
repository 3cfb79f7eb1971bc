package notifications

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// StatusError reports an HTTP response other than 200.
type StatusError struct {
	Code int
	// Body holds the start of the response body, if any, for diagnostics.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("ntfy returned %d", e.Code)
	}
	return fmt.Sprintf("ntfy returned %d: %s", e.Code, e.Body)
}

// TransportError reports a failure to build, send, or read the request:
// malformed URL, DNS, connect, TLS, write, or read errors.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Outcome is the result of one dispatch: delivered with a status code, or
// failed with a reason.
type Outcome struct {
	statusCode int
	err        error
}

// Delivered returns a successful outcome.
func Delivered(statusCode int) Outcome {
	return Outcome{statusCode: statusCode}
}

// Failed returns a failed outcome. A *StatusError keeps its code available
// through StatusCode.
func Failed(err error) Outcome {
	if err == nil {
		err = errors.New("unknown failure")
	}
	out := Outcome{err: err}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		out.statusCode = statusErr.Code
	}
	return out
}

// Delivered reports whether the server accepted the notification.
func (o Outcome) Delivered() bool { return o.err == nil }

// StatusCode is the HTTP status received, or 0 when no response arrived.
func (o Outcome) StatusCode() int { return o.statusCode }

// Err returns the failure cause, or nil for a delivered outcome.
func (o Outcome) Err() error { return o.err }

// Reason is empty for a delivered outcome. For a rejected request it is the
// numeric status code; for a transport failure it describes the error.
func (o Outcome) Reason() string {
	if o.err == nil {
		return ""
	}
	var statusErr *StatusError
	if errors.As(o.err, &statusErr) {
		return strconv.Itoa(statusErr.Code)
	}
	return o.err.Error()
}

func (o Outcome) String() string {
	if o.Delivered() {
		return fmt.Sprintf("Delivered{%d}", o.statusCode)
	}
	return fmt.Sprintf("Failed{%s}", o.Reason())
}

type outcomeJSON struct {
	Delivered  bool   `json:"delivered"`
	StatusCode int    `json:"status_code,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Error      string `json:"error,omitempty"`
}

// MarshalJSON renders the outcome for machine-readable CLI output.
func (o Outcome) MarshalJSON() ([]byte, error) {
	payload := outcomeJSON{
		Delivered:  o.Delivered(),
		StatusCode: o.statusCode,
		Reason:     o.Reason(),
	}
	if o.err != nil {
		payload.Error = o.err.Error()
	}
	return json.Marshal(payload)
}
