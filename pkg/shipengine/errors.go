package shipengine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument wraps all local argument validation failures: enum values
// outside their allowed set, empty carrier lists, mismatched shipment kinds.
// These are raised before any network activity.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidationError reports address data rejected before a request is built.
// It carries the canonical keys that the Formatter failed to produce.
type ValidationError struct {
	MissingKeys []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "invalid address data: missing required key(s): " + strings.Join(e.MissingKeys, ",")
}

// APIError is a single entry from the ShipEngine error envelope.
type APIError struct {
	Code    string
	Message string
}

// UnmarshalJSON accepts both envelope generations: older responses carry the
// human text under "message", newer ones under "error_message".
func (e *APIError) UnmarshalJSON(data []byte) error {
	var doc struct {
		Code         string `json:"error_code"`
		Message      string `json:"message"`
		ErrorMessage string `json:"error_message"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	e.Code = doc.Code
	e.Message = doc.Message
	if e.Message == "" {
		e.Message = doc.ErrorMessage
	}
	return nil
}

func (e APIError) String() string {
	code := e.Code
	if code == "" {
		code = "N/A"
	}
	return fmt.Sprintf("[Error Code: %s] %s", code, e.Message)
}

// ErrorResponse is returned when the API answered at the transport level but
// the decoded body contained a non-empty errors array. The HTTP status code is
// irrelevant for this classification.
type ErrorResponse struct {
	RequestID string
	Errors    []APIError
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("shipengine request %s response contained %d error(s)", e.RequestID, len(e.Errors))
}

// RequestFailedError is returned when no interpretable response was obtained:
// connection failures, timeouts, or a failure status whose body is not a
// ShipEngine error envelope. Body holds the raw response text when one was
// captured.
type RequestFailedError struct {
	Body  string
	Cause error
}

// Error implements the error interface.
func (e *RequestFailedError) Error() string {
	msg := e.Body
	if msg == "" {
		msg = "no response was received"
	}
	if e.Cause != nil {
		return fmt.Sprintf("shipengine request failed: %s: %v", msg, e.Cause)
	}
	return "shipengine request failed: " + msg
}

// Unwrap returns the underlying cause, if any.
func (e *RequestFailedError) Unwrap() error {
	return e.Cause
}
