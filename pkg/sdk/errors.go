package sdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// fallbackErrorMessage is used when a failed call produced no usable body,
// matching the message the web frontend displays for unexplained failures.
const fallbackErrorMessage = "An error occurred"

// ErrorKind classifies a normalized API failure.
type ErrorKind int

const (
	// KindNetwork means no HTTP response was received at all.
	KindNetwork ErrorKind = iota
	// KindAuth is an authorization failure (401).
	KindAuth
	// KindNotFound is a missing resource (404).
	KindNotFound
	// KindValidation covers the remaining 4xx range, with or without
	// field-level errors.
	KindValidation
	// KindServer covers the 5xx range.
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// APIError is the one error shape every failed gateway call resolves to.
// It is constructed once per failed call and never mutated afterwards.
type APIError struct {
	Message     string              `json:"message"`
	Code        string              `json:"code,omitempty"`
	Status      int                 `json:"status,omitempty"`
	FieldErrors map[string][]string `json:"errors,omitempty"`

	cause error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Unwrap exposes the transport-level cause, when one exists.
func (e *APIError) Unwrap() error { return e.cause }

// Kind maps the transport status onto the error taxonomy. A zero status
// means the request never produced a response.
func (e *APIError) Kind() ErrorKind {
	switch {
	case e.Status == 0:
		return KindNetwork
	case e.Status == http.StatusUnauthorized:
		return KindAuth
	case e.Status == http.StatusNotFound:
		return KindNotFound
	case e.Status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// errorEnvelope is the structured error body some backend handlers return.
type errorEnvelope struct {
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Errors  map[string][]string `json:"errors"`
}

// normalizeError turns a non-2xx response body into an APIError. The backend
// is inconsistent about error shapes, so parsing is tolerant with a fixed
// priority: a JSON object carrying a message field wins, then a bare string
// body (JSON-quoted or plain text) is used verbatim, and an empty body falls
// back to a fixed message. The HTTP status is always carried over.
func normalizeError(status int, body []byte) *APIError {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &APIError{Message: fallbackErrorMessage, Status: status}
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return &APIError{
			Message:     envelope.Message,
			Code:        envelope.Code,
			Status:      status,
			FieldErrors: envelope.Errors,
		}
	}

	var text string
	if err := json.Unmarshal(body, &text); err == nil && text != "" {
		return &APIError{Message: text, Status: status}
	}

	return &APIError{Message: string(body), Status: status}
}

// transportError wraps a failure that produced no HTTP response. The
// user-facing message is the fixed fallback; the underlying cause stays
// reachable through errors.Unwrap for logging.
func transportError(err error) *APIError {
	return &APIError{Message: fallbackErrorMessage, cause: err}
}
