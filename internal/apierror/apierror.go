// Package apierror provides the typed domain errors raised by the service
// layer and the standardized envelopes they serialize to. All errors returned
// to clients go through this package to ensure consistency and to prevent
// leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error for HTTP translation.
type Kind int

const (
	// KindValidation: malformed or out-of-range input (400).
	KindValidation Kind = iota
	// KindConflict: business-rule state conflict (409).
	KindConflict
	// KindPermission: capability or ownership check failed (403).
	KindPermission
	// KindNotFound: referenced entity absent or not in the expected state (404).
	KindNotFound
)

// DomainError is a recoverable business-rule violation. Infrastructure
// failures (DB down, etc.) are never wrapped in a DomainError; they
// propagate raw and surface as 500s.
type DomainError struct {
	Kind Kind
	Msg  string
}

func (e *DomainError) Error() string { return e.Msg }

// Status maps the error kind to its HTTP status code.
func (e *DomainError) Status() int {
	switch e.Kind {
	case KindConflict:
		return http.StatusConflict
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func Validation(msg string) error { return &DomainError{Kind: KindValidation, Msg: msg} }
func Conflict(msg string) error   { return &DomainError{Kind: KindConflict, Msg: msg} }
func Permission(msg string) error { return &DomainError{Kind: KindPermission, Msg: msg} }
func NotFound(msg string) error   { return &DomainError{Kind: KindNotFound, Msg: msg} }

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, k Kind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == k
}

func IsConflict(err error) bool   { return IsKind(err, KindConflict) }
func IsValidation(err error) bool { return IsKind(err, KindValidation) }
func IsPermission(err error) bool { return IsKind(err, KindPermission) }
func IsNotFound(err error) bool   { return IsKind(err, KindNotFound) }

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
