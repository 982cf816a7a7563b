package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrUpstreamStatus    = errors.New("upstream returned non-success status")
	ErrMalformedResponse = errors.New("malformed upstream response")
	ErrContractViolation = errors.New("upstream contract violation")
	ErrInvalidIdentifier = errors.New("invalid dictionary identifier")
	ErrMalformedDocument = errors.New("malformed data dictionary document")
)

// StatusError reports a failed response from an external service after the
// retry budget, if any, has been spent.
type StatusError struct {
	Service    string
	Target     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s: %s: status %d: %s", e.Service, e.Target, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Service, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUpstreamStatus }

// NewContractViolation wraps ErrContractViolation with a description of the
// offending value.
func NewContractViolation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...))
}
