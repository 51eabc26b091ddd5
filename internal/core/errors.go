package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest marks requests rejected before any side effect.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrStoreUnavailable marks any turn store read or write failure.
	ErrStoreUnavailable = errors.New("turn store unavailable")
)

// InferenceError describes a failed call to the inference backend.
type InferenceError struct {
	Provider string
	// Status is the backend HTTP status, 0 when the request never completed.
	Status int
	Reason string
	Err    error
}

func (e *InferenceError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Reason, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
	}
}

func (e *InferenceError) Unwrap() error { return e.Err }

// StoreError wraps err so that errors.Is(err, ErrStoreUnavailable) holds.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// InvalidRequest builds an ErrInvalidRequest with a reason.
func InvalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
