package utils

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrDatabaseError       = errors.New("database error")
	ErrShareTokenExhausted = errors.New("could not allocate a unique share token")
	ErrFeatureDisabled     = errors.New("feature disabled")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ErrStorage is the storage-failure sentinel used by the itinerary services.
var ErrStorage = ErrDatabaseError

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Storage wraps a driver error so callers can match it with errors.Is(err, ErrStorage)
// without losing the cause.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrDatabaseError) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrDatabaseError, op, err)
}
