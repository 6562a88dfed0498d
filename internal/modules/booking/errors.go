package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("not_found")
	ErrNoAvailability          = errors.New("no availability for the selected dates")
	ErrConflict                = errors.New("concurrent duplicate write")
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
	ErrStorage                 = errors.New("storage failure")
)

// ValidationError describes bad input. It matches ErrValidation under errors.Is.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s (%s)", ErrValidation, e.Message, strings.Join(parts, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// StorageError wraps a datastore failure. Callers see only ErrStorage; the
// cause is kept for logs.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func storage(op string, err error) error {
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
