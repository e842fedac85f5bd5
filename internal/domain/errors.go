package domain

import (
	"errors"
	"strconv"
)

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// InvalidCoordinateError is returned when an OTP matrix coordinate fails the
// grammar or bounds check. Index is the position in the caller's input.
type InvalidCoordinateError struct {
	Coordinate string
	Index      int
}

func (e *InvalidCoordinateError) Error() string {
	return "invalid coordinate " + strconv.Quote(e.Coordinate) + " at index " + strconv.Itoa(e.Index)
}

// IsRetriable always returns false: the same input resolves the same way.
func (e *InvalidCoordinateError) IsRetriable() bool {
	return false
}

func (e *InvalidCoordinateError) Is(target error) bool {
	return target == ErrInvalidCoordinate
}

// MissingFieldError is returned when a field required for order signing is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing field: " + e.Field
}

func (e *MissingFieldError) IsRetriable() bool {
	return false
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// NetworkError represents a network-related error that may be retriable
type NetworkError struct {
	Op        string // Operation that failed (e.g., "login", "place_order")
	Err       error  // Underlying error
	Retriable bool   // Whether this error is retriable
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) IsRetriable() bool {
	return e.Retriable
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new retriable network error
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err, Retriable: true}
}

// NewFatalNetworkError creates a non-retriable network error
func NewFatalNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err, Retriable: false}
}

// ConfigError represents a configuration error (never retriable)
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) IsRetriable() bool {
	return false
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var (
	// ErrInvalidCoordinate matches any *InvalidCoordinateError via errors.Is.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrMissingField matches any *MissingFieldError via errors.Is.
	ErrMissingField = errors.New("missing field")

	// ErrInsufficientCoordinates is returned when a challenge carries fewer valid
	// coordinates than the caller requires.
	ErrInsufficientCoordinates = errors.New("insufficient coordinates")

	// ErrInvalidOrder is returned when an order fails semantic validation. Not retriable.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrNotAuthenticated is returned when an API call needs a session that was never opened
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSubmissionNotFound is returned when the journal has no record for a request ID
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrConfigNotFound is returned when configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
