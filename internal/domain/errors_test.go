package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestNetworkError(t *testing.T) {
	baseErr := errors.New("connection refused")

	t.Run("retriable error", func(t *testing.T) {
		err := NewNetworkError("login", baseErr)

		if !err.IsRetriable() {
			t.Error("Expected error to be retriable")
		}

		if err.Error() != "login: connection refused" {
			t.Errorf("Error message = %q, want %q", err.Error(), "login: connection refused")
		}

		if !errors.Is(err, baseErr) {
			t.Error("Expected error to wrap baseErr")
		}
	})

	t.Run("fatal error", func(t *testing.T) {
		err := NewFatalNetworkError("place_order", baseErr)

		if err.IsRetriable() {
			t.Error("Expected error to not be retriable")
		}
	})

	t.Run("IsRetriable helper", func(t *testing.T) {
		retriable := NewNetworkError("dial", baseErr)
		fatal := NewFatalNetworkError("auth", baseErr)
		plain := errors.New("plain error")

		if !IsRetriable(retriable) {
			t.Error("IsRetriable should return true for retriable error")
		}

		if IsRetriable(fatal) {
			t.Error("IsRetriable should return false for fatal error")
		}

		if IsRetriable(plain) {
			t.Error("IsRetriable should return false for plain error")
		}
	})
}

func TestInvalidCoordinateError(t *testing.T) {
	err := &InvalidCoordinateError{Coordinate: "H9", Index: 2}

	want := `invalid coordinate "H9" at index 2`
	if err.Error() != want {
		t.Errorf("Error message = %q, want %q", err.Error(), want)
	}
	if IsRetriable(err) {
		t.Error("InvalidCoordinateError should never be retriable")
	}

	wrapped := fmt.Errorf("resolve otp: %w", err)
	if !errors.Is(wrapped, ErrInvalidCoordinate) {
		t.Error("Expected wrapped error to match ErrInvalidCoordinate")
	}

	var ice *InvalidCoordinateError
	if !errors.As(wrapped, &ice) || ice.Index != 2 {
		t.Errorf("errors.As failed or lost index: %+v", ice)
	}
}

func TestMissingFieldError(t *testing.T) {
	err := &MissingFieldError{Field: "uuid"}

	if err.Error() != "missing field: uuid" {
		t.Errorf("Error message = %q", err.Error())
	}
	if err.IsRetriable() {
		t.Error("MissingFieldError should never be retriable")
	}
	if !errors.Is(err, ErrMissingField) {
		t.Error("Expected error to match ErrMissingField")
	}
	if errors.Is(err, ErrInvalidCoordinate) {
		t.Error("MissingFieldError must not match ErrInvalidCoordinate")
	}
}

func TestConfigError(t *testing.T) {
	baseErr := errors.New("missing value")
	err := &ConfigError{Field: "private_key", Err: baseErr}

	if err.IsRetriable() {
		t.Error("ConfigError should never be retriable")
	}

	expected := "config error [private_key]: missing value"
	if err.Error() != expected {
		t.Errorf("Error message = %q, want %q", err.Error(), expected)
	}
}
