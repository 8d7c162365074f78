package testutil

import (
	stderrors "errors"
	"math"
	"testing"

	"projectdollar/internal/errors"
)

// AssertNoError fails the test when err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAppError fails the test unless err is an AppError with the given code.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", code)
	}
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected AppError with code %q, got %T: %v", code, err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected error code %q, got %q", code, appErr.Code)
	}
}

// AssertInDelta fails the test when got differs from want by more than delta.
func AssertInDelta(t *testing.T, want, got, delta float64) {
	t.Helper()
	if math.Abs(want-got) > delta {
		t.Fatalf("expected %v (±%v), got %v", want, delta, got)
	}
}
