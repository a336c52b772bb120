package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorCarriesStatusAndMessage(t *testing.T) {
	appErr := New("Forum does not exist", http.StatusNotFound, ErrNotFound, nil)

	if got := appErr.StatusCode(); got != http.StatusNotFound {
		t.Errorf("StatusCode() = %d, want %d", got, http.StatusNotFound)
	}
	if got := appErr.Message(); got != "Forum does not exist" {
		t.Errorf("Message() = %q, want %q", got, "Forum does not exist")
	}
	if got := appErr.Error(); got != "Forum does not exist" {
		t.Errorf("Error() = %q, want %q", got, "Forum does not exist")
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("record not found")
	appErr := New("Forum does not exist", http.StatusNotFound, ErrNotFound, cause)

	if !errors.Is(appErr, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
	if got := appErr.Error(); got != "Forum does not exist: record not found" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsMatchesCode(t *testing.T) {
	appErr := New("duplicate", http.StatusConflict, ErrConflict, nil)
	wrapped := fmt.Errorf("outer: %w", appErr)

	if !Is(wrapped, ErrConflict) {
		t.Error("Is should find conflict code through wrapping")
	}
	if Is(wrapped, ErrNotFound) {
		t.Error("Is should not match a different code")
	}
	if Is(errors.New("plain"), ErrConflict) {
		t.Error("Is should be false for non-AppError")
	}
}

func TestWrapPassesThroughExistingAppError(t *testing.T) {
	original := New("duplicate", http.StatusConflict, ErrConflict, nil)
	wrapped := Wrap(original, "fallback", http.StatusInternalServerError, ErrInternal)

	if wrapped.Code() != ErrConflict {
		t.Errorf("Wrap should keep the original code, got %s", wrapped.Code())
	}
	if Wrap(nil, "x", 500, ErrInternal) != nil {
		t.Error("Wrap(nil) should be nil")
	}
}
