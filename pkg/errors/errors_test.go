package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   &AppError{Code: CodeNotFound, Message: "link not found"},
			expected: "NOT_FOUND: link not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeStore,
				Message: "failed to insert booking",
				Err:     errors.New("connection reset"),
			},
			expected: "STORE_ERROR: failed to insert booking (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConstructorsStatusAndCode(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"format", Format("invalid date", nil), CodeFormat, http.StatusBadRequest},
		{"not found", NotFound("Link"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Link", "abc"), CodeNotFound, http.StatusNotFound},
		{"conflict", Conflict("Slot already booked"), CodeConflict, http.StatusConflict},
		{"invalid request", InvalidRequest("No availability", nil), CodeInvalidRequest, http.StatusBadRequest},
		{"store", Store("failed", errors.New("x")), CodeStore, http.StatusInternalServerError},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("slow"), CodeTimeout, http.StatusServiceUnavailable},
		{"rate limited", RateLimited("slow down"), CodeRateLimited, http.StatusTooManyRequests},
		{"media type", UnsupportedMediaType("json only"), CodeUnsupportedMediaType, http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Link", "12345")

	if err.Message != "Link not found" {
		t.Errorf("expected message 'Link not found', got %s", err.Message)
	}
	if err.Details["id"] != "12345" {
		t.Errorf("expected id detail '12345', got %v", err.Details["id"])
	}
}

func TestAsAppError(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		original := Conflict("taken")
		if got := AsAppError(original); got != original {
			t.Errorf("expected the same AppError back")
		}
	})

	t.Run("wrapped with fmt", func(t *testing.T) {
		original := NotFound("Link")
		wrapped := fmt.Errorf("handler: %w", original)
		if got := AsAppError(wrapped); got != original {
			t.Errorf("expected AsAppError to unwrap to the original")
		}
		if !HasCode(wrapped, CodeNotFound) {
			t.Errorf("HasCode should see through the wrapping")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		plain := errors.New("boom")
		got := AsAppError(plain)
		if got.Code != CodeInternal {
			t.Errorf("expected %s, got %s", CodeInternal, got.Code)
		}
		if got.Err != plain {
			t.Errorf("expected cause to be preserved")
		}
	})
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("claim: %w", Conflict("taken"))
	if !HasCode(err, CodeConflict) {
		t.Error("expected CONFLICT")
	}
	if HasCode(err, CodeNotFound) {
		t.Error("did not expect NOT_FOUND")
	}
	if HasCode(errors.New("plain"), CodeConflict) {
		t.Error("plain errors carry no code")
	}
}

func TestResponseOmitsCause(t *testing.T) {
	err := Store("failed to list bookings", errors.New("secret driver detail"))
	err.WithDetails(map[string]any{"link_id": "abc"})

	data, jsonErr := json.Marshal(err.Response())
	if jsonErr != nil {
		t.Fatalf("marshal: %v", jsonErr)
	}
	var decoded map[string]any
	if jsonErr := json.Unmarshal(data, &decoded); jsonErr != nil {
		t.Fatalf("unmarshal: %v", jsonErr)
	}
	if decoded["code"] != CodeStore {
		t.Errorf("code = %v", decoded["code"])
	}
	if _, ok := decoded["Err"]; ok {
		t.Errorf("cause must not be serialized")
	}
	details, ok := decoded["details"].(map[string]any)
	if !ok || details["link_id"] != "abc" {
		t.Errorf("details = %v", decoded["details"])
	}
}
