package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "slotlink/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"conflict", apperrors.Conflict("Slot already booked"), http.StatusConflict, apperrors.CodeConflict},
		{"format", apperrors.Format("invalid time", nil), http.StatusBadRequest, apperrors.CodeFormat},
		{"plain error", errors.New("driver exploded"), http.StatusInternalServerError, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatalf("WriteError: %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != ContentTypeJSON {
				t.Errorf("content type = %q", ct)
			}

			var body apperrors.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", body.Code, tt.wantCode)
			}
			if tt.wantCode == apperrors.CodeInternal && body.Message == "driver exploded" {
				t.Error("internal causes must not leak to clients")
			}
		})
	}
}

func TestWriteCreatedEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteCreated(rec, map[string]string{"linkId": "abc"}); err != nil {
		t.Fatalf("WriteCreated: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}

	var body struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data["linkId"] != "abc" {
		t.Errorf("data = %v", body.Data)
	}
}

func TestWriteSuccessEmptyListIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteSuccess(rec, []string{}); err != nil {
		t.Fatalf("WriteSuccess: %v", err)
	}
	if got := rec.Body.String(); got != "{\"data\":[]}\n" {
		t.Errorf("body = %q", got)
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		OwnerID string `json:"ownerId"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"ownerId":"host-1"}`))
	if err := DecodeJSON(r, &v); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if v.OwnerID != "host-1" {
		t.Errorf("ownerId = %q", v.OwnerID)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"ownerId":`))
	if err := DecodeJSON(r, &v); !apperrors.HasCode(err, apperrors.CodeInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}
