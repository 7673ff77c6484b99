package validation

import (
	"errors"
	"testing"

	apperrors "slotlink/pkg/errors"
	"slotlink/pkg/model"
)

func TestCheckClaimRequest(t *testing.T) {
	v := MustNew()

	tests := []struct {
		name     string
		req      model.ClaimRequest
		wantCode string
		wantKey  string
	}{
		{
			name: "valid",
			req:  model.ClaimRequest{LinkID: "l", Date: "2026-10-14", StartTime: "09:00", EndTime: "09:30"},
		},
		{
			name:     "missing link id",
			req:      model.ClaimRequest{Date: "2026-10-14", StartTime: "09:00", EndTime: "09:30"},
			wantCode: apperrors.CodeInvalidRequest,
			wantKey:  "linkId",
		},
		{
			name:     "malformed time",
			req:      model.ClaimRequest{LinkID: "l", Date: "2026-10-14", StartTime: "9am", EndTime: "09:30"},
			wantCode: apperrors.CodeFormat,
			wantKey:  "startTime",
		},
		{
			name:     "malformed date",
			req:      model.ClaimRequest{LinkID: "l", Date: "10/14/2026", StartTime: "09:00", EndTime: "09:30"},
			wantCode: apperrors.CodeFormat,
			wantKey:  "date",
		},
		{
			name:     "missing wins over malformed",
			req:      model.ClaimRequest{Date: "nope", StartTime: "09:00", EndTime: "09:30"},
			wantCode: apperrors.CodeInvalidRequest,
			wantKey:  "linkId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Check(&tt.req)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", appErr.Code, tt.wantCode)
			}
			if _, ok := appErr.Details[tt.wantKey]; !ok {
				t.Errorf("details %v should mention %s", appErr.Details, tt.wantKey)
			}
		})
	}
}

func TestStructUsesJSONFieldNames(t *testing.T) {
	v := MustNew()
	duration := 0
	err := v.Struct(&model.CreateLinkRequest{OwnerID: "o", SlotDurationMinutes: &duration})

	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(errs) != 1 || errs[0].Field != "slotDurationMinutes" {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if errs[0].Message != "slotDurationMinutes must be at least 1" {
		t.Errorf("message = %q", errs[0].Message)
	}
}

func TestUpdateLinkRequiresActive(t *testing.T) {
	v := MustNew()
	if err := v.Check(&model.UpdateLinkRequest{}); !apperrors.HasCode(err, apperrors.CodeInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
	active := false
	if err := v.Check(&model.UpdateLinkRequest{Active: &active}); err != nil {
		t.Errorf("false is a valid value for active: %v", err)
	}
}
