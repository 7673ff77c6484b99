package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"slotlink/pkg/civil"
	apperrors "slotlink/pkg/errors"
	"slotlink/pkg/logger"
	"slotlink/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockAvailabilityService struct {
	upsertFunc func(ctx context.Context, req *model.AvailabilityRequest) (*model.AvailabilityWindow, bool, error)
	listFunc   func(ctx context.Context, ownerID, from string) ([]*model.AvailabilityWindow, error)
}

func (m *mockAvailabilityService) Upsert(ctx context.Context, req *model.AvailabilityRequest) (*model.AvailabilityWindow, bool, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, req)
	}
	return &model.AvailabilityWindow{}, true, nil
}

func (m *mockAvailabilityService) List(ctx context.Context, ownerID, from string) ([]*model.AvailabilityWindow, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID, from)
	}
	return []*model.AvailabilityWindow{}, nil
}

func newRouter(svc *mockAvailabilityService) *httprouter.Router {
	router := httprouter.New()
	NewAvailabilityHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestUpsertStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		created    bool
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "created", body: `{"ownerId":"host-1","date":"2026-10-14","startTime":"09:00","endTime":"17:00"}`, created: true, wantStatus: http.StatusCreated},
		{name: "updated", body: `{"ownerId":"host-1","date":"2026-10-14","startTime":"09:00","endTime":"12:00"}`, wantStatus: http.StatusOK},
		{name: "bad body", body: `{"ownerId":`, wantStatus: http.StatusBadRequest, wantCode: apperrors.CodeInvalidRequest},
		{name: "service rejects", body: `{}`, err: apperrors.InvalidRequest("startTime must be before endTime", nil), wantStatus: http.StatusBadRequest, wantCode: apperrors.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAvailabilityService{
				upsertFunc: func(ctx context.Context, req *model.AvailabilityRequest) (*model.AvailabilityWindow, bool, error) {
					if tt.err != nil {
						return nil, false, tt.err
					}
					return &model.AvailabilityWindow{
						OwnerID:   req.OwnerID,
						Date:      civil.MustParseDate(req.Date),
						StartTime: civil.MustParseClock(req.StartTime),
						EndTime:   civil.MustParseClock(req.EndTime),
					}, tt.created, nil
				},
			}

			req := httptest.NewRequest(http.MethodPost, basePath, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body)
			}
			if tt.wantCode != "" {
				var body apperrors.ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if body.Code != tt.wantCode {
					t.Errorf("code = %s, want %s", body.Code, tt.wantCode)
				}
				return
			}

			var body struct {
				Data map[string]any `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Data["date"] != "2026-10-14" || body.Data["startTime"] != "09:00" {
				t.Errorf("data = %v", body.Data)
			}
		})
	}
}

func TestListPassesQuery(t *testing.T) {
	var gotOwner, gotFrom string
	svc := &mockAvailabilityService{
		listFunc: func(ctx context.Context, ownerID, from string) ([]*model.AvailabilityWindow, error) {
			gotOwner, gotFrom = ownerID, from
			return []*model.AvailabilityWindow{{OwnerID: ownerID, Date: civil.MustParseDate("2026-10-14")}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, basePath+"?ownerId=host-1&from=2026-10-01", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotOwner != "host-1" || gotFrom != "2026-10-01" {
		t.Errorf("owner = %q, from = %q", gotOwner, gotFrom)
	}
	var body struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 {
		t.Errorf("data = %v", body.Data)
	}
}

func TestListWithoutOwner(t *testing.T) {
	svc := &mockAvailabilityService{
		listFunc: func(ctx context.Context, ownerID, from string) ([]*model.AvailabilityWindow, error) {
			return nil, apperrors.InvalidRequest("ownerId is required", nil)
		},
	}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, basePath, nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
