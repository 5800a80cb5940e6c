package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/logysma/logysma-backend/internal/feed"
	"github.com/logysma/logysma-backend/pkg/logger"
)

type testFeedService struct {
	computeFn func(ctx context.Context, userID uuid.UUID, query feed.Query) (*feed.Page, error)
}

func (s *testFeedService) Compute(ctx context.Context, userID uuid.UUID, query feed.Query) (*feed.Page, error) {
	if s.computeFn != nil {
		return s.computeFn(ctx, userID, query)
	}
	return &feed.Page{}, nil
}

func addRouteParam(r *http.Request, key, value string) *http.Request {
	routeCtx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		routeCtx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
	}
	routeCtx.URLParams.Add(key, value)
	return r
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestFeedSuccess(t *testing.T) {
	userID := uuid.New()
	var gotQuery feed.Query
	svc := &testFeedService{
		computeFn: func(ctx context.Context, uid uuid.UUID, query feed.Query) (*feed.Page, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			gotQuery = query
			return &feed.Page{Total: 3, Pages: 1, CurrentPage: 1}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed/"+userID.String()+"?page=1&limit=10&location=Cocody", nil)
	req = addRouteParam(req, "userId", userID.String())

	resp := httptest.NewRecorder()
	Feed(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if gotQuery.Location != "Cocody" || gotQuery.Page.Number != 1 || gotQuery.Page.Size != 10 {
		t.Fatalf("unexpected query %+v", gotQuery)
	}

	var envelope struct {
		Data feed.Page `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Total != 3 {
		t.Fatalf("unexpected total %d", envelope.Data.Total)
	}
}

func TestFeedInvalidUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed/not-a-uuid", nil)
	req = addRouteParam(req, "userId", "not-a-uuid")

	resp := httptest.NewRecorder()
	Feed(&testFeedService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestFeedBadPageParam(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed/"+userID.String()+"?page=abc", nil)
	req = addRouteParam(req, "userId", userID.String())

	resp := httptest.NewRecorder()
	Feed(&testFeedService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
