package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/logysma/logysma-backend/pkg/db/models"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
)

type testNotificationsService struct {
	listFn        func(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error)
	unreadCountFn func(ctx context.Context, userID uuid.UUID) (int64, error)
	markReadFn    func(ctx context.Context, userID, notificationID uuid.UUID) error
	markAllReadFn func(ctx context.Context, userID uuid.UUID) (int64, error)
	deleteFn      func(ctx context.Context, userID, notificationID uuid.UUID) error
}

func (s *testNotificationsService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID, unreadOnly)
	}
	return nil, nil
}

func (s *testNotificationsService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.unreadCountFn != nil {
		return s.unreadCountFn(ctx, userID)
	}
	return 0, nil
}

func (s *testNotificationsService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, userID, notificationID)
	}
	return nil
}

func (s *testNotificationsService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, userID)
	}
	return 0, nil
}

func (s *testNotificationsService) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, userID, notificationID)
	}
	return nil
}

func TestMarkNotificationReadSuccess(t *testing.T) {
	userID := uuid.New()
	notificationID := uuid.New()
	called := false
	svc := &testNotificationsService{
		markReadFn: func(ctx context.Context, uid, nid uuid.UUID) error {
			called = true
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			if nid != notificationID {
				t.Fatalf("unexpected notification %s", nid)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/"+userID.String()+"/notifications/"+notificationID.String()+"/read", nil)
	req = addRouteParam(req, "userId", userID.String())
	req = addRouteParam(req, "notificationId", notificationID.String())

	resp := httptest.NewRecorder()
	MarkNotificationRead(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
}

func TestMarkNotificationReadNotFound(t *testing.T) {
	svc := &testNotificationsService{
		markReadFn: func(ctx context.Context, uid, nid uuid.UUID) error {
			return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/"+uuid.NewString()+"/notifications/"+uuid.NewString()+"/read", nil)
	req = addRouteParam(req, "userId", uuid.NewString())
	req = addRouteParam(req, "notificationId", uuid.NewString())

	resp := httptest.NewRecorder()
	MarkNotificationRead(svc, testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestUnreadNotificationCount(t *testing.T) {
	userID := uuid.New()
	svc := &testNotificationsService{
		unreadCountFn: func(ctx context.Context, uid uuid.UUID) (int64, error) {
			return 7, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String()+"/notifications/unread-count", nil)
	req = addRouteParam(req, "userId", userID.String())

	resp := httptest.NewRecorder()
	UnreadNotificationCount(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["unread"] != 7 {
		t.Fatalf("unexpected unread count %d", envelope.Data["unread"])
	}
}

func TestListNotificationsInvalidUnreadOnly(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String()+"/notifications?unreadOnly=maybe", nil)
	req = addRouteParam(req, "userId", userID.String())

	resp := httptest.NewRecorder()
	ListNotifications(&testNotificationsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
