package notifications

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
)

type fakeCounterCache struct {
	values  map[string]string
	sets    map[string]string
	deleted []string
}

func newFakeCounterCache() *fakeCounterCache {
	return &fakeCounterCache{values: map[string]string{}, sets: map[string]string{}}
}

func (f *fakeCounterCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return "", goredis.Nil
}

func (f *fakeCounterCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.sets[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeCounterCache) Del(ctx context.Context, keys ...string) error {
	f.deleted = append(f.deleted, keys...)
	return nil
}

func (f *fakeCounterCache) CounterKey(scope, id string) string {
	return scope + ":" + id
}

func TestUnreadCountPrefersCachedValue(t *testing.T) {
	userID := uuid.New()
	cache := newFakeCounterCache()
	cache.values["unread-notifications:"+userID.String()] = "4"

	repo := &fakeRepository{}
	svc, err := NewService(ServiceParams{Repo: repo, Cache: cache})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	count, err := svc.UnreadCount(context.Background(), userID)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected cached count 4, got %d", count)
	}
}

func TestUnreadCountFallsBackToRepoAndCaches(t *testing.T) {
	userID := uuid.New()
	cache := newFakeCounterCache()

	repo := &fakeRepository{}
	svc, err := NewService(ServiceParams{Repo: repo, Cache: cache})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.UnreadCount(context.Background(), userID); err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if _, ok := cache.sets["unread-notifications:"+userID.String()]; !ok {
		t.Fatal("expected count written back to cache")
	}
}

func TestMarkReadInvalidatesCounter(t *testing.T) {
	userID := uuid.New()
	cache := newFakeCounterCache()

	repo := &fakeRepository{}
	svc, err := NewService(ServiceParams{Repo: repo, Cache: cache})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.MarkRead(context.Background(), userID, uuid.New()); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if len(cache.deleted) != 1 {
		t.Fatalf("expected one counter invalidation, got %d", len(cache.deleted))
	}
}

func TestDeleteMissingNotification(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	err = svc.Delete(context.Background(), uuid.New(), uuid.New())
	var coded *pkgerrors.Error
	if !pkgerrors.As(err, &coded) || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
