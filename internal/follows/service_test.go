package follows

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/internal/notifications"
	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
)

type fakeUserRepo struct {
	users   map[uuid.UUID]*models.User
	updated []*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.updated = append(f.updated, user)
	return nil
}

func (f *fakeUserRepo) CountProperties(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeUserRepo) CountFavorites(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeDispatcher struct {
	dispatched []notifications.DispatchParams
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, params notifications.DispatchParams) (*models.Notification, error) {
	f.dispatched = append(f.dispatched, params)
	return &models.Notification{}, nil
}

func (f *fakeDispatcher) DispatchAlertMatch(ctx context.Context, recipient models.User, property models.Property) (*models.Notification, error) {
	return &models.Notification{}, nil
}

func setup(t *testing.T) (Service, *fakeUserRepo, *fakeDispatcher, uuid.UUID, uuid.UUID) {
	t.Helper()
	follower := uuid.New()
	target := uuid.New()
	repo := &fakeUserRepo{users: map[uuid.UUID]*models.User{
		follower: {ID: follower, FirstName: "Awa"},
		target:   {ID: target, FirstName: "Koffi"},
	}}
	dispatcher := &fakeDispatcher{}
	svc, err := NewService(ServiceParams{Users: repo, Dispatcher: dispatcher})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc, repo, dispatcher, follower, target
}

func TestFollowAddsOnceAndNotifies(t *testing.T) {
	svc, repo, dispatcher, follower, target := setup(t)

	if err := svc.Follow(context.Background(), follower, target); err != nil {
		t.Fatalf("unexpected follow error: %v", err)
	}
	if !repo.users[target].Followers.Contains(follower) {
		t.Fatal("expected the follower in the target's set")
	}
	if len(dispatcher.dispatched) != 1 || dispatcher.dispatched[0].Kind != enums.NotificationKindFollow {
		t.Fatal("expected one follow notification")
	}

	// second follow is a no-op: no update, no duplicate notification
	if err := svc.Follow(context.Background(), follower, target); err != nil {
		t.Fatalf("unexpected repeat follow error: %v", err)
	}
	if repo.users[target].Followers.Len() != 1 {
		t.Fatal("expected no duplicate follower entries")
	}
	if len(repo.updated) != 1 || len(dispatcher.dispatched) != 1 {
		t.Fatal("expected the repeat follow to change nothing")
	}
}

func TestFollowSelfRejected(t *testing.T) {
	svc, _, _, follower, _ := setup(t)
	err := svc.Follow(context.Background(), follower, follower)
	var coded *pkgerrors.Error
	if !pkgerrors.As(err, &coded) || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUnfollow(t *testing.T) {
	svc, repo, _, follower, target := setup(t)
	repo.users[target].Followers.Add(follower)

	if err := svc.Unfollow(context.Background(), follower, target); err != nil {
		t.Fatalf("unexpected unfollow error: %v", err)
	}
	if repo.users[target].Followers.Contains(follower) {
		t.Fatal("expected the follower removed")
	}

	// absent entry stays a no-op
	if err := svc.Unfollow(context.Background(), follower, target); err != nil {
		t.Fatalf("unexpected repeat unfollow error: %v", err)
	}
	if len(repo.updated) != 1 {
		t.Fatal("expected no update for an absent entry")
	}
}
