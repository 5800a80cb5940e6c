package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/internal/notifications"
	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
)

type fakeRepository struct {
	addFn    func(ctx context.Context, favorite *models.UserFavorite) error
	existsFn func(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	removed  int64
}

func (f *fakeRepository) Add(ctx context.Context, favorite *models.UserFavorite) error {
	if f.addFn != nil {
		return f.addFn(ctx, favorite)
	}
	return nil
}

func (f *fakeRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) (int64, error) {
	return f.removed, nil
}

func (f *fakeRepository) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, userID, propertyID)
	}
	return false, nil
}

func (f *fakeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserFavorite, error) {
	return nil, nil
}

type fakePropertySource struct {
	property *models.Property
	err      error
}

func (f *fakePropertySource) FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.property, nil
}

type fakeUserSource struct {
	user *models.User
}

func (f *fakeUserSource) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.user == nil {
		return nil, errors.New("user missing")
	}
	return f.user, nil
}

type fakeDispatcher struct {
	dispatched []notifications.DispatchParams
	err        error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, params notifications.DispatchParams) (*models.Notification, error) {
	f.dispatched = append(f.dispatched, params)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Notification{}, nil
}

func (f *fakeDispatcher) DispatchAlertMatch(ctx context.Context, recipient models.User, property models.Property) (*models.Notification, error) {
	return &models.Notification{}, nil
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	var coded *pkgerrors.Error
	if !pkgerrors.As(err, &coded) || coded.Code() != code {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	seller := uuid.New()
	svc, _ := NewService(ServiceParams{
		Repo: &fakeRepository{
			existsFn: func(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
				return true, nil
			},
		},
		Properties: &fakePropertySource{property: &models.Property{ID: uuid.New(), SellerID: seller}},
	})

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New())
	expectCode(t, err, pkgerrors.CodeConflict)
}

func TestAddMapsUniqueViolationToConflict(t *testing.T) {
	seller := uuid.New()
	svc, _ := NewService(ServiceParams{
		Repo: &fakeRepository{
			addFn: func(ctx context.Context, favorite *models.UserFavorite) error {
				return errors.New(`duplicate key value violates unique constraint "idx_user_favorites_user_property"`)
			},
		},
		Properties: &fakePropertySource{property: &models.Property{ID: uuid.New(), SellerID: seller}},
	})

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New())
	expectCode(t, err, pkgerrors.CodeConflict)
}

func TestAddMissingProperty(t *testing.T) {
	svc, _ := NewService(ServiceParams{
		Repo:       &fakeRepository{},
		Properties: &fakePropertySource{err: gorm.ErrRecordNotFound},
	})

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New())
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestAddNotifiesOwnerAndPoster(t *testing.T) {
	liker := uuid.New()
	seller := uuid.New()
	dispatcher := &fakeDispatcher{}
	svc, _ := NewService(ServiceParams{
		Repo: &fakeRepository{},
		Properties: &fakePropertySource{property: &models.Property{
			ID:       uuid.New(),
			SellerID: seller,
			Title:    "Villa moderne",
			Address:  "Cocody",
		}},
		Users:      &fakeUserSource{user: &models.User{ID: liker, FirstName: "Awa"}},
		Dispatcher: dispatcher,
	})

	if _, err := svc.Add(context.Background(), liker, uuid.New()); err != nil {
		t.Fatalf("unexpected add error: %v", err)
	}
	if len(dispatcher.dispatched) != 2 {
		t.Fatalf("expected two notifications, got %d", len(dispatcher.dispatched))
	}
	if dispatcher.dispatched[0].UserID != liker || dispatcher.dispatched[0].Kind != enums.NotificationKindInfo {
		t.Fatal("expected the first notification to confirm to the liker")
	}
	if dispatcher.dispatched[1].UserID != seller || dispatcher.dispatched[1].Kind != enums.NotificationKindLike {
		t.Fatal("expected the second notification to reach the poster as a like")
	}
}

func TestAddSurvivesDispatchFailure(t *testing.T) {
	svc, _ := NewService(ServiceParams{
		Repo:       &fakeRepository{},
		Properties: &fakePropertySource{property: &models.Property{ID: uuid.New(), SellerID: uuid.New()}},
		Dispatcher: &fakeDispatcher{err: errors.New("hub down")},
	})

	if _, err := svc.Add(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("expected add to succeed despite dispatch failure, got %v", err)
	}
}

func TestAddSkipsSelfLikeNotification(t *testing.T) {
	owner := uuid.New()
	dispatcher := &fakeDispatcher{}
	svc, _ := NewService(ServiceParams{
		Repo:       &fakeRepository{},
		Properties: &fakePropertySource{property: &models.Property{ID: uuid.New(), SellerID: owner}},
		Dispatcher: dispatcher,
	})

	if _, err := svc.Add(context.Background(), owner, uuid.New()); err != nil {
		t.Fatalf("unexpected add error: %v", err)
	}
	if len(dispatcher.dispatched) != 1 {
		t.Fatalf("expected only the confirmation notification, got %d", len(dispatcher.dispatched))
	}
}
