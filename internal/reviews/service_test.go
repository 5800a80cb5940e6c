package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/logysma/logysma-backend/internal/notifications"
	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
)

type fakeRepository struct {
	created []*models.PropertyReview
}

func (f *fakeRepository) Create(ctx context.Context, review *models.PropertyReview) error {
	f.created = append(f.created, review)
	return nil
}

func (f *fakeRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.PropertyReview, error) {
	return nil, nil
}

func (f *fakeRepository) AverageRating(ctx context.Context, propertyID uuid.UUID) (float64, error) {
	return 0, nil
}

type fakePropertySource struct {
	property *models.Property
}

func (f *fakePropertySource) FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return f.property, nil
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

func TestAddRejectsOutOfRangeRating(t *testing.T) {
	svc, _ := NewService(ServiceParams{
		Repo:       &fakeRepository{},
		Properties: &fakePropertySource{property: &models.Property{ID: uuid.New(), SellerID: uuid.New()}},
	})

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Add(context.Background(), AddParams{PropertyID: uuid.New(), UserID: uuid.New(), Rating: rating})
		var coded *pkgerrors.Error
		if !pkgerrors.As(err, &coded) || coded.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for rating %d, got %v", rating, err)
		}
	}
}

func TestAddStoresAndNotifiesPoster(t *testing.T) {
	seller := uuid.New()
	repo := &fakeRepository{}
	dispatcher := &fakeDispatcher{}
	svc, _ := NewService(ServiceParams{
		Repo:       repo,
		Properties: &fakePropertySource{property: &models.Property{ID: uuid.New(), SellerID: seller, Title: "Villa"}},
		Dispatcher: dispatcher,
	})

	review, err := svc.Add(context.Background(), AddParams{PropertyID: uuid.New(), UserID: uuid.New(), Rating: 5})
	if err != nil {
		t.Fatalf("unexpected add error: %v", err)
	}
	if review.Rating != 5 || len(repo.created) != 1 {
		t.Fatal("expected the review stored")
	}
	if len(dispatcher.dispatched) != 1 || dispatcher.dispatched[0].UserID != seller {
		t.Fatal("expected a notification to the seller")
	}
	if dispatcher.dispatched[0].Kind != enums.NotificationKindReview {
		t.Fatalf("expected review kind, got %s", dispatcher.dispatched[0].Kind)
	}
}

func TestAddSkipsSelfReviewNotification(t *testing.T) {
	owner := uuid.New()
	dispatcher := &fakeDispatcher{}
	svc, _ := NewService(ServiceParams{
		Repo:       &fakeRepository{},
		Properties: &fakePropertySource{property: &models.Property{ID: uuid.New(), SellerID: owner}},
		Dispatcher: dispatcher,
	})

	if _, err := svc.Add(context.Background(), AddParams{PropertyID: uuid.New(), UserID: owner, Rating: 4}); err != nil {
		t.Fatalf("unexpected add error: %v", err)
	}
	if len(dispatcher.dispatched) != 0 {
		t.Fatal("expected no notification for a self-review")
	}
}
