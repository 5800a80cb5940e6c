package properties

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logysma/logysma-backend/internal/notifications"
	"github.com/logysma/logysma-backend/pkg/db/models"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
)

type fakeRepository struct {
	createFn  func(ctx context.Context, property *models.Property) error
	searchFn  func(ctx context.Context, filter SearchFilter) ([]models.Property, error)
	popularFn func(ctx context.Context, limit int) ([]LocationCount, error)
}

func (f *fakeRepository) Create(ctx context.Context, property *models.Property) error {
	if f.createFn != nil {
		return f.createFn(ctx, property)
	}
	property.ID = uuid.New()
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return &models.Property{ID: id}, nil
}

func (f *fakeRepository) Search(ctx context.Context, filter SearchFilter) ([]models.Property, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeRepository) Update(ctx context.Context, property *models.Property) error { return nil }
func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error              { return nil }

func (f *fakeRepository) AddPhotos(ctx context.Context, propertyID uuid.UUID, urls []string) error {
	return nil
}

func (f *fakeRepository) PopularLocations(ctx context.Context, limit int) ([]LocationCount, error) {
	if f.popularFn != nil {
		return f.popularFn(ctx, limit)
	}
	return nil, nil
}

type fakeAlertSource struct {
	alerts []models.PropertyAlert
	err    error
}

func (f *fakeAlertSource) ListActive(ctx context.Context) ([]models.PropertyAlert, error) {
	return f.alerts, f.err
}

type fakeUserSource struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserSource) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, errors.New("user missing")
}

type fakeDispatcher struct {
	dispatchErr error
	alertCalls  []uuid.UUID
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, params notifications.DispatchParams) (*models.Notification, error) {
	return &models.Notification{}, nil
}

func (f *fakeDispatcher) DispatchAlertMatch(ctx context.Context, recipient models.User, property models.Property) (*models.Notification, error) {
	f.alertCalls = append(f.alertCalls, recipient.ID)
	if f.dispatchErr != nil {
		return nil, f.dispatchErr
	}
	return &models.Notification{}, nil
}

func validCreateParams() CreateParams {
	return CreateParams{
		Title:           "Villa moderne",
		Address:         "Rue des Jardins, Cocody",
		Street:          "Rue des Jardins",
		Price:           decimal.NewFromInt(150000),
		PropertyType:    "house",
		TransactionType: "sale",
		Bedrooms:        3,
		Bathrooms:       2,
		SellerID:        uuid.New(),
	}
}

func TestCreateValidates(t *testing.T) {
	svc, _ := NewService(ServiceParams{Repo: &fakeRepository{}})

	params := validCreateParams()
	params.Title = "  "
	_, err := svc.Create(context.Background(), params)
	var coded *pkgerrors.Error
	if !pkgerrors.As(err, &coded) || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}

	params = validCreateParams()
	params.Price = decimal.Zero
	if _, err := svc.Create(context.Background(), params); err == nil {
		t.Fatal("expected validation error for non-positive price")
	}

	params = validCreateParams()
	params.PropertyType = "castle"
	if _, err := svc.Create(context.Background(), params); err == nil {
		t.Fatal("expected validation error for unknown type")
	}
}

func TestCreateNotifiesMatchingAlerts(t *testing.T) {
	buyer := uuid.New()
	minPrice := decimal.NewFromInt(100000)
	alertSource := &fakeAlertSource{
		alerts: []models.PropertyAlert{
			{ID: uuid.New(), UserID: buyer, MinPrice: &minPrice, Active: true},
			{ID: uuid.New(), UserID: uuid.New(), Active: false},
		},
	}
	dispatcher := &fakeDispatcher{}
	svc, _ := NewService(ServiceParams{
		Repo:       &fakeRepository{},
		Alerts:     alertSource,
		Users:      &fakeUserSource{users: map[uuid.UUID]*models.User{buyer: {ID: buyer, Email: "buyer@example.com"}}},
		Dispatcher: dispatcher,
	})

	if _, err := svc.Create(context.Background(), validCreateParams()); err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if len(dispatcher.alertCalls) != 1 || dispatcher.alertCalls[0] != buyer {
		t.Fatalf("expected one alert dispatch to the buyer, got %v", dispatcher.alertCalls)
	}
}

func TestCreateSurvivesDispatchFailure(t *testing.T) {
	buyer := uuid.New()
	alertSource := &fakeAlertSource{
		alerts: []models.PropertyAlert{{ID: uuid.New(), UserID: buyer, Active: true}},
	}
	dispatcher := &fakeDispatcher{dispatchErr: errors.New("smtp down")}
	svc, _ := NewService(ServiceParams{
		Repo:       &fakeRepository{},
		Alerts:     alertSource,
		Users:      &fakeUserSource{users: map[uuid.UUID]*models.User{buyer: {ID: buyer}}},
		Dispatcher: dispatcher,
	})

	property, err := svc.Create(context.Background(), validCreateParams())
	if err != nil {
		t.Fatalf("expected creation to succeed despite dispatch failure, got %v", err)
	}
	if property == nil || property.ID == uuid.Nil {
		t.Fatal("expected the stored listing back")
	}
}

func TestCreateSurvivesAlertListFailure(t *testing.T) {
	svc, _ := NewService(ServiceParams{
		Repo:       &fakeRepository{},
		Alerts:     &fakeAlertSource{err: errors.New("db timeout")},
		Dispatcher: &fakeDispatcher{},
	})

	if _, err := svc.Create(context.Background(), validCreateParams()); err != nil {
		t.Fatalf("expected creation to succeed when alert listing fails, got %v", err)
	}
}

func TestSearchValidatesPriceRange(t *testing.T) {
	svc, _ := NewService(ServiceParams{Repo: &fakeRepository{}})

	min := decimal.NewFromInt(500000)
	max := decimal.NewFromInt(100000)
	_, err := svc.Search(context.Background(), SearchFilter{PriceMin: &min, PriceMax: &max})
	var coded *pkgerrors.Error
	if !pkgerrors.As(err, &coded) || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
