package feed

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logysma/logysma-backend/pkg/db/models"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/pagination"
)

type fakeRepository struct {
	listCandidatesFn func(ctx context.Context, filter CandidateFilter) ([]models.Property, error)
	listFavoritesFn  func(ctx context.Context, userID uuid.UUID) ([]models.Property, error)
	firstAlertFn     func(ctx context.Context, userID uuid.UUID) (*models.PropertyAlert, error)
	findUsersFn      func(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
}

func (f *fakeRepository) ListCandidates(ctx context.Context, filter CandidateFilter) ([]models.Property, error) {
	if f.listCandidatesFn != nil {
		return f.listCandidatesFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeRepository) ListFavoriteProperties(ctx context.Context, userID uuid.UUID) ([]models.Property, error) {
	if f.listFavoritesFn != nil {
		return f.listFavoritesFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeRepository) FirstActiveAlert(ctx context.Context, userID uuid.UUID) (*models.PropertyAlert, error) {
	if f.firstAlertFn != nil {
		return f.firstAlertFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeRepository) FindUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	if f.findUsersFn != nil {
		return f.findUsersFn(ctx, ids)
	}
	return nil, nil
}

func newServiceWithRepo(t *testing.T, repo Repository, now time.Time) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestComputeRejectsNilUser(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{}, time.Now())
	_, err := svc.Compute(context.Background(), uuid.Nil, Query{Page: pagination.Normalize(1, 10)})
	var coded *pkgerrors.Error
	if !pkgerrors.As(err, &coded) || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestComputeOrdersByScoreAndKeepsTieOrder(t *testing.T) {
	now := time.Now().UTC()
	fresh := models.Property{ID: uuid.New(), Title: "fresh", Price: decimal.NewFromInt(50000), CreatedAt: now.Add(-48 * time.Hour)}
	staleFirst := models.Property{ID: uuid.New(), Title: "stale-first", Price: decimal.NewFromInt(50000), CreatedAt: now.Add(-90 * 24 * time.Hour)}
	staleSecond := models.Property{ID: uuid.New(), Title: "stale-second", Price: decimal.NewFromInt(50000), CreatedAt: now.Add(-91 * 24 * time.Hour)}

	repo := &fakeRepository{
		listCandidatesFn: func(ctx context.Context, filter CandidateFilter) ([]models.Property, error) {
			return []models.Property{staleFirst, fresh, staleSecond}, nil
		},
	}

	svc := newServiceWithRepo(t, repo, now)
	page, err := svc.Compute(context.Background(), uuid.New(), Query{Page: pagination.Normalize(1, 10)})
	if err != nil {
		t.Fatalf("unexpected compute error: %v", err)
	}
	if len(page.Properties) != 3 {
		t.Fatalf("expected 3 items, got %d", len(page.Properties))
	}
	if page.Properties[0].Title != "fresh" {
		t.Fatalf("expected fresh listing first, got %q", page.Properties[0].Title)
	}
	// equal scores keep retrieval order
	if page.Properties[1].Title != "stale-first" || page.Properties[2].Title != "stale-second" {
		t.Fatalf("expected stable tie order, got %q then %q", page.Properties[1].Title, page.Properties[2].Title)
	}
}

func TestComputePaginatesAfterScoring(t *testing.T) {
	now := time.Now().UTC()
	candidates := make([]models.Property, 0, 15)
	for i := 0; i < 15; i++ {
		candidates = append(candidates, models.Property{
			ID:        uuid.New(),
			Price:     decimal.NewFromInt(10000),
			CreatedAt: now.Add(-time.Duration(100+i) * 24 * time.Hour),
		})
	}
	// only the last retrieved candidate is fresh, so it must lead page one
	candidates[14].CreatedAt = now.Add(-24 * time.Hour)
	freshID := candidates[14].ID

	repo := &fakeRepository{
		listCandidatesFn: func(ctx context.Context, filter CandidateFilter) ([]models.Property, error) {
			return candidates, nil
		},
	}

	svc := newServiceWithRepo(t, repo, now)
	first, err := svc.Compute(context.Background(), uuid.New(), Query{Page: pagination.Normalize(1, 10)})
	if err != nil {
		t.Fatalf("unexpected compute error: %v", err)
	}
	if first.Total != 15 || first.Pages != 2 {
		t.Fatalf("expected total 15 over 2 pages, got %d over %d", first.Total, first.Pages)
	}
	if first.Properties[0].PropertyID != freshID {
		t.Fatal("expected the fresh listing to rank first across the full set")
	}

	second, err := svc.Compute(context.Background(), uuid.New(), Query{Page: pagination.Normalize(2, 10)})
	if err != nil {
		t.Fatalf("unexpected compute error: %v", err)
	}
	if len(second.Properties) != 5 {
		t.Fatalf("expected 5 items on page two, got %d", len(second.Properties))
	}

	empty, err := svc.Compute(context.Background(), uuid.New(), Query{Page: pagination.Normalize(4, 10)})
	if err != nil {
		t.Fatalf("unexpected compute error: %v", err)
	}
	if len(empty.Properties) != 0 {
		t.Fatalf("expected empty page past the end, got %d items", len(empty.Properties))
	}
}

func TestComputeAppliesAlertBounds(t *testing.T) {
	now := time.Now().UTC()
	minPrice := decimal.NewFromInt(100000)
	bedrooms := 3
	propertyType := "house"

	var captured CandidateFilter
	repo := &fakeRepository{
		firstAlertFn: func(ctx context.Context, userID uuid.UUID) (*models.PropertyAlert, error) {
			return &models.PropertyAlert{
				MinPrice:     &minPrice,
				Bedrooms:     &bedrooms,
				PropertyType: &propertyType,
				Active:       true,
			}, nil
		},
		listCandidatesFn: func(ctx context.Context, filter CandidateFilter) ([]models.Property, error) {
			captured = filter
			return nil, nil
		},
	}

	svc := newServiceWithRepo(t, repo, now)
	if _, err := svc.Compute(context.Background(), uuid.New(), Query{Location: "Cocody", Page: pagination.Normalize(1, 10)}); err != nil {
		t.Fatalf("unexpected compute error: %v", err)
	}
	if captured.Location != "Cocody" {
		t.Fatalf("expected location filter, got %q", captured.Location)
	}
	if captured.MinPrice == nil || !captured.MinPrice.Equal(minPrice) {
		t.Fatal("expected alert min price on the filter")
	}
	if captured.MinBedrooms == nil || *captured.MinBedrooms != 3 {
		t.Fatal("expected alert bedrooms as a minimum bound")
	}
	if captured.PropertyType == nil || *captured.PropertyType != "house" {
		t.Fatal("expected alert property type on the filter")
	}
	if captured.MaxPrice != nil || captured.MinBathrooms != nil {
		t.Fatal("expected unset alert criteria to stay unset")
	}
}

func TestComputeMarksFavorites(t *testing.T) {
	now := time.Now().UTC()
	loved := models.Property{ID: uuid.New(), PropertyType: "apartment", Price: decimal.NewFromInt(80000), CreatedAt: now.Add(-40 * 24 * time.Hour)}
	other := models.Property{ID: uuid.New(), PropertyType: "land", Price: decimal.NewFromInt(200000), CreatedAt: now.Add(-40 * 24 * time.Hour)}

	repo := &fakeRepository{
		listFavoritesFn: func(ctx context.Context, userID uuid.UUID) ([]models.Property, error) {
			return []models.Property{loved}, nil
		},
		listCandidatesFn: func(ctx context.Context, filter CandidateFilter) ([]models.Property, error) {
			return []models.Property{loved, other}, nil
		},
	}

	svc := newServiceWithRepo(t, repo, now)
	page, err := svc.Compute(context.Background(), uuid.New(), Query{Page: pagination.Normalize(1, 10)})
	if err != nil {
		t.Fatalf("unexpected compute error: %v", err)
	}
	// the favorited apartment scores type +5 and price-affinity +5
	if page.Properties[0].PropertyID != loved.ID || !page.Properties[0].HasLiked {
		t.Fatal("expected the favorited listing first and marked liked")
	}
	if page.Properties[1].HasLiked {
		t.Fatal("expected the other listing unmarked")
	}
}
