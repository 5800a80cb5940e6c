package colocations

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/pagination"
)

type fakeRepository struct {
	offers  map[uuid.UUID]*models.Colocation
	deleted []uuid.UUID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{offers: map[uuid.UUID]*models.Colocation{}}
}

func (f *fakeRepository) Create(ctx context.Context, colocation *models.Colocation) error {
	if colocation.ID == uuid.Nil {
		colocation.ID = uuid.New()
	}
	f.offers[colocation.ID] = colocation
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Colocation, error) {
	if offer, ok := f.offers[id]; ok {
		copied := *offer
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) List(ctx context.Context, filter ListFilter, page pagination.Page) ([]models.Colocation, int64, error) {
	var matched []models.Colocation
	for _, offer := range f.offers {
		if filter.Active != nil && offer.Active != *filter.Active {
			continue
		}
		if filter.Boosted != nil && offer.Boosted != *filter.Boosted {
			continue
		}
		if filter.Location != "" && !strings.Contains(strings.ToLower(offer.Location), strings.ToLower(filter.Location)) {
			continue
		}
		matched = append(matched, *offer)
	}
	total := int64(len(matched))
	start, end := page.Bounds(len(matched))
	return matched[start:end], total, nil
}

func (f *fakeRepository) Update(ctx context.Context, colocation *models.Colocation) error {
	f.offers[colocation.ID] = colocation
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.offers, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepository) Search(ctx context.Context, filter SearchFilter) ([]models.Colocation, error) {
	var matched []models.Colocation
	for _, offer := range f.offers {
		if filter.Active != nil && offer.Active != *filter.Active {
			continue
		}
		if filter.Location != "" && !strings.Contains(strings.ToLower(offer.Location), strings.ToLower(filter.Location)) {
			continue
		}
		if filter.Preferences != "" && !strings.Contains(strings.ToLower(offer.ColocatorPreferences), strings.ToLower(filter.Preferences)) {
			continue
		}
		if !containsAllTags(offer.Tags, filter.Tags) {
			continue
		}
		matched = append(matched, *offer)
	}
	return matched, nil
}

func containsAllTags(have []string, want []string) bool {
	for _, tag := range want {
		found := false
		for _, existing := range have {
			if existing == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func newService(t *testing.T, repo Repository) Service {
	t.Helper()

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedOffer(t *testing.T, svc Service, posterID uuid.UUID, location string, tags []string) *models.Colocation {
	t.Helper()

	offer, err := svc.Create(context.Background(), CreateParams{
		PosterID:             posterID,
		Description:          "Chambre dans un appartement partagé",
		Location:             location,
		Tags:                 tags,
		ColocatorPreferences: "non-fumeur, calme",
	})
	if err != nil {
		t.Fatalf("seed offer: %v", err)
	}
	return offer
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	var coded *pkgerrors.Error
	if !pkgerrors.As(err, &coded) || coded.Code() != code {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

func TestCreateDefaultsToActive(t *testing.T) {
	repo := newFakeRepository()
	svc := newService(t, repo)

	offer := seedOffer(t, svc, uuid.New(), "Cocody", []string{"meublé"})
	if !offer.Active {
		t.Fatal("new offers must start active")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newService(t, newFakeRepository())

	_, err := svc.Create(context.Background(), CreateParams{
		Description:          "desc",
		Location:             "Cocody",
		ColocatorPreferences: "calme",
	})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(context.Background(), CreateParams{
		PosterID:    uuid.New(),
		Description: "desc",
		Location:    "Cocody",
	})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateScopedToPoster(t *testing.T) {
	repo := newFakeRepository()
	svc := newService(t, repo)

	poster := uuid.New()
	offer := seedOffer(t, svc, poster, "Cocody", nil)

	_, err := svc.Update(context.Background(), uuid.New(), offer.ID, UpdateParams{})
	expectCode(t, err, pkgerrors.CodeForbidden)

	inactive := false
	description := "Nouvelle description"
	updated, err := svc.Update(context.Background(), poster, offer.ID, UpdateParams{
		Description: &description,
		Active:      &inactive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != description {
		t.Fatalf("unexpected description %q", updated.Description)
	}
	if updated.Active {
		t.Fatal("expected offer deactivated")
	}
	// untouched fields survive partial edits
	if updated.ColocatorPreferences != "non-fumeur, calme" {
		t.Fatalf("preferences must be unchanged, got %q", updated.ColocatorPreferences)
	}
}

func TestDeleteScopedToPoster(t *testing.T) {
	repo := newFakeRepository()
	svc := newService(t, repo)

	poster := uuid.New()
	offer := seedOffer(t, svc, poster, "Cocody", nil)

	expectCode(t, svc.Delete(context.Background(), uuid.New(), offer.ID), pkgerrors.CodeForbidden)

	if err := svc.Delete(context.Background(), poster, offer.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("expected one deletion, got %d", len(repo.deleted))
	}

	_, err := svc.Get(context.Background(), offer.ID)
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestListPaginatesAndFilters(t *testing.T) {
	repo := newFakeRepository()
	svc := newService(t, repo)

	poster := uuid.New()
	seedOffer(t, svc, poster, "Cocody Angré", nil)
	seedOffer(t, svc, poster, "Cocody Riviera", nil)
	seedOffer(t, svc, poster, "Marcory", nil)

	page, err := svc.List(context.Background(), ListFilter{Location: "cocody"}, pagination.Normalize(1, 1))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 matches, got %d", page.Total)
	}
	if page.Pages != 2 {
		t.Fatalf("expected 2 pages, got %d", page.Pages)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item on the page, got %d", len(page.Items))
	}

	empty, err := svc.List(context.Background(), ListFilter{Location: "cocody"}, pagination.Normalize(9, 1))
	if err != nil {
		t.Fatalf("out-of-range list: %v", err)
	}
	if len(empty.Items) != 0 {
		t.Fatalf("out-of-range page must be empty, got %d items", len(empty.Items))
	}
}

func TestSearchRequiresEveryTag(t *testing.T) {
	repo := newFakeRepository()
	svc := newService(t, repo)

	poster := uuid.New()
	seedOffer(t, svc, poster, "Cocody", []string{"meublé", "climatisé"})
	seedOffer(t, svc, poster, "Cocody", []string{"meublé"})

	rows, err := svc.Search(context.Background(), SearchFilter{Tags: []string{"meublé", "climatisé"}})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 match, got %d", len(rows))
	}
}
