package colocations

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/pagination"
	"github.com/logysma/logysma-backend/pkg/types"
)

// CreateParams describes a new roommate offer.
type CreateParams struct {
	PosterID             uuid.UUID
	Description          string
	Location             string
	ImageURLs            []string
	Tags                 []string
	ColocatorPreferences string
	Requirements         map[string]any
	Boosted              bool
	PostTags             map[string]any
}

// UpdateParams carries partial edits; nil fields stay untouched.
type UpdateParams struct {
	Description          *string
	Location             *string
	ImageURLs            []string
	Tags                 []string
	ColocatorPreferences *string
	Requirements         map[string]any
	Boosted              *bool
	Active               *bool
	PostTags             map[string]any
}

// Page is one slice of the offer listing with pagination totals.
type Page struct {
	Items       []models.Colocation `json:"colocations"`
	Total       int64               `json:"total"`
	Pages       int                 `json:"pages"`
	CurrentPage int                 `json:"current_page"`
}

// Service manages roommate-listing offers.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Colocation, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Colocation, error)
	List(ctx context.Context, filter ListFilter, page pagination.Page) (*Page, error)
	Update(ctx context.Context, posterID, id uuid.UUID, params UpdateParams) (*models.Colocation, error)
	Delete(ctx context.Context, posterID, id uuid.UUID) error
	Search(ctx context.Context, filter SearchFilter) ([]models.Colocation, error)
}

type service struct {
	repo Repository
}

// NewService wires the colocation repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "colocations repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Colocation, error) {
	if params.PosterID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "poster id required")
	}
	if strings.TrimSpace(params.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description required")
	}
	if strings.TrimSpace(params.Location) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location required")
	}
	if strings.TrimSpace(params.ColocatorPreferences) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "colocator preferences required")
	}

	colocation := &models.Colocation{
		PosterID:             params.PosterID,
		Description:          strings.TrimSpace(params.Description),
		Location:             strings.TrimSpace(params.Location),
		ImageURLs:            params.ImageURLs,
		Tags:                 params.Tags,
		ColocatorPreferences: strings.TrimSpace(params.ColocatorPreferences),
		Requirements:         types.JSONMap(params.Requirements),
		Boosted:              params.Boosted,
		Active:               true,
		PostTags:             types.JSONMap(params.PostTags),
	}
	if err := s.repo.Create(ctx, colocation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create colocation")
	}
	return colocation, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Colocation, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "colocation id required")
	}
	return s.load(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Page) (*Page, error) {
	rows, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list colocations")
	}
	return &Page{
		Items:       rows,
		Total:       total,
		Pages:       page.PageCount(int(total)),
		CurrentPage: page.Number,
	}, nil
}

// Update applies partial edits, poster only.
func (s *service) Update(ctx context.Context, posterID, id uuid.UUID, params UpdateParams) (*models.Colocation, error) {
	if posterID == uuid.Nil || id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "poster id and colocation id required")
	}

	colocation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if colocation.PosterID != posterID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "colocation belongs to another user")
	}

	if params.Description != nil {
		if strings.TrimSpace(*params.Description) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "description cannot be blank")
		}
		colocation.Description = strings.TrimSpace(*params.Description)
	}
	if params.Location != nil {
		if strings.TrimSpace(*params.Location) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "location cannot be blank")
		}
		colocation.Location = strings.TrimSpace(*params.Location)
	}
	if params.ImageURLs != nil {
		colocation.ImageURLs = params.ImageURLs
	}
	if params.Tags != nil {
		colocation.Tags = params.Tags
	}
	if params.ColocatorPreferences != nil {
		colocation.ColocatorPreferences = strings.TrimSpace(*params.ColocatorPreferences)
	}
	if params.Requirements != nil {
		colocation.Requirements = types.JSONMap(params.Requirements)
	}
	if params.Boosted != nil {
		colocation.Boosted = *params.Boosted
	}
	if params.Active != nil {
		colocation.Active = *params.Active
	}
	if params.PostTags != nil {
		colocation.PostTags = types.JSONMap(params.PostTags)
	}

	if err := s.repo.Update(ctx, colocation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update colocation")
	}
	return colocation, nil
}

// Delete removes an offer, poster only.
func (s *service) Delete(ctx context.Context, posterID, id uuid.UUID) error {
	if posterID == uuid.Nil || id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "poster id and colocation id required")
	}

	colocation, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if colocation.PosterID != posterID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "colocation belongs to another user")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete colocation")
	}
	return nil
}

func (s *service) Search(ctx context.Context, filter SearchFilter) ([]models.Colocation, error) {
	rows, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search colocations")
	}
	return rows, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Colocation, error) {
	colocation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "colocation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load colocation")
	}
	return colocation, nil
}
