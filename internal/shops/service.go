package shops

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db"
	"github.com/logysma/logysma-backend/pkg/db/models"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
)

// CreateParams describes a new storefront.
type CreateParams struct {
	UserID      uuid.UUID
	CategoryID  *uuid.UUID
	Name        string
	Description *string
	Address     *string
	City        *string
	Country     *string
	Phone       *string
	Email       *string
	Logo        *string
	CoverImage  *string
	Subcategory *string
	Website     *string
}

// Service exposes storefront operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Shop, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Shop, error)
	Delete(ctx context.Context, userID, shopID uuid.UUID) error
	CreateCategory(ctx context.Context, name string, description *string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type service struct {
	repo Repository
}

// NewService wires shop dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "shops repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Shop, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name required")
	}

	shop := &models.Shop{
		UserID:      params.UserID,
		CategoryID:  params.CategoryID,
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
		Address:     params.Address,
		City:        params.City,
		Country:     params.Country,
		Phone:       params.Phone,
		Email:       params.Email,
		Logo:        params.Logo,
		CoverImage:  params.CoverImage,
		Subcategory: params.Subcategory,
		Website:     params.Website,
	}
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop")
	}
	return shop, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id required")
	}
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	return shop, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Shop, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	shops, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shops")
	}
	return shops, nil
}

func (s *service) Delete(ctx context.Context, userID, shopID uuid.UUID) error {
	shop, err := s.Get(ctx, shopID)
	if err != nil {
		return err
	}
	if shop.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "shop belongs to another user")
	}
	if err := s.repo.Delete(ctx, shopID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shop")
	}
	return nil
}

func (s *service) CreateCategory(ctx context.Context, name string, description *string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	category := &models.Category{Name: strings.TrimSpace(name), Description: description}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return category, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}
