package products

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
)

// CreateParams describes a new marketplace product.
type CreateParams struct {
	Name        string
	Description *string
	SellerID    uuid.UUID
	ShopID      *uuid.UUID
	Price       decimal.Decimal
	ImageURL    *string
	Stock       int
	Category    *string
	Tags        []string
	PhotoURLs   []string
}

// ReviewParams describes buyer feedback on a product.
type ReviewParams struct {
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Text      *string
}

// Service exposes marketplace product operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.CommercialProduct, error)
	Get(ctx context.Context, id uuid.UUID) (*models.CommercialProduct, error)
	Search(ctx context.Context, filter SearchFilter) ([]models.CommercialProduct, error)
	UpdateStock(ctx context.Context, sellerID, productID uuid.UUID, stock int) error
	Delete(ctx context.Context, sellerID, productID uuid.UUID) error
	AddReview(ctx context.Context, params ReviewParams) (*models.CommercialProductReview, error)
	ListReviews(ctx context.Context, productID uuid.UUID) ([]models.CommercialProductReview, error)
}

type service struct {
	repo Repository
}

// NewService wires product dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.CommercialProduct, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if params.SellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id required")
	}
	if !params.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if params.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	product := &models.CommercialProduct{
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
		SellerID:    params.SellerID,
		ShopID:      params.ShopID,
		Price:       params.Price,
		ImageURL:    params.ImageURL,
		Stock:       params.Stock,
		IsActive:    true,
		Category:    params.Category,
		Tags:        params.Tags,
	}
	for _, url := range params.PhotoURLs {
		product.Photos = append(product.Photos, models.CommercialProductPhoto{PhotoURL: url})
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return product, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.CommercialProduct, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) Search(ctx context.Context, filter SearchFilter) ([]models.CommercialProduct, error) {
	if filter.PriceMin != nil && filter.PriceMax != nil && filter.PriceMin.GreaterThan(*filter.PriceMax) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_min exceeds price_max")
	}
	if filter.SortBy == "" {
		filter.SortBy = SortByCreatedAt
		filter.Descending = true
	}
	results, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	return results, nil
}

func (s *service) UpdateStock(ctx context.Context, sellerID, productID uuid.UUID, stock int) error {
	if stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	product, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return err
	}
	product.Stock = stock
	if err := s.repo.Update(ctx, product); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update stock")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, sellerID, productID uuid.UUID) error {
	product, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, product.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) AddReview(ctx context.Context, params ReviewParams) (*models.CommercialProductReview, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if _, err := s.Get(ctx, params.ProductID); err != nil {
		return nil, err
	}
	review := &models.CommercialProductReview{
		ProductID:  params.ProductID,
		UserID:     params.UserID,
		Rating:     params.Rating,
		ReviewText: params.Text,
	}
	if err := s.repo.AddReview(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store product review")
	}
	return review, nil
}

func (s *service) ListReviews(ctx context.Context, productID uuid.UUID) ([]models.CommercialProductReview, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	rows, err := s.repo.ListReviews(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product reviews")
	}
	return rows, nil
}

func (s *service) ownedProduct(ctx context.Context, sellerID, productID uuid.UUID) (*models.CommercialProduct, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id required")
	}
	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another seller")
	}
	return product, nil
}
