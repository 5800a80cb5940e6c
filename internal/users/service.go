package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db"
	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/types"
)

// Profile combines the user row with derived counters.
type Profile struct {
	User          models.User `json:"user"`
	PropertyCount int64       `json:"property_count"`
	FavoriteCount int64       `json:"favorite_count"`
	FollowerCount int         `json:"follower_count"`
}

// CreateParams describes a new account.
type CreateParams struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	Role      string
}

// RateParams records one user's opinion of another.
type RateParams struct {
	TargetID uuid.UUID
	AuthorID uuid.UUID
	Rating   int
	Text     string
}

// Service exposes account operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	Rate(ctx context.Context, params RateParams) (*models.User, error)
}

type service struct {
	repo Repository
}

// NewService wires user dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid email required")
	}
	if strings.TrimSpace(params.FirstName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name required")
	}
	role := enums.UserRoleBuyer
	if params.Role != "" {
		role = enums.UserRole(params.Role)
		if !role.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
		}
	}

	user := &models.User{
		FirstName: strings.TrimSpace(params.FirstName),
		LastName:  strings.TrimSpace(params.LastName),
		Email:     email,
		Phone:     params.Phone,
		Role:      role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return user, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	propertyCount, err := s.repo.CountProperties(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count properties")
	}
	favoriteCount, err := s.repo.CountFavorites(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count favorites")
	}
	return &Profile{
		User:          *user,
		PropertyCount: propertyCount,
		FavoriteCount: favoriteCount,
		FollowerCount: user.Followers.Len(),
	}, nil
}

// Rate appends an entry to the target's review list and refreshes the
// aggregate rating stored on the row.
func (s *service) Rate(ctx context.Context, params RateParams) (*models.User, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if params.TargetID == params.AuthorID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot rate yourself")
	}

	target, err := s.Get(ctx, params.TargetID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, params.AuthorID); err != nil {
		return nil, err
	}

	target.Reviews.Append(types.ReviewEntry{
		AuthorID: params.AuthorID,
		Rating:   params.Rating,
		Text:     strings.TrimSpace(params.Text),
		PostedAt: time.Now().UTC(),
	})
	if avg, ok := target.Reviews.AverageRating(); ok {
		target.Rating = avg
	}
	if err := s.repo.Update(ctx, target); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store user rating")
	}
	return target, nil
}
