package feed

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/logysma/logysma-backend/pkg/db/models"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/metrics"
)

// ServiceParams groups dependencies for the feed service.
type ServiceParams struct {
	Repo    Repository
	Metrics *metrics.ListingMetrics
	Now     func() time.Time
}

// Service computes the personalized property feed.
type Service interface {
	Compute(ctx context.Context, userID uuid.UUID, query Query) (*Page, error)
}

type service struct {
	repo    Repository
	metrics *metrics.ListingMetrics
	now     func() time.Time
}

type scored struct {
	property models.Property
	score    int
}

// NewService wires feed dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "feed repository required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{repo: params.Repo, metrics: params.Metrics, now: now}, nil
}

// Compute scores every candidate listing for the user, orders by relevance
// and slices the requested page. Candidates tie on score in retrieval order.
func (s *service) Compute(ctx context.Context, userID uuid.UUID, query Query) (*Page, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	favorites, err := s.repo.ListFavoriteProperties(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favorites")
	}

	alert, err := s.repo.FirstActiveAlert(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load alert")
	}

	filter := CandidateFilter{Location: query.Location}
	if alert != nil {
		filter.MinPrice = alert.MinPrice
		filter.MaxPrice = alert.MaxPrice
		filter.MinBedrooms = alert.Bedrooms
		filter.MinBathrooms = alert.Bathrooms
		filter.PropertyType = alert.PropertyType
	}

	candidates, err := s.repo.ListCandidates(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load candidates")
	}

	prefs := BuildPreferences(favorites)
	now := s.now()

	ranked := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		ranked = append(ranked, scored{property: candidate, score: Score(candidate, prefs, now)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	s.metrics.IncFeedRequest()
	s.metrics.AddScoredProperties(len(ranked))

	total := len(ranked)
	start, end := query.Page.Bounds(total)
	pageSlice := ranked[start:end]

	favoriteIDs := make(map[uuid.UUID]struct{}, len(favorites))
	for _, fav := range favorites {
		favoriteIDs[fav.ID] = struct{}{}
	}

	agents, err := s.loadAgents(ctx, pageSlice)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(pageSlice))
	for _, entry := range pageSlice {
		property := entry.property
		item := Item{
			PropertyID:      property.ID,
			Title:           property.Title,
			Description:     property.Description,
			Address:         property.Address,
			Street:          property.Street,
			District:        property.District,
			Price:           property.Price,
			PropertyType:    property.PropertyType,
			TransactionType: property.TransactionType,
			Bedrooms:        property.Bedrooms,
			Bathrooms:       property.Bathrooms,
			Area:            property.Area,
			SellerID:        property.SellerID,
			Latitude:        property.Latitude,
			Longitude:       property.Longitude,
			Tags:            property.Tags,
			TimePosted:      property.CreatedAt,
			RelevanceScore:  entry.score,
		}

		photos := make([]string, 0, len(property.Photos))
		for _, photo := range property.Photos {
			photos = append(photos, photo.PhotoURL)
		}
		item.Photos = photos
		if len(photos) > 0 {
			item.CoverPhoto = &photos[0]
		}

		if _, liked := favoriteIDs[property.ID]; liked {
			item.HasLiked = true
		}
		if property.AgentID != nil {
			if agent, ok := agents[*property.AgentID]; ok {
				item.Agent = &AgentSummary{
					ID:          agent.ID,
					DisplayName: agent.FirstName,
					PhotoURL:    agent.PhotoURL,
				}
			}
		}

		items = append(items, item)
	}

	return &Page{
		Properties:  items,
		Total:       total,
		Pages:       query.Page.PageCount(total),
		CurrentPage: query.Page.Number,
	}, nil
}

func (s *service) loadAgents(ctx context.Context, entries []scored) (map[uuid.UUID]models.User, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, entry := range entries {
		if entry.property.AgentID == nil {
			continue
		}
		id := *entry.property.AgentID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	users, err := s.repo.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agents")
	}
	byID := make(map[uuid.UUID]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	return byID, nil
}
