package feed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
)

const (
	freshWeekBonus     = 10
	freshMonthBonus    = 5
	favoriteTypeBonus  = 5
	districtBonus      = 5
	priceAffinityBonus = 5
	photoBonus         = 3
	ratingBonus        = 4

	minPhotosForBonus = 5
	minAvgRating      = 4.0
)

var priceAffinityMargin = decimal.NewFromFloat(0.2)

// Preferences captures what a user's favorites say about their taste. A zero
// value means no favorites and scores only on listing-intrinsic signals.
type Preferences struct {
	PropertyTypes    map[enums.PropertyType]struct{}
	Districts        map[string]struct{}
	AvgFavoritePrice decimal.Decimal
	HasPriceSignal   bool
}

// BuildPreferences derives scoring preferences from favorited listings.
func BuildPreferences(favorites []models.Property) Preferences {
	prefs := Preferences{
		PropertyTypes: make(map[enums.PropertyType]struct{}),
		Districts:     make(map[string]struct{}),
	}
	if len(favorites) == 0 {
		return prefs
	}

	total := decimal.Zero
	for _, fav := range favorites {
		prefs.PropertyTypes[fav.PropertyType] = struct{}{}
		if fav.District != nil {
			prefs.Districts[*fav.District] = struct{}{}
		}
		total = total.Add(fav.Price)
	}
	prefs.AvgFavoritePrice = total.Div(decimal.NewFromInt(int64(len(favorites))))
	prefs.HasPriceSignal = true
	return prefs
}

// Score computes the relevance of a listing for the given preferences. The
// result is deterministic and never negative. Photos and reviews must be
// loaded on the property.
func Score(property models.Property, prefs Preferences, now time.Time) int {
	score := 0

	daysOld := int(now.Sub(property.CreatedAt).Hours() / 24)
	switch {
	case daysOld <= 7:
		score += freshWeekBonus
	case daysOld <= 30:
		score += freshMonthBonus
	}

	if _, ok := prefs.PropertyTypes[property.PropertyType]; ok {
		score += favoriteTypeBonus
	}
	if property.District != nil {
		if _, ok := prefs.Districts[*property.District]; ok {
			score += districtBonus
		}
	}

	if prefs.HasPriceSignal {
		margin := prefs.AvgFavoritePrice.Mul(priceAffinityMargin)
		if property.Price.Sub(prefs.AvgFavoritePrice).Abs().LessThanOrEqual(margin) {
			score += priceAffinityBonus
		}
	}

	if len(property.Photos) >= minPhotosForBonus {
		score += photoBonus
	}

	if avg, ok := averageRating(property.Reviews); ok && avg >= minAvgRating {
		score += ratingBonus
	}

	return score
}

func averageRating(reviews []models.PropertyReview) (float64, bool) {
	if len(reviews) == 0 {
		return 0, false
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	return float64(sum) / float64(len(reviews)), true
}
