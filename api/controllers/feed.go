package controllers

import (
	"net/http"
	"strings"

	"github.com/logysma/logysma-backend/api/responses"
	"github.com/logysma/logysma-backend/api/validators"
	"github.com/logysma/logysma-backend/internal/feed"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/logger"
	"github.com/logysma/logysma-backend/pkg/pagination"
)

// Feed serves the personalized listing feed for one user.
func Feed(svc feed.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "feed service unavailable"))
			return
		}

		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 100000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		size, err := validators.ParseQueryInt(r, "limit", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := feed.Query{
			Location: strings.TrimSpace(r.URL.Query().Get("location")),
			Page:     pagination.Normalize(page, size),
		}

		result, err := svc.Compute(r.Context(), userID, query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
