package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/logysma/logysma-backend/api/controllers"
	"github.com/logysma/logysma-backend/api/middleware"
	"github.com/logysma/logysma-backend/internal/alerts"
	"github.com/logysma/logysma-backend/internal/colocations"
	"github.com/logysma/logysma-backend/internal/favorites"
	"github.com/logysma/logysma-backend/internal/feed"
	"github.com/logysma/logysma-backend/internal/follows"
	"github.com/logysma/logysma-backend/internal/messaging"
	"github.com/logysma/logysma-backend/internal/notifications"
	"github.com/logysma/logysma-backend/internal/products"
	"github.com/logysma/logysma-backend/internal/properties"
	"github.com/logysma/logysma-backend/internal/proposals"
	"github.com/logysma/logysma-backend/internal/realtime"
	"github.com/logysma/logysma-backend/internal/reviews"
	"github.com/logysma/logysma-backend/internal/shops"
	"github.com/logysma/logysma-backend/internal/users"
	"github.com/logysma/logysma-backend/internal/videos"
	"github.com/logysma/logysma-backend/pkg/config"
	"github.com/logysma/logysma-backend/pkg/db"
	"github.com/logysma/logysma-backend/pkg/logger"
	"github.com/logysma/logysma-backend/pkg/redis"
)

// Services groups everything the router wires into controllers.
type Services struct {
	Feed          feed.Service
	Properties    properties.Service
	Favorites     favorites.Service
	Alerts        alerts.Service
	Colocations   colocations.Service
	Reviews       reviews.Service
	Notifications notifications.Service
	Products      products.Service
	Shops         shops.Service
	Proposals     proposals.Service
	Videos        videos.Service
	Users         users.Service
	Follows       follows.Service
	Messaging     messaging.Service
	Hub           *realtime.Hub
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Get("/ws/{userId}", controllers.Websocket(svcs.Hub, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/feed/{userId}", controllers.Feed(svcs.Feed, logg))

		r.Route("/properties", func(r chi.Router) {
			r.Post("/", controllers.PropertyCreate(svcs.Properties, logg))
			r.Get("/search", controllers.PropertySearch(svcs.Properties, logg))
			r.Get("/popular-locations", controllers.PopularLocations(svcs.Properties, logg))
			r.Get("/{propertyId}", controllers.PropertyDetail(svcs.Properties, logg))
			r.Delete("/{propertyId}/by/{userId}", controllers.PropertyDelete(svcs.Properties, logg))
			r.Post("/{propertyId}/photos", controllers.PropertyAddPhotos(svcs.Properties, logg))
			r.Post("/{propertyId}/reviews", controllers.ReviewAdd(svcs.Reviews, logg))
			r.Get("/{propertyId}/reviews", controllers.ReviewSummary(svcs.Reviews, logg))
		})

		r.Route("/users/{userId}", func(r chi.Router) {
			r.Get("/", controllers.UserDetail(svcs.Users, logg))
			r.Get("/profile", controllers.UserProfile(svcs.Users, logg))
			r.Post("/rate", controllers.UserRate(svcs.Users, logg))

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", controllers.FavoriteList(svcs.Favorites, logg))
				r.Post("/{propertyId}", controllers.FavoriteAdd(svcs.Favorites, logg))
				r.Delete("/{propertyId}", controllers.FavoriteRemove(svcs.Favorites, logg))
			})

			r.Route("/alerts", func(r chi.Router) {
				r.Get("/", controllers.AlertList(svcs.Alerts, logg))
				r.Post("/{alertId}/deactivate", controllers.AlertDeactivate(svcs.Alerts, logg))
				r.Delete("/{alertId}", controllers.AlertDelete(svcs.Alerts, logg))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
				r.Get("/unread-count", controllers.UnreadNotificationCount(svcs.Notifications, logg))
				r.Post("/{notificationId}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
				r.Post("/read-all", controllers.MarkAllNotificationsRead(svcs.Notifications, logg))
				r.Delete("/{notificationId}", controllers.DeleteNotification(svcs.Notifications, logg))
			})

			r.Route("/followers", func(r chi.Router) {
				r.Get("/", controllers.FollowerList(svcs.Follows, logg))
				r.Post("/{followerId}", controllers.Follow(svcs.Follows, logg))
				r.Delete("/{followerId}", controllers.Unfollow(svcs.Follows, logg))
			})

			r.Get("/shops", controllers.ShopListByUser(svcs.Shops, logg))
			r.Get("/videos", controllers.VideoListByUser(svcs.Videos, logg))
			r.Get("/conversations", controllers.ConversationList(svcs.Messaging, logg))
		})

		r.Post("/users", controllers.UserCreate(svcs.Users, logg))
		r.Post("/alerts", controllers.AlertSubscribe(svcs.Alerts, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.ProductCreate(svcs.Products, logg))
			r.Get("/search", controllers.ProductSearch(svcs.Products, logg))
			r.Get("/{productId}", controllers.ProductDetail(svcs.Products, logg))
			r.Patch("/{productId}/stock", controllers.ProductUpdateStock(svcs.Products, logg))
			r.Delete("/{productId}/by/{userId}", controllers.ProductDelete(svcs.Products, logg))
			r.Post("/{productId}/reviews", controllers.ProductReviewAdd(svcs.Products, logg))
			r.Get("/{productId}/reviews", controllers.ProductReviewList(svcs.Products, logg))
		})

		r.Route("/shops", func(r chi.Router) {
			r.Post("/", controllers.ShopCreate(svcs.Shops, logg))
			r.Get("/{shopId}", controllers.ShopDetail(svcs.Shops, logg))
			r.Delete("/{shopId}/by/{userId}", controllers.ShopDelete(svcs.Shops, logg))
		})
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CategoryCreate(svcs.Shops, logg))
			r.Get("/", controllers.CategoryList(svcs.Shops, logg))
		})

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", controllers.RequestCreate(svcs.Proposals, logg))
			r.Get("/", controllers.RequestList(svcs.Proposals, logg))
			r.Get("/{requestId}/proposals", controllers.ProposalListByRequest(svcs.Proposals, logg))
		})
		r.Route("/proposals", func(r chi.Router) {
			r.Post("/", controllers.ProposalCreate(svcs.Proposals, logg))
			r.Post("/{proposalId}/decision", controllers.ProposalDecide(svcs.Proposals, logg))
		})
		r.Get("/transactions/{transactionId}", controllers.TransactionDetail(svcs.Proposals, logg))

		r.Route("/colocations", func(r chi.Router) {
			r.Post("/", controllers.ColocationCreate(svcs.Colocations, logg))
			r.Get("/", controllers.ColocationList(svcs.Colocations, logg))
			r.Post("/search", controllers.ColocationSearch(svcs.Colocations, logg))
			r.Get("/{colocationId}", controllers.ColocationDetail(svcs.Colocations, logg))
			r.Put("/{colocationId}/by/{userId}", controllers.ColocationUpdate(svcs.Colocations, logg))
			r.Delete("/{colocationId}/by/{userId}", controllers.ColocationDelete(svcs.Colocations, logg))
		})

		r.Route("/videos", func(r chi.Router) {
			r.Post("/", controllers.VideoPublish(svcs.Videos, logg))
			r.Get("/", controllers.VideoList(svcs.Videos, logg))
			r.Get("/{videoId}", controllers.VideoDetail(svcs.Videos, logg))
			r.Delete("/{videoId}/by/{userId}", controllers.VideoDelete(svcs.Videos, logg))
			r.Post("/{videoId}/likes/{userId}", controllers.VideoLike(svcs.Videos, logg))
			r.Delete("/{videoId}/likes/{userId}", controllers.VideoUnlike(svcs.Videos, logg))
			r.Post("/{videoId}/views", controllers.VideoView(svcs.Videos, logg))
		})

		r.Route("/conversations", func(r chi.Router) {
			r.Post("/messages", controllers.MessageSend(svcs.Messaging, logg))
			r.Get("/{conversationId}/messages/for/{userId}", controllers.MessageList(svcs.Messaging, logg))
			r.Post("/{conversationId}/delivered/{userId}", controllers.MessagesMarkDelivered(svcs.Messaging, logg))
			r.Post("/{conversationId}/read/{userId}", controllers.MessagesMarkRead(svcs.Messaging, logg))
		})
	})

	return r
}
