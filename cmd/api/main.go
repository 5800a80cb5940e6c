package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/logysma/logysma-backend/api/routes"
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
	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/logger"
	"github.com/logysma/logysma-backend/pkg/mailer"
	"github.com/logysma/logysma-backend/pkg/metrics"
	"github.com/logysma/logysma-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.AutoMigrate {
		if err := autoMigrate(dbClient); err != nil {
			logg.Error(context.Background(), "failed to run auto-migration", err)
			os.Exit(1)
		}
		logg.Info(context.Background(), "schema auto-migration complete")
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	listingMetrics := metrics.NewListingMetrics(registry)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub(realtime.HubParams{
		Config:  cfg.Realtime,
		Metrics: listingMetrics,
		Log:     logg,
	})
	go hub.Run(runCtx)

	mailSender := mailer.New(cfg.SMTP)

	svcs, err := buildServices(cfg, logg, dbClient, redisClient, listingMetrics, hub, mailSender)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(runCtx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, svcs),
	}

	go func() {
		<-runCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "server shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

func buildServices(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	listingMetrics *metrics.ListingMetrics,
	hub *realtime.Hub,
	mailSender mailer.Sender,
) (routes.Services, error) {
	gormDB := dbClient.DB()

	usersRepo := users.NewRepository(gormDB)
	propertiesRepo := properties.NewRepository(gormDB)
	alertsRepo := alerts.NewRepository(gormDB)
	notificationsRepo := notifications.NewRepository(gormDB)

	dispatcher, err := notifications.NewDispatcher(notifications.DispatcherParams{
		Repo:     notificationsRepo,
		Realtime: hub,
		Mail:     mailSender,
		Cache:    redisClient,
		Metrics:  listingMetrics,
		Log:      logg,
		SiteURL:  cfg.App.SiteURL,
	})
	if err != nil {
		return routes.Services{}, err
	}

	notificationsSvc, err := notifications.NewService(notifications.ServiceParams{
		Repo:  notificationsRepo,
		Cache: redisClient,
		Log:   logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	feedSvc, err := feed.NewService(feed.ServiceParams{
		Repo:    feed.NewRepository(gormDB),
		Metrics: listingMetrics,
	})
	if err != nil {
		return routes.Services{}, err
	}

	propertiesSvc, err := properties.NewService(properties.ServiceParams{
		Repo:       propertiesRepo,
		Alerts:     alertsRepo,
		Users:      usersRepo,
		Dispatcher: dispatcher,
		Cache:      redisClient,
		Metrics:    listingMetrics,
		Log:        logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	favoritesSvc, err := favorites.NewService(favorites.ServiceParams{
		Repo:       favorites.NewRepository(gormDB),
		Properties: propertiesRepo,
		Users:      usersRepo,
		Dispatcher: dispatcher,
		Log:        logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	alertsSvc, err := alerts.NewService(alertsRepo)
	if err != nil {
		return routes.Services{}, err
	}

	colocationsSvc, err := colocations.NewService(colocations.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}

	reviewsSvc, err := reviews.NewService(reviews.ServiceParams{
		Repo:       reviews.NewRepository(gormDB),
		Properties: propertiesRepo,
		Dispatcher: dispatcher,
		Log:        logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	productsSvc, err := products.NewService(products.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}

	shopsSvc, err := shops.NewService(shops.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}

	proposalsSvc, err := proposals.NewService(proposals.ServiceParams{
		Repo:       proposals.NewRepository(gormDB),
		Dispatcher: dispatcher,
		Log:        logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	videosSvc, err := videos.NewService(videos.ServiceParams{
		Repo:       videos.NewRepository(gormDB),
		Users:      usersRepo,
		Dispatcher: dispatcher,
		Log:        logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	usersSvc, err := users.NewService(usersRepo)
	if err != nil {
		return routes.Services{}, err
	}

	followsSvc, err := follows.NewService(follows.ServiceParams{
		Users:      usersRepo,
		Dispatcher: dispatcher,
		Log:        logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	messagingSvc, err := messaging.NewService(messaging.ServiceParams{
		Repo:     messaging.NewRepository(gormDB),
		Realtime: hub,
		Log:      logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Feed:          feedSvc,
		Properties:    propertiesSvc,
		Favorites:     favoritesSvc,
		Alerts:        alertsSvc,
		Colocations:   colocationsSvc,
		Reviews:       reviewsSvc,
		Notifications: notificationsSvc,
		Products:      productsSvc,
		Shops:         shopsSvc,
		Proposals:     proposalsSvc,
		Videos:        videosSvc,
		Users:         usersSvc,
		Follows:       followsSvc,
		Messaging:     messagingSvc,
		Hub:           hub,
	}, nil
}

func autoMigrate(dbClient *db.Client) error {
	return dbClient.DB().AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyPhoto{},
		&models.PropertyReview{},
		&models.PropertyAlert{},
		&models.UserFavorite{},
		&models.Notification{},
		&models.CommercialProduct{},
		&models.CommercialProductPhoto{},
		&models.CommercialProductReview{},
		&models.Shop{},
		&models.Category{},
		&models.Proposal{},
		&models.PropertyRequest{},
		&models.Video{},
		&models.VideoLike{},
		&models.Conversation{},
		&models.Message{},
		&models.Transaction{},
		&models.Colocation{},
	)
}
