// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/RubenLpc/BucovinaStay-backend/docs" // swagger docs
	"github.com/RubenLpc/BucovinaStay-backend/internal/activity"
	"github.com/RubenLpc/BucovinaStay-backend/internal/cache"
	"github.com/RubenLpc/BucovinaStay-backend/internal/config"
	"github.com/RubenLpc/BucovinaStay-backend/internal/database"
	"github.com/RubenLpc/BucovinaStay-backend/internal/embedding"
	"github.com/RubenLpc/BucovinaStay-backend/internal/featureflags"
	"github.com/RubenLpc/BucovinaStay-backend/internal/middleware"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/notifications"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
	"github.com/RubenLpc/BucovinaStay-backend/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	verifier     middleware.TokenVerifier
	notifier     *notifications.Notifier
	hub          *notifications.Hub
	recorder     *activity.Recorder
	featureFlags *featureflags.Manager

	settings *service.SettingsService
	hosts    *service.HostProfileService
	stats    *service.StatsService
	listings *service.ListingService
	reviews  *service.ReviewService
	users    *service.UserService
	activity *service.ActivityService

	messages     *service.MessageService
	favorites    *service.FavoriteService
	hostSettings *service.HostSettingsService
	analytics    *service.AnalyticsService
}

// NewServer connects to the database and Redis and builds a Server on top of them.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis is optional: without it caches, rate limits and live feeds degrade to no-ops.
	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, fmt.Errorf("server: config and database are required")
	}

	listingRepo := repository.NewListingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	profileRepo := repository.NewHostProfileRepository(db)
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("bucovinastay-api"),
		verifier: middleware.TokenVerifier{
			Secret:   []byte(cfg.JWTSecret),
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		},
		featureFlags: featureflags.NewManager(cfg.FeatureFlags),
	}

	var publisher activity.Publisher
	if redisClient != nil {
		s.notifier = notifications.NewNotifier(redisClient)
		s.hub = notifications.NewHub()
		publisher = s.notifier
	}
	s.recorder = activity.NewRecorder(activityRepo, publisher, cfg.ActivityBufferSize)

	var embedder embedding.Enqueuer
	if redisClient != nil && s.featureFlags.Enabled(featureflags.ListingEmbeddings, 0) {
		embedder = embedding.NewQueue(redisClient)
	}

	s.settings = service.NewSettingsService(settingsRepo)
	s.hosts = service.NewHostProfileService(profileRepo, userRepo)
	s.stats = service.NewStatsService(listingRepo, reviewRepo, profileRepo, s.hosts)
	s.listings = service.NewListingService(service.ListingDeps{
		Listings:        listingRepo,
		Settings:        s.settings,
		Hosts:           s.hosts,
		Stats:           s.stats,
		Sink:            s.recorder,
		Embedder:        embedder,
		PolicyStaleness: cfg.PolicyMaxStaleness(),
	})
	s.reviews = service.NewReviewService(reviewRepo, listingRepo, s.stats)
	s.users = service.NewUserService(userRepo, s.hosts)
	s.activity = service.NewActivityService(activityRepo, listingRepo, s.recorder)
	s.messages = service.NewMessageService(repository.NewMessageRepository(db), listingRepo, s.recorder)
	s.favorites = service.NewFavoriteService(repository.NewFavoriteRepository(db), listingRepo)
	s.hostSettings = service.NewHostSettingsService(repository.NewHostSettingsRepository(db))
	s.analytics = service.NewAnalyticsService(activityRepo, repository.NewOverviewRepository(db), listingRepo)

	return s, nil
}

const defaultGlobalRateLimit = 300

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Propagate request ID and trace ID into the request context for logging.
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before anything that can short-circuit so error responses keep their headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	maxPerMinute := s.config.GlobalRateLimit
	if maxPerMinute <= 0 {
		maxPerMinute = defaultGlobalRateLimit
	}
	app.Use(limiter.New(limiter.Config{
		Max:        maxPerMinute,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
				Code:  models.CodeRateLimited,
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "BucovinaStay API Metrics",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	api.Use(s.MaintenanceGuard())

	// Public catalogue
	api.Get("/listings", s.ListListings)
	api.Get("/listings/:id/reviews", s.GetListingReviews)
	api.Get("/listings/:id", s.GetListing)
	api.Post("/listings/:id/events", middleware.RateLimit(
		s.redis, 60, time.Minute, "listing_events"), s.TrackListingEvent)
	api.Post("/listings/impressions", middleware.RateLimit(
		s.redis, 60, time.Minute, "listing_impressions"), s.TrackImpressions)
	api.Get("/hosts/:userId", s.GetHostProfile)
	api.Post("/host-messages", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "host_messages"), s.SendHostMessage)

	// Everything registered below requires a valid token.
	protected := api.Group("", s.AuthRequired())

	protected.Post("/me/become-host", s.BecomeHost)
	protected.Post("/listings/:id/reviews", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "create_review"), s.CreateReview)
	protected.Get("/listings/:id/reviews/me", s.GetMyReview)
	protected.Delete("/reviews/:id", s.DeleteReview)
	protected.Get("/favorites/me", s.GetMyFavorites)
	protected.Post("/favorites/:listingId", s.AddFavorite)
	protected.Delete("/favorites/:listingId", s.RemoveFavorite)

	protected.Get("/ws/activity", s.HostRequired(), s.ActivityWebSocketHandler())

	host := protected.Group("/host", s.HostRequired())
	host.Post("/listings", middleware.RateLimit(
		s.redis, 10, time.Hour, "create_listing"), s.CreateListing)
	host.Get("/listings", s.GetMyListings)
	host.Post("/listings/:id/submit", s.SubmitListing)
	host.Post("/listings/:id/toggle-pause", s.TogglePauseListing)
	host.Patch("/listings/:id", s.UpdateListing)
	host.Delete("/listings/:id", s.DeleteListing)
	host.Get("/profile", s.GetMyHostProfile)
	host.Patch("/profile", s.UpdateMyHostProfile)
	host.Get("/activity", s.GetHostActivity)
	host.Get("/messages", s.GetHostInbox)
	host.Get("/messages/unread-count", s.GetUnreadMessageCount)
	host.Patch("/messages/read-all", s.MarkAllMessagesRead)
	host.Patch("/messages/:id/read", s.MarkMessageRead)
	host.Patch("/messages/:id/unread", s.MarkMessageUnread)
	host.Get("/settings", s.GetHostSettings)
	host.Patch("/settings", s.PatchHostSettings)
	host.Get("/analytics/overview", s.GetHostAnalytics)
	host.Get("/analytics/listings", s.GetHostListingAnalytics)

	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/overview", s.GetAdminOverview)
	admin.Get("/listings", s.AdminListListings)
	admin.Post("/listings/:id/approve", s.ApproveListing)
	admin.Post("/listings/:id/reject", s.RejectListing)
	admin.Post("/listings/:id/unpublish", s.UnpublishListing)
	admin.Post("/listings/:id/status", s.SetListingStatus)
	admin.Get("/reviews", s.AdminListReviews)
	admin.Patch("/reviews/:id", s.SetReviewStatus)
	admin.Delete("/reviews/:id", s.DeleteReview)
	admin.Get("/settings", s.GetSettings)
	admin.Put("/settings", s.SaveSettings)
	admin.Get("/users", s.AdminListUsers)
	admin.Patch("/users/:id", s.PatchUser)
	admin.Get("/feature-flags", s.GetFeatureFlags)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional, so a
// missing client is reported but does not fail the probe.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// newApp builds the Fiber app with middleware and routes installed.
func (s *Server) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "BucovinaStay API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
				slog.String("path", c.Path()), slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.newApp()

	if s.notifier != nil && s.hub != nil {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				middleware.Logger.Error("failed to start hub wiring",
					slog.String("hub", s.hub.Name()), slog.String("error", err.Error()))
			}
		}()
	}

	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			middleware.Logger.Error("error shutting down hub", slog.String("error", err.Error()))
		}
	}

	// Drain queued activity before the database goes away.
	if s.recorder != nil {
		if err := s.recorder.Close(ctx); err != nil {
			middleware.Logger.Warn("activity recorder did not drain", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
