// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "trailfund/docs" // swagger docs
	"trailfund/internal/cache"
	"trailfund/internal/config"
	"trailfund/internal/database"
	"trailfund/internal/featureflags"
	"trailfund/internal/middleware"
	"trailfund/internal/models"
	"trailfund/internal/notifications"
	"trailfund/internal/repository"
	"trailfund/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
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

	userRepo         repository.UserRepository
	friendRepo       repository.FriendRepository
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	campaignRepo     repository.CampaignRepository
	requestRepo      repository.RequestRepository
	notificationRepo repository.NotificationRepository
	donationRepo     repository.DonationRepository
	organizationRepo repository.OrganizationRepository
	announcementRepo repository.AnnouncementRepository
	reportRepo       repository.ReportRepository

	notifier     *notifications.Notifier
	hub          *notifications.Hub
	featureFlags *featureflags.Manager

	userService         *service.UserService
	friendService       *service.FriendService
	postService         *service.PostService
	commentService      *service.CommentService
	campaignService     *service.CampaignService
	requestService      *service.RequestService
	notificationService *service.NotificationService
	donationService     *service.DonationService
	moderationService   *service.ModerationService
	organizationService *service.OrganizationService
	announcementService *service.AnnouncementService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   middleware.InitMetrics("trailfund-api"),
		userRepo:         repository.NewUserRepository(db),
		friendRepo:       repository.NewFriendRepository(db),
		postRepo:         repository.NewPostRepository(db),
		commentRepo:      repository.NewCommentRepository(db),
		campaignRepo:     repository.NewCampaignRepository(db),
		requestRepo:      repository.NewRequestRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		donationRepo:     repository.NewDonationRepository(db),
		organizationRepo: repository.NewOrganizationRepository(db),
		announcementRepo: repository.NewAnnouncementRepository(db),
		reportRepo:       repository.NewReportRepository(db),
		featureFlags:     featureflags.NewManager(cfg.FeatureFlags),
	}

	// Notifier and hub tolerate a nil Redis client: publishes become no-ops
	// and presence falls back to local connection tracking.
	server.notifier = notifications.NewNotifier(redisClient)
	server.hub = notifications.NewHub(redisClient)

	server.notificationService = service.NewNotificationService(server.notificationRepo, server.notifier)
	server.userService = service.NewUserService(server.userRepo, server.friendRepo)
	server.friendService = service.NewFriendService(
		server.friendRepo, server.userRepo, server.notificationService, server.featureFlags)
	server.postService = service.NewPostService(server.postRepo, server.userRepo)
	server.commentService = service.NewCommentService(server.commentRepo, server.postRepo)
	server.campaignService = service.NewCampaignService(
		server.campaignRepo, server.userRepo, server.notificationService)
	server.requestService = service.NewRequestService(
		server.requestRepo, server.userRepo, server.notificationService)
	server.donationService = service.NewDonationService(
		server.donationRepo, server.campaignRepo, server.requestRepo)
	server.moderationService = service.NewModerationService(server.reportRepo, server.userRepo)
	server.organizationService = service.NewOrganizationService(server.organizationRepo, server.userRepo)
	server.announcementService = service.NewAnnouncementService(server.announcementRepo, server.userRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		middleware.RegisterMetrics(app, s.promMiddleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Distributed tracing
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Actor IDs travel in request bodies on this API; a bearer token is
	// optional and only feeds log attribution and rate-limit keys.
	api := app.Group("/api", middleware.OptionalAuth)

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth
	api.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	api.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// User routes. Specific /:id/:resource routes are defined BEFORE the
	// generic /:id route.
	users := api.Group("/users")
	users.Get("/", s.GetUsers)
	users.Get("/:id/full", s.GetFullProfile)
	users.Get("/:id/posts", s.GetUserPosts)
	users.Get("/:id/requests", s.GetUserRequests)
	users.Get("/:id/campaigns", s.GetUserCampaigns)
	users.Get("/:id/donations", s.GetUserDonations)
	users.Post("/:id/photo", s.UpdatePhoto)
	users.Post("/:id/friend/accept", s.AcceptFriendRequest)
	users.Post("/:id/friend/reject", s.RejectFriendRequest)
	users.Post("/:id/friend", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "friend_request"), s.SendFriendRequest)
	users.Put("/:id", s.UpdateUser)
	users.Get("/:id", s.GetUser)

	// Campaign routes
	campaigns := api.Group("/campaigns")
	campaigns.Get("/", s.GetCampaigns)
	campaigns.Post("/", s.CreateCampaign)
	campaigns.Post("/:id/approve", s.ApproveCampaign)
	campaigns.Post("/:id/reject", s.RejectCampaign)
	campaigns.Get("/:id/donations", s.GetCampaignDonations)
	campaigns.Get("/:id", s.GetCampaign)
	api.Get("/approvals/:campaignId", s.GetApprovalHistory)

	// Request routes
	requests := api.Group("/requests")
	requests.Get("/", s.GetRequests)
	requests.Post("/", s.CreateRequest)
	requests.Post("/:id/fulfill", s.FulfillRequest)
	requests.Post("/:id/flag", s.FlagRequest)
	requests.Get("/:id", s.GetRequest)

	// Post routes
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_post"), s.CreatePost)
	posts.Post("/:id/like", s.LikePost)
	posts.Get("/:id/comments", s.GetComments)
	posts.Post("/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	posts.Delete("/:id", s.DeletePost)
	posts.Get("/:id", s.GetPost)

	// Notification routes
	notificationsGroup := api.Group("/notifications")
	notificationsGroup.Get("/:userId/unread-count", s.GetUnreadCount)
	notificationsGroup.Post("/:userId/read-all", s.MarkAllNotificationsRead)
	notificationsGroup.Put("/:id/read", s.MarkNotificationRead)
	notificationsGroup.Get("/:userId", s.GetNotifications)

	// Organization routes
	organizations := api.Group("/organizations")
	organizations.Get("/", s.GetOrganizations)
	organizations.Post("/", s.RegisterOrganization)
	organizations.Post("/:id/review", s.ReviewOrganization)
	organizations.Get("/:id", s.GetOrganization)

	// Announcement routes
	announcements := api.Group("/announcements")
	announcements.Get("/", s.GetAnnouncements)
	announcements.Post("/", s.CreateAnnouncement)
	announcements.Delete("/:id", s.DeleteAnnouncement)

	// Donation routes
	donations := api.Group("/donations")
	donations.Get("/", s.GetDonations)
	donations.Post("/", s.CreateDonation)

	// Moderation routes
	reports := api.Group("/reports")
	reports.Get("/", s.GetReports)
	reports.Post("/", s.CreateReport)
	reports.Put("/:id", s.ResolveReport)

	// Feature flags
	api.Get("/feature-flags", s.GetFeatureFlags)

	// Websocket notification stream
	api.Get("/ws", middleware.WebSocketAuthRequired, s.WebsocketHandler())
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API serves without Redis but loses live notification push,
		// caching and rate limiting; readiness reports it as degraded.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "TrailFund API",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "TrailFund API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	// Wire the hub to Redis pub/sub so notifications published by any
	// instance reach clients connected here.
	if s.notifier != nil && s.hub != nil {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				log.Printf("failed to start notification hub wiring: %v", err)
			}
		}()
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Cancel the server-scoped context to stop the wiring goroutine
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	// Shutdown the HTTP/WS server
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Close WebSocket connections gracefully
	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			log.Printf("error shutting down notification hub: %v", err)
		}
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
