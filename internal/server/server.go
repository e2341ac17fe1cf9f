// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// TokenCookieName is the cookie checked when no Authorization header is present.
const TokenCookieName = "token"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	authService    *service.AuthService
	postService    *service.PostService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: fiberprometheus.New("inkwell-api"),
		userRepo:       userRepo,
		postRepo:       postRepo,
		authService:    service.NewAuthService(userRepo, postRepo, cfg),
		postService:    service.NewPostService(postRepo),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID to the logger
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded cover images and static assets
	app.Static("/uploads", s.config.UploadDir)
	app.Static("/images", "./public/images")

	api := app.Group("/api")

	// Auth routes
	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", s.Signup)
	authRoutes.Post("/login", s.Login)
	authRoutes.Post("/logout", s.AuthRequired(), s.Logout)
	authRoutes.Get("/profile", s.AuthRequired(), s.GetProfile)

	// Post routes. Browse and read are public (identity optional); mutation
	// requires authentication, with ownership enforced in the service layer.
	posts := api.Group("/posts")
	posts.Get("/", s.AuthOptional(), s.GetPosts)
	posts.Get("/user/:id", s.AuthOptional(), s.GetUserPosts)
	posts.Get("/:id", s.AuthOptional(), s.GetPost)
	posts.Post("/", s.AuthRequired(), s.CreatePost)
	posts.Put("/:id", s.AuthRequired(), s.UpdatePost)
	posts.Delete("/:id", s.AuthRequired(), s.DeletePost)
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
		// The cache is optional; the app runs degraded without it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
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

// extractToken pulls a bearer token from the Authorization header. Any header
// that does not yield a Bearer token falls back to the token cookie.
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
			return parts[1]
		}
	}
	return c.Cookies(TokenCookieName)
}

// resolveUser verifies the token and resolves its subject to a live user
// record. Any failure is reported with its internal cause for logging.
func (s *Server) resolveUser(c *fiber.Ctx) (*models.User, error) {
	tokenString := extractToken(c)
	if tokenString == "" {
		return nil, models.NewUnauthenticatedError("Access token required")
	}

	claims, err := auth.ParseToken(tokenString, s.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		// Subject no longer resolves (account gone) or storage failed.
		return nil, err
	}
	return user, nil
}

// AuthRequired returns the mandatory authentication gate. Missing tokens,
// verification failures, and unresolvable subjects are all normalized to a
// single 401 outward message; the distinction is kept for logs only.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.resolveUser(c)
		if err != nil {
			observability.AuthRejectionsTotal.Inc()
			middleware.Logger.InfoContext(c.UserContext(), "authentication rejected",
				slog.String("path", c.Path()),
				slog.String("reason", err.Error()),
			)
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Authentication required"), s.exposeDetails())
		}

		s.attachUser(c, user)
		return c.Next()
	}
}

// AuthOptional returns the optional authentication gate: identical extraction
// and verification, but every failure is swallowed and the request proceeds
// anonymously.
func (s *Server) AuthOptional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.resolveUser(c)
		if err == nil {
			s.attachUser(c, user)
		}
		return c.Next()
	}
}

// attachUser stores the resolved identity in Locals and the request context.
func (s *Server) attachUser(c *fiber.Ctx, user *models.User) {
	c.Locals("userID", user.ID)
	c.Locals("user", user)
	ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
	c.SetUserContext(ctx)
}

// currentUser returns the identity attached by an authentication gate.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

func (s *Server) exposeDetails() bool {
	return !s.config.IsProduction()
}
