// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tastebook/internal/cache"
	"tastebook/internal/config"
	"tastebook/internal/database"
	"tastebook/internal/middleware"
	"tastebook/internal/models"
	"tastebook/internal/observability"
	"tastebook/internal/repository"
	"tastebook/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
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

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	recipeRepo  repository.RecipeRepository
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository

	authService    *service.AuthService
	userService    *service.UserService
	postService    *service.PostService
	recipeService  *service.RecipeService
	commentService *service.CommentService
	reviewService  *service.ReviewService
	uploadService  *service.UploadService
}

// NewServer creates a server instance, establishing its own database and
// Redis connections.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient := cache.NewClient(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this to inject an in-memory database and a miniredis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	uploadService, err := service.NewUploadService(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("upload dir setup failed: %w", err)
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("tastebook-api"),
		userRepo:       userRepo,
		postRepo:       postRepo,
		recipeRepo:     recipeRepo,
		commentRepo:    commentRepo,
		reviewRepo:     reviewRepo,
		uploadService:  uploadService,
	}

	server.authService = service.NewAuthService(userRepo, cfg.JWTSecret)
	server.userService = service.NewUserService(userRepo, server.authService)
	server.postService = service.NewPostService(postRepo)
	server.recipeService = service.NewRecipeService(recipeRepo)
	server.commentService = service.NewCommentService(commentRepo)
	server.reviewService = service.NewReviewService(reviewRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded images
	app.Static("/uploads/images", s.config.UploadDir)

	// Auth
	app.Post("/token", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "token"), s.IssueToken)

	// Registration is open; everything under /user requires auth.
	app.Post("/users", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.CreateUser)
	app.Get("/user", s.AuthRequired(), s.GetProfile)
	app.Put("/user", s.AuthRequired(), s.UpdateProfile)

	// Posts: public browse, authenticated mutation
	app.Get("/posts", s.GetPosts)
	app.Get("/posts/:id", s.GetPost)
	app.Post("/posts", s.AuthRequired(), s.CreatePost)
	app.Put("/posts/:id", s.AuthRequired(), s.UpdatePost)
	app.Delete("/posts/:id", s.AuthRequired(), s.DeletePost)

	// Comments nest under their post for reads and creation
	app.Get("/posts/:post_id/comments", s.GetComments)
	app.Post("/posts/:post_id/comments", s.AuthRequired(), s.CreateComment)
	app.Delete("/comments/:id", s.AuthRequired(), s.DeleteComment)

	// Recipes: /search must be declared before the generic /:id route
	app.Get("/recipes", s.GetRecipes)
	app.Get("/recipes/search", middleware.RateLimit(
		s.redis, 10, time.Minute, "search"), s.SearchRecipes)
	app.Get("/recipes/:id", s.GetRecipe)
	app.Post("/recipes", s.AuthRequired(), s.CreateRecipe)
	app.Put("/recipes/:id", s.AuthRequired(), s.UpdateRecipe)
	app.Delete("/recipes/:id", s.AuthRequired(), s.DeleteRecipe)

	// Reviews nest under their recipe for reads and creation
	app.Get("/recipes/:recipe_id/reviews", s.GetReviews)
	app.Post("/recipes/:recipe_id/reviews", s.AuthRequired(), s.CreateReview)
	app.Delete("/reviews/:id", s.AuthRequired(), s.DeleteReview)
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
		// Redis is optional; rate limiting degrades to fail-open without it.
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

// AuthRequired returns the authentication middleware. It verifies the
// bearer token and stores the caller's user ID in both fiber Locals and
// the request context so logging picks it up.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			observability.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		userID, err := s.authService.Authenticate(tokenString)
		if err != nil {
			observability.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}

		c.Locals("userID", userID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Tastebook API",
		BodyLimit: 10 * 1024 * 1024, // uploads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("unhandled error", "path", c.Path(), "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	slog.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			slog.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			slog.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			slog.Error("error closing redis", "error", rerr)
		}
	}

	slog.Info("server shutdown complete")
	return nil
}
