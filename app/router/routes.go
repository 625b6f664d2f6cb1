// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"context"
	"errors"
	"time"

	"github.com/Zayd-McArdle/MasjidApp/app/dto"
	"github.com/Zayd-McArdle/MasjidApp/app/handlers"
	"github.com/Zayd-McArdle/MasjidApp/app/middleware"
	"github.com/Zayd-McArdle/MasjidApp/config"
	"github.com/Zayd-McArdle/MasjidApp/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	healthPath = "/api/v1/health"
	apiPrefix  = "/api/v1"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	Shutdown(ctx context.Context) error
	GetApp() *fiber.App
}

// Handlers bundles the feature handlers mounted under /api/v1.
type Handlers struct {
	Events        handlers.EventsHandlerInterface
	PrayerTimes   handlers.PrayerTimesHandlerInterface
	AskImam       handlers.AskImamHandlerInterface
	Announcements handlers.AnnouncementsHandlerInterface
}

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app      *fiber.App
	cfg      config.ProductionConfig
	handlers Handlers
	checks   map[string]HealthCheck
	logger   *zap.Logger
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(cfg config.ProductionConfig, h Handlers, checks map[string]HealthCheck, logger *zap.Logger) Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &FiberRouter{
		cfg:      cfg,
		handlers: h,
		checks:   checks,
		logger:   logger,
	}
	r.app = fiber.New(fiber.Config{
		AppName:      "MasjidApp API",
		ServerHeader: "MasjidApp",
		ErrorHandler: r.errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	})
	return r
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	r.logger.Info("Setting up routes")

	r.setupMiddleware()

	api := r.app.Group(apiPrefix)

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)
	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api.Use(limiter.New(limiter.Config{
		Max:        r.cfg.Server.RateLimit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == healthPath
		},
	}))

	// Public endpoints
	api.Get("/events", r.handlers.Events.GetEvents)
	api.Get("/prayer-times", r.handlers.PrayerTimes.GetPrayerTimes)
	api.Get("/prayer-times/updated/:hash", r.handlers.PrayerTimes.GetUpdatedPrayerTimes)
	api.Get("/ask-imam/questions", r.handlers.AskImam.GetAnsweredQuestions)
	api.Post("/ask-imam/questions", r.handlers.AskImam.InsertQuestion)
	api.Get("/announcements", r.handlers.Announcements.GetAnnouncements)

	// Admin endpoints
	admin := api.Group("/admin")
	admin.Put("/events", r.handlers.Events.UpsertEvent)
	admin.Delete("/events/:id", r.handlers.Events.DeleteEvent)
	admin.Put("/prayer-times", r.handlers.PrayerTimes.UpsertPrayerTimes)
	admin.Get("/ask-imam/questions", r.handlers.AskImam.AdminGetQuestions)
	admin.Patch("/ask-imam/questions/:id/answer", r.handlers.AskImam.AnswerQuestion)
	admin.Delete("/ask-imam/questions/:id", r.handlers.AskImam.DeleteQuestion)
	admin.Post("/announcements", r.handlers.Announcements.PostAnnouncement)
	admin.Put("/announcements", r.handlers.Announcements.EditAnnouncement)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	r.logger.Info("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.NewString()
		},
	}))

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			r.logger.Error("panic while serving request",
				zap.Any("panic", e),
				zap.String("request_id", requestid.FromContext(c)),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("ip", c.IP()),
			)
		},
	}))

	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	r.app.Use(middleware.RequestLogger(r.logger, func(c fiber.Ctx) bool {
		return c.Path() == healthPath
	}))

	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		HSTSMaxAge:                utils.HSTSMaxAge,
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginResourcePolicy: "cross-origin",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.cfg.Server.AllowedOrigins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Requested-With",
			"X-Request-ID",
			handlers.FileHashHeader,
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			handlers.FileHashHeader,
		},
		MaxAge: utils.CORSMaxAge,
	}))

	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	r.logger.Info("Starting server", zap.String("address", address))
	return r.app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (r *FiberRouter) Shutdown(ctx context.Context) error {
	return r.app.ShutdownWithContext(ctx)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// healthCheck reports 503 when any dependency check fails.
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	status := fiber.StatusOK
	components := fiber.Map{}
	for name, check := range r.checks {
		if err := check(ctx); err != nil {
			status = fiber.StatusServiceUnavailable
			components[name] = err.Error()
			continue
		}
		components[name] = "ok"
	}

	return c.Status(status).JSON(dto.APIResponse{
		Success: status == fiber.StatusOK,
		Message: "Service health",
		Data: fiber.Map{
			"timestamp":   utils.UTCNow().Unix(),
			"version":     r.cfg.Deployment.Version,
			"environment": r.cfg.Deployment.Environment,
			"service":     "masjidapp-api",
			"components":  components,
		},
	})
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestid.FromContext(c),
			},
		},
	})
}

// Global error handler
func (r *FiberRouter) errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An internal server error occurred"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	r.logger.Error("unhandled request error",
		zap.Int("status", code),
		zap.String("request_id", requestid.FromContext(c)),
		zap.Error(err),
	)

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestid.FromContext(c),
			},
		},
	})
}
