// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/amirphl/restaurant-hub/app/dto"
	"github.com/amirphl/restaurant-hub/app/handlers"
	"github.com/amirphl/restaurant-hub/app/middleware"
	businessflow "github.com/amirphl/restaurant-hub/business_flow"
	"github.com/amirphl/restaurant-hub/config"
	_ "github.com/amirphl/restaurant-hub/docs"
	"github.com/amirphl/restaurant-hub/logging"
	"github.com/amirphl/restaurant-hub/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cache"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Restaurant handlers.RestaurantHandlerInterface
	Product    handlers.ProductHandlerInterface
	Payment    handlers.PaymentHandlerInterface
	Label      handlers.LabelHandlerInterface
	Health     handlers.HealthHandlerInterface
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app            *fiber.App
	cfg            *config.ProductionConfig
	logger         *slog.Logger
	accessLog      io.Writer
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
}

// NewFiberRouter creates a new Fiber router. accessLog receives the access log
// lines; a nil writer means stdout.
func NewFiberRouter(
	cfg *config.ProductionConfig,
	logger *slog.Logger,
	accessLog io.Writer,
	h Handlers,
	authMiddleware *middleware.AuthMiddleware,
) *FiberRouter {
	if accessLog == nil {
		accessLog = os.Stdout
	}

	r := &FiberRouter{
		cfg:            cfg,
		logger:         logger,
		accessLog:      accessLog,
		handlers:       h,
		authMiddleware: authMiddleware,
	}

	r.app = fiber.New(fiber.Config{
		AppName:      "Restaurant Hub API",
		ServerHeader: "restaurant-hub",
		ErrorHandler: r.errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ProxyHeader:  cfg.Server.ProxyHeader,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return r
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	r.logger.Info("setting up routes")

	r.setupMiddleware()

	// Probes
	r.app.Get("/health", r.handlers.Health.Health)
	r.app.Get("/ready", r.handlers.Health.Ready)

	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	// API documentation route (development only)
	if r.cfg.Deployment.IsDevelopment() {
		r.app.Get("/swagger/doc.json", r.serveSwaggerJSON)
		r.logger.Info("API documentation enabled for development")
	}

	// Credential endpoints get a stricter per-IP limit
	authLimiter := r.rateLimiter(r.cfg.Security.AuthRateLimit)
	r.app.Post("/register", authLimiter, r.handlers.Restaurant.Register)
	r.app.Post("/login", authLimiter, r.handlers.Restaurant.Login)

	// Called by the payment platform, not by restaurants
	r.app.Post("/payments/webhook", r.handlers.Payment.Webhook)

	// Everything below is bound to the restaurant behind the bearer token
	authenticated := r.authMiddleware.Authenticate()

	r.app.Get("/restaurants", authenticated, r.handlers.Restaurant.ListRestaurants)
	r.app.Put("/restaurants/online", authenticated, r.handlers.Restaurant.SetOnline)

	r.app.Post("/products", authenticated, r.handlers.Product.CreateProduct)
	r.app.Get("/products", authenticated, r.handlers.Product.ListProducts)
	r.app.Get("/products/export", authenticated, r.handlers.Product.ExportProducts)

	r.app.Post("/labels/generate", authenticated, r.handlers.Label.GenerateLabel)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	r.logger.Info("routes configured")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header:    businessflow.RequestIDKey,
		Generator: uuid.NewString,
	}))

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			r.logger.Error("panic recovered",
				"request_id", requestid.FromContext(c),
				"error", e,
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP(),
			)
		},
	}))

	r.app.Use(middleware.RequestLogger(r.logger))

	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "0",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             r.cfg.Security.XFrameOptions,
		HSTSMaxAge:                r.cfg.Security.HSTSMaxAge,
		ContentSecurityPolicy:     r.cfg.Security.CSPPolicy,
		ReferrerPolicy:            r.cfg.Security.ReferrerPolicy,
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
		OriginAgentCluster:        "?1",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	// CORS middleware
	maxAge := r.cfg.Security.CORSMaxAge
	if maxAge <= 0 {
		maxAge = utils.CORSMaxAge
	}
	r.app.Use(cors.New(cors.Config{
		AllowOrigins:     r.cfg.Security.AllowedOrigins,
		AllowMethods:     r.cfg.Security.AllowedMethods,
		AllowHeaders:     r.cfg.Security.AllowedHeaders,
		ExposeHeaders:    []string{businessflow.RequestIDKey},
		AllowCredentials: r.cfg.Security.AllowCredentials,
		MaxAge:           maxAge,
	}))

	if r.cfg.Server.EnableCompression {
		r.app.Use(compress.New(compress.Config{
			Level: compress.LevelBestSpeed,
		}))
	}

	// Only the liveness probe is cacheable; account and catalog state never is
	r.app.Use(cache.New(cache.Config{
		Next: func(c fiber.Ctx) bool {
			return c.Method() != fiber.MethodGet || c.Path() != "/health"
		},
		Expiration: 5 * time.Second,
	}))

	if r.cfg.Logging.EnableAccessLog {
		r.app.Use(logger.New(logger.Config{
			Format:     `{"time":"${time}","request_id":"${respHeader:X-Request-ID}","level":"info","method":"${method}","path":"${path}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent}}` + "\n",
			TimeFormat: time.RFC3339,
			TimeZone:   "UTC",
			Stream:     r.accessLog,
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == r.cfg.Metrics.Path
			},
		}))
	}

	if r.cfg.Security.GlobalRateLimit > 0 {
		r.app.Use(limiter.New(limiter.Config{
			Max:          r.cfg.Security.GlobalRateLimit,
			Expiration:   r.cfg.Security.RateLimitWindow,
			KeyGenerator: func(c fiber.Ctx) string { return c.IP() },
			LimitReached: rateLimitReached,
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == "/ready"
			},
		}))
	}
}

// rateLimiter builds a per-IP limiter for a route group. A non-positive max disables it.
func (r *FiberRouter) rateLimiter(max int) fiber.Handler {
	if max <= 0 {
		return func(c fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string { return c.IP() },
		LimitReached: rateLimitReached,
	})
}

func rateLimitReached(c fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
		Success: false,
		Message: "Too many requests. Please try again later.",
		Error: dto.ErrorDetail{
			Code: "RATE_LIMIT_EXCEEDED",
		},
	})
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	r.logger.Info("starting server", "address", address)
	return r.app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true})
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Serve the registered Swagger JSON specification
func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
			Success: false,
			Message: "Failed to load Swagger documentation",
			Error: dto.ErrorDetail{
				Code: "SWAGGER_LOAD_ERROR",
			},
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(doc)
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

// Global error handler. Fiber errors keep their status; anything else is a
// generic 500 and the cause stays in the log.
func (r *FiberRouter) errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An internal server error occurred"
	errorCode := "INTERNAL_ERROR"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			message = fe.Message
			errorCode = strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
		}
	}

	logging.FromContext(c.Context()).ErrorContext(c.Context(), "request failed", "status", code, "error", err)

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: errorCode,
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestid.FromContext(c),
			},
		},
	})
}
