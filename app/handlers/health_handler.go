package handlers

import (
	"context"
	"time"

	"github.com/amirphl/restaurant-hub/logging"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const readinessTimeout = 3 * time.Second

// Readiness check states
const (
	CheckOK       = "ok"
	CheckFailed   = "failed"
	CheckDisabled = "disabled"
)

// HealthHandlerInterface defines the contract for probe handlers
type HealthHandlerInterface interface {
	Health(c fiber.Ctx) error
	Ready(c fiber.Ctx) error
}

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	db    *gorm.DB
	cache redis.UniversalClient
}

// NewHealthHandler creates a new health handler. cache may be nil when redis is disabled.
func NewHealthHandler(db *gorm.DB, cache redis.UniversalClient) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// Health handles liveness probes
// @Summary Health Check
// @Description Liveness probe. Does not touch any dependency.
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,message=string} "Server running"
// @Router /health [get]
func (h *HealthHandler) Health(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "OK",
		"message": "Server running",
	})
}

// Ready handles readiness probes
// @Summary Readiness Check
// @Description Ping the database and, when enabled, redis
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,checks=map[string]string} "Ready"
// @Failure 503 {object} object{status=string,checks=map[string]string} "A dependency is unavailable"
// @Router /ready [get]
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
	defer cancel()

	logger := logging.FromContext(ctx)
	ready := true
	checks := map[string]string{}

	if err := h.pingDatabase(ctx); err != nil {
		logger.WarnContext(ctx, "readiness: database unavailable", "error", err)
		checks["database"] = CheckFailed
		ready = false
	} else {
		checks["database"] = CheckOK
	}

	switch {
	case h.cache == nil:
		checks["redis"] = CheckDisabled
	case h.cache.Ping(ctx).Err() != nil:
		logger.WarnContext(ctx, "readiness: redis unavailable")
		checks["redis"] = CheckFailed
		ready = false
	default:
		checks["redis"] = CheckOK
	}

	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"checks": checks,
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ready",
		"checks": checks,
	})
}

func (h *HealthHandler) pingDatabase(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
