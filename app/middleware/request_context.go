package middleware

import (
	"log/slog"

	"github.com/amirphl/restaurant-hub/logging"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// RequestLogger attaches a logger tagged with the request id to the request context.
// It must run after the requestid middleware.
func RequestLogger(base *slog.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		logger := base.With(
			"request_id", requestid.FromContext(c),
			"method", c.Method(),
			"path", c.Path(),
		)
		c.SetContext(logging.IntoContext(c.Context(), logger))
		return c.Next()
	}
}
