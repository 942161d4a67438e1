package health

import (
	healthsvc "rental-backend/internal/application/health"
	"rental-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ServiceName is reported by /health/json.
const ServiceName = "rental-backend"

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Service        *healthsvc.Service
	HealthAdminKey string
}

// Reset clears health stats in Redis. Requires query key=HEALTH_ADMIN_KEY.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" || key != h.HealthAdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	if h.Service.Rdb == nil {
		return response.Error(c, "Redis is not configured", fiber.StatusServiceUnavailable, nil)
	}
	if err := h.Service.Reset(c.Context()); err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Stats reset successfully", fiber.Map{"success": true}, nil)
}

// JSON returns service status, runtime, traffic, dependency and record counts.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := h.Service.Collect(c.Context())
	out := map[string]interface{}{
		"service":      ServiceName,
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	}
	if result.Records != nil {
		out["records"] = result.Records
	}
	return c.JSON(out)
}

// Errors returns the last 50 error log entries, newest first.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	if h.Service.Rdb == nil {
		return c.JSON([]interface{}{})
	}
	entries, err := h.Service.RecentErrors(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	return c.JSON(entries)
}
