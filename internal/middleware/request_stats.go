package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis keys shared by RequestStats, the error handler and the health service.
const (
	StatsRequests     = "rental:stats:requests"
	StatsServerErrors = "rental:stats:server_errors"
	StatsDurationMs   = "rental:stats:duration_ms"
	StatsResponses    = "rental:stats:responses"
	StatsStartedAt    = "rental:stats:started_at"
	StatsLastRequest  = "rental:stats:last_request"
	ErrorLogKey       = "rental:stats:error_log"
)

// ErrorLogSize caps the error log list.
const ErrorLogSize = 50

// apiPrefix limits stats to API traffic; health checks and preflights would
// otherwise dominate the numbers.
const apiPrefix = "/api/"

// RequestStats counts API requests, their total duration and 5xx responses,
// and remembers the latest one. All writes for a request go out in a single
// pipeline after the response status is final.
func RequestStats(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !strings.HasPrefix(c.Path(), apiPrefix) || c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		start := time.Now()
		err := handleError(c, c.Next())
		status := c.Response().StatusCode()

		last, _ := json.Marshal(map[string]interface{}{
			"time":     start.UTC(),
			"ip":       c.IP(),
			"method":   c.Method(),
			"path":     c.OriginalURL(),
			"status":   status,
			"trace_id": GetTraceID(c),
		})
		ctx := c.UserContext()
		pipe := rdb.Pipeline()
		pipe.Incr(ctx, StatsRequests)
		pipe.Incr(ctx, StatsResponses)
		pipe.IncrByFloat(ctx, StatsDurationMs, float64(time.Since(start).Milliseconds()))
		pipe.Set(ctx, StatsLastRequest, last, 0)
		if status >= fiber.StatusInternalServerError {
			pipe.Incr(ctx, StatsServerErrors)
		}
		if _, perr := pipe.Exec(ctx); perr != nil {
			log.Warn().Err(perr).Str("path", c.Path()).Msg("Could not record request stats")
		}
		return err
	}
}
