package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"rental-backend/internal/domain"
	"rental-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrorHandler returns the global error handler. Domain errors map onto 4xx
// codes with the standard error format; anything else is a 500. When rdb is
// set, 5xx errors are pushed onto the health error log.
func ErrorHandler(rdb *redis.Client) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, message, details := Classify(err)
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Msg("Request failed")
			if rdb != nil {
				logError(rdb, c, code, err)
			}
		}
		return response.Error(c, message, code, details)
	}
}

// Classify maps err to an HTTP status, a client-facing message and details.
func Classify(err error) (int, string, interface{}) {
	var (
		verr  *domain.ValidationError
		uerr  *domain.UniquenessError
		nerr  *domain.NotFoundError
		cerr  *domain.ConstraintError
		fiErr *fiber.Error
	)
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, "Validation failed", verr.Fields
	case errors.As(err, &uerr):
		return fiber.StatusConflict, "Duplicate " + uerr.Entity, map[string]string{
			domain.NonFieldErrors: "The fields " + strings.Join(uerr.Fields, ", ") + " must make a unique set.",
		}
	case errors.As(err, &nerr):
		return fiber.StatusNotFound, capitalize(nerr.Entity) + " not found", nil
	case errors.As(err, &cerr):
		return fiber.StatusUnprocessableEntity, capitalize(cerr.Entity) + ": " + cerr.Reason, nil
	case errors.As(err, &fiErr):
		return fiErr.Code, fiErr.Message, nil
	}
	return fiber.StatusInternalServerError, "Internal Server Error", nil
}

func logError(rdb *redis.Client, c *fiber.Ctx, code int, err error) {
	entry, _ := json.Marshal(map[string]interface{}{
		"time":       time.Now().UTC(),
		"trace_id":   GetTraceID(c),
		"method":     c.Method(),
		"path":       c.OriginalURL(),
		"statusCode": code,
		"message":    err.Error(),
	})
	ctx := context.Background()
	pipe := rdb.TxPipeline()
	pipe.LPush(ctx, ErrorLogKey, entry)
	pipe.LTrim(ctx, ErrorLogKey, 0, ErrorLogSize-1)
	if _, perr := pipe.Exec(ctx); perr != nil {
		log.Warn().Err(perr).Msg("Could not record error in health log")
	}
}

// handleError renders err through the app's error handler so middleware that
// runs after c.Next() sees the final status code.
func handleError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	return c.App().Config().ErrorHandler(c, err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
