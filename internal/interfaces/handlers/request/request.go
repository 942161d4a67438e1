// Package request holds the path and query parsing shared by the handlers.
package request

import (
	"strconv"

	"rental-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ID parses a UUID path parameter. A malformed id cannot match any record,
// so it is reported as not found.
func ID(c *fiber.Ctx, param, entity string) (uuid.UUID, error) {
	raw := c.Params(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &domain.NotFoundError{Entity: entity, ID: raw}
	}
	return id, nil
}

// OptionalUUID parses an optional UUID query filter.
func OptionalUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError(key, "Must be a valid UUID.")
	}
	return &id, nil
}

// OptionalBool parses an optional boolean query filter.
func OptionalBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewValidationError(key, "Must be a valid boolean.")
	}
	return &b, nil
}

// Order returns the ?order= value, e.g. "price_per_night" or "-created_at".
func Order(c *fiber.Ctx) string {
	return c.Query("order")
}
