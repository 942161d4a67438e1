package repository

import (
	"errors"
	"fmt"
	"strings"

	"rental-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translateError maps driver errors onto the domain error kinds. unique names
// the composite key the entity's unique index covers.
func translateError(entity string, unique []string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	isPg := errors.As(err, &pgErr)
	msg := err.Error()

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		isPg && pgErr.Code == pgUniqueViolation,
		strings.Contains(msg, "UNIQUE constraint failed"):
		return &domain.UniquenessError{Entity: entity, Fields: unique}
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		isPg && pgErr.Code == pgForeignKeyViolation,
		strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &domain.ConstraintError{Entity: entity, Reason: "referenced listing does not exist", Err: err}
	case errors.Is(err, gorm.ErrCheckConstraintViolated),
		isPg && pgErr.Code == pgCheckViolation,
		strings.Contains(msg, "CHECK constraint failed"):
		return &domain.ConstraintError{Entity: entity, Reason: "check constraint failed", Err: err}
	}
	return err
}

func notFound(entity string, id fmt.Stringer) error {
	return &domain.NotFoundError{Entity: entity, ID: id.String()}
}

// orderClause turns "col" / "-col" into an ORDER BY clause, accepting only
// whitelisted columns. The primary key breaks ties so ordering is stable.
func orderClause(order string, allowed []string, def, pk string) (string, error) {
	if order == "" {
		return def + ", " + pk, nil
	}
	col, desc := strings.CutPrefix(order, "-")
	for _, a := range allowed {
		if a != col {
			continue
		}
		if desc {
			return col + " DESC, " + pk, nil
		}
		return col + " ASC, " + pk, nil
	}
	return "", domain.NewValidationError("order", fmt.Sprintf("Unsupported ordering %q.", order))
}

func noChanges() error {
	return domain.NewValidationError(domain.NonFieldErrors, "No valid changes provided.")
}
