package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stockkeeper/internal/core/apperror"
)

// SQLSTATE codes mapped to domain errors.
const (
	codeUniqueViolation   = "23505"
	codeCheckViolation    = "23514"
	codeNotNullViolation  = "23502"
	codeStringTooLong     = "22001"
	codeNumericOutOfRange = "22003"
	codeInvalidTextRepr   = "22P02"
)

// Classify runs one storage call and translates its failure into a domain error.
// entity and key only shape the error message.
func Classify[T any](entity, key string, fn func() (T, error)) (T, error) {
	result, err := fn()
	if err != nil {
		var zero T
		return zero, classifyError(entity, key, err)
	}
	return result, nil
}

// ClassifyExec runs a write that must match at least one row.
// Zero affected rows is NotFound even though the statement succeeded.
func ClassifyExec(entity, key string, fn func() (pgconn.CommandTag, error)) (bool, error) {
	tag, err := fn()
	if err != nil {
		return false, classifyError(entity, key, err)
	}
	if tag.RowsAffected() == 0 {
		return false, apperror.NewNotFound(entity, key)
	}
	return true, nil
}

// classifyError is the only place that inspects pgx and Postgres errors.
func classifyError(entity, key string, err error) error {
	if err == nil {
		return nil
	}

	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound(entity, key).WithCause(err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperror.NewInternal(err)
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return apperror.NewDuplicate(entity, pgErr.ConstraintName).WithCause(err)

	case codeCheckViolation:
		return apperror.NewValidation(checkMessage(entity, pgErr.ConstraintName)).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)

	case codeNotNullViolation:
		return apperror.NewValidation(fmt.Sprintf("%s is required", pgErr.ColumnName)).
			WithDetail("field", pgErr.ColumnName).
			WithCause(err)

	case codeStringTooLong, codeNumericOutOfRange, codeInvalidTextRepr:
		return apperror.NewValidation(fmt.Sprintf("invalid %s: %s", entity, pgErr.Message)).
			WithCause(err)

	default:
		return apperror.NewInternal(err)
	}
}

// checkMessages names the CHECK constraints declared by the migrations.
var checkMessages = map[string]string{
	"stock_items_id_format":               "id must be a 36-character UUID",
	"stock_items_owner_id_format":         "owner id must be a 36-character UUID",
	"stock_items_name_length":             "name must be 1 to 100 characters",
	"stock_items_quantity_range":          "quantity must be between 0 and 9999",
	"stock_items_minimum_quantity_range":  "minimum quantity must be between 0 and 9999",
	"shopping_items_id_format":            "id must be a 36-character UUID",
	"shopping_items_owner_id_format":      "owner id must be a 36-character UUID",
	"shopping_items_stock_item_id_format": "stock item id must be a 36-character UUID",
	"shopping_items_name_length":          "name must be 1 to 100 characters",
	"shopping_items_quantity_range":       "quantity must be between 0 and 9999",
	"users_id_format":                     "id must be a 36-character UUID",
	"users_name_length":                   "name must be 1 to 100 characters",
}

func checkMessage(entity, constraint string) string {
	if msg, ok := checkMessages[constraint]; ok {
		return msg
	}
	return fmt.Sprintf("%s violates %s", entity, constraint)
}
