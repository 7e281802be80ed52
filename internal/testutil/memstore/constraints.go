package memstore

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/core/entity"
	"stockkeeper/internal/core/id"
)

func checkID(field, v string) error {
	if !id.Valid(v) {
		return apperror.NewValidation(fmt.Sprintf("%s must be a 36-character UUID", field)).
			WithDetail("field", field)
	}
	return nil
}

func checkName(v string) error {
	n := utf8.RuneCountInString(v)
	if n < entity.MinNameLength || n > entity.MaxNameLength {
		return apperror.NewValidation(
			fmt.Sprintf("name must be %d to %d characters", entity.MinNameLength, entity.MaxNameLength),
		).WithDetail("field", "name")
	}
	return nil
}

func checkQuantity(field string, v int) error {
	if v < entity.MinQuantity || v > entity.MaxQuantity {
		return apperror.NewValidation(
			fmt.Sprintf("%s must be between %d and %d", field, entity.MinQuantity, entity.MaxQuantity),
		).WithDetail("field", field)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func sameName(a, b string) bool {
	return strings.EqualFold(a, b)
}
