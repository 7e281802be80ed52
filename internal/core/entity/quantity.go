// Package entity holds value types and limits shared by the item entities.
package entity

import (
	"fmt"

	"stockkeeper/internal/core/apperror"
)

// Limits enforced by the storage schema.
const (
	MinQuantity   = 0
	MaxQuantity   = 9999
	MinNameLength = 1
	MaxNameLength = 100
)

// QuantityOperation is the direction of a delta update.
type QuantityOperation int

const (
	// Increase adds the delta to the stored quantity.
	Increase QuantityOperation = iota + 1
	// Decrease subtracts the delta from the stored quantity.
	Decrease
)

// String implements fmt.Stringer.
func (op QuantityOperation) String() string {
	switch op {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	default:
		return fmt.Sprintf("QuantityOperation(%d)", int(op))
	}
}

// Valid reports whether op is Increase or Decrease.
func (op QuantityOperation) Valid() bool {
	return op == Increase || op == Decrease
}

// Signed applies the operation direction to delta.
func (op QuantityOperation) Signed(delta int) int {
	if op == Decrease {
		return -delta
	}
	return delta
}

// ParseQuantityOperation parses the wire form used by the HTTP API.
func ParseQuantityOperation(s string) (QuantityOperation, bool) {
	switch s {
	case "increase":
		return Increase, true
	case "decrease":
		return Decrease, true
	}
	return 0, false
}

// Shortfall is how many units are needed to bring quantity up to minimum.
func Shortfall(quantity, minimum int) int {
	if minimum > quantity {
		return minimum - quantity
	}
	return 0
}

// CheckDelta validates a delta update before it reaches storage.
// An unknown operation is always an error; a zero delta is a no-op and
// reports skip so callers can avoid the storage round-trip.
func CheckDelta(op QuantityOperation, delta int) (skip bool, err error) {
	if !op.Valid() {
		return false, apperror.NewInvalidArgument("operation", int(op))
	}
	if delta == 0 {
		return true, nil
	}
	if delta < 1 || delta > MaxQuantity {
		return false, apperror.NewValidation(fmt.Sprintf("delta must be between 1 and %d", MaxQuantity)).
			WithDetail("field", "delta").
			WithDetail("value", delta)
	}
	return false, nil
}
