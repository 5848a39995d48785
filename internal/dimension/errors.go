package dimension

import "errors"

var (
	// ErrUnknownBase is returned when a base symbol cannot be resolved.
	ErrUnknownBase = errors.New("dimension: unknown base unit")

	// ErrExponentRange is returned when an exponent leaves [-MaxExponent, MaxExponent].
	ErrExponentRange = errors.New("dimension: exponent out of range")

	// ErrVecSize is returned for a vector width other than 1, 2 or 3.
	ErrVecSize = errors.New("dimension: invalid vector size")
)
