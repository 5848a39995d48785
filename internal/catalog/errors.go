package catalog

import "errors"

var (
	// ErrUnknownTable indicates a seed table name that does not exist.
	ErrUnknownTable = errors.New("catalog: unknown table")

	// ErrCustomUnit indicates a custom unit description that cannot be built.
	ErrCustomUnit = errors.New("catalog: invalid custom unit")
)
