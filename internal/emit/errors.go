package emit

import "errors"

var (
	// ErrTypeName indicates a unit whose Go type name is not an exported identifier.
	ErrTypeName = errors.New("emit: invalid type name")

	// ErrTypeNameCollision indicates two units mapping to the same Go type name.
	ErrTypeNameCollision = errors.New("emit: type name collision")

	// ErrUnknownType indicates an extra member referring to a unit that is not generated.
	ErrUnknownType = errors.New("emit: unknown unit type")

	// ErrNotDistributed indicates rendering a registry whose operators have
	// not been handed to their hosts yet.
	ErrNotDistributed = errors.New("emit: operators not distributed")

	// ErrLocked indicates another generation is writing the output directory.
	ErrLocked = errors.New("emit: output directory is locked")
)
