package algebra

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry operations. Configuration errors abort a
// generation run; they are never retried or merged away.
var (
	// ErrDuplicateIdentity indicates a second unit with an already registered dimension.
	ErrDuplicateIdentity = errors.New("algebra: duplicate unit identity")

	// ErrDuplicateName indicates a second unit with an already registered name.
	ErrDuplicateName = errors.New("algebra: duplicate unit name")

	// ErrUnnamedUnit indicates a unit whose name could not be defaulted.
	ErrUnnamedUnit = errors.New("algebra: unit has no name")

	// ErrUnknownUnit indicates a unit name that is not registered.
	ErrUnknownUnit = errors.New("algebra: unknown unit")

	// ErrUnknownOperator indicates an operator symbol other than '*' or '/'.
	ErrUnknownOperator = errors.New("algebra: unknown operator")

	// ErrUnknownTag indicates a tag name that does not exist.
	ErrUnknownTag = errors.New("algebra: unknown tag")

	// ErrUnknownVecClass indicates a vector class name that does not exist.
	ErrUnknownVecClass = errors.New("algebra: unknown vector class")

	// ErrNilOperand indicates a missing right operand.
	ErrNilOperand = errors.New("algebra: nil operand")

	// ErrDistributed indicates an op was added after operations were distributed.
	ErrDistributed = errors.New("algebra: operations already distributed")

	// ErrPermutationTooLarge indicates a permutation group above MaxPermutationUnits.
	ErrPermutationTooLarge = errors.New("algebra: permutation group too large")
)

// CollisionError reports a unit that could not be registered because another
// unit already holds its identity or name. Unit is always the incoming unit
// and Existing the registered one.
type CollisionError struct {
	Kind     error
	Unit     *Unit
	Existing *Unit
}

func (e *CollisionError) Error() string {
	what := "identity " + e.Unit.Key().String()
	if errors.Is(e.Kind, ErrDuplicateName) {
		what = fmt.Sprintf("name %q", e.Unit.Name)
	}
	return fmt.Sprintf("%v: %s(%s) with %s collides with %s(%s) %s",
		e.Kind, e.Unit.Name, e.Unit.Summary, what,
		e.Existing.Name, e.Existing.Summary, e.Existing.Key())
}

func (e *CollisionError) Unwrap() error { return e.Kind }
