package workspace

import (
	"github.com/pkg/errors"
)

// ErrNilModel is returned when a ray is evaluated without a model.
var ErrNilModel = errors.New("cannot evaluate a ray without a model")

// NewInvalidRangeError is returned when a ray range is empty, inverted or not finite.
func NewInvalidRangeError(r Interval) error {
	return errors.Errorf("invalid free variable range %v, need lo < hi", r)
}

// NewRotationalRangeError is returned when a rotational free variable range leaves (-pi, pi),
// where the tangent half-angle substitution is defined.
func NewRotationalRangeError(r Interval) error {
	return errors.Errorf("rotational free variable range %v must lie strictly inside (-pi, pi)", r)
}

// NewFreeVariableIndexError is returned when the free variable does not name a dof of the model.
func NewFreeVariableIndexError(index, numDofs int) error {
	return errors.Errorf("free variable index %d out of range for %d dofs", index, numDofs)
}

// NewIncorrectFixedVariablesError is returned when a ray does not fix every other dof.
func NewIncorrectFixedVariablesError(actual, numDofs int) error {
	return errors.Errorf("ray has %d fixed variables, expected %d for %d dofs", actual, numDofs-1, numDofs)
}
