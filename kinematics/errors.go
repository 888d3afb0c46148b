package kinematics

import (
	"github.com/pkg/errors"
)

// ErrNoModelInformation is used when there is no model information.
var ErrNoModelInformation = errors.New("no model information")

// NewIncorrectDoFError returns an error indicating that the number of generalized coordinates
// passed to a model does not match its degrees of freedom.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of dof (%d) does not match expected dof (%d)", actual, expected)
}

// NewUnknownCoordinateError returns an error for a coordinate name the planar model does not know.
func NewUnknownCoordinateError(name string) error {
	return errors.Errorf("unknown coordinate %q, expected one of x, y, theta", name)
}

// NewDuplicateCoordinateError returns an error for a coordinate declared more than once.
func NewDuplicateCoordinateError(name string) error {
	return errors.Errorf("coordinate %q declared more than once", name)
}

// NewUnsupportedJacobianModeError returns an error for a Jacobian mode a model cannot evaluate.
func NewUnsupportedJacobianModeError(mode JacobianMode, modelName string) error {
	return errors.Errorf("model %q does not support jacobian mode %q", modelName, mode)
}

// NewJacobianShapeError is returned when a custom Jacobian function produces a matrix or
// length vector that does not match the declared model dimensions.
func NewJacobianShapeError(rows, cols, numLengths, numCables, numDofs int) error {
	return errors.Errorf(
		"custom jacobian is %dx%d with %d cable lengths, expected %dx%d with %d cable lengths",
		rows, cols, numLengths, numCables, numDofs, numCables,
	)
}
