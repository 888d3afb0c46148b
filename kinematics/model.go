// Package kinematics defines the cable robot models consumed by the workspace analysis: the
// mapping from generalized coordinates to the cable Jacobian and cable lengths.
package kinematics

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// JointType describes how a generalized coordinate moves the platform.
type JointType int

const (
	// Translation coordinates are lengths.
	Translation JointType = iota
	// Rotation coordinates are angles in radians.
	Rotation
)

func (jt JointType) String() string {
	switch jt {
	case Translation:
		return "translation"
	case Rotation:
		return "rotation"
	default:
		return "unknown"
	}
}

// JointTypeFromString parses "translation" or "rotation".
func JointTypeFromString(s string) (JointType, error) {
	switch s {
	case "translation", "prismatic":
		return Translation, nil
	case "rotation", "revolute":
		return Rotation, nil
	default:
		return Translation, errors.Errorf("unknown joint type %q", s)
	}
}

// Model is a stateful cable robot model. Update overwrites the internal state, after which
// Jacobian and CableLengths describe the robot at the new coordinates. A Model must not be shared
// between goroutines.
type Model interface {
	Name() string
	NumDofs() int
	NumCables() int
	JointTypes() []JointType

	// Update sets the generalized coordinates, their rates, accelerations and the external wrench.
	// Rates, accelerations and wrench may be nil when only kinematics are needed.
	Update(q, qDot, qDDot, wExt []float64) error

	// Jacobian returns the numCables x numDofs joint-cable Jacobian L at the last update.
	Jacobian() *mat.Dense
	// CableLengths returns the numCables cable lengths at the last update.
	CableLengths() []float64
}

// ModelFactory builds a fresh, independently owned Model.
type ModelFactory func() (Model, error)

// DegreeOfRedundancy is numCables - numDofs.
func DegreeOfRedundancy(m Model) int {
	return m.NumCables() - m.NumDofs()
}
