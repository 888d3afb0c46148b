package workspace

import (
	"fmt"
	"math"

	"go.viam.com/cdpr/kinematics"
)

// Interval is a closed range [Lo, Hi] of the free variable.
type Interval struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Length returns Hi - Lo.
func (iv Interval) Length() float64 {
	return iv.Hi - iv.Lo
}

// PercentageOf returns the length of iv as a percentage of the length of r.
func (iv Interval) PercentageOf(r Interval) float64 {
	return 100 * iv.Length() / r.Length()
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%.6g, %.6g]", iv.Lo, iv.Hi)
}

// Ray is a one dimensional slice of configuration space: one free coordinate sweeping a range,
// all other coordinates held at fixed values.
type Ray struct {
	FreeVariableIndex int       `json:"free_variable_index"`
	FreeVariableRange Interval  `json:"free_variable_range"`
	FixedVariables    []float64 `json:"fixed_variables"`
}

// Validate checks the ray against the joint types of the model it will be evaluated on.
func (r Ray) Validate(jointTypes []kinematics.JointType) error {
	numDofs := len(jointTypes)
	if r.FreeVariableIndex < 0 || r.FreeVariableIndex >= numDofs {
		return NewFreeVariableIndexError(r.FreeVariableIndex, numDofs)
	}
	if len(r.FixedVariables) != numDofs-1 {
		return NewIncorrectFixedVariablesError(len(r.FixedVariables), numDofs)
	}
	lo, hi := r.FreeVariableRange.Lo, r.FreeVariableRange.Hi
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || !(lo < hi) {
		return NewInvalidRangeError(r.FreeVariableRange)
	}
	if jointTypes[r.FreeVariableIndex] == kinematics.Rotation && (lo <= -math.Pi || hi >= math.Pi) {
		return NewRotationalRangeError(r.FreeVariableRange)
	}
	return nil
}

// Coordinates returns the full coordinate vector with the free variable set to value.
func (r Ray) Coordinates(value float64) []float64 {
	q := make([]float64, 0, len(r.FixedVariables)+1)
	q = append(q, r.FixedVariables[:r.FreeVariableIndex]...)
	q = append(q, value)
	return append(q, r.FixedVariables[r.FreeVariableIndex:]...)
}

// RayCondition is a workspace condition evaluated along a ray. Implementations must be safe to
// call concurrently with distinct models.
type RayCondition interface {
	Name() string
	// Evaluate returns the ascending, disjoint sub-intervals of the ray range on which the
	// condition holds. It drives the model's Update, so the model must not be shared.
	Evaluate(model kinematics.Model, ray Ray) ([]Interval, error)
}
