package kinematics

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// JacobianMode selects how a model evaluates its Jacobian. It is fixed at construction.
type JacobianMode int

const (
	// JacobianAnalytic evaluates the closed-form Jacobian.
	JacobianAnalytic JacobianMode = iota
	// JacobianNumeric differentiates the cable lengths by central finite differences.
	JacobianNumeric
	// JacobianCustom delegates to a caller-supplied function.
	JacobianCustom
)

// defaultNumericStep is the finite difference step used by JacobianNumeric.
const defaultNumericStep = 1e-6

func (mode JacobianMode) String() string {
	switch mode {
	case JacobianAnalytic:
		return "analytic"
	case JacobianNumeric:
		return "numeric"
	case JacobianCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// JacobianModeFromString parses a mode name. The empty string is the analytic default.
func JacobianModeFromString(s string) (JacobianMode, error) {
	switch s {
	case "", "analytic", "default", "symbolic":
		return JacobianAnalytic, nil
	case "numeric":
		return JacobianNumeric, nil
	case "custom", "compiled":
		return JacobianCustom, nil
	default:
		return JacobianAnalytic, errors.Errorf("unknown jacobian mode %q", s)
	}
}

// MarshalJSON encodes the mode by name.
func (mode JacobianMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(mode.String())
}

// UnmarshalJSON decodes a mode name.
func (mode *JacobianMode) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*mode, err = JacobianModeFromString(s)
	return
}
