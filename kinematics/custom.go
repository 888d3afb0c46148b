package kinematics

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// CustomFunc evaluates a caller-compiled model at the given state, returning the
// numCables x numDofs Jacobian and the cable lengths.
type CustomFunc func(q, qDot, qDDot, wExt []float64) (*mat.Dense, []float64, error)

// CustomModel is a model whose Jacobian comes from a CustomFunc.
type CustomModel struct {
	name       string
	jointTypes []JointType
	numCables  int
	fn         CustomFunc

	jacobian *mat.Dense
	lengths  []float64
}

// NewCustomModel wraps fn as a Model with the given joint types and cable count.
func NewCustomModel(name string, jointTypes []JointType, numCables int, fn CustomFunc) (*CustomModel, error) {
	if fn == nil {
		return nil, errors.Errorf("model %q has no jacobian function", name)
	}
	if len(jointTypes) == 0 || numCables <= 0 {
		return nil, errors.Errorf("model %q needs at least one dof and one cable", name)
	}
	return &CustomModel{
		name:       name,
		jointTypes: append([]JointType{}, jointTypes...),
		numCables:  numCables,
		fn:         fn,
		jacobian:   mat.NewDense(numCables, len(jointTypes), nil),
		lengths:    make([]float64, numCables),
	}, nil
}

// Name returns the model name.
func (m *CustomModel) Name() string { return m.name }

// NumDofs returns the number of generalized coordinates.
func (m *CustomModel) NumDofs() int { return len(m.jointTypes) }

// NumCables returns the number of cables.
func (m *CustomModel) NumCables() int { return m.numCables }

// Mode is always JacobianCustom.
func (m *CustomModel) Mode() JacobianMode { return JacobianCustom }

// JointTypes returns the joint type of every generalized coordinate.
func (m *CustomModel) JointTypes() []JointType { return m.jointTypes }

// Update evaluates the custom function and checks the shape of what it returns.
func (m *CustomModel) Update(q, qDot, qDDot, wExt []float64) error {
	if len(q) != len(m.jointTypes) {
		return NewIncorrectDoFError(len(q), len(m.jointTypes))
	}
	jacobian, lengths, err := m.fn(q, qDot, qDDot, wExt)
	if err != nil {
		return errors.Wrapf(err, "evaluating model %q", m.name)
	}
	if jacobian == nil {
		return NewJacobianShapeError(0, 0, len(lengths), m.numCables, len(m.jointTypes))
	}
	rows, cols := jacobian.Dims()
	if rows != m.numCables || cols != len(m.jointTypes) || len(lengths) != m.numCables {
		return NewJacobianShapeError(rows, cols, len(lengths), m.numCables, len(m.jointTypes))
	}
	m.jacobian.Copy(jacobian)
	copy(m.lengths, lengths)
	return nil
}

// Jacobian returns the joint-cable Jacobian at the last update.
func (m *CustomModel) Jacobian() *mat.Dense { return m.jacobian }

// CableLengths returns the cable lengths at the last update.
func (m *CustomModel) CableLengths() []float64 { return m.lengths }
