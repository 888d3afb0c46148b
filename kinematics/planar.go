package kinematics

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Coordinate names one planar pose coordinate of the platform.
type Coordinate int

const (
	// CoordinateX is the platform x position.
	CoordinateX Coordinate = iota
	// CoordinateY is the platform y position.
	CoordinateY
	// CoordinateTheta is the platform heading in radians.
	CoordinateTheta
)

func (c Coordinate) String() string {
	switch c {
	case CoordinateX:
		return "x"
	case CoordinateY:
		return "y"
	case CoordinateTheta:
		return "theta"
	default:
		return "unknown"
	}
}

// JointType returns Rotation for theta and Translation otherwise.
func (c Coordinate) JointType() JointType {
	if c == CoordinateTheta {
		return Rotation
	}
	return Translation
}

// CoordinateFromString parses x, y or theta.
func CoordinateFromString(s string) (Coordinate, error) {
	switch s {
	case "x":
		return CoordinateX, nil
	case "y":
		return CoordinateY, nil
	case "theta", "rz":
		return CoordinateTheta, nil
	default:
		return CoordinateX, NewUnknownCoordinateError(s)
	}
}

// Cable connects a fixed base anchor to an attachment point on the platform. Only the X and Y
// components are used; the attachment is expressed in the platform frame.
type Cable struct {
	Name       string
	Base       r3.Vector
	Attachment r3.Vector
}

// PlanarModel is a rigid platform moving in the plane, pulled by cables. Its generalized
// coordinates are an ordered subset of {x, y, theta}; coordinates that are not generalized are
// held at the home pose.
type PlanarModel struct {
	name   string
	coords []Coordinate
	cables []Cable
	mode   JacobianMode
	step   float64
	home   [3]float64

	pose     [3]float64
	lengths  []float64
	jacobian *mat.Dense
}

// NewPlanarModel returns a planar model over the given coordinates and cables. Only the analytic
// and numeric Jacobian modes are supported.
func NewPlanarModel(name string, coords []Coordinate, cables []Cable, mode JacobianMode) (*PlanarModel, error) {
	if len(coords) == 0 {
		return nil, errors.Errorf("model %q has no coordinates", name)
	}
	if len(cables) == 0 {
		return nil, errors.Errorf("model %q has no cables", name)
	}
	seen := map[Coordinate]bool{}
	for _, c := range coords {
		if seen[c] {
			return nil, NewDuplicateCoordinateError(c.String())
		}
		seen[c] = true
	}
	if mode != JacobianAnalytic && mode != JacobianNumeric {
		return nil, NewUnsupportedJacobianModeError(mode, name)
	}
	m := &PlanarModel{
		name:     name,
		coords:   append([]Coordinate{}, coords...),
		cables:   append([]Cable{}, cables...),
		mode:     mode,
		step:     defaultNumericStep,
		lengths:  make([]float64, len(cables)),
		jacobian: mat.NewDense(len(cables), len(coords), nil),
	}
	return m, nil
}

// SetHome sets the pose used for coordinates that are not generalized coordinates of the model.
func (m *PlanarModel) SetHome(x, y, theta float64) {
	m.home = [3]float64{x, y, theta}
}

// Name returns the model name.
func (m *PlanarModel) Name() string { return m.name }

// NumDofs returns the number of generalized coordinates.
func (m *PlanarModel) NumDofs() int { return len(m.coords) }

// NumCables returns the number of cables.
func (m *PlanarModel) NumCables() int { return len(m.cables) }

// Mode returns the Jacobian evaluation mode.
func (m *PlanarModel) Mode() JacobianMode { return m.mode }

// JointTypes returns the joint type of every generalized coordinate.
func (m *PlanarModel) JointTypes() []JointType {
	types := make([]JointType, len(m.coords))
	for i, c := range m.coords {
		types[i] = c.JointType()
	}
	return types
}

// Update moves the platform to q. The planar model is purely kinematic so qDot, qDDot and wExt
// are ignored.
func (m *PlanarModel) Update(q, qDot, qDDot, wExt []float64) error {
	if len(q) != len(m.coords) {
		return NewIncorrectDoFError(len(q), len(m.coords))
	}
	m.pose = m.poseFor(q)
	m.cableLengths(m.pose, m.lengths)
	switch m.mode {
	case JacobianNumeric:
		m.numericJacobian(q)
	case JacobianAnalytic:
		m.analyticJacobian()
	case JacobianCustom:
		return NewUnsupportedJacobianModeError(m.mode, m.name)
	}
	return nil
}

// Jacobian returns the joint-cable Jacobian at the last update.
func (m *PlanarModel) Jacobian() *mat.Dense { return m.jacobian }

// CableLengths returns the cable lengths at the last update.
func (m *PlanarModel) CableLengths() []float64 { return m.lengths }

func (m *PlanarModel) poseFor(q []float64) [3]float64 {
	pose := m.home
	for i, c := range m.coords {
		pose[c] = q[i]
	}
	return pose
}

// cableVector returns the vector from the platform attachment point to the base anchor, and the
// attachment point relative to the platform origin, both in the world frame.
func (m *PlanarModel) cableVector(pose [3]float64, cable Cable) (r3.Vector, r3.Vector) {
	sin, cos := math.Sincos(pose[CoordinateTheta])
	rotated := r3.Vector{
		X: cos*cable.Attachment.X - sin*cable.Attachment.Y,
		Y: sin*cable.Attachment.X + cos*cable.Attachment.Y,
	}
	base := r3.Vector{X: cable.Base.X, Y: cable.Base.Y}
	return base.Sub(r3.Vector{X: pose[CoordinateX], Y: pose[CoordinateY]}).Sub(rotated), rotated
}

func (m *PlanarModel) cableLengths(pose [3]float64, dst []float64) {
	for i, cable := range m.cables {
		d, _ := m.cableVector(pose, cable)
		dst[i] = d.Norm()
	}
}

func (m *PlanarModel) analyticJacobian() {
	for i, cable := range m.cables {
		d, rotated := m.cableVector(m.pose, cable)
		u := d.Mul(1 / d.Norm())
		for j, c := range m.coords {
			switch c {
			case CoordinateX:
				m.jacobian.Set(i, j, -u.X)
			case CoordinateY:
				m.jacobian.Set(i, j, -u.Y)
			case CoordinateTheta:
				m.jacobian.Set(i, j, -rotated.Cross(u).Z)
			}
		}
	}
}

func (m *PlanarModel) numericJacobian(q []float64) {
	shifted := make([]float64, len(q))
	plus := make([]float64, len(m.cables))
	minus := make([]float64, len(m.cables))
	for j := range q {
		copy(shifted, q)
		shifted[j] = q[j] + m.step
		m.cableLengths(m.poseFor(shifted), plus)
		shifted[j] = q[j] - m.step
		m.cableLengths(m.poseFor(shifted), minus)
		for i := range m.cables {
			m.jacobian.Set(i, j, (plus[i]-minus[i])/(2*m.step))
		}
	}
}
