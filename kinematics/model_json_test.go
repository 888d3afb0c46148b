package kinematics

import (
	"math"
	"testing"

	"go.uber.org/multierr"
	"go.viam.com/test"
)

func TestParseModelJSONFile(t *testing.T) {
	cfg, err := ParseModelJSONFile("data/planar_xy.json", "")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Name, test.ShouldEqual, "planar_xy")
	test.That(t, cfg.JacobianMode, test.ShouldEqual, JacobianAnalytic)

	model, err := cfg.ParseConfig("")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, model.Name(), test.ShouldEqual, "planar_xy")
	test.That(t, model.NumDofs(), test.ShouldEqual, 2)
	test.That(t, model.NumCables(), test.ShouldEqual, 4)

	// the factory hands out independent models
	factory := cfg.Factory()
	m1, err := factory()
	test.That(t, err, test.ShouldBeNil)
	m2, err := factory()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m1.Update([]float64{1, 1}, nil, nil, nil), test.ShouldBeNil)
	test.That(t, m2.Update([]float64{-1, -1}, nil, nil, nil), test.ShouldBeNil)
	test.That(t, m1.CableLengths()[2], test.ShouldNotAlmostEqual, m2.CableLengths()[2])

	cfg, err = ParseModelJSONFile("data/planar_xytheta.json", "renamed")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Name, test.ShouldEqual, "renamed")
	test.That(t, cfg.JacobianMode, test.ShouldEqual, JacobianNumeric)

	_, err = ParseModelJSONFile("data/missing.json", "")
	test.That(t, err, test.ShouldNotBeNil)

	cfg, err = ParseModelJSONFile("data/planar_xy_offset.json5", "")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.JacobianMode, test.ShouldEqual, JacobianAnalytic)
	model, err = cfg.ParseConfig("")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, model.NumDofs(), test.ShouldEqual, 1)
	test.That(t, model.Update([]float64{0}, nil, nil, nil), test.ShouldBeNil)
	test.That(t, model.CableLengths()[0], test.ShouldAlmostEqual, math.Hypot(2, 2.5))

	_, err = UnmarshalModelConfigJSON5([]byte(`{dofs: ["z"], cables: []}`))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestUnmarshalModelJSON(t *testing.T) {
	_, err := UnmarshalModelJSON(nil, "")
	test.That(t, err, test.ShouldBeError, ErrNoModelInformation)

	_, err = UnmarshalModelJSON([]byte(`{"name": "broken"`), "")
	test.That(t, err, test.ShouldNotBeNil)

	model, err := UnmarshalModelJSON([]byte(`{
		"name": "theta",
		"dofs": ["theta"],
		"home": {"x": 0.5},
		"cables": [{"base": {"x": 1, "y": 0}, "attachment": {"x": 0.1}}]
	}`), "")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, model.JointTypes(), test.ShouldResemble, []JointType{Rotation})
	test.That(t, model.Update([]float64{0}, nil, nil, nil), test.ShouldBeNil)
	test.That(t, model.CableLengths()[0], test.ShouldAlmostEqual, 0.4)

	// the home angle is configured in degrees
	model, err = UnmarshalModelJSON([]byte(`{
		"name": "x",
		"dofs": ["x"],
		"home": {"theta_degrees": 90},
		"cables": [{"base": {"x": 0, "y": 3}, "attachment": {"x": 1}}]
	}`), "")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, model.Update([]float64{0}, nil, nil, nil), test.ShouldBeNil)
	test.That(t, model.CableLengths()[0], test.ShouldAlmostEqual, 2)
}

func TestModelConfigValidate(t *testing.T) {
	cfg := &ModelConfigJSON{
		Name:         "bad",
		JacobianMode: JacobianCustom,
		Dofs:         []string{"x", "x", "z"},
	}
	err := cfg.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	// duplicate x, unknown z, no cables, custom mode
	test.That(t, len(multierr.Errors(err)), test.ShouldEqual, 4)

	cfg = &ModelConfigJSON{Dofs: []string{"x"}, Cables: []CableConfigJSON{{Name: "c"}}}
	test.That(t, cfg.Validate(), test.ShouldBeNil)
}
