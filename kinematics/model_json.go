package kinematics

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.uber.org/multierr"

	"go.viam.com/cdpr/utils"
)

// ModelConfigJSON represents all supported fields in a planar cable robot JSON file.
type ModelConfigJSON struct {
	Name         string            `json:"name"`
	JacobianMode JacobianMode      `json:"jacobian_mode,omitempty"`
	Dofs         []string          `json:"dofs"`
	Home         *HomeConfig       `json:"home,omitempty"`
	Cables       []CableConfigJSON `json:"cables"`
}

// HomeConfig is the pose held by coordinates that are not generalized coordinates.
type HomeConfig struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	ThetaDegrees float64 `json:"theta_degrees"`
}

// CableConfigJSON describes one cable.
type CableConfigJSON struct {
	Name       string    `json:"name"`
	Base       r3.Vector `json:"base"`
	Attachment r3.Vector `json:"attachment"`
}

// UnmarshalModelJSON will parse the given JSON data into a cable robot model. modelName sets the
// name of the model, will use the name from the JSON if string is empty.
func UnmarshalModelJSON(jsonData []byte, modelName string) (Model, error) {
	cfg, err := UnmarshalModelConfigJSON(jsonData)
	if err != nil {
		return nil, err
	}
	return cfg.ParseConfig(modelName)
}

// UnmarshalModelConfigJSON parses and validates a model config without building the model.
func UnmarshalModelConfigJSON(jsonData []byte) (*ModelConfigJSON, error) {
	// empty data probably means that the caller never pointed us at a model
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}
	cfg := &ModelConfigJSON{}
	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UnmarshalModelConfigJSON5 is UnmarshalModelConfigJSON for JSON5 documents, which may carry
// comments, unquoted keys and trailing commas.
func UnmarshalModelConfigJSON5(data []byte) (*ModelConfigJSON, error) {
	if len(data) == 0 {
		return nil, ErrNoModelInformation
	}
	cfg := &ModelConfigJSON{}
	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json5 file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseModelJSONFile reads and parses a model config file. Files ending in .json5 are read as
// JSON5.
func ParseModelJSONFile(filename, modelName string) (*ModelConfigJSON, error) {
	//nolint:gosec
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	unmarshal := UnmarshalModelConfigJSON
	if filepath.Ext(filename) == ".json5" {
		unmarshal = UnmarshalModelConfigJSON5
	}
	cfg, err := unmarshal(jsonData)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", filename)
	}
	if modelName != "" {
		cfg.Name = modelName
	}
	return cfg, nil
}

// Validate reports every problem with the config at once.
func (cfg *ModelConfigJSON) Validate() error {
	var errs error
	if len(cfg.Dofs) == 0 {
		errs = multierr.Append(errs, errors.New("no dofs declared"))
	}
	seen := map[string]bool{}
	for _, dof := range cfg.Dofs {
		if _, err := CoordinateFromString(dof); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if seen[dof] {
			errs = multierr.Append(errs, NewDuplicateCoordinateError(dof))
		}
		seen[dof] = true
	}
	if len(cfg.Cables) == 0 {
		errs = multierr.Append(errs, errors.New("no cables declared"))
	}
	if cfg.JacobianMode == JacobianCustom {
		errs = multierr.Append(errs, NewUnsupportedJacobianModeError(cfg.JacobianMode, cfg.Name))
	}
	return errs
}

// ParseConfig converts the config into a PlanarModel named modelName, or the config name when
// modelName is empty. Every call builds an independent model.
func (cfg *ModelConfigJSON) ParseConfig(modelName string) (Model, error) {
	if modelName == "" {
		modelName = cfg.Name
	}
	coords := make([]Coordinate, 0, len(cfg.Dofs))
	for _, dof := range cfg.Dofs {
		c, err := CoordinateFromString(dof)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
	}
	cables := make([]Cable, 0, len(cfg.Cables))
	for _, c := range cfg.Cables {
		cables = append(cables, Cable{Name: c.Name, Base: c.Base, Attachment: c.Attachment})
	}
	model, err := NewPlanarModel(modelName, coords, cables, cfg.JacobianMode)
	if err != nil {
		return nil, err
	}
	if cfg.Home != nil {
		model.SetHome(cfg.Home.X, cfg.Home.Y, utils.DegToRad(cfg.Home.ThetaDegrees))
	}
	return model, nil
}

// Factory returns a ModelFactory building fresh models from this config.
func (cfg *ModelConfigJSON) Factory() ModelFactory {
	return func() (Model, error) {
		return cfg.ParseConfig("")
	}
}
