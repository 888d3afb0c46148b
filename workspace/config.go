package workspace

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// DefaultTolerance is the numerical tolerance used for coefficient trimming, sign tests and
// interval adjacency.
const DefaultTolerance = 1e-8

// Config is the construction-time configuration of a ray condition.
type Config struct {
	// MinRayPercentage is the minimum length of a reported interval, as a percentage of the ray
	// range.
	MinRayPercentage float64 `json:"min_ray_percentage"`
	Tolerance        float64 `json:"tolerance"`
}

// NewDefaultConfig returns a config reporting every interval with the default tolerance.
func NewDefaultConfig() Config {
	return Config{Tolerance: DefaultTolerance}
}

// Validate returns every problem with the config.
func (cfg Config) Validate() error {
	var errs error
	if cfg.MinRayPercentage < 0 || cfg.MinRayPercentage > 100 {
		errs = multierr.Append(errs, errors.Errorf("min ray percentage %v must be in [0, 100]", cfg.MinRayPercentage))
	}
	if !(cfg.Tolerance > 0) {
		errs = multierr.Append(errs, errors.Errorf("tolerance %v must be positive", cfg.Tolerance))
	}
	return errs
}
