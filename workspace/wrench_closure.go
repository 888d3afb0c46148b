package workspace

import (
	"github.com/samber/lo"

	"go.viam.com/cdpr/kinematics"
	"go.viam.com/cdpr/logging"
	"go.viam.com/cdpr/utils"
)

// Strategy names the combinatorial case a wrench closure evaluation ran.
type Strategy string

const (
	// StrategyNone is used when the robot has too few cables for wrench closure.
	StrategyNone Strategy = "none"
	// StrategyFullyRestrained is used for exactly one redundant cable.
	StrategyFullyRestrained Strategy = "fully_restrained"
	// StrategyRedundantlyRestrained is used for more than one redundant cable.
	StrategyRedundantlyRestrained Strategy = "redundantly_restrained"
)

// Stats describes the work done by one ray evaluation.
type Stats struct {
	Strategy Strategy
	// Families is the number of determinant families that were scanned: the minor family for a
	// fully restrained robot, one null space family per (combination, subset) pair otherwise.
	Families int
	// Skipped counts families dropped for non-finite fits.
	Skipped int
	// Segments is the number of candidate sub-intervals sign tested.
	Segments int
	// Determinants is the number of sampled determinants computed.
	Determinants int
	// EarlyExit is set when scanning stopped because the whole range was feasible.
	EarlyExit bool
}

// WrenchClosure finds where along a ray non-negative cable tensions can balance any wrench.
type WrenchClosure struct {
	cfg    Config
	logger logging.Logger
}

// NewWrenchClosure returns a wrench closure ray condition.
func NewWrenchClosure(cfg Config, logger logging.Logger) (*WrenchClosure, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &WrenchClosure{cfg: cfg, logger: logger}, nil
}

// Name returns "wrench_closure".
func (wc *WrenchClosure) Name() string {
	return "wrench_closure"
}

// Evaluate implements RayCondition.
func (wc *WrenchClosure) Evaluate(model kinematics.Model, ray Ray) ([]Interval, error) {
	intervals, _, err := wc.EvaluateWithStats(model, ray)
	return intervals, err
}

// EvaluateWithStats is Evaluate, also reporting how much of the combinatorial search ran.
func (wc *WrenchClosure) EvaluateWithStats(model kinematics.Model, ray Ray) ([]Interval, Stats, error) {
	if model == nil {
		return nil, Stats{}, ErrNilModel
	}
	jointTypes := model.JointTypes()
	if err := ray.Validate(jointTypes); err != nil {
		return nil, Stats{}, err
	}

	redundancy := kinematics.DegreeOfRedundancy(model)
	if redundancy < 1 {
		wc.logger.Debugw("too few cables for wrench closure", "model", model.Name(), "redundancy", redundancy)
		return []Interval{}, Stats{Strategy: StrategyNone}, nil
	}

	rotational := jointTypes[ray.FreeVariableIndex] == kinematics.Rotation
	degree := model.NumDofs()
	if rotational {
		degree *= 2
	}
	basis, err := newPolynomialBasis(ray.FreeVariableRange, degree, rotational, wc.logger)
	if err != nil {
		return nil, Stats{}, err
	}
	sampler := newJacobianSampler(model, ray, basis)
	if err := sampler.sample(); err != nil {
		return nil, Stats{}, err
	}
	set := NewIntervalSet(wc.cfg.Tolerance)

	var stats Stats
	if redundancy == 1 {
		stats = wc.fullyRestrained(sampler, ray.FreeVariableRange, set)
	} else {
		stats = wc.redundantlyRestrained(sampler, ray.FreeVariableRange, redundancy, set)
	}
	stats.Determinants = sampler.determinants

	intervals := filterShortIntervals(set.Intervals(), ray.FreeVariableRange, wc.cfg.MinRayPercentage)
	wc.logger.Debugw("evaluated ray",
		"model", model.Name(),
		"strategy", stats.Strategy,
		"families", stats.Families,
		"segments", stats.Segments,
		"determinants", stats.Determinants,
		"early_exit", stats.EarlyExit,
		"intervals", len(intervals),
	)
	return intervals, stats, nil
}

// combinationSign is the orientation (-1)^(i+1) given to the minor of combination i.
func combinationSign(i int) float64 {
	if i%2 == 0 {
		return -1
	}
	return 1
}

// minorFamily fits the signed minor of every combination.
func minorFamily(sampler *jacobianSampler, combos [][]int) [][]float64 {
	family := make([][]float64, len(combos))
	for i, combo := range combos {
		family[i] = sampler.basis.fitCoefficients(sampler.minorSeries(combo), combinationSign(i))
	}
	return family
}

// fullyRestrained handles numCables == numDofs+1. The signed minors of the numDofs-cable
// combinations, taken in lexicographic order, are the Cramer coefficients of the structure
// matrix null space; the pose is in wrench closure exactly where they share a strict sign.
func (wc *WrenchClosure) fullyRestrained(sampler *jacobianSampler, r Interval, set *IntervalSet) Stats {
	stats := Stats{Strategy: StrategyFullyRestrained, Families: 1}
	combos := utils.Combinations(sampler.numCables, sampler.numDofs)
	family := minorFamily(sampler, combos)

	basis := sampler.basis
	var roots []float64
	for i, coeffs := range family {
		if !finite(coeffs) {
			wc.logger.Debugw("skipping degenerate minor", "combination", combos[i])
			stats.Skipped++
			continue
		}
		roots = append(roots, basis.resolveRoots(coeffs, r, wc.cfg.Tolerance)...)
	}

	// a minor without a finite fit fails every sign test
	boundaries := segmentBoundaries(r, roots, wc.cfg.Tolerance)
	for i := 0; i+1 < len(boundaries); i++ {
		segment := Interval{boundaries[i], boundaries[i+1]}
		stats.Segments++
		if !basis.signConsistent(family, basis.midpoint(segment), wc.cfg.Tolerance) {
			continue
		}
		set.Union(segment)
		if set.Covers(r) {
			wc.logger.Debugw("whole range in wrench closure, stopping early", "segments", stats.Segments)
			stats.EarlyExit = true
			return stats
		}
	}
	return stats
}

// redundantlyRestrained handles more than one redundant cable. Every numDofs-cable combination is
// augmented with the summed column of each non-empty subset of its remaining cables; the pose is
// in wrench closure wherever one of these numDofs+1 column matrices has a strictly signed null
// space.
func (wc *WrenchClosure) redundantlyRestrained(
	sampler *jacobianSampler,
	r Interval,
	redundancy int,
	set *IntervalSet,
) Stats {
	stats := Stats{Strategy: StrategyRedundantlyRestrained}
	numDofs, numCables := sampler.numDofs, sampler.numCables
	combos := utils.Combinations(numCables, numDofs)
	subsets := make([][][]int, len(combos))
	for c, combo := range combos {
		subsets[c] = utils.NonEmptySubsets(utils.Complement(numCables, combo))
	}

	basis := sampler.basis
	family := make([][]float64, numDofs+1)
	for c, combo := range combos {
		for _, subset := range subsets[c] {
			stats.Families++
			degenerate := false
			for drop, series := range sampler.familySeries(combo, subset) {
				sign := 1.
				if drop%2 == 1 {
					sign = -1
				}
				family[drop] = basis.fitCoefficients(series, sign)
				degenerate = degenerate || !finite(family[drop])
			}
			if degenerate {
				wc.logger.Debugw("skipping degenerate family", "combination", combo, "subset", subset)
				stats.Skipped++
				continue
			}

			// the combination's own minor is the one with the augmented column dropped
			roots := basis.resolveRoots(family[numDofs], r, wc.cfg.Tolerance)
			for _, paired := range family[:numDofs] {
				roots = append(roots, basis.resolveRoots(paired, r, wc.cfg.Tolerance)...)
			}
			boundaries := segmentBoundaries(r, roots, wc.cfg.Tolerance)
			for i := 0; i+1 < len(boundaries); i++ {
				segment := Interval{boundaries[i], boundaries[i+1]}
				// test strictly inside the segment, away from the roots bounding it
				test := Interval{segment.Lo + wc.cfg.Tolerance, segment.Hi - wc.cfg.Tolerance}
				if test.Lo >= test.Hi {
					continue
				}
				stats.Segments++
				if basis.signConsistent(family, basis.midpoint(test), wc.cfg.Tolerance) {
					set.Union(segment)
				}
			}

			if set.Covers(r) {
				wc.logger.Debugw("whole range in wrench closure, stopping early", "families", stats.Families)
				stats.EarlyExit = true
				return stats
			}
			// Carried over from the single redundant cable case; redundancy is always above one
			// here, so scanning never stops on a partially feasible ray.
			if redundancy == 1 && set.Len() > 0 && set.Intervals()[0].PercentageOf(r) >= wc.cfg.MinRayPercentage {
				return stats
			}
		}
	}
	return stats
}

// filterShortIntervals drops intervals shorter than minPercentage of the range.
func filterShortIntervals(intervals []Interval, r Interval, minPercentage float64) []Interval {
	return lo.Filter(intervals, func(iv Interval, _ int) bool {
		return iv.PercentageOf(r) >= minPercentage
	})
}
