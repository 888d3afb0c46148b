package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"go.viam.com/cdpr/kinematics"
	"go.viam.com/cdpr/logging"
	"go.viam.com/cdpr/utils"
)

// SweepSpec describes a family of parallel rays: one free variable over a common range, and a
// grid of values for the remaining dofs.
type SweepSpec struct {
	FreeVariableIndex int      `json:"free_variable_index"`
	FreeVariableRange Interval `json:"free_variable_range"`
	// FixedValues holds the values to sweep for each fixed dof, in dof order with the free
	// variable skipped. Every combination becomes one ray.
	FixedValues [][]float64 `json:"fixed_values"`
}

// Rays returns the rays of the sweep in grid order, the last fixed dof varying fastest.
func (spec SweepSpec) Rays() []Ray {
	grid := utils.Grid(spec.FixedValues)
	if grid == nil {
		if utils.GridSize(spec.FixedValues) == 0 {
			return nil
		}
		return []Ray{{FreeVariableIndex: spec.FreeVariableIndex, FreeVariableRange: spec.FreeVariableRange, FixedVariables: []float64{}}}
	}
	numRays, numFixed := grid.Dims()
	rays := make([]Ray, numRays)
	for i := range rays {
		fixed := make([]float64, numFixed)
		copy(fixed, grid.RawRowView(i))
		rays[i] = Ray{
			FreeVariableIndex: spec.FreeVariableIndex,
			FreeVariableRange: spec.FreeVariableRange,
			FixedVariables:    fixed,
		}
	}
	return rays
}

// RayResult is the outcome of evaluating a condition on one ray of a sweep.
type RayResult struct {
	Ray       Ray        `json:"ray"`
	Intervals []Interval `json:"intervals"`
	// Coverage is the percentage of the ray range covered by the intervals.
	Coverage float64 `json:"coverage"`
}

// SweepResults are the per-ray results of a sweep in grid order.
type SweepResults []RayResult

// Sweep evaluates cond on every ray of spec in parallel. Each evaluation gets its own model from
// factory since evaluating a ray updates the model.
func Sweep(
	ctx context.Context,
	factory kinematics.ModelFactory,
	cond RayCondition,
	spec SweepSpec,
	logger logging.Logger,
) (SweepResults, error) {
	rays := spec.Rays()
	results := make(SweepResults, len(rays))
	workers := utils.Workers(len(rays))
	logger.Debugw("starting sweep", "condition", cond.Name(), "rays", len(rays), "workers", workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ray := range rays {
		if gctx.Err() != nil {
			break
		}
		i, ray := i, ray
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			model, err := factory()
			if err != nil {
				return errors.Wrapf(err, "creating model for ray %d", i)
			}
			intervals, err := cond.Evaluate(model, ray)
			if err != nil {
				return errors.Wrapf(err, "evaluating ray %d %v", i, ray.FixedVariables)
			}
			results[i] = RayResult{
				Ray:       ray,
				Intervals: intervals,
				Coverage:  coverage(intervals, ray.FreeVariableRange),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// a cancellation that raced the last scheduled ray leaves holes in results
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func coverage(intervals []Interval, r Interval) float64 {
	total := 0.
	for _, iv := range intervals {
		total += iv.PercentageOf(r)
	}
	return total
}

// SweepSummary aggregates the coverage of a sweep.
type SweepSummary struct {
	Rays           int     `json:"rays"`
	FeasibleRays   int     `json:"feasible_rays"`
	MeanCoverage   float64 `json:"mean_coverage"`
	MedianCoverage float64 `json:"median_coverage"`
	MaxCoverage    float64 `json:"max_coverage"`
}

// Summarize computes coverage statistics over the results. A ray is feasible if any interval was
// found on it.
func (results SweepResults) Summarize() (SweepSummary, error) {
	if len(results) == 0 {
		return SweepSummary{}, errors.New("cannot summarize an empty sweep")
	}
	coverages := stats.Float64Data(lo.Map(results, func(res RayResult, _ int) float64 { return res.Coverage }))
	mean, err := stats.Mean(coverages)
	if err != nil {
		return SweepSummary{}, err
	}
	median, err := stats.Median(coverages)
	if err != nil {
		return SweepSummary{}, err
	}
	maxCoverage, err := stats.Max(coverages)
	if err != nil {
		return SweepSummary{}, err
	}
	return SweepSummary{
		Rays:           len(results),
		FeasibleRays:   lo.CountBy(results, func(res RayResult) bool { return len(res.Intervals) > 0 }),
		MeanCoverage:   mean,
		MedianCoverage: median,
		MaxCoverage:    maxCoverage,
	}, nil
}

// String prints a table with one row per ray.
func (results SweepResults) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Fixed", "Intervals", "Coverage %"})
	for i, res := range results {
		t.AppendRow([]interface{}{
			fmt.Sprintf("%d", i),
			formatValues(res.Ray.FixedVariables),
			FormatIntervals(res.Intervals),
			fmt.Sprintf("%.2f", res.Coverage),
		})
	}
	return t.Render()
}

func (summary SweepSummary) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Rays", "Feasible", "Mean %", "Median %", "Max %"})
	t.AppendRow([]interface{}{
		summary.Rays,
		summary.FeasibleRays,
		fmt.Sprintf("%.2f", summary.MeanCoverage),
		fmt.Sprintf("%.2f", summary.MedianCoverage),
		fmt.Sprintf("%.2f", summary.MaxCoverage),
	})
	return t.Render()
}

// FormatIntervals joins intervals for display, or returns "none".
func FormatIntervals(intervals []Interval) string {
	if len(intervals) == 0 {
		return "none"
	}
	return strings.Join(lo.Map(intervals, func(iv Interval, _ int) string { return iv.String() }), " ")
}

func formatValues(values []float64) string {
	return strings.Join(lo.Map(values, func(v float64, _ int) string { return fmt.Sprintf("%.4g", v) }), ", ")
}
