package workspace

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/cdpr/kinematics"
)

// jacobianSampler drives the model along the ray once, keeping the scaled structure matrix
// A = -s * L^T * diag(lengths) of every sample, and computes determinants of its column subsets
// on demand.
type jacobianSampler struct {
	model kinematics.Model
	ray   Ray
	basis *polynomialBasis

	numDofs   int
	numCables int

	matrices  []*mat.Dense
	augmented *mat.Dense
	scratch   *mat.Dense
	kept      []int

	// determinants counts the determinants computed so far.
	determinants int
}

func newJacobianSampler(model kinematics.Model, ray Ray, basis *polynomialBasis) *jacobianSampler {
	numDofs := model.NumDofs()
	return &jacobianSampler{
		model:     model,
		ray:       ray,
		basis:     basis,
		numDofs:   numDofs,
		numCables: model.NumCables(),
		augmented: mat.NewDense(numDofs, numDofs+1, nil),
		scratch:   mat.NewDense(numDofs, numDofs, nil),
		kept:      make([]int, 0, numDofs),
	}
}

// sample updates the model at every sample point and stores the structure matrices.
func (s *jacobianSampler) sample() error {
	s.matrices = make([]*mat.Dense, s.basis.numSamples())
	for k := range s.matrices {
		a, err := s.structureMatrix(k)
		if err != nil {
			return err
		}
		s.matrices[k] = a
	}
	return nil
}

// structureMatrix updates the model at sample k and returns the numDofs x numCables matrix A.
func (s *jacobianSampler) structureMatrix(k int) (*mat.Dense, error) {
	value := s.basis.sampleValue(k)
	if err := s.model.Update(s.ray.Coordinates(value), nil, nil, nil); err != nil {
		return nil, errors.Wrapf(err, "updating model at free variable %v", value)
	}
	jacobian := s.model.Jacobian()
	lengths := s.model.CableLengths()
	scale := s.basis.sampleScale(k)

	a := mat.NewDense(s.numDofs, s.numCables, nil)
	for i := 0; i < s.numDofs; i++ {
		for j := 0; j < s.numCables; j++ {
			a.Set(i, j, -scale*jacobian.At(j, i)*lengths[j])
		}
	}
	return a, nil
}

// minorDeterminant returns det of the columns cols of a, or NaN if any entry is not finite.
func minorDeterminant(a *mat.Dense, cols []int, scratch *mat.Dense) float64 {
	rows, _ := a.Dims()
	for c, col := range cols {
		for r := 0; r < rows; r++ {
			v := a.At(r, col)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return math.NaN()
			}
			scratch.Set(r, c, v)
		}
	}
	return mat.Det(scratch)
}

// minorSeries returns the determinant of the columns cols at each sample.
func (s *jacobianSampler) minorSeries(cols []int) []float64 {
	series := make([]float64, len(s.matrices))
	for k, a := range s.matrices {
		series[k] = minorDeterminant(a, cols, s.scratch)
	}
	s.determinants += len(series)
	return series
}

// familySeries returns the determinants of the numDofs+1 column matrix
// [A_combination | sum(A_subset)] with one column dropped: series[dropped][sample].
func (s *jacobianSampler) familySeries(combo, subset []int) [][]float64 {
	numColumns := s.numDofs + 1
	series := make([][]float64, numColumns)
	for drop := range series {
		series[drop] = make([]float64, len(s.matrices))
	}
	for k, a := range s.matrices {
		for i, col := range combo {
			s.augmented.SetCol(i, mat.Col(nil, col, a))
		}
		for r := 0; r < s.numDofs; r++ {
			sum := 0.
			for _, col := range subset {
				sum += a.At(r, col)
			}
			s.augmented.Set(r, s.numDofs, sum)
		}
		for drop := 0; drop < numColumns; drop++ {
			s.kept = s.kept[:0]
			for col := 0; col < numColumns; col++ {
				if col != drop {
					s.kept = append(s.kept, col)
				}
			}
			series[drop][k] = minorDeterminant(s.augmented, s.kept, s.scratch)
		}
	}
	s.determinants += numColumns * len(s.matrices)
	return series
}
