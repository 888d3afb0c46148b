package workspace

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/cdpr/logging"
)

// polynomialBasis fits degree-D polynomials to D+1 equally spaced samples of the free variable.
// Rotational free variables are fitted in the tangent half-angle t = tan(x/2), which turns the
// sin/cos entries of the Jacobian into polynomials.
type polynomialBasis struct {
	degree     int
	rotational bool
	abscissas  []float64
	fit        *mat.Dense
}

func newPolynomialBasis(r Interval, degree int, rotational bool, logger logging.Logger) (*polynomialBasis, error) {
	pb := &polynomialBasis{degree: degree, rotational: rotational}
	lo, hi := pb.substitute(r.Lo), pb.substitute(r.Hi)
	pb.abscissas = make([]float64, degree+1)
	for k := range pb.abscissas {
		pb.abscissas[k] = lo + (hi-lo)*float64(k)/float64(degree)
	}
	pb.abscissas[degree] = hi

	var inv mat.Dense
	if err := inv.Inverse(buildFitMatrix(pb.abscissas, degree)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, errors.Wrap(err, "inverting polynomial fit matrix")
		}
		// ill conditioned but usable; degeneracies surface as non-finite fits downstream
		logger.Debugw("polynomial fit matrix is ill conditioned", "condition", float64(cond), "degree", degree)
	}
	pb.fit = &inv
	return pb, nil
}

// buildFitMatrix returns the Vandermonde design matrix whose row k is the basis at abscissas[k].
func buildFitMatrix(abscissas []float64, degree int) *mat.Dense {
	design := mat.NewDense(len(abscissas), degree+1, nil)
	for k, x := range abscissas {
		design.SetRow(k, evaluateBasisAt(x, degree))
	}
	return design
}

// evaluateBasisAt returns [x^degree, ..., x, 1].
func evaluateBasisAt(x float64, degree int) []float64 {
	basis := make([]float64, degree+1)
	power := 1.0
	for i := degree; i >= 0; i-- {
		basis[i] = power
		power *= x
	}
	return basis
}

func (pb *polynomialBasis) substitute(x float64) float64 {
	if pb.rotational {
		return math.Tan(x / 2)
	}
	return x
}

func (pb *polynomialBasis) unsubstitute(t float64) float64 {
	if pb.rotational {
		return 2 * math.Atan(t)
	}
	return t
}

// numSamples is the number of points the Jacobian is sampled at.
func (pb *polynomialBasis) numSamples() int {
	return pb.degree + 1
}

// sampleValue returns the free variable value of sample k.
func (pb *polynomialBasis) sampleValue(k int) float64 {
	return pb.unsubstitute(pb.abscissas[k])
}

// sampleScale is the factor that clears the denominator of the substitution at sample k.
func (pb *polynomialBasis) sampleScale(k int) float64 {
	if pb.rotational {
		t := pb.abscissas[k]
		return 1 + t*t
	}
	return 1
}

// fitCoefficients fits series, scaled by sign, returning coefficients from the highest power down.
func (pb *polynomialBasis) fitCoefficients(series []float64, sign float64) []float64 {
	var coeffs mat.VecDense
	coeffs.MulVec(pb.fit, mat.NewVecDense(len(series), series))
	out := make([]float64, pb.degree+1)
	for i := range out {
		out[i] = sign * coeffs.AtVec(i)
	}
	return out
}

// evaluate returns the value of the fitted polynomial at t, a point of the substituted domain.
func (pb *polynomialBasis) evaluate(coeffs []float64, t float64) float64 {
	return floats.Dot(coeffs, evaluateBasisAt(t, pb.degree))
}

// midpoint returns the middle of iv in the substituted domain.
func (pb *polynomialBasis) midpoint(iv Interval) float64 {
	return (pb.substitute(iv.Lo) + pb.substitute(iv.Hi)) / 2
}
