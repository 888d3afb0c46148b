package workspace

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"go.viam.com/cdpr/utils"
)

// finite reports whether every coefficient is a finite number.
func finite(coeffs []float64) bool {
	for _, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// trimLeading drops the leading run of coefficients with magnitude below tolerance. An all-zero
// polynomial trims to nothing.
func trimLeading(coeffs []float64, tolerance float64) []float64 {
	for i, c := range coeffs {
		if math.Abs(c) >= tolerance {
			return coeffs[i:]
		}
	}
	return nil
}

// polynomialRoots returns the real roots of the polynomial with coefficients from the highest
// power down, found as the eigenvalues of its companion matrix.
func polynomialRoots(coeffs []float64, tolerance float64) []float64 {
	degree := len(coeffs) - 1
	if degree < 1 {
		return nil
	}
	companion := mat.NewDense(degree, degree, nil)
	for j := 0; j < degree; j++ {
		companion.Set(0, j, -coeffs[j+1]/coeffs[0])
	}
	for i := 1; i < degree; i++ {
		companion.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return nil
	}
	roots := make([]float64, 0, degree)
	for _, v := range eig.Values(nil) {
		if math.Abs(imag(v)) <= tolerance {
			roots = append(roots, real(v))
		}
	}
	return roots
}

// resolveRoots returns the roots of a fitted polynomial that lie strictly inside the ray range,
// mapped back from the substituted domain. Degenerate fits (non-finite, or identically zero
// within tolerance) have no roots.
func (pb *polynomialBasis) resolveRoots(coeffs []float64, r Interval, tolerance float64) []float64 {
	if !finite(coeffs) {
		return nil
	}
	trimmed := trimLeading(coeffs, tolerance)
	if len(trimmed) == 0 {
		return nil
	}
	var inRange []float64
	for _, root := range polynomialRoots(trimmed, tolerance) {
		value := pb.unsubstitute(root)
		if value > r.Lo && value < r.Hi {
			inRange = append(inRange, value)
		}
	}
	return inRange
}

// segmentBoundaries sorts the roots and brackets them with the range ends, dropping any
// boundary within tolerance of the previous one.
func segmentBoundaries(r Interval, roots []float64, tolerance float64) []float64 {
	sorted := append([]float64{}, roots...)
	sort.Float64s(sorted)

	boundaries := make([]float64, 0, len(sorted)+2)
	boundaries = append(boundaries, r.Lo)
	for _, root := range sorted {
		last := boundaries[len(boundaries)-1]
		if !utils.Float64AlmostEqual(root, last, tolerance) && !utils.Float64AlmostEqual(root, r.Hi, tolerance) {
			boundaries = append(boundaries, root)
		}
	}
	return append(boundaries, r.Hi)
}
