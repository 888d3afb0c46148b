package workspace

// signConsistent reports whether every polynomial of the family is strictly positive at t, or
// every one is strictly negative. t is a point of the substituted domain. A value within
// tolerance of zero, or a non-finite fit, fails the test.
func (pb *polynomialBasis) signConsistent(family [][]float64, t, tolerance float64) bool {
	if len(family) == 0 {
		return false
	}
	positive, negative := 0, 0
	for _, coeffs := range family {
		if !finite(coeffs) {
			return false
		}
		v := pb.evaluate(coeffs, t)
		switch {
		case v > tolerance:
			positive++
		case v < -tolerance:
			negative++
		default:
			return false
		}
	}
	return positive == len(family) || negative == len(family)
}
