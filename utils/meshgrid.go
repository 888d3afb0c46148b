package utils

import "gonum.org/v1/gonum/mat"

// Grid generates the n-dimensional Cartesian grid of the given per-dimension values. Each row of
// the result is one grid point; the last dimension varies fastest. A grid with no dimensions has
// a single empty point, returned as nil.
func Grid(values [][]float64) *mat.Dense {
	dim := len(values)
	if dim == 0 {
		return nil
	}
	dims := make([]int, dim)
	for i := range values {
		dims[i] = len(values[i])
	}
	sz := size(dims)
	if sz == 0 {
		return nil
	}
	sub := make([]int, dim)
	matOut := mat.NewDense(sz, dim, nil)
	for i := 0; i < sz; i++ {
		SubFor(sub, i, dims)
		for j := 0; j < dim; j++ {
			matOut.Set(i, j, values[j][sub[j]])
		}
	}
	return matOut
}

// GridSize returns the number of points Grid produces for the given values.
func GridSize(values [][]float64) int {
	if len(values) == 0 {
		return 1
	}
	dims := make([]int, len(values))
	for i := range values {
		dims[i] = len(values[i])
	}
	return size(dims)
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}

func size(dims []int) int {
	n := 1
	for _, v := range dims {
		n *= v
	}
	return n
}

// SubFor constructs the multi-dimensional subscript for the input linear index.
// Dims specifies the maximum size in each dimension.
//
// If sub is non-nil the result is stored in-place into sub. If it is nil a new
// slice of the appropriate length is allocated.
func SubFor(sub []int, idx int, dims []int) []int {
	for _, v := range dims {
		if v <= 0 {
			panic("bad dims")
		}
	}
	if sub == nil {
		sub = make([]int, len(dims))
	}
	if len(sub) != len(dims) {
		panic("size mismatch")
	}
	if idx < 0 {
		panic("bad index")
	}
	stride := 1
	for i := len(dims) - 1; i >= 1; i-- {
		stride *= dims[i]
	}
	for i := 0; i < len(dims)-1; i++ {
		v := idx / stride
		if v >= dims[i] {
			panic("bad index")
		}
		sub[i] = v
		idx -= v * stride
		stride /= dims[i+1]
	}
	if idx >= dims[len(sub)-1] {
		panic("bad index")
	}
	sub[len(sub)-1] = idx
	return sub
}
