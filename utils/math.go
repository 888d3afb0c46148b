package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Choose returns the binomial coefficient n choose k, or 0 when k is outside [0, n].
func Choose(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}

// Combinations returns every size-k subset of {0, ..., n-1} as ascending index slices, in
// lexicographic order. The outer slice is allocated once with its final size.
func Combinations(n, k int) [][]int {
	total := Choose(n, k)
	combos := make([][]int, 0, total)
	if total == 0 {
		return combos
	}
	current := make([]int, k)
	for i := range current {
		current[i] = i
	}
	for {
		combo := make([]int, k)
		copy(combo, current)
		combos = append(combos, combo)

		// find the rightmost index that can still be advanced
		i := k - 1
		for i >= 0 && current[i] == n-k+i {
			i--
		}
		if i < 0 {
			return combos
		}
		current[i]++
		for j := i + 1; j < k; j++ {
			current[j] = current[j-1] + 1
		}
	}
}

// NonEmptySubsets returns the 2^len(items)-1 non-empty subsets of items, ordered by their
// binary mask (the first item alone, the second item alone, both, ...).
func NonEmptySubsets(items []int) [][]int {
	total := (1 << len(items)) - 1
	subsets := make([][]int, 0, total)
	for mask := 1; mask <= total; mask++ {
		subset := make([]int, 0, len(items))
		for bit, item := range items {
			if mask&(1<<bit) != 0 {
				subset = append(subset, item)
			}
		}
		subsets = append(subsets, subset)
	}
	return subsets
}

// Complement returns the indices of {0, ..., n-1} that are not in the ascending slice chosen.
func Complement(n int, chosen []int) []int {
	rest := make([]int, 0, n-len(chosen))
	next := 0
	for i := 0; i < n; i++ {
		if next < len(chosen) && chosen[next] == i {
			next++
			continue
		}
		rest = append(rest, i)
	}
	return rest
}
