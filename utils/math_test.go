package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAngleConversion(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldEqual, 90.)
	test.That(t, Float64AlmostEqual(1, 1+1e-9, 1e-8), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1+1e-7, 1e-8), test.ShouldBeFalse)
}

func TestChoose(t *testing.T) {
	test.That(t, Choose(4, 2), test.ShouldEqual, 6)
	test.That(t, Choose(8, 3), test.ShouldEqual, 56)
	test.That(t, Choose(5, 0), test.ShouldEqual, 1)
	test.That(t, Choose(5, 5), test.ShouldEqual, 1)
	test.That(t, Choose(3, 4), test.ShouldEqual, 0)
}

func TestCombinations(t *testing.T) {
	combos := Combinations(4, 2)
	test.That(t, combos, test.ShouldResemble, [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}})
	test.That(t, cap(combos), test.ShouldEqual, 6)

	test.That(t, Combinations(3, 3), test.ShouldResemble, [][]int{{0, 1, 2}})
	test.That(t, Combinations(2, 3), test.ShouldBeEmpty)
	test.That(t, len(Combinations(7, 3)), test.ShouldEqual, Choose(7, 3))
}

func TestNonEmptySubsets(t *testing.T) {
	subsets := NonEmptySubsets([]int{2, 3})
	test.That(t, subsets, test.ShouldResemble, [][]int{{2}, {3}, {2, 3}})
	test.That(t, len(NonEmptySubsets([]int{0, 1, 2})), test.ShouldEqual, 7)
	test.That(t, NonEmptySubsets(nil), test.ShouldBeEmpty)
}

func TestComplement(t *testing.T) {
	test.That(t, Complement(5, []int{0, 3}), test.ShouldResemble, []int{1, 2, 4})
	test.That(t, Complement(2, []int{0, 1}), test.ShouldBeEmpty)
}
