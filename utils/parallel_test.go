package utils

import (
	"testing"

	"go.viam.com/test"
)

func TestParallelFactorFor(t *testing.T) {
	test.That(t, parallelFactorFor(0), test.ShouldEqual, 1)
	test.That(t, parallelFactorFor(4), test.ShouldEqual, 4)
	test.That(t, parallelFactorFor(32), test.ShouldEqual, 32)
	test.That(t, parallelFactorFor(64), test.ShouldEqual, 16)
	test.That(t, ParallelFactor, test.ShouldBeGreaterThanOrEqualTo, 1)
}

func TestWorkers(t *testing.T) {
	prev := ParallelFactor
	defer func() { ParallelFactor = prev }()
	ParallelFactor = 4

	test.That(t, Workers(0), test.ShouldEqual, 1)
	test.That(t, Workers(3), test.ShouldEqual, 3)
	test.That(t, Workers(100), test.ShouldEqual, 4)
}
