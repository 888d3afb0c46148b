package utils

import (
	"runtime"
)

// ParallelFactor caps the number of workers used for batch evaluation. Tests may lower it where
// too much parallelism slows them down in aggregate.
var ParallelFactor = parallelFactorFor(runtime.GOMAXPROCS(0))

// parallelFactorFor uses every proc on small machines and a quarter of them once that quarter
// exceeds 8.
func parallelFactorFor(procs int) int {
	if procs <= 0 {
		return 1
	}
	if quarter := procs / 4; quarter > 8 {
		return quarter
	}
	return procs
}

// Workers returns how many workers to start for the given number of jobs: at least one, at most
// ParallelFactor.
func Workers(jobs int) int {
	return max(1, min(jobs, ParallelFactor))
}
