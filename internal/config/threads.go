package config

import "runtime"

// EstimateOptimalThreadCount returns the default partition count when none
// is given: one partition per usable CPU.
func EstimateOptimalThreadCount() int {
	return max(1, min(runtime.NumCPU(), runtime.GOMAXPROCS(0)))
}
