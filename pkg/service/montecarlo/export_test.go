package montecarlo

import "math/rand"

// Exported for testing
func SampleTriangular(rng *rand.Rand, mode float64) float64 {
	return sampleTriangular(rng, mode)
}

// Exported for testing
func Percentile(sorted []float64, p float64) float64 {
	return percentile(sorted, p)
}

// Exported for testing
func Exceedance(sorted []float64, threshold float64) float64 {
	return exceedance(sorted, threshold)
}
