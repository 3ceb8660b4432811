package compute

// SumArray adds numbers left to right. The order matters: float64
// addition is not associative, so permutations of the same values can
// give different sums. NaN and infinities propagate.
func SumArray(numbers []float64) float64 {
	sum := 0.0
	for _, x := range numbers {
		sum += x
	}
	return sum
}
