package utils

// Mean is the arithmetic mean of values, 0 for an empty slice.
func Mean[T ~float32 | ~float64](values []T) T {
	if len(values) == 0 {
		return 0
	}
	var sum T
	for _, v := range values {
		sum += v
	}
	return sum / T(len(values))
}
