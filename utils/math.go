package utils

import "math"

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// ChunkBounds splits [0, total) into chunks of at most size and returns the half open bounds of chunk i.
func ChunkBounds(i, size, total int) (int, int) {
	from := i * size
	to := from + size
	if to > total {
		to = total
	}
	return from, to
}
