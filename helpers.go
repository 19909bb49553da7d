package bankers

func ternary[T any](condition bool, value1, value2 T) T {
	if condition {
		return value1
	}

	return value2
}

// lessOrEqual returns -1 when every entry of a is within b,
// otherwise the index of the first entry exceeding it.
func lessOrEqual(a, b []int64) int {
	for ix := range a {
		if a[ix] > b[ix] {
			return ix
		}
	}

	return -1
}

func addTo(target, values []int64) {
	for ix := range target {
		target[ix] = target[ix] + values[ix]
	}
}

func subtractFrom(target, values []int64) {
	for ix := range target {
		target[ix] = target[ix] - values[ix]
	}
}

func sum(values []int64) int64 {
	var result int64

	for _, value := range values {
		result = result + value
	}

	return result
}

func isZero(values []int64) bool {
	for _, value := range values {
		if value != 0 {
			return false
		}
	}

	return true
}

func copyVector(values []int64) []int64 {
	if values == nil {
		return nil
	}

	result := make([]int64, len(values))
	copy(result, values)

	return result
}

func copyMatrix(rows [][]int64) [][]int64 {
	if rows == nil {
		return nil
	}

	result := make([][]int64, len(rows))

	for ix, row := range rows {
		result[ix] = copyVector(row)
	}

	return result
}
