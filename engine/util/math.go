package util

func Abs(i int32) int32 {
	if i < 0 {
		return -i
	}
	return i
}

// FloorDiv rounds towards negative infinity, unlike Go's / operator.
func FloorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Mod returns the remainder matching FloorDiv, always in [0, b).
func Mod(a, b int32) int32 {
	m := a % b
	if m < 0 {
		m += Abs(b)
	}
	return m
}
