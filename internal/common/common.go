package common

// UnknownStr is the fallback name for out-of-range enum values.
const UnknownStr = "unknown"

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// InRange checks if a value is within the specified range, both inclusive.
func InRange[T number](lo T, value T, hi T) bool {
	return lo <= value && value <= hi
}

// ClampPct narrows a table percentage to 0..100.
func ClampPct(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return uint8(v)
	}
}
