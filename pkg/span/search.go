package span

// BinarySearchIn returns the index of an element of items whose projected
// value equals target. Without an exact match it returns the index of the
// last element whose value is below target, or -1 if there is none. With
// duplicate values an exact match may land on any of them, so callers
// should keep values unique.
//
// items must be sorted ascending by value. The last element is checked first
// because lookups past the final element are the common case when walking a
// file front to back.
func BinarySearchIn[T any](items []T, target int, value func(T) int) int {
	if len(items) == 0 {
		return -1
	}

	low, high := 0, len(items)-1
	if target >= value(items[high]) {
		return high
	}
	high--

	for low <= high {
		mid := low + (high-low)>>1
		v := value(items[mid])
		switch {
		case target == v:
			return mid
		case target > v:
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return low - 1
}
