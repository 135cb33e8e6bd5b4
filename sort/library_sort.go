package sort

import "golang.org/x/exp/constraints"

// Less is the strict ordering used by the *Func variants. It must describe a
// total order over the element type.
type Less[T any] func(a, b T) bool

func less[T constraints.Ordered](a, b T) bool {
	return a < b
}

func clone[T any](s []T) []T {
	if s == nil {
		return nil
	}
	c := make([]T, len(s))
	copy(c, s)
	return c
}

// MergeFunc merges two ascending slices into a new ascending slice. When the
// elements are equal, the one from left is taken first.
// Both left and right must already be sorted by less, the caller is responsible
// for that, the result is not sorted otherwise.
func MergeFunc[T any](left, right []T, less Less[T]) []T {
	result := make([]T, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if !less(right[j], left[i]) {
			result = append(result, left[i])
			i++
		} else {
			result = append(result, right[j])
			j++
		}
	}
	result = append(result, left[i:]...)
	result = append(result, right[j:]...)

	return result
}

// OrderFunc returns a sorted copy of s built by insertion, s is not modified.
// Equal elements keep their relative order.
func OrderFunc[T any](s []T, less Less[T]) []T {
	sorted := clone(s)
	for i := 1; i < len(sorted); i++ {
		key := sorted[i]
		j := i - 1
		for j >= 0 && less(key, sorted[j]) {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = key
	}

	return sorted
}

// SortFunc returns a new slice with the elements of s in ascending order.
func SortFunc[T any](s []T, less Less[T]) []T {
	if len(s) <= 1 {
		return clone(s)
	}
	mid := len(s) / 2
	left := SortFunc(s[:mid], less)
	right := SortFunc(s[mid:], less)

	return combine(left, right, less)
}

// combine joins two sorted halves. If the last element of left does not
// exceed the first one of right, the halves are simply concatenated.
func combine[T any](left, right []T, less Less[T]) []T {
	if !less(right[0], left[len(left)-1]) {
		return append(left, right...)
	}
	// Both halves go through the local ordering pass again before merging,
	// it is a no-op on already sorted halves.
	left = OrderFunc(left, less)
	right = OrderFunc(right, less)

	return MergeFunc(left, right, less)
}

// Merge is MergeFunc for naturally ordered types.
func Merge[T constraints.Ordered](left, right []T) []T {
	return MergeFunc(left, right, less[T])
}

// Order is OrderFunc for naturally ordered types.
func Order[T constraints.Ordered](s []T) []T {
	return OrderFunc(s, less[T])
}

// Sort returns a sorted copy of s, the input slice is left untouched.
// For floating point types NaN values break the total order and the position
// they end up at is unspecified.
func Sort[T constraints.Ordered](s []T) []T {
	return SortFunc(s, less[T])
}
