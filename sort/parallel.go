package sort

import (
	"sync"

	"golang.org/x/exp/constraints"
)

// ParallelSortFunc produces the same result as SortFunc, the two halves are
// sorted in separate goroutines for the top depth levels of the recursion.
// A depth of 0 or less is a plain SortFunc.
func ParallelSortFunc[T any](s []T, less Less[T], depth int) []T {
	if depth <= 0 || len(s) <= 1 {
		return SortFunc(s, less)
	}
	mid := len(s) / 2
	var left, right []T
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		left = ParallelSortFunc(s[:mid], less, depth-1)
	}()
	right = ParallelSortFunc(s[mid:], less, depth-1)
	wg.Wait()

	return combine(left, right, less)
}

// ParallelSort is ParallelSortFunc for naturally ordered types.
func ParallelSort[T constraints.Ordered](s []T, depth int) []T {
	return ParallelSortFunc(s, less[T], depth)
}
