// Package reorder computes new list orderings for drag-and-drop gestures.
//
// Every function returns fresh slices and leaves its inputs untouched, so
// callers can compare the old and new orderings.
package reorder

import "fmt"

// IndexError reports an index outside the bounds a move accepts
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("reorder: %s index %d out of range for length %d", e.Op, e.Index, e.Len)
}

// Within moves the element at from to position to inside the same list.
// Both indices must be in [0, len(list)).
func Within[T any](list []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(list) {
		return nil, &IndexError{Op: "from", Index: from, Len: len(list)}
	}
	if to < 0 || to >= len(list) {
		return nil, &IndexError{Op: "to", Index: to, Len: len(list)}
	}

	out := make([]T, len(list))
	copy(out, list)
	if from == to {
		return out, nil
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out, nil
}

// Between removes the element at from in src and inserts it at to in dst.
// from must be in [0, len(src)) and to in [0, len(dst)]. When src and dst
// are the same slice the call degrades to Within and both results are equal.
func Between[T any](src, dst []T, from, to int) ([]T, []T, error) {
	if sameList(src, dst) {
		out, err := Within(src, from, to)
		if err != nil {
			return nil, nil, err
		}
		return out, out, nil
	}
	if from < 0 || from >= len(src) {
		return nil, nil, &IndexError{Op: "from", Index: from, Len: len(src)}
	}
	if to < 0 || to > len(dst) {
		return nil, nil, &IndexError{Op: "to", Index: to, Len: len(dst)}
	}

	moved := src[from]

	newSrc := make([]T, 0, len(src)-1)
	newSrc = append(newSrc, src[:from]...)
	newSrc = append(newSrc, src[from+1:]...)

	newDst := make([]T, 0, len(dst)+1)
	newDst = append(newDst, dst[:to]...)
	newDst = append(newDst, moved)
	newDst = append(newDst, dst[to:]...)

	return newSrc, newDst, nil
}

// Index returns the position of the first element matching fn, or -1
func Index[T any](list []T, fn func(T) bool) int {
	for i, v := range list {
		if fn(v) {
			return i
		}
	}
	return -1
}

func sameList[T any](a, b []T) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	return &a[0] == &b[0]
}
