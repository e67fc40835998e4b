package reorder

import (
	"errors"
	"slices"
	"testing"
)

func TestWithinMovesElement(t *testing.T) {
	cases := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", 3, 1, []string{"a", "d", "b", "c"}},
		{"to end", 1, 3, []string{"a", "c", "d", "b"}},
		{"same index", 2, 2, []string{"a", "b", "c", "d"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := []string{"a", "b", "c", "d"}
			got, err := Within(in, tc.from, tc.to)
			if err != nil {
				t.Fatalf("within: %v", err)
			}
			if !slices.Equal(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if !slices.Equal(in, []string{"a", "b", "c", "d"}) {
				t.Fatalf("input was mutated: %v", in)
			}
		})
	}
}

func TestWithinRoundTripRestoresOrder(t *testing.T) {
	in := []int{10, 20, 30, 40, 50}
	for i := range in {
		for j := range in {
			moved, err := Within(in, i, j)
			if err != nil {
				t.Fatalf("within(%d,%d): %v", i, j, err)
			}
			back, err := Within(moved, j, i)
			if err != nil {
				t.Fatalf("within(%d,%d): %v", j, i, err)
			}
			if !slices.Equal(back, in) {
				t.Fatalf("round trip %d->%d gave %v", i, j, back)
			}
			sorted := slices.Clone(moved)
			slices.Sort(sorted)
			if !slices.Equal(sorted, in) {
				t.Fatalf("within(%d,%d) is not a permutation: %v", i, j, moved)
			}
		}
	}
}

func TestWithinRejectsOutOfRange(t *testing.T) {
	in := []int{1, 2, 3}
	for _, idx := range [][2]int{{-1, 0}, {3, 0}, {0, 3}, {0, -1}} {
		_, err := Within(in, idx[0], idx[1])
		var ie *IndexError
		if !errors.As(err, &ie) {
			t.Fatalf("within(%d,%d): expected IndexError, got %v", idx[0], idx[1], err)
		}
	}
	if _, err := Within([]int{}, 0, 0); err == nil {
		t.Fatalf("expected error on empty list")
	}
}

func TestBetweenPreservesCountAndOrder(t *testing.T) {
	src := []string{"a", "b", "c"}
	dst := []string{"x", "y"}

	for from := range src {
		for to := 0; to <= len(dst); to++ {
			newSrc, newDst, err := Between(src, dst, from, to)
			if err != nil {
				t.Fatalf("between(%d,%d): %v", from, to, err)
			}
			if len(newSrc)+len(newDst) != len(src)+len(dst) {
				t.Fatalf("between(%d,%d) changed total size", from, to)
			}
			if newDst[to] != src[from] {
				t.Fatalf("between(%d,%d): expected %q at %d, got %q", from, to, src[from], to, newDst[to])
			}
			rest := slices.Delete(slices.Clone(src), from, from+1)
			if !slices.Equal(newSrc, rest) {
				t.Fatalf("between(%d,%d): source order %v, want %v", from, to, newSrc, rest)
			}
			others := slices.Delete(slices.Clone(newDst), to, to+1)
			if !slices.Equal(others, dst) {
				t.Fatalf("between(%d,%d): destination order %v, want %v", from, to, others, dst)
			}
		}
	}
	if !slices.Equal(src, []string{"a", "b", "c"}) || !slices.Equal(dst, []string{"x", "y"}) {
		t.Fatalf("inputs were mutated")
	}
}

func TestBetweenIntoEmptyList(t *testing.T) {
	newSrc, newDst, err := Between([]string{"a", "b"}, nil, 0, 0)
	if err != nil {
		t.Fatalf("between: %v", err)
	}
	if !slices.Equal(newSrc, []string{"b"}) || !slices.Equal(newDst, []string{"a"}) {
		t.Fatalf("got src=%v dst=%v", newSrc, newDst)
	}
}

func TestBetweenSameListDegradesToWithin(t *testing.T) {
	list := []string{"a", "b", "c"}
	newSrc, newDst, err := Between(list, list, 0, 2)
	if err != nil {
		t.Fatalf("between: %v", err)
	}
	want := []string{"b", "c", "a"}
	if !slices.Equal(newSrc, want) || !slices.Equal(newDst, want) {
		t.Fatalf("got src=%v dst=%v, want %v", newSrc, newDst, want)
	}
}

func TestBetweenRejectsOutOfRange(t *testing.T) {
	if _, _, err := Between([]int{1}, []int{2}, 1, 0); err == nil {
		t.Fatalf("expected error for source index")
	}
	if _, _, err := Between([]int{1}, []int{2}, 0, 2); err == nil {
		t.Fatalf("expected error for destination index")
	}
}

func TestIndex(t *testing.T) {
	list := []string{"a", "b"}
	if got := Index(list, func(s string) bool { return s == "b" }); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := Index(list, func(s string) bool { return s == "z" }); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}
