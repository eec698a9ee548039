// Package merge models unresolved multi-way merge conflicts as immutable
// values. A Merge holds an alternating sequence of "add" and "remove"
// terms with exactly one more add than removes; the adds are the
// conflicting sides and the removes are the bases they diverged from.
// ConflictLabels optionally attaches a provenance label to each term.
package merge

import (
	"fmt"
	"io"
	"slices"

	"github.com/dusk-indust/mergekit/contenthash"
)

// Merge is a conflict-shaped sequence of terms. The terms are stored
// interleaved: add0, remove0, add1, remove1, ..., addN. A merge with a
// single add term and no removes is resolved.
//
// Merge values are immutable; every accessor that exposes terms returns
// a copy. The zero value is not a valid merge — use Resolved,
// FromInterleaved, or FromRemovesAdds.
type Merge[T any] struct {
	values []T
}

// Resolved returns a merge with a single side and no removes.
func Resolved[T any](value T) Merge[T] {
	return Merge[T]{values: []T{value}}
}

// FromInterleaved builds a merge from terms in interleaved order
// (add0, remove0, add1, ...). It panics unless len(values) is odd,
// since a merge always has one more add than removes.
func FromInterleaved[T any](values []T) Merge[T] {
	if len(values)%2 == 0 {
		panic(fmt.Sprintf("merge: interleaved term count must be odd, got %d", len(values)))
	}
	return Merge[T]{values: slices.Clone(values)}
}

// FromRemovesAdds builds a merge from separate remove and add term
// lists. It panics unless len(adds) == len(removes)+1.
func FromRemovesAdds[T any](removes, adds []T) Merge[T] {
	if len(adds) != len(removes)+1 {
		panic(fmt.Sprintf("merge: need one more add than removes, got %d adds and %d removes",
			len(adds), len(removes)))
	}
	values := make([]T, 0, len(adds)+len(removes))
	for i, add := range adds {
		values = append(values, add)
		if i < len(removes) {
			values = append(values, removes[i])
		}
	}
	return Merge[T]{values: values}
}

// IsResolved reports whether the merge has exactly one side.
func (m Merge[T]) IsResolved() bool {
	return len(m.values) == 1
}

// AsResolved returns the single side of a resolved merge, or
// (zero, false) if the merge is still conflicted.
func (m Merge[T]) AsResolved() (T, bool) {
	if len(m.values) == 1 {
		return m.values[0], true
	}
	var zero T
	return zero, false
}

// NumSides returns the number of add terms.
func (m Merge[T]) NumSides() int {
	return (len(m.values) + 1) / 2
}

// GetAdd returns the add term at index, or (zero, false) if out of range.
func (m Merge[T]) GetAdd(index int) (T, bool) {
	if index < 0 || index >= m.NumSides() {
		var zero T
		return zero, false
	}
	return m.values[2*index], true
}

// GetRemove returns the remove term at index, or (zero, false) if out of
// range.
func (m Merge[T]) GetRemove(index int) (T, bool) {
	if index < 0 || index >= m.NumSides()-1 {
		var zero T
		return zero, false
	}
	return m.values[2*index+1], true
}

// Adds returns the add terms in side order.
func (m Merge[T]) Adds() []T {
	adds := make([]T, 0, m.NumSides())
	for i := 0; i < len(m.values); i += 2 {
		adds = append(adds, m.values[i])
	}
	return adds
}

// Removes returns the remove terms in order.
func (m Merge[T]) Removes() []T {
	removes := make([]T, 0, len(m.values)/2)
	for i := 1; i < len(m.values); i += 2 {
		removes = append(removes, m.values[i])
	}
	return removes
}

// AsSlice returns all terms in interleaved order.
func (m Merge[T]) AsSlice() []T {
	return slices.Clone(m.values)
}

// String renders a resolved merge as its single side and a conflicted
// merge as its remove and add term lists.
func (m Merge[T]) String() string {
	if resolved, ok := m.AsResolved(); ok {
		return fmt.Sprintf("Resolved(%v)", resolved)
	}
	return fmt.Sprintf("Conflicted(removes: %v, adds: %v)", m.Removes(), m.Adds())
}

// Map returns a merge of the same shape with f applied to every term.
func Map[T, U any](m Merge[T], f func(T) U) Merge[U] {
	values := make([]U, len(m.values))
	for i, v := range m.values {
		values[i] = f(v)
	}
	return Merge[U]{values: values}
}

// Equal reports whether two merges have identical term sequences.
func Equal[T comparable](a, b Merge[T]) bool {
	return slices.Equal(a.values, b.values)
}

// Simplify cancels add/remove term pairs with equal values until no more
// cancellations apply, reducing the side count.
func Simplify[T comparable](m Merge[T]) Merge[T] {
	return SimplifyBy(m, func(v T) T { return v })
}

// SimplifyBy cancels add/remove term pairs whose keys are equal until no
// more cancellations apply. Add terms are scanned left to right; the
// first remove term in term order with a matching key cancels against
// the current add, the add following that remove slides into the
// cancelled add's slot, and the scan restarts. Callers relying on which
// of several equal terms survives depend on exactly this order.
func SimplifyBy[T any, K comparable](m Merge[T], key func(T) K) Merge[T] {
	values := slices.Clone(m.values)
	addIndex := 0
	for addIndex < len(values) {
		addKey := key(values[addIndex])
		removeIndex := -1
		for i := 1; i < len(values); i += 2 {
			if key(values[i]) == addKey {
				removeIndex = i
				break
			}
		}
		if removeIndex < 0 {
			addIndex += 2
			continue
		}
		// Align the cancelled add with its remove, drop the pair, and
		// restart: the moved add may enable earlier cancellations.
		values[removeIndex+1], values[addIndex] = values[addIndex], values[removeIndex+1]
		values = slices.Delete(values, removeIndex, removeIndex+2)
		addIndex = 0
	}
	return Merge[T]{values: values}
}

// ResolveTrivial resolves a merge without touching its shape when the
// outcome is unambiguous: each add counts +1 and each remove -1 per
// distinct value, so a side's change cancels against the base it came
// from and duplicate sides collapse. If exactly one value is left with a
// positive count, that value is the trivial resolution.
func ResolveTrivial[T comparable](m Merge[T]) (T, bool) {
	var zero T
	if len(m.values) == 0 {
		return zero, false
	}
	if len(m.values) == 1 {
		return m.values[0], true
	}
	counts := make(map[T]int, len(m.values))
	for i, v := range m.values {
		if i%2 == 0 {
			counts[v]++
		} else {
			counts[v]--
		}
	}
	var result T
	found := false
	for v, n := range counts {
		if n <= 0 {
			continue
		}
		if found {
			return zero, false
		}
		result, found = v, true
	}
	return result, found
}

// Pair is a positional pairing of two terms, produced by Zip.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip combines two merges of the same shape into a merge of pairs. It
// panics if the side counts differ; shape mismatch is a caller bug, not
// a runtime condition.
func Zip[A, B any](a Merge[A], b Merge[B]) Merge[Pair[A, B]] {
	if len(a.values) != len(b.values) {
		panic(fmt.Sprintf("merge: zip of unequal shapes: %d sides vs %d sides",
			a.NumSides(), b.NumSides()))
	}
	pairs := make([]Pair[A, B], len(a.values))
	for i, av := range a.values {
		pairs[i] = Pair[A, B]{First: av, Second: b.values[i]}
	}
	return Merge[Pair[A, B]]{values: pairs}
}

// Unzip splits a merge of pairs into two merges of the same shape.
func Unzip[A, B any](m Merge[Pair[A, B]]) (Merge[A], Merge[B]) {
	first := make([]A, len(m.values))
	second := make([]B, len(m.values))
	for i, p := range m.values {
		first[i] = p.First
		second[i] = p.Second
	}
	return Merge[A]{values: first}, Merge[B]{values: second}
}

// Flatten collapses a merge of merges into a single merge. Inner merges
// in add positions keep their orientation; inner merges in remove
// positions contribute their terms with add and remove roles swapped.
// Splicing the interleaved inner terms in place preserves both: an inner
// sequence has odd length, so terms spliced into a remove slot land on
// odd parity.
func Flatten[T any](m Merge[Merge[T]]) Merge[T] {
	flat := make([]T, 0, len(m.values))
	for _, inner := range m.values {
		flat = append(flat, inner.values...)
	}
	return Merge[T]{values: flat}
}

// HashTerms writes a canonical encoding of m into w: the term count
// followed by each term encoded by elem, in interleaved order.
func HashTerms[T any](m Merge[T], w io.Writer, elem func(io.Writer, T)) {
	contenthash.WriteUint64(w, uint64(len(m.values)))
	for _, v := range m.values {
		elem(w, v)
	}
}
