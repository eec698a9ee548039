package merge

import (
	"fmt"
	"io"
	"slices"

	"github.com/dusk-indust/mergekit/contenthash"
)

// ConflictLabels optionally attaches a human-readable label to every
// term of a conflict, recording which branch or commit each side came
// from. Resolved merges cannot be labeled and labels cannot be empty;
// every constructor normalizes inputs that violate either rule to the
// unlabeled state.
//
// The underlying label merge is shared and immutable, so copying a
// ConflictLabels never copies label data.
type ConflictLabels struct {
	labels *Merge[string]
}

// Unlabeled returns the canonical instance with no labels.
func Unlabeled() ConflictLabels {
	return ConflictLabels{}
}

// NewLabels wraps a label merge. If the merge is resolved or any label
// is empty, the labels are discarded and the result is unlabeled. All
// other constructors route through here.
func NewLabels(labels Merge[string]) ConflictLabels {
	if len(labels.values) == 0 || labels.IsResolved() || slices.Contains(labels.values, "") {
		return Unlabeled()
	}
	return ConflictLabels{labels: &labels}
}

// LabelsFromSlice builds labels from a flat term list in interleaved
// order. An empty or nil slice yields the unlabeled instance; a
// non-empty slice must have odd length per the merge shape rules.
func LabelsFromSlice(labels []string) ConflictLabels {
	if len(labels) == 0 {
		return Unlabeled()
	}
	return NewLabels(FromInterleaved(labels))
}

// LabelsFromMerge converts an optional label merge, collapsing nil to
// the unlabeled instance.
func LabelsFromMerge(labels *Merge[string]) ConflictLabels {
	if labels == nil {
		return Unlabeled()
	}
	return NewLabels(*labels)
}

// IsPresent reports whether any labels are attached.
func (c ConflictLabels) IsPresent() bool {
	return c.labels != nil
}

// NumSides returns the number of labeled sides, or (0, false) if
// unlabeled.
func (c ConflictLabels) NumSides() (int, bool) {
	if c.labels == nil {
		return 0, false
	}
	return c.labels.NumSides(), true
}

// AsMerge returns the underlying label merge, or (zero, false) if
// unlabeled. The returned merge shares the immutable label data.
func (c ConflictLabels) AsMerge() (Merge[string], bool) {
	if c.labels == nil {
		return Merge[string]{}, false
	}
	return *c.labels, true
}

// AsSlice returns the labels in interleaved term order, or an empty
// slice if unlabeled.
func (c ConflictLabels) AsSlice() []string {
	if c.labels == nil {
		return nil
	}
	return c.labels.AsSlice()
}

// GetAdd returns the label for the side at index, or ("", false) if
// unlabeled or out of range.
func (c ConflictLabels) GetAdd(index int) (string, bool) {
	if c.labels == nil {
		return "", false
	}
	return c.labels.GetAdd(index)
}

// GetRemove returns the label for the base at index, or ("", false) if
// unlabeled or out of range.
func (c ConflictLabels) GetRemove(index int) (string, bool) {
	if c.labels == nil {
		return "", false
	}
	return c.labels.GetRemove(index)
}

// Equal reports structural equality: both unlabeled, or both labeled
// with identical label sequences.
func (c ConflictLabels) Equal(other ConflictLabels) bool {
	if (c.labels == nil) != (other.labels == nil) {
		return false
	}
	if c.labels == nil {
		return true
	}
	return Equal(*c.labels, *other.labels)
}

// String renders the labels as Labeled([...]) or Unlabeled.
func (c ConflictLabels) String() string {
	if c.labels == nil {
		return "Unlabeled"
	}
	return fmt.Sprintf("Labeled(%v)", c.labels.AsSlice())
}

// HashInto writes a canonical encoding: a presence tag, then the label
// merge for labeled instances.
func (c ConflictLabels) HashInto(w io.Writer) {
	if c.labels == nil {
		contenthash.WriteByte(w, 0)
		return
	}
	contenthash.WriteByte(w, 1)
	HashTerms(*c.labels, w, contenthash.WriteString)
}

// SimplifyWith simplifies a value merge with the same side count as the
// labels while keeping each surviving label attached to its value. Terms
// cancel when their values are equal, irrespective of their labels: the
// labels are zipped with the values, the pair merge is simplified keyed
// on the value component only, and the two are split apart again. The
// recovered labels are re-normalized, so they collapse to unlabeled when
// the values simplify all the way to a resolved merge.
//
// An unlabeled receiver simplifies the values exactly as Simplify would
// and stays unlabeled. SimplifyWith panics if the labels are present and
// their side count differs from the values'.
func SimplifyWith[T comparable](c ConflictLabels, values Merge[T]) (ConflictLabels, Merge[T]) {
	if c.labels == nil {
		return Unlabeled(), Simplify(values)
	}
	if c.labels.NumSides() != values.NumSides() {
		panic(fmt.Sprintf("merge: labels have %d sides but values have %d",
			c.labels.NumSides(), values.NumSides()))
	}
	pairs := Zip(*c.labels, values)
	simplified := SimplifyBy(pairs, func(p Pair[string, T]) T { return p.Second })
	labels, simplifiedValues := Unzip(simplified)
	return NewLabels(labels), simplifiedValues
}
