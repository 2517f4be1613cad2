// Package st1607 implements MISB ST1607 child sets, which override the
// values of a parent local set (amend sets) or derive new sets from it
// (segment sets).
//
// Specification: MISB ST1607
package st1607

import (
	"fmt"
	"slices"

	"github.com/bluenviron/goklv/pkg/klv"
)

// Policy tells how a tag present in a child set is merged into the parent set.
type Policy int

// policies.
const (
	// KeepParent keeps the values of the parent.
	KeepParent Policy = 1 << iota

	// KeepChild replaces the values of the parent with the ones of the child.
	KeepChild

	// KeepBoth keeps the values of the parent and appends the ones of the child.
	KeepBoth = KeepParent | KeepChild
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case KeepParent:
		return "keep parent"
	case KeepChild:
		return "keep child"
	case KeepBoth:
		return "keep both"
	}
	return "invalid"
}

// PolicyFunc returns the policy of a tag.
type PolicyFunc func(klv.Tag) Policy

// DefaultPolicy replaces parent values with child values for every tag.
func DefaultPolicy(klv.Tag) Policy {
	return KeepChild
}

// ErrAmbiguousOverwrite is a warning reporting that a child value replaced
// a tag with more than one value in the parent.
type ErrAmbiguousOverwrite struct {
	Tag   klv.Tag
	Count int
}

// Error implements the error interface.
func (e ErrAmbiguousOverwrite) Error() string {
	return fmt.Sprintf("child set overwrites tag %d, which has %d values in the parent set", e.Tag, e.Count)
}

// ApplyChild merges child into parent.
//
// First, every tag of child whose policy does not keep the parent values
// is erased from parent. Then, every entry of child whose policy keeps the
// child values is appended to parent. Empty child values only signal the
// removal of a tag and are not appended.
func ApplyChild(parent *klv.LocalSet, child *klv.LocalSet, policy PolicyFunc) klv.Warnings {
	return applyChild(parent, child, policy, false)
}

// MergeChild merges child into another child set, outer, so that applying
// outer afterwards is equivalent to applying the original outer and then
// child. Unlike ApplyChild, empty placeholders of child are kept.
func MergeChild(outer *klv.LocalSet, child *klv.LocalSet, policy PolicyFunc) klv.Warnings {
	return applyChild(outer, child, policy, true)
}

func applyChild(parent *klv.LocalSet, child *klv.LocalSet, policy PolicyFunc, keepEmpty bool) klv.Warnings {
	if policy == nil {
		policy = DefaultPolicy
	}

	var w klv.Warnings

	// erasures happen before insertions, so that tags with multiple child
	// values do not erase each other
	for _, tag := range child.Tags() {
		if (policy(tag) & KeepParent) != 0 {
			continue
		}

		if n := parent.Erase(tag); n > 1 {
			w.Add(ErrAmbiguousOverwrite{Tag: tag, Count: n})
		}
	}

	for tag, v := range child.All() {
		if (policy(tag)&KeepChild) == 0 || (v.IsEmpty() && !keepEmpty) {
			continue
		}
		parent.Add(tag, v.Clone())
	}

	return w
}

// DeriveChild returns the child set that turns lhs into rhs when applied
// with DefaultPolicy. Tags of lhs absent from rhs get an empty placeholder,
// tags with the same values in both are omitted.
func DeriveChild(lhs *klv.LocalSet, rhs *klv.LocalSet) *klv.LocalSet {
	child := rhs.Clone()

	for _, tag := range lhs.Tags() {
		if !rhs.Has(tag) {
			child.Add(tag, klv.Empty())
			continue
		}

		if sameValues(lhs.AllAt(tag), rhs.AllAt(tag)) {
			child.Erase(tag)
		}
	}

	return child
}

// sameValues compares two multisets of values.
func sameValues(a []klv.Value, b []klv.Value) bool {
	if len(a) != len(b) {
		return false
	}

	a = slices.Clone(a)
	b = slices.Clone(b)
	slices.SortFunc(a, klv.Compare)
	slices.SortFunc(b, klv.Compare)

	return slices.EqualFunc(a, b, klv.Value.Equal)
}

// NewChildSetFormat returns the format of a child set whose tags are
// described by lookup. Child sets only carry differences, therefore
// tag counts are not validated.
func NewChildSetFormat(name string, lookup func() *klv.TraitsLookup) *klv.LocalSetFormat {
	return &klv.LocalSetFormat{
		Name:      name,
		Lookup:    lookup,
		SkipCheck: true,
	}
}
