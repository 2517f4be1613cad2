package klv

import (
	"cmp"
	"iter"
	"slices"
	"strings"

	"github.com/bluenviron/goklv/pkg/liberrors"
)

// Entry is a tag-value pair of a local set.
type Entry struct {
	Tag   Tag
	Value Value
}

// LocalSet is an ordered multimap of tags and values.
// Entries sharing a tag keep their insertion order.
// It is not safe for concurrent mutation.
// A nil *LocalSet behaves as an empty set, except that it cannot be
// added to.
type LocalSet struct {
	entries []Entry
}

// NewLocalSet allocates a LocalSet containing the given entries.
func NewLocalSet(entries ...Entry) *LocalSet {
	return &LocalSet{entries: slices.Clone(entries)}
}

func (s *LocalSet) list() []Entry {
	if s == nil {
		return nil
	}
	return s.entries
}

// Add appends an entry.
func (s *LocalSet) Add(tag Tag, v Value) {
	s.entries = append(s.entries, Entry{Tag: tag, Value: v})
}

// Erase removes all entries with the given tag and returns their count.
func (s *LocalSet) Erase(tag Tag) int {
	if s == nil {
		return 0
	}

	n := len(s.entries)
	s.entries = slices.DeleteFunc(s.entries, func(e Entry) bool {
		return e.Tag == tag
	})
	return n - len(s.entries)
}

// EraseAt removes the entry at the given position.
func (s *LocalSet) EraseAt(i int) {
	s.entries = slices.Delete(s.entries, i, i+1)
}

// Len returns the number of entries.
func (s *LocalSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Clear removes all entries.
func (s *LocalSet) Clear() {
	if s == nil {
		return
	}
	s.entries = s.entries[:0]
}

// Count returns the number of entries with the given tag.
func (s *LocalSet) Count(tag Tag) int {
	n := 0
	for _, e := range s.list() {
		if e.Tag == tag {
			n++
		}
	}
	return n
}

// Has checks whether at least one entry has the given tag.
func (s *LocalSet) Has(tag Tag) bool {
	return slices.ContainsFunc(s.list(), func(e Entry) bool {
		return e.Tag == tag
	})
}

// Indices returns the positions of the entries with the given tag.
func (s *LocalSet) Indices(tag Tag) []int {
	var ret []int
	for i, e := range s.list() {
		if e.Tag == tag {
			ret = append(ret, i)
		}
	}
	return ret
}

// AllAt returns the values with the given tag, in insertion order.
func (s *LocalSet) AllAt(tag Tag) []Value {
	var ret []Value
	for _, e := range s.list() {
		if e.Tag == tag {
			ret = append(ret, e.Value)
		}
	}
	return ret
}

// Find returns the value with the given tag, if exactly one is present.
func (s *LocalSet) Find(tag Tag) (Value, bool) {
	v, err := s.Get(tag)
	return v, err == nil
}

// Get returns the value with the given tag.
// It fails when the tag is absent or present more than once.
func (s *LocalSet) Get(tag Tag) (Value, error) {
	idx := s.Indices(tag)

	switch len(idx) {
	case 0:
		return Value{}, liberrors.ErrKeyNotFound{Key: tag}

	case 1:
		return s.entries[idx[0]].Value, nil
	}

	return Value{}, liberrors.ErrMultipleKeys{Key: tag, Count: len(idx)}
}

// At returns the entry at the given position.
func (s *LocalSet) At(i int) Entry {
	return s.entries[i]
}

// All returns an iterator over all entries, in order.
func (s *LocalSet) All() iter.Seq2[Tag, Value] {
	return func(yield func(Tag, Value) bool) {
		if s == nil {
			return
		}
		for _, e := range s.entries {
			if !yield(e.Tag, e.Value) {
				return
			}
		}
	}
}

// Entries returns a copy of all entries, in order.
func (s *LocalSet) Entries() []Entry {
	return slices.Clone(s.list())
}

// Tags returns the distinct tags of the set, in order of first appearance.
func (s *LocalSet) Tags() []Tag {
	var ret []Tag
	for _, e := range s.list() {
		if !slices.Contains(ret, e.Tag) {
			ret = append(ret, e.Tag)
		}
	}
	return ret
}

// Clone returns a deep copy of the set.
func (s *LocalSet) Clone() *LocalSet {
	if s == nil {
		return nil
	}

	entries := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		entries[i] = Entry{Tag: e.Tag, Value: e.Value.Clone()}
	}
	return &LocalSet{entries: entries}
}

// FullySorted returns the entries sorted by tag, then by value.
func (s *LocalSet) FullySorted() []Entry {
	if s == nil {
		return nil
	}

	ret := slices.Clone(s.entries)
	slices.SortStableFunc(ret, compareEntries)
	return ret
}

func compareEntries(a Entry, b Entry) int {
	if c := cmp.Compare(a.Tag, b.Tag); c != 0 {
		return c
	}
	return Compare(a.Value, b.Value)
}

func compareSets(a *LocalSet, b *LocalSet) int {
	return slices.CompareFunc(a.FullySorted(), b.FullySorted(), compareEntries)
}

// Equal checks whether two sets contain the same entries,
// regardless of their order.
func (s *LocalSet) Equal(o *LocalSet) bool {
	return compareSets(s, o) == 0
}

// String implements fmt.Stringer.
func (s *LocalSet) String() string {
	if s == nil {
		return "{}"
	}

	tmp := make([]string, len(s.entries))
	for i, e := range s.entries {
		tmp[i] = e.Tag.String() + ": " + e.Value.String()
	}
	return "{ " + strings.Join(tmp, ", ") + " }"
}
