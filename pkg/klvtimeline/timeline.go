// Package klvtimeline tracks the values of KLV tags over time.
//
// A Demuxer fills a Timeline from the packets of consecutive frames.
// A Muxer reads a Timeline back into the packets of a frame.
package klvtimeline

import (
	"cmp"
	"slices"
	"strings"

	"github.com/bluenviron/goklv/pkg/klv"
	"github.com/bluenviron/goklv/pkg/liberrors"
)

// RawTag is the tag of entries holding whole packets that could not be
// split into tags.
const RawTag klv.Tag = 0

// Key identifies a timeline entry.
// Index tells apart concurrent values of the same tag.
type Key struct {
	Standard klv.UDSKey
	Tag      klv.Tag
	Index    klv.Value
}

// Compare compares two keys.
func (k Key) Compare(o Key) int {
	if c := k.Standard.Normalized().Compare(o.Standard.Normalized()); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Tag, o.Tag); c != 0 {
		return c
	}
	return klv.Compare(k.Index, o.Index)
}

// String implements fmt.Stringer.
func (k Key) String() string {
	ret := "{ standard: " + k.Standard.String() + ", tag: " + k.Tag.String()
	if !k.Index.IsEmpty() {
		ret += ", index: " + k.Index.String()
	}
	return ret + " }"
}

// Entry is the history of the values of a key.
type Entry struct {
	Key    Key
	Values IntervalMap
}

// Timeline maps keys to the values they held over time.
// Entries are sorted by key.
type Timeline struct {
	entries []*Entry
}

// Len returns the number of entries.
func (t *Timeline) Len() int {
	return len(t.entries)
}

// Entries returns all entries, sorted by key.
func (t *Timeline) Entries() []*Entry {
	return slices.Clone(t.entries)
}

// Standards returns the distinct standards of the entries, in order.
func (t *Timeline) Standards() []klv.UDSKey {
	var ret []klv.UDSKey
	for _, e := range t.entries {
		if len(ret) == 0 || !ret[len(ret)-1].Equal(e.Key.Standard) {
			ret = append(ret, e.Key.Standard)
		}
	}
	return ret
}

func (t *Timeline) search(k Key) (int, bool) {
	return slices.BinarySearchFunc(t.entries, k, func(e *Entry, k Key) int {
		return e.Key.Compare(k)
	})
}

// Find returns the entry of a key, or nil.
func (t *Timeline) Find(k Key) *Entry {
	i, found := t.search(k)
	if !found {
		return nil
	}
	return t.entries[i]
}

// FindAll returns the entries of a standard.
func (t *Timeline) FindAll(standard klv.UDSKey) []*Entry {
	var ret []*Entry
	for _, e := range t.entries {
		if e.Key.Standard.Equal(standard) {
			ret = append(ret, e)
		}
	}
	return ret
}

// FindTag returns the entries of a tag of a standard, with any index.
func (t *Timeline) FindTag(standard klv.UDSKey, tag klv.Tag) []*Entry {
	var ret []*Entry
	for _, e := range t.entries {
		if e.Key.Standard.Equal(standard) && e.Key.Tag == tag {
			ret = append(ret, e)
		}
	}
	return ret
}

// InsertOrFind returns the entry of a key, creating it if needed.
func (t *Timeline) InsertOrFind(k Key) *Entry {
	i, found := t.search(k)
	if found {
		return t.entries[i]
	}

	e := &Entry{Key: Key{Standard: k.Standard, Tag: k.Tag, Index: k.Index.Clone()}}
	t.entries = slices.Insert(t.entries, i, e)
	return e
}

// Erase removes the entry of a key.
func (t *Timeline) Erase(k Key) {
	i, found := t.search(k)
	if found {
		t.entries = slices.Delete(t.entries, i, i+1)
	}
}

// Clear removes all entries.
func (t *Timeline) Clear() {
	t.entries = nil
}

// AllAt returns the values of a tag at a time, across all indexes.
func (t *Timeline) AllAt(standard klv.UDSKey, tag klv.Tag, time uint64) []klv.Value {
	var ret []klv.Value
	for _, e := range t.FindTag(standard, tag) {
		if s, ok := e.Values.Find(time); ok {
			ret = append(ret, s.Value)
		}
	}
	return ret
}

// At returns the value of a tag at a time.
// It returns an empty value when the tag has no value, and fails when the
// tag has more than one.
func (t *Timeline) At(standard klv.UDSKey, tag klv.Tag, time uint64) (klv.Value, error) {
	values := t.AllAt(standard, tag, time)

	switch len(values) {
	case 0:
		return klv.Empty(), nil

	case 1:
		return values[0], nil
	}

	return klv.Value{}, liberrors.ErrMultipleKeys{Key: tag, Count: len(values)}
}

// Equal checks whether two timelines contain the same entries.
func (t *Timeline) Equal(o *Timeline) bool {
	return slices.EqualFunc(t.entries, o.entries, func(a *Entry, b *Entry) bool {
		return a.Key.Compare(b.Key) == 0 && a.Values.Equal(&b.Values)
	})
}

// String implements fmt.Stringer.
func (t *Timeline) String() string {
	tmp := make([]string, len(t.entries))
	for i, e := range t.entries {
		tmp[i] = e.Key.String() + ": " + e.Values.String()
	}
	return "{ " + strings.Join(tmp, ", ") + " }"
}
