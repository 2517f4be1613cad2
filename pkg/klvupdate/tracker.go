package klvupdate

import (
	"slices"

	"github.com/bluenviron/goklv/pkg/klv"
)

type trackerEntry struct {
	timestamp uint64
	values    []klv.Value
}

func sortedValues(set *klv.LocalSet, tag klv.Tag) []klv.Value {
	values := set.AllAt(tag)
	for i, v := range values {
		values[i] = v.Clone()
	}
	slices.SortFunc(values, klv.Compare)
	return values
}

// Tracker tracks the values of the tags of a stream, and the time at which
// they were last transmitted.
// Timestamps are in microseconds.
type Tracker[S comparable] struct {
	entries map[Key[S]]*trackerEntry
}

// HasChanged checks whether the values of a tag in set differ from the
// tracked ones.
func (t *Tracker[S]) HasChanged(set *klv.LocalSet, key Key[S]) bool {
	e, ok := t.entries[key]
	if !set.Has(key.Tag) {
		return ok
	}
	if !ok {
		return true
	}
	return !slices.EqualFunc(e.values, sortedValues(set, key.Tag), klv.Value.Equal)
}

// Update stores the values of a tag in set, together with timestamp,
// and reports whether they changed.
// Tags absent from set are forgotten. Unchanged tags keep their timestamp.
func (t *Tracker[S]) Update(set *klv.LocalSet, key Key[S], timestamp uint64) bool {
	if !t.HasChanged(set, key) {
		return false
	}

	if !set.Has(key.Tag) {
		delete(t.entries, key)
		return true
	}

	if t.entries == nil {
		t.entries = make(map[Key[S]]*trackerEntry)
	}

	t.entries[key] = &trackerEntry{
		timestamp: timestamp,
		values:    sortedValues(set, key.Tag),
	}
	return true
}

// Prune removes from set the tags of standard that did not change and
// whose interval did not elapse since they were last transmitted.
// Tags that are left in set are considered transmitted at timestamp.
// A nil intervals retransmits every tag.
func (t *Tracker[S]) Prune(set *klv.LocalSet, intervals *Intervals[S], standard S, timestamp uint64) {
	present := set.Tags()

	for key := range t.entries {
		if key.Standard == standard && !slices.Contains(present, key.Tag) {
			delete(t.entries, key)
		}
	}

	for _, tag := range present {
		key := Key[S]{Standard: standard, Tag: tag}

		if t.Update(set, key, timestamp) {
			continue
		}

		var interval uint64
		if intervals != nil {
			interval = intervals.At(key)
		}

		e := t.entries[key]
		if timestamp < e.timestamp+interval {
			set.Erase(tag)
			continue
		}

		e.timestamp = timestamp
	}
}

// Clone returns a deep copy of the tracker.
func (t *Tracker[S]) Clone() *Tracker[S] {
	ret := &Tracker[S]{}
	if t.entries == nil {
		return ret
	}

	ret.entries = make(map[Key[S]]*trackerEntry, len(t.entries))
	for k, e := range t.entries {
		ret.entries[k] = &trackerEntry{
			timestamp: e.timestamp,
			values:    slices.Clone(e.values),
		}
	}
	return ret
}
