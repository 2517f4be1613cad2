package klvtimeline

import (
	"fmt"
	"slices"

	"github.com/bluenviron/goklv/pkg/klv"
)

// Interval is the half-open time range [Start, End), in microseconds.
type Interval struct {
	Start uint64
	End   uint64
}

// IsEmpty checks whether the interval contains no time.
func (iv Interval) IsEmpty() bool {
	return iv.End <= iv.Start
}

// Contains checks whether the interval contains a time.
func (iv Interval) Contains(t uint64) bool {
	return t >= iv.Start && t < iv.End
}

// Overlaps checks whether two intervals share some time.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && o.Start < iv.End
}

// String implements fmt.Stringer.
func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)", iv.Start, iv.End)
}

// Span is a value held over an interval.
type Span struct {
	Interval
	Value klv.Value
}

// IntervalMap maps disjoint time intervals to values.
// Adjacent intervals holding equal values are merged.
type IntervalMap struct {
	spans []Span
}

// Len returns the number of spans.
func (m *IntervalMap) Len() int {
	return len(m.spans)
}

// Spans returns all spans, in chronological order.
func (m *IntervalMap) Spans() []Span {
	return slices.Clone(m.spans)
}

// Find returns the span containing a time.
func (m *IntervalMap) Find(t uint64) (Span, bool) {
	i, found := m.search(t)
	if !found {
		return Span{}, false
	}
	return m.spans[i], true
}

// Overlapping returns the spans overlapping an interval.
func (m *IntervalMap) Overlapping(iv Interval) []Span {
	var ret []Span
	for _, s := range m.spans {
		if s.Start >= iv.End {
			break
		}
		if s.Overlaps(iv) {
			ret = append(ret, s)
		}
	}
	return ret
}

// Set assigns a value to an interval, replacing any previous value.
func (m *IntervalMap) Set(iv Interval, v klv.Value) {
	if iv.IsEmpty() {
		return
	}

	m.Erase(iv)

	i, _ := m.search(iv.Start)
	m.spans = slices.Insert(m.spans, i, Span{Interval: iv, Value: v})
	m.merge()
}

// WeakSet assigns a value to the parts of an interval that hold no value.
func (m *IntervalMap) WeakSet(iv Interval, v klv.Value) {
	if iv.IsEmpty() {
		return
	}

	var gaps []Interval
	cur := iv.Start
	for _, s := range m.Overlapping(iv) {
		if s.Start > cur {
			gaps = append(gaps, Interval{Start: cur, End: s.Start})
		}
		cur = max(cur, s.End)
	}
	if cur < iv.End {
		gaps = append(gaps, Interval{Start: cur, End: iv.End})
	}

	for _, gap := range gaps {
		i, _ := m.search(gap.Start)
		m.spans = slices.Insert(m.spans, i, Span{Interval: gap, Value: v})
	}
	m.merge()
}

// Erase removes any value from an interval.
func (m *IntervalMap) Erase(iv Interval) {
	if iv.IsEmpty() {
		return
	}

	ret := m.spans[:0:0]
	for _, s := range m.spans {
		if !s.Overlaps(iv) {
			ret = append(ret, s)
			continue
		}
		if s.Start < iv.Start {
			ret = append(ret, Span{Interval: Interval{Start: s.Start, End: iv.Start}, Value: s.Value})
		}
		if s.End > iv.End {
			ret = append(ret, Span{Interval: Interval{Start: iv.End, End: s.End}, Value: s.Value})
		}
	}
	m.spans = ret
}

// Equal checks whether two maps hold the same values over the same intervals.
func (m *IntervalMap) Equal(o *IntervalMap) bool {
	return slices.EqualFunc(m.spans, o.spans, func(a Span, b Span) bool {
		return a.Interval == b.Interval && a.Value.Equal(b.Value)
	})
}

// String implements fmt.Stringer.
func (m *IntervalMap) String() string {
	ret := "{"
	for i, s := range m.spans {
		if i != 0 {
			ret += ","
		}
		ret += " " + s.Interval.String() + ": " + s.Value.String()
	}
	return ret + " }"
}

// search returns the index of the span containing t, or the index at which
// a span starting at t would be inserted.
func (m *IntervalMap) search(t uint64) (int, bool) {
	i, _ := slices.BinarySearchFunc(m.spans, t, func(s Span, t uint64) int {
		switch {
		case s.End <= t:
			return -1
		case s.Start > t:
			return 1
		}
		return 0
	})
	return i, i < len(m.spans) && m.spans[i].Contains(t)
}

func (m *IntervalMap) merge() {
	if len(m.spans) < 2 {
		return
	}

	ret := m.spans[:1]
	for _, s := range m.spans[1:] {
		last := &ret[len(ret)-1]
		if last.End == s.Start && last.Value.Equal(s.Value) {
			last.End = s.End
			continue
		}
		ret = append(ret, s)
	}
	m.spans = ret
}
