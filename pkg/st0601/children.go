package st0601

import (
	"fmt"

	"github.com/bluenviron/goklv/pkg/klv"
	"github.com/bluenviron/goklv/pkg/st1607"
)

// ErrMultipleAmends is a warning reporting a set with more than one amend
// set at the same level. Only the first one is applied.
type ErrMultipleAmends struct {
	Count int
}

// Error implements the error interface.
func (e ErrMultipleAmends) Error() string {
	return fmt.Sprintf("%d sibling amend sets found, only the first one is applied", e.Count)
}

// ErrInvalidChildSet is a warning reporting a child set that could not be decoded.
type ErrInvalidChildSet struct {
	Tag klv.Tag
}

// Error implements the error interface.
func (e ErrInvalidChildSet) Error() string {
	return fmt.Sprintf("child set with tag %d is not a valid local set", e.Tag)
}

// ChildPolicy returns how a tag of an amend set is merged into its parent.
// Values of tags that can appear multiple times are appended to the parent
// ones, the others replace them.
func ChildPolicy(tag klv.Tag) st1607.Policy {
	if Traits().ByTag(tag).Count.AllowsMultiple() {
		return st1607.KeepBoth
	}
	return st1607.KeepChild
}

// validChildren returns the children with the given tag that are local sets.
func validChildren(set *klv.LocalSet, tag klv.Tag) ([]*klv.LocalSet, klv.Warnings) {
	var ret []*klv.LocalSet
	var w klv.Warnings

	for _, v := range set.AllAt(tag) {
		if v.Kind() != klv.KindLocalSet || v.AsSet() == nil {
			w.Add(ErrInvalidChildSet{Tag: tag})
			continue
		}
		ret = append(ret, v.AsSet())
	}

	return ret, w
}

// takeAmend removes the amend sets from set and returns the first valid one,
// with its own nested amends already merged into it.
func takeAmend(set *klv.LocalSet) (*klv.LocalSet, klv.Warnings) {
	amends, w := validChildren(set, TagAmendLocalSet)
	set.Erase(TagAmendLocalSet)

	if len(amends) == 0 {
		return nil, w
	}

	if len(amends) > 1 {
		w.Add(ErrMultipleAmends{Count: len(amends)})
	}

	amend := amends[0]

	inner, iw := takeAmend(amend)
	w.Extend(iw)

	if inner != nil {
		w.Extend(st1607.MergeChild(amend, inner, ChildPolicy))
	}

	return amend, w
}

// ApplyAmend applies the amend set contained in set, if any, and removes it.
// Amend sets nested into the amend set are resolved first.
func ApplyAmend(set *klv.LocalSet) klv.Warnings {
	amend, w := takeAmend(set)
	if amend == nil {
		return w
	}

	w.Extend(st1607.ApplyChild(set, amend, ChildPolicy))
	return w
}

// ApplySegment returns a copy of set for each segment set it contains,
// with segment sets stripped and the segment applied.
// It returns nil when set contains no segment sets.
func ApplySegment(set *klv.LocalSet) ([]*klv.LocalSet, klv.Warnings) {
	if !set.Has(TagSegmentLocalSet) {
		return nil, nil
	}

	segments, w := validChildren(set, TagSegmentLocalSet)

	parent := set.Clone()
	parent.Erase(TagSegmentLocalSet)

	if len(segments) == 0 {
		return []*klv.LocalSet{parent}, w
	}

	ret := make([]*klv.LocalSet, len(segments))

	for i, segment := range segments {
		ret[i] = parent.Clone()
		w.Extend(st1607.ApplyChild(ret[i], segment, st1607.DefaultPolicy))
	}

	return ret, w
}

func applyChildren(set *klv.LocalSet) ([]*klv.LocalSet, klv.Warnings) {
	w := ApplyAmend(set)

	segments, sw := ApplySegment(set)
	w.Extend(sw)

	if segments == nil {
		return []*klv.LocalSet{set}, w
	}

	// segments can contain other amend and segment sets
	var ret []*klv.LocalSet
	for _, segment := range segments {
		sets, sw := applyChildren(segment)
		w.Extend(sw)
		ret = append(ret, sets...)
	}

	return ret, w
}

// ApplyChildren resolves the amend and segment sets of UAS Datalink packets.
// Each packet is replaced by the packets derived from its segments, in order.
// Other packets are returned unchanged. Input packets are not modified.
func ApplyChildren(packets []klv.Packet) ([]klv.Packet, klv.Warnings) {
	var ret []klv.Packet
	var w klv.Warnings

	for _, pkt := range packets {
		if !pkt.Key.Equal(Key) || pkt.Value.Kind() != klv.KindLocalSet || pkt.Value.AsSet() == nil {
			ret = append(ret, pkt)
			continue
		}

		sets, sw := applyChildren(pkt.Value.AsSet().Clone())
		w.Extend(sw)

		for _, set := range sets {
			ret = append(ret, klv.Packet{Key: pkt.Key, Value: klv.SetValue(set)})
		}
	}

	return ret, w
}
