package klvupdate

import (
	"github.com/bluenviron/goklv/pkg/klv"
)

// PrunePacket returns a copy of a packet without the tags that did not
// change and whose interval did not elapse.
// The tracker is keyed by the normalized universal key of the packet.
// Tags required by the traits of the set are always kept.
// Packets that do not contain a set are returned unchanged.
func PrunePacket(
	t *Tracker[klv.UDSKey],
	intervals *Intervals[klv.UDSKey],
	lookup *klv.TraitsLookup,
	p klv.Packet,
	timestamp uint64,
) klv.Packet {
	traits := lookup.ByUDSKey(p.Key)
	if p.Value.Kind() != klv.KindLocalSet || traits.Subtags == nil {
		return p
	}

	orig := p.Value.AsSet()
	set := orig.Clone()
	t.Prune(set, intervals, p.Key.Normalized(), timestamp)

	subtags := traits.Subtags()
	for _, tag := range orig.Tags() {
		if !set.Has(tag) && subtags.ByTag(tag).Count.Min > 0 {
			for _, v := range orig.AllAt(tag) {
				set.Add(tag, v.Clone())
			}
		}
	}

	return klv.Packet{Key: p.Key, Value: klv.SetValue(set)}
}
