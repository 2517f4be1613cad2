// Package misb contains the table of the KLV packets that can be decoded,
// indexed by universal key.
package misb

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bluenviron/goklv/pkg/klv"
	"github.com/bluenviron/goklv/pkg/st0102"
	"github.com/bluenviron/goklv/pkg/st0601"
	"github.com/bluenviron/goklv/pkg/st0903"
)

var (
	packetTraitsOnce sync.Once
	packetTraits     *klv.TraitsLookup
)

// PacketTraits returns the traits of top-level packets.
// Packets with unknown keys are read as blobs.
func PacketTraits() *klv.TraitsLookup {
	packetTraitsOnce.Do(func() {
		packetTraits = klv.NewTraitsLookup([]klv.TagTraits{
			{
				EnumName:    "KLV_PACKET_UNKNOWN",
				Name:        "Unknown Packet",
				Description: "Packet of unknown type.",
			},
			{
				UDSKey:      st0601.Key,
				EnumName:    "KLV_PACKET_MISB_0601_LOCAL_SET",
				Name:        "UAS Datalink Local Set",
				Description: "MISB ST0601 local set, containing platform and sensor telemetry.",
				Format:      st0601.Format(),
				Count:       klv.CountAny,
				Subtags:     st0601.Traits,
			},
			{
				UDSKey:      st0903.Key,
				EnumName:    "KLV_PACKET_MISB_0903_LOCAL_SET",
				Name:        "VMTI Local Set",
				Description: "MISB ST0903 local set, containing moving target detections.",
				Format:      st0903.Format(),
				Count:       klv.CountAny,
				Subtags:     st0903.Traits,
			},
			{
				UDSKey:      st0102.Key,
				EnumName:    "KLV_PACKET_MISB_0102_LOCAL_SET",
				Name:        "Security Local Set",
				Description: "MISB ST0102 local set, containing security markings.",
				Format:      st0102.Format(),
				Count:       klv.CountAny,
				Subtags:     st0102.Traits,
			},
			{
				UDSKey:      st0102.UniversalKey,
				EnumName:    "KLV_PACKET_MISB_0102_UNIVERSAL_SET",
				Name:        "Security Universal Set",
				Description: "MISB ST0102 universal set, containing security markings.",
				Format:      st0102.UniversalFormat(),
				Count:       klv.CountAny,
				Subtags:     st0102.UniversalTraits,
			},
		})
	})
	return packetTraits
}

// ResolveStandard returns the normalized universal key of a standard,
// given its name (for instance "st0601") or its universal key.
// It can be used as the standard resolver of update intervals.
func ResolveStandard(name string) (klv.UDSKey, error) {
	switch strings.ToLower(name) {
	case "st0601":
		return st0601.Key.Normalized(), nil

	case "st0903":
		return st0903.Key.Normalized(), nil

	case "st0102":
		return st0102.Key.Normalized(), nil
	}

	key, err := klv.ParseUDSKey(name)
	if err != nil {
		return klv.UDSKey{}, fmt.Errorf("unknown standard '%s'", name)
	}

	if !PacketTraits().HasUDSKey(key) {
		return klv.UDSKey{}, fmt.Errorf("unknown standard '%s'", name)
	}

	return key.Normalized(), nil
}

// TimestampTag returns the tag holding the precision timestamp of the
// sets of a standard.
func TimestampTag(key klv.UDSKey) (klv.Tag, bool) {
	switch key.Normalized() {
	case st0601.Key.Normalized():
		return st0601.TagPrecisionTimestamp, true

	case st0903.Key.Normalized():
		return st0903.TagPrecisionTimestamp, true
	}

	return 0, false
}

// PacketTimestamp returns the precision timestamp of a packet, if any.
func PacketTimestamp(p klv.Packet) (uint64, bool) {
	tag, ok := TimestampTag(p.Key)
	if !ok || p.Value.Kind() != klv.KindLocalSet {
		return 0, false
	}

	v, err := p.Value.AsSet().Get(tag)
	if err != nil || v.Kind() != klv.KindUint {
		return 0, false
	}

	return v.AsUint(), true
}
