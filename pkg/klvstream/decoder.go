package klvstream

import (
	"errors"

	"github.com/pion/rtcp"
	"github.com/pion/rtp"

	"github.com/bluenviron/goklv/internal/rtpreorder"
	"github.com/bluenviron/goklv/pkg/klv"
	"github.com/bluenviron/goklv/pkg/misb"
	"github.com/bluenviron/goklv/pkg/misptime"
	"github.com/bluenviron/goklv/pkg/rtpklv"
	"github.com/bluenviron/goklv/pkg/st0601"
)

// Decoder decodes KLV packets from RTP packets.
// RTP packets are sorted by sequence number before being decoded.
// Amend and segment sets of ST0601 packets are resolved.
type Decoder struct {
	// traits of top-level packets (optional).
	// It defaults to misb.PacketTraits().
	Lookup *klv.TraitsLookup

	// keep amend and segment sets instead of resolving them (optional).
	KeepChildren bool

	// called when a non-fatal problem is found (optional).
	OnWarning func(error)

	reorder    *rtpreorder.Buffer
	rtpDec     *rtpklv.Decoder
	hasReport  bool
	reportRTP  uint32
	reportMISP uint64
}

// Init initializes the decoder.
func (d *Decoder) Init() error {
	if d.Lookup == nil {
		d.Lookup = misb.PacketTraits()
	}
	if d.OnWarning == nil {
		d.OnWarning = func(error) {}
	}

	d.reorder = &rtpreorder.Buffer{}
	err := d.reorder.Init()
	if err != nil {
		return err
	}

	d.rtpDec = &rtpklv.Decoder{}
	return d.rtpDec.Init()
}

// Decode decodes the KLV packets of a RTP packet.
// It returns rtpklv.ErrMorePacketsNeeded until a KLV unit is complete.
// When the packet completes more than one unit, the packets of all units
// are returned.
func (d *Decoder) Decode(pkt *rtp.Packet) ([]klv.Packet, error) {
	var out []klv.Packet
	var errs []error

	for _, ordered := range d.reorder.Push(pkt) {
		unit, err := d.rtpDec.Decode(ordered)
		if err != nil && !errors.Is(err, rtpklv.ErrMorePacketsNeeded) {
			errs = append(errs, err)
		}
		if unit == nil {
			continue
		}

		out = append(out, d.DecodeUnit(unit)...)
	}

	if out == nil {
		if len(errs) != 0 {
			return nil, errs[0]
		}
		return nil, rtpklv.ErrMorePacketsNeeded
	}

	for _, err := range errs {
		d.OnWarning(err)
	}

	return out, nil
}

// DecodeUnit decodes the KLV packets of a KLV unit.
func (d *Decoder) DecodeUnit(unit []byte) []klv.Packet {
	packets, w := klv.ReadPackets(unit, d.Lookup)
	d.report(w)

	if d.KeepChildren {
		return packets
	}

	packets, w = st0601.ApplyChildren(packets)
	d.report(w)

	return packets
}

func (d *Decoder) report(w klv.Warnings) {
	for _, err := range w {
		d.OnWarning(err)
	}
}

// ProcessSenderReport stores the time reference of a RTCP sender report.
func (d *Decoder) ProcessSenderReport(sr *rtcp.SenderReport) {
	d.hasReport = true
	d.reportRTP = sr.RTPTime
	d.reportMISP = misptime.FromNTP(sr.NTPTime)
}

// MISPTimestamp returns the MISP timestamp of a RTP packet.
// It returns false until a sender report has been processed.
func (d *Decoder) MISPTimestamp(pkt *rtp.Packet) (uint64, bool) {
	if !d.hasReport {
		return 0, false
	}

	diff := int64(int32(pkt.Timestamp - d.reportRTP))
	v := int64(d.reportMISP) + multiplyAndDivide(diff, 1000000, rtpklv.ClockRate)
	if v < 0 {
		return 0, false
	}

	return uint64(v), true
}
