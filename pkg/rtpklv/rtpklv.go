// Package rtpklv contains a RTP decoder and encoder for KLV units.
// Specification: https://datatracker.ietf.org/doc/html/rfc6597
package rtpklv

import (
	"fmt"
	"strconv"
	"strings"

	psdp "github.com/pion/sdp/v3"
)

// ClockRate is the clock rate of KLV streams.
const ClockRate = 90000

// RTPMap is the rtpmap encoding name of KLV streams.
const RTPMap = "smpte336m/90000"

// MediaDescription returns a SDP media description of a KLV stream.
func MediaDescription(payloadType uint8) *psdp.MediaDescription {
	typ := strconv.FormatUint(uint64(payloadType), 10)

	return &psdp.MediaDescription{
		MediaName: psdp.MediaName{
			Media:   "application",
			Protos:  []string{"RTP", "AVP"},
			Formats: []string{typ},
		},
		Attributes: []psdp.Attribute{
			{
				Key:   "rtpmap",
				Value: typ + " " + RTPMap,
			},
		},
	}
}

// FindPayloadType returns the payload type of the first KLV format
// of a SDP media description.
func FindPayloadType(md *psdp.MediaDescription) (uint8, error) {
	for _, attr := range md.Attributes {
		if attr.Key != "rtpmap" {
			continue
		}

		parts := strings.SplitN(strings.TrimSpace(attr.Value), " ", 2)
		if len(parts) != 2 {
			continue
		}

		// some encoders write smtpe336m
		name := strings.ToLower(parts[1])
		if name != RTPMap && name != "smtpe336m/90000" {
			continue
		}

		tmp, err := strconv.ParseUint(parts[0], 10, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid payload type: %w", err)
		}

		return uint8(tmp), nil
	}

	return 0, fmt.Errorf("KLV format not found")
}
