// Package misptime contains functions to encode and decode MISP precision timestamps.
// A precision timestamp is the number of microseconds elapsed since
// 1970-01-01 00:00:00 UTC, leap seconds excluded.
// Specification: MISB ST 0603
package misptime

import (
	"time"
)

// seconds between 1900-01-01 and 1970-01-01
const ntpEpochOffset = 2208988800

// Encode encodes a time in MISP format.
// Times before the epoch are not representable and are encoded as zero.
func Encode(t time.Time) uint64 {
	v := t.UnixMicro()
	if v < 0 {
		return 0
	}
	return uint64(v)
}

// Decode decodes a MISP timestamp.
func Decode(v uint64) time.Time {
	return time.UnixMicro(int64(v)).UTC()
}

// RTPTimestamp converts a MISP timestamp into a RTP timestamp with the given clock rate.
// The result wraps around like RTP timestamps do.
func RTPTimestamp(v uint64, clockRate int) uint32 {
	secs := v / 1000000
	micros := v % 1000000
	return uint32(secs*uint64(clockRate) + (micros*uint64(clockRate))/1000000)
}

// NTP converts a MISP timestamp into NTP format.
// Specification: RFC3550, section 4
func NTP(v uint64) uint64 {
	secs := v/1000000 + ntpEpochOffset
	fractional := ((v%1000000)<<32 + 500000) / 1000000
	return secs<<32 | fractional
}

// FromNTP converts a NTP timestamp into a MISP timestamp.
// NTP times before the Unix epoch are converted to zero.
func FromNTP(v uint64) uint64 {
	secs := v >> 32
	if secs < ntpEpochOffset {
		return 0
	}
	micros := ((v&0xFFFFFFFF)*1000000 + 1<<31) >> 32
	return (secs-ntpEpochOffset)*1000000 + micros
}
