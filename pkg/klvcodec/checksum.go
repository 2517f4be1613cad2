package klvcodec

// RunningSum16 computes the 16-bit running sum used by ST0601 and ST0903:
// bytes alternately contribute to the high and low byte of the sum.
// parity tells whether the first byte is in an odd position.
func RunningSum16(buf []byte, initial uint16, parity bool) uint16 {
	sum := initial
	odd := !parity

	for _, b := range buf {
		if odd {
			sum += uint16(b) << 8
		} else {
			sum += uint16(b)
		}
		odd = !odd
	}

	return sum
}

// CRC16CCITT computes a CRC-16-CCITT (polynomial 0x1021) with the standard
// 16 bits of zero padding.
func CRC16CCITT(buf []byte, initial uint16) uint16 {
	crc := initial

	step := func(b byte) {
		for i := range 8 {
			high := (crc & 0x8000) != 0
			crc <<= 1
			if (b & (1 << (7 - i))) != 0 {
				crc++
			}
			if high {
				crc ^= 0x1021
			}
		}
	}

	for _, b := range buf {
		step(b)
	}
	step(0)
	step(0)

	return crc
}

// CRC32MPEG computes a CRC-32/MPEG-2 (polynomial 0x04C11DB7, no reflection).
func CRC32MPEG(buf []byte, initial uint32) uint32 {
	crc := initial

	for _, b := range buf {
		crc ^= uint32(b) << 24
		for range 8 {
			if (crc & 0x80000000) != 0 {
				crc = crc<<1 ^ 0x04C11DB7
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}
