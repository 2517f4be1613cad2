// Package klvcodec contains functions to read and write the primitive types
// used by KLV: integers, floats, BER lengths, BER-OID keys, strings and
// mapped floating-point values.
//
// Read functions consume bytes from the beginning of a buffer, write
// functions append to a buffer.
package klvcodec

import (
	"github.com/bluenviron/goklv/pkg/liberrors"
)

func checkAvailable(what string, buf []byte, needed int) error {
	if len(buf) < needed {
		return liberrors.ErrBufferOverflow{What: what, Needed: needed, Available: len(buf)}
	}
	return nil
}
