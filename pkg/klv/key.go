package klv

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/bluenviron/goklv/pkg/liberrors"
)

// Tag is a local key, identifying a value inside a local set.
type Tag uint64

// String implements fmt.Stringer.
func (t Tag) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// UDSKeyPrefix is the prefix shared by all SMPTE universal keys.
var UDSKeyPrefix = []byte{0x06, 0x0E, 0x2B, 0x34}

// UDSKeyLength is the length of a universal key.
const UDSKeyLength = 16

// versionByte is ignored when comparing keys.
const versionByte = 7

// UDSKey is a 16-byte universal key.
// Specification: SMPTE ST 336
type UDSKey [UDSKeyLength]byte

// ParseUDSKey parses a key written as 16 hexadecimal bytes,
// optionally separated by dots or spaces.
func ParseUDSKey(s string) (UDSKey, error) {
	s = strings.NewReplacer(".", "", " ", "").Replace(s)

	var k UDSKey
	if len(s) != UDSKeyLength*2 {
		return k, liberrors.ErrInvalidValue{Msg: fmt.Sprintf("invalid universal key '%s'", s)}
	}

	for i := range k {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return k, liberrors.ErrInvalidValue{Msg: fmt.Sprintf("invalid universal key '%s'", s)}
		}
		k[i] = byte(v)
	}

	return k, nil
}

// MustParseUDSKey is like ParseUDSKey but panics in case of error.
func MustParseUDSKey(s string) UDSKey {
	k, err := ParseUDSKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// IsValid checks whether the key starts with the SMPTE prefix.
func (k UDSKey) IsValid() bool {
	return bytes.HasPrefix(k[:], UDSKeyPrefix)
}

// Normalized returns the key with the version byte cleared.
func (k UDSKey) Normalized() UDSKey {
	k[versionByte] = 0
	return k
}

// Equal checks whether two keys are equal, ignoring the version byte.
func (k UDSKey) Equal(o UDSKey) bool {
	return k.Normalized() == o.Normalized()
}

// Compare compares two keys, ignoring the version byte.
func (k UDSKey) Compare(o UDSKey) int {
	a := k.Normalized()
	b := o.Normalized()
	return bytes.Compare(a[:], b[:])
}

// String implements fmt.Stringer.
func (k UDSKey) String() string {
	var b strings.Builder
	for i, v := range k {
		if i != 0 && (i%4) == 0 {
			b.WriteByte('.')
		}
		fmt.Fprintf(&b, "%02X", v)
	}
	return b.String()
}
