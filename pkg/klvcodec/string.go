package klvcodec

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/bluenviron/goklv/pkg/liberrors"
)

// TextCodec is a character encoding used by KLV strings.
type TextCodec int

// text codecs.
const (
	ASCII TextCodec = iota
	UTF8
	UTF16BE
)

// String implements fmt.Stringer.
func (c TextCodec) String() string {
	switch c {
	case ASCII:
		return "ASCII"
	case UTF8:
		return "UTF-8"
	case UTF16BE:
		return "UTF-16BE"
	}
	return "unknown"
}

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Decode decodes bytes into a string.
// It returns the string and its length in characters.
func (c TextCodec) Decode(buf []byte) (string, int, error) {
	switch c {
	case ASCII:
		for _, b := range buf {
			if b >= 0x80 {
				return "", 0, liberrors.ErrInvalidValue{Msg: "invalid ASCII character"}
			}
		}
		return string(buf), len(buf), nil

	case UTF8:
		if !utf8.Valid(buf) {
			return "", 0, liberrors.ErrInvalidValue{Msg: "invalid UTF-8 sequence"}
		}
		return string(buf), utf8.RuneCount(buf), nil

	case UTF16BE:
		chars, err := validateUTF16BE(buf)
		if err != nil {
			return "", 0, err
		}

		s, err := utf16be.NewDecoder().Bytes(buf)
		if err != nil {
			return "", 0, liberrors.ErrInvalidValue{Msg: err.Error()}
		}
		return string(s), chars, nil
	}

	return "", 0, liberrors.ErrInvalidArgument{Msg: "unknown text codec"}
}

// Encode encodes a string into bytes.
// It returns the bytes and the length of the string in characters.
func (c TextCodec) Encode(s string) ([]byte, int, error) {
	switch c {
	case ASCII:
		for i := 0; i < len(s); i++ {
			if s[i] >= 0x80 {
				return nil, 0, liberrors.ErrInvalidValue{Msg: "invalid ASCII character"}
			}
		}
		return []byte(s), len(s), nil

	case UTF8:
		if !utf8.ValidString(s) {
			return nil, 0, liberrors.ErrInvalidValue{Msg: "invalid UTF-8 sequence"}
		}
		return []byte(s), utf8.RuneCountInString(s), nil

	case UTF16BE:
		if !utf8.ValidString(s) {
			return nil, 0, liberrors.ErrInvalidValue{Msg: "invalid UTF-8 sequence"}
		}

		buf, err := utf16be.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, 0, liberrors.ErrInvalidValue{Msg: err.Error()}
		}
		return buf, utf8.RuneCountInString(s), nil
	}

	return nil, 0, liberrors.ErrInvalidArgument{Msg: "unknown text codec"}
}

// validateUTF16BE checks surrogate pairing, since the x/text decoder
// silently replaces unpaired surrogates.
func validateUTF16BE(buf []byte) (int, error) {
	if (len(buf) % 2) != 0 {
		return 0, liberrors.ErrInvalidValue{Msg: "UTF-16 string has odd length"}
	}

	chars := 0

	for i := 0; i < len(buf); i += 2 {
		u := uint16(buf[i])<<8 | uint16(buf[i+1])

		switch {
		case u >= 0xD800 && u < 0xDC00:
			if (i + 3) >= len(buf) {
				return 0, liberrors.ErrInvalidValue{Msg: "truncated UTF-16 surrogate pair"}
			}
			u2 := uint16(buf[i+2])<<8 | uint16(buf[i+3])
			if u2 < 0xDC00 || u2 >= 0xE000 {
				return 0, liberrors.ErrInvalidValue{Msg: "invalid UTF-16 surrogate pair"}
			}
			i += 2

		case u >= 0xDC00 && u < 0xE000:
			return 0, liberrors.ErrInvalidValue{Msg: "unpaired UTF-16 low surrogate"}
		}

		chars++
	}

	return chars, nil
}

// ReadString decodes a string.
// The single byte 0x00 is the encoding of the empty string.
func ReadString(buf []byte, codec TextCodec) (string, int, error) {
	if len(buf) == 1 && buf[0] == 0 {
		return "", 0, nil
	}
	return codec.Decode(buf)
}

// StringLength returns the number of bytes AppendString will write.
func StringLength(s string, codec TextCodec) int {
	if codec == UTF16BE {
		n := 0
		for _, r := range s {
			if r >= 0x10000 {
				n += 4
			} else {
				n += 2
			}
		}
		return max(n, 1)
	}
	return max(len(s), 1)
}

// AppendString encodes a string.
// The empty string is written as a single 0x00 byte, hence the string "\x00"
// cannot be written.
func AppendString(buf []byte, s string, codec TextCodec) ([]byte, error) {
	if s == "" {
		return append(buf, 0), nil
	}

	if s == "\x00" {
		return buf, liberrors.ErrTypeOverflow{Msg: "the string \"\\0\" cannot be written to KLV stream"}
	}

	enc, _, err := codec.Encode(s)
	if err != nil {
		return buf, err
	}

	return append(buf, enc...), nil
}
