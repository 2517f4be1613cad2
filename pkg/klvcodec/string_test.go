package klvcodec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/goklv/pkg/liberrors"
)

var casesString = []struct {
	name  string
	codec TextCodec
	dec   string
	chars int
	enc   []byte
}{
	{"ascii", ASCII, "ABC", 3, []byte("ABC")},
	{"utf8", UTF8, "hé", 2, []byte{0x68, 0xC3, 0xA9}},
	{"utf16 bmp", UTF16BE, "hé", 2, []byte{0x00, 0x68, 0x00, 0xE9}},
	{"utf16 surrogates", UTF16BE, "\U0001D11E", 1, []byte{0xD8, 0x34, 0xDD, 0x1E}},
}

func TestStringDecode(t *testing.T) {
	for _, ca := range casesString {
		t.Run(ca.name, func(t *testing.T) {
			s, chars, err := ReadString(ca.enc, ca.codec)
			require.NoError(t, err)
			require.Equal(t, ca.dec, s)
			require.Equal(t, ca.chars, chars)
		})
	}
}

func TestStringEncode(t *testing.T) {
	for _, ca := range casesString {
		t.Run(ca.name, func(t *testing.T) {
			buf, err := AppendString(nil, ca.dec, ca.codec)
			require.NoError(t, err)
			require.Equal(t, ca.enc, buf)
			require.Equal(t, len(ca.enc), StringLength(ca.dec, ca.codec))
		})
	}
}

func TestStringEmpty(t *testing.T) {
	for _, codec := range []TextCodec{ASCII, UTF8, UTF16BE} {
		t.Run(codec.String(), func(t *testing.T) {
			buf, err := AppendString(nil, "", codec)
			require.NoError(t, err)
			require.Equal(t, []byte{0x00}, buf)
			require.Equal(t, 1, StringLength("", codec))

			s, _, err := ReadString([]byte{0x00}, codec)
			require.NoError(t, err)
			require.Equal(t, "", s)

			_, err = AppendString(nil, "\x00", codec)
			require.ErrorAs(t, err, &liberrors.ErrTypeOverflow{})
		})
	}
}

func TestStringErrors(t *testing.T) {
	for _, ca := range []struct {
		name  string
		codec TextCodec
		enc   []byte
	}{
		{"ascii high bit", ASCII, []byte{0x41, 0x80}},
		{"utf8 truncated", UTF8, []byte{0x68, 0xC3}},
		{"utf16 odd length", UTF16BE, []byte{0x00, 0x68, 0x00}},
		{"utf16 lone low surrogate", UTF16BE, []byte{0xDC, 0x00}},
		{"utf16 lone high surrogate", UTF16BE, []byte{0xD8, 0x34}},
		{"utf16 bad pair", UTF16BE, []byte{0xD8, 0x34, 0x00, 0x41}},
	} {
		t.Run(ca.name, func(t *testing.T) {
			_, _, err := ReadString(ca.enc, ca.codec)
			require.ErrorAs(t, err, &liberrors.ErrInvalidValue{})
		})
	}

	_, err := AppendString(nil, "é", ASCII)
	require.ErrorAs(t, err, &liberrors.ErrInvalidValue{})
}
