package klv

import (
	"github.com/google/uuid"

	"github.com/bluenviron/goklv/pkg/klvcodec"
	"github.com/bluenviron/goklv/pkg/klvlength"
	"github.com/bluenviron/goklv/pkg/liberrors"
)

// StringFormat is a format of text strings.
// Length constrains the number of bytes, Chars the number of characters.
type StringFormat struct {
	Codec  klvcodec.TextCodec
	Length klvlength.Constraint
	Chars  klvlength.Constraint
}

// Kind implements Format.
func (*StringFormat) Kind() Kind {
	return KindString
}

// Constraint implements Format.
func (f *StringFormat) Constraint() klvlength.Constraint {
	return f.Length
}

// Description implements Format.
func (f *StringFormat) Description() string {
	if !f.Chars.IsFree() {
		return f.Codec.String() + " string (" + f.Chars.Description() + " of characters)"
	}
	return describe(f.Codec.String()+" string", f.Length)
}

func (f *StringFormat) checkChars(chars int, w *Warnings) {
	// the empty string is encoded with a single character
	chars = max(chars, 1)
	if !f.Chars.Allows(chars) {
		w.Add(liberrors.ErrLengthMismatch{Format: f.Description(), Length: chars, Unit: "characters"})
	}
}

// ReadTyped implements Format.
func (f *StringFormat) ReadTyped(buf []byte, w *Warnings) (Value, error) {
	s, chars, err := klvcodec.ReadString(buf, f.Codec)
	if err != nil {
		return Value{}, err
	}

	f.checkChars(chars, w)

	return StringValue(s), nil
}

// AppendTyped implements Format.
func (f *StringFormat) AppendTyped(buf []byte, v Value, w *Warnings) ([]byte, error) {
	if v.s != "" {
		_, chars, err := f.Codec.Encode(v.s)
		if err != nil {
			return buf, err
		}
		f.checkChars(chars, w)
	}

	return klvcodec.AppendString(buf, v.s, f.Codec)
}

// LengthOfTyped implements Format.
func (f *StringFormat) LengthOfTyped(v Value) int {
	return klvcodec.StringLength(v.s, f.Codec)
}

// UUIDFormat is a format of 16-byte UUIDs, represented as canonical strings.
type UUIDFormat struct{}

// Kind implements Format.
func (*UUIDFormat) Kind() Kind {
	return KindString
}

// Constraint implements Format.
func (*UUIDFormat) Constraint() klvlength.Constraint {
	return klvlength.MustFixed(16)
}

// Description implements Format.
func (*UUIDFormat) Description() string {
	return "UUID"
}

// ReadTyped implements Format.
func (*UUIDFormat) ReadTyped(buf []byte, _ *Warnings) (Value, error) {
	u, err := uuid.FromBytes(buf)
	if err != nil {
		return Value{}, liberrors.ErrInvalidValue{Msg: err.Error()}
	}
	return StringValue(u.String()), nil
}

// AppendTyped implements Format.
func (*UUIDFormat) AppendTyped(buf []byte, v Value, _ *Warnings) ([]byte, error) {
	u, err := uuid.Parse(v.s)
	if err != nil {
		return buf, liberrors.ErrInvalidValue{Msg: err.Error()}
	}
	return append(buf, u[:]...), nil
}

// LengthOfTyped implements Format.
func (*UUIDFormat) LengthOfTyped(Value) int {
	return 16
}
