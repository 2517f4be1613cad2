package klv

import (
	"fmt"

	"github.com/bluenviron/goklv/pkg/klvcodec"
	"github.com/bluenviron/goklv/pkg/klvlength"
	"github.com/bluenviron/goklv/pkg/liberrors"
)

// lengthFor picks the width of a variable-length value:
// the fixed length if any, otherwise the length the value was read with,
// widened to the minimum width the value needs.
func lengthFor(c klvlength.Constraint, hint int, minimal int) int {
	if n, ok := c.FixedLength(); ok {
		return n
	}
	return c.Closest(max(hint, minimal))
}

// hintOr returns the length the value was read with if allowed,
// otherwise the suggested length.
func hintOr(c klvlength.Constraint, hint int) int {
	if n, ok := c.FixedLength(); ok {
		return n
	}
	if hint != 0 && c.Allows(hint) {
		return hint
	}
	return c.Suggested()
}

// BlobFormat is a format of uninterpreted bytes.
type BlobFormat struct {
	Length klvlength.Constraint
}

// Kind implements Format.
func (*BlobFormat) Kind() Kind {
	return KindBlob
}

// Constraint implements Format.
func (f *BlobFormat) Constraint() klvlength.Constraint {
	return f.Length
}

// Description implements Format.
func (f *BlobFormat) Description() string {
	return describe("raw bytes", f.Length)
}

// ReadTyped implements Format.
func (*BlobFormat) ReadTyped(buf []byte, _ *Warnings) (Value, error) {
	return BlobValue(append([]byte(nil), buf...)), nil
}

// AppendTyped implements Format.
func (*BlobFormat) AppendTyped(buf []byte, v Value, _ *Warnings) ([]byte, error) {
	return append(buf, v.b...), nil
}

// LengthOfTyped implements Format.
func (*BlobFormat) LengthOfTyped(v Value) int {
	return len(v.b)
}

// UintFormat is a format of big-endian unsigned integers.
type UintFormat struct {
	Length klvlength.Constraint
}

// Kind implements Format.
func (*UintFormat) Kind() Kind {
	return KindUint
}

// Constraint implements Format.
func (f *UintFormat) Constraint() klvlength.Constraint {
	return f.Length
}

// Description implements Format.
func (f *UintFormat) Description() string {
	return describe("unsigned integer", f.Length)
}

// ReadTyped implements Format.
func (*UintFormat) ReadTyped(buf []byte, _ *Warnings) (Value, error) {
	u, err := klvcodec.ReadUint(buf, len(buf))
	if err != nil {
		return Value{}, err
	}
	return UintValue(u).WithLength(len(buf)), nil
}

// AppendTyped implements Format.
func (f *UintFormat) AppendTyped(buf []byte, v Value, _ *Warnings) ([]byte, error) {
	return klvcodec.AppendUint(buf, v.u, f.LengthOfTyped(v))
}

// LengthOfTyped implements Format.
func (f *UintFormat) LengthOfTyped(v Value) int {
	return lengthFor(f.Length, v.length, klvcodec.UintLength(v.u))
}

// IntFormat is a format of big-endian two's complement integers.
type IntFormat struct {
	Length klvlength.Constraint
}

// Kind implements Format.
func (*IntFormat) Kind() Kind {
	return KindInt
}

// Constraint implements Format.
func (f *IntFormat) Constraint() klvlength.Constraint {
	return f.Length
}

// Description implements Format.
func (f *IntFormat) Description() string {
	return describe("signed integer", f.Length)
}

// ReadTyped implements Format.
func (*IntFormat) ReadTyped(buf []byte, _ *Warnings) (Value, error) {
	i, err := klvcodec.ReadInt(buf, len(buf))
	if err != nil {
		return Value{}, err
	}
	return IntValue(i).WithLength(len(buf)), nil
}

// AppendTyped implements Format.
func (f *IntFormat) AppendTyped(buf []byte, v Value, _ *Warnings) ([]byte, error) {
	return klvcodec.AppendInt(buf, v.i, f.LengthOfTyped(v))
}

// LengthOfTyped implements Format.
func (f *IntFormat) LengthOfTyped(v Value) int {
	return lengthFor(f.Length, v.length, klvcodec.IntLength(v.i))
}

// BERFormat is a format of unsigned integers encoded as BER lengths.
type BERFormat struct{}

// Kind implements Format.
func (*BERFormat) Kind() Kind {
	return KindUint
}

// Constraint implements Format.
func (*BERFormat) Constraint() klvlength.Constraint {
	return klvlength.Free()
}

// Description implements Format.
func (*BERFormat) Description() string {
	return "BER-encoded unsigned integer"
}

// ReadTyped implements Format.
func (*BERFormat) ReadTyped(buf []byte, _ *Warnings) (Value, error) {
	u, n, err := klvcodec.ReadBER(buf)
	if err != nil {
		return Value{}, err
	}
	if n != len(buf) {
		return Value{}, liberrors.ErrInvalidValue{Msg: fmt.Sprintf("BER value uses %d of %d bytes", n, len(buf))}
	}
	return UintValue(u), nil
}

// AppendTyped implements Format.
func (*BERFormat) AppendTyped(buf []byte, v Value, _ *Warnings) ([]byte, error) {
	return klvcodec.AppendBER(buf, v.u), nil
}

// LengthOfTyped implements Format.
func (*BERFormat) LengthOfTyped(v Value) int {
	return klvcodec.BERLength(v.u)
}

// BEROIDFormat is a format of unsigned integers encoded as BER-OID.
type BEROIDFormat struct{}

// Kind implements Format.
func (*BEROIDFormat) Kind() Kind {
	return KindUint
}

// Constraint implements Format.
func (*BEROIDFormat) Constraint() klvlength.Constraint {
	return klvlength.Free()
}

// Description implements Format.
func (*BEROIDFormat) Description() string {
	return "BER-OID-encoded unsigned integer"
}

// ReadTyped implements Format.
func (*BEROIDFormat) ReadTyped(buf []byte, _ *Warnings) (Value, error) {
	u, n, err := klvcodec.ReadBEROID(buf)
	if err != nil {
		return Value{}, err
	}
	if n != len(buf) {
		return Value{}, liberrors.ErrInvalidValue{Msg: fmt.Sprintf("BER-OID value uses %d of %d bytes", n, len(buf))}
	}
	return UintValue(u), nil
}

// AppendTyped implements Format.
func (*BEROIDFormat) AppendTyped(buf []byte, v Value, _ *Warnings) ([]byte, error) {
	return klvcodec.AppendBEROID(buf, v.u), nil
}

// LengthOfTyped implements Format.
func (*BEROIDFormat) LengthOfTyped(v Value) int {
	return klvcodec.BEROIDLength(v.u)
}

// FloatFormat is a format of IEEE-754 single or double precision floats.
// Values without a length hint are written in double precision unless
// the constraint says otherwise.
type FloatFormat struct {
	Length klvlength.Constraint
}

// Kind implements Format.
func (*FloatFormat) Kind() Kind {
	return KindFloat
}

// Constraint implements Format.
func (f *FloatFormat) Constraint() klvlength.Constraint {
	if f.Length.IsFree() {
		return klvlength.MustSet(4, 8).MustWithSuggested(8)
	}
	return f.Length
}

// Description implements Format.
func (f *FloatFormat) Description() string {
	return describe("IEEE-754 float", f.Length)
}

// ReadTyped implements Format.
func (*FloatFormat) ReadTyped(buf []byte, _ *Warnings) (Value, error) {
	v, err := klvcodec.ReadFloat(buf, len(buf))
	if err != nil {
		return Value{}, err
	}
	return FloatValue(v).WithLength(len(buf)), nil
}

// AppendTyped implements Format.
func (f *FloatFormat) AppendTyped(buf []byte, v Value, _ *Warnings) ([]byte, error) {
	return klvcodec.AppendFloat(buf, v.f, f.LengthOfTyped(v))
}

// LengthOfTyped implements Format.
func (f *FloatFormat) LengthOfTyped(v Value) int {
	return hintOr(f.Constraint(), v.length)
}

// UFlintFormat is a format of floats in [Min, Max] mapped onto unsigned integers.
type UFlintFormat struct {
	Min    float64
	Max    float64
	Length klvlength.Constraint
}

// Kind implements Format.
func (*UFlintFormat) Kind() Kind {
	return KindFloat
}

// Constraint implements Format.
func (f *UFlintFormat) Constraint() klvlength.Constraint {
	return f.Length
}

// Description implements Format.
func (f *UFlintFormat) Description() string {
	return describe(fmt.Sprintf("unsigned integer mapped to [%g, %g]", f.Min, f.Max), f.Length)
}

// ReadTyped implements Format.
func (f *UFlintFormat) ReadTyped(buf []byte, _ *Warnings) (Value, error) {
	v, err := klvcodec.ReadUFlint(buf, f.Min, f.Max, len(buf))
	if err != nil {
		return Value{}, err
	}
	return FloatValue(v).WithLength(len(buf)), nil
}

// AppendTyped implements Format.
func (f *UFlintFormat) AppendTyped(buf []byte, v Value, _ *Warnings) ([]byte, error) {
	return klvcodec.AppendUFlint(buf, v.f, f.Min, f.Max, f.LengthOfTyped(v))
}

// LengthOfTyped implements Format.
func (f *UFlintFormat) LengthOfTyped(v Value) int {
	return hintOr(f.Length, v.length)
}

// SFlintFormat is a format of floats in [Min, Max] mapped onto signed integers.
type SFlintFormat struct {
	Min    float64
	Max    float64
	Length klvlength.Constraint
}

// Kind implements Format.
func (*SFlintFormat) Kind() Kind {
	return KindFloat
}

// Constraint implements Format.
func (f *SFlintFormat) Constraint() klvlength.Constraint {
	return f.Length
}

// Description implements Format.
func (f *SFlintFormat) Description() string {
	return describe(fmt.Sprintf("signed integer mapped to [%g, %g]", f.Min, f.Max), f.Length)
}

// ReadTyped implements Format.
func (f *SFlintFormat) ReadTyped(buf []byte, _ *Warnings) (Value, error) {
	v, err := klvcodec.ReadSFlint(buf, f.Min, f.Max, len(buf))
	if err != nil {
		return Value{}, err
	}
	return FloatValue(v).WithLength(len(buf)), nil
}

// AppendTyped implements Format.
func (f *SFlintFormat) AppendTyped(buf []byte, v Value, _ *Warnings) ([]byte, error) {
	return klvcodec.AppendSFlint(buf, v.f, f.Min, f.Max, f.LengthOfTyped(v))
}

// LengthOfTyped implements Format.
func (f *SFlintFormat) LengthOfTyped(v Value) int {
	return hintOr(f.Length, v.length)
}

// IMAPFormat is a format of floats in [Min, Max] encoded with ST1201 IMAP.
type IMAPFormat struct {
	Min    float64
	Max    float64
	Length klvlength.Constraint
}

// Kind implements Format.
func (*IMAPFormat) Kind() Kind {
	return KindFloat
}

// Constraint implements Format.
func (f *IMAPFormat) Constraint() klvlength.Constraint {
	return f.Length
}

// Description implements Format.
func (f *IMAPFormat) Description() string {
	return describe(fmt.Sprintf("IMAP float in [%g, %g]", f.Min, f.Max), f.Length)
}

// ReadTyped implements Format.
func (f *IMAPFormat) ReadTyped(buf []byte, _ *Warnings) (Value, error) {
	v, err := klvcodec.ReadIMAP(buf, f.Min, f.Max, len(buf))
	if err != nil {
		return Value{}, err
	}
	return FloatValue(v).WithLength(len(buf)), nil
}

// AppendTyped implements Format.
func (f *IMAPFormat) AppendTyped(buf []byte, v Value, _ *Warnings) ([]byte, error) {
	return klvcodec.AppendIMAP(buf, v.f, f.Min, f.Max, f.LengthOfTyped(v))
}

// LengthOfTyped implements Format.
func (f *IMAPFormat) LengthOfTyped(v Value) int {
	return hintOr(f.Length, v.length)
}
