package klv

import (
	"fmt"

	"github.com/bluenviron/goklv/pkg/klvlength"
	"github.com/bluenviron/goklv/pkg/liberrors"
)

// Format reads and writes values of a single kind.
//
// Implementations only deal with non-empty values of their own kind;
// Read, Append and LengthOf apply the policy shared by all formats.
type Format interface {
	// Kind returns the kind of values produced by the format.
	Kind() Kind

	// Constraint returns the allowed byte lengths.
	Constraint() klvlength.Constraint

	// Description returns a human-readable description.
	Description() string

	// ReadTyped decodes a non-empty byte range.
	ReadTyped(buf []byte, w *Warnings) (Value, error)

	// AppendTyped encodes a value of the format's kind.
	AppendTyped(buf []byte, v Value, w *Warnings) ([]byte, error)

	// LengthOfTyped returns the number of bytes AppendTyped will write.
	LengthOfTyped(v Value) int
}

func describe(name string, c klvlength.Constraint) string {
	if c.IsFree() {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, c.Description())
}

// Read decodes a value.
// A zero-length range is an empty value. When the bytes cannot be decoded,
// a warning is emitted and they are returned as a blob, so that a single
// malformed field does not cause the loss of the surrounding data.
func Read(f Format, buf []byte, w *Warnings) Value {
	if len(buf) == 0 {
		return Empty()
	}

	if !f.Constraint().Allows(len(buf)) {
		w.Add(liberrors.ErrLengthMismatch{Format: f.Description(), Length: len(buf), Unit: "bytes"})
	}

	v, err := f.ReadTyped(buf, w)
	if err != nil {
		w.Add(fmt.Errorf("error occurred during parsing of %s: %w", f.Description(), err))
		return BlobValue(append([]byte(nil), buf...))
	}

	return v
}

// Append encodes a value.
// Empty values are written as nothing, blobs are written verbatim.
func Append(f Format, buf []byte, v Value, w *Warnings) ([]byte, error) {
	switch {
	case v.kind == KindEmpty:
		return buf, nil

	case v.kind == KindBlob && f.Kind() != KindBlob:
		return append(buf, v.b...), nil

	case v.kind != f.Kind():
		return buf, liberrors.ErrInvalidValue{
			Msg: fmt.Sprintf("%s: cannot write value of kind %s", f.Description(), v.kind),
		}
	}

	length := f.LengthOfTyped(v)
	if !f.Constraint().Allows(length) {
		w.Add(liberrors.ErrLengthMismatch{Format: f.Description(), Length: length, Unit: "bytes"})
	}

	start := len(buf)

	buf, err := f.AppendTyped(buf, v, w)
	if err != nil {
		return buf[:start], err
	}

	if written := len(buf) - start; written != length {
		return buf[:start], liberrors.ErrInvalidValue{
			Msg: fmt.Sprintf("%s: written length (%d) does not match calculated length (%d)",
				f.Description(), written, length),
		}
	}

	return buf, nil
}

// LengthOf returns the number of bytes Append will write.
func LengthOf(f Format, v Value) int {
	switch {
	case v.kind == KindEmpty:
		return 0

	case v.kind == KindBlob && f.Kind() != KindBlob:
		return len(v.b)

	case v.kind != f.Kind():
		return 0
	}

	return f.LengthOfTyped(v)
}
