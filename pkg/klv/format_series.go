package klv

import (
	"github.com/bluenviron/goklv/pkg/klvcodec"
	"github.com/bluenviron/goklv/pkg/klvlength"
	"github.com/bluenviron/goklv/pkg/liberrors"
)

// SeriesFormat is a format of a series of values of the same format,
// each one preceded by its BER-encoded length.
type SeriesFormat struct {
	Element Format
	Length  klvlength.Constraint
}

// Kind implements Format.
func (*SeriesFormat) Kind() Kind {
	return KindSeries
}

// Constraint implements Format.
func (f *SeriesFormat) Constraint() klvlength.Constraint {
	return f.Length
}

// Description implements Format.
func (f *SeriesFormat) Description() string {
	return describe("series of "+f.Element.Description(), f.Length)
}

// ReadTyped implements Format.
func (f *SeriesFormat) ReadTyped(buf []byte, w *Warnings) (Value, error) {
	var series []Value

	for len(buf) > 0 {
		l, n, err := klvcodec.ReadBER(buf)
		if err != nil {
			return Value{}, err
		}
		buf = buf[n:]

		if l > uint64(len(buf)) {
			return Value{}, liberrors.ErrBufferOverflow{
				What:      "series element",
				Needed:    int(l), //nolint:gosec
				Available: len(buf),
			}
		}

		series = append(series, Read(f.Element, buf[:l], w))
		buf = buf[l:]
	}

	return SeriesValue(series...), nil
}

// AppendTyped implements Format.
func (f *SeriesFormat) AppendTyped(buf []byte, v Value, w *Warnings) ([]byte, error) {
	for _, e := range v.series {
		buf = klvcodec.AppendBER(buf, uint64(LengthOf(f.Element, e)))

		var err error
		buf, err = Append(f.Element, buf, e, w)
		if err != nil {
			return buf, err
		}
	}
	return buf, nil
}

// LengthOfTyped implements Format.
func (f *SeriesFormat) LengthOfTyped(v Value) int {
	n := 0
	for _, e := range v.series {
		l := LengthOf(f.Element, e)
		n += klvcodec.BERLength(uint64(l)) + l
	}
	return n
}
