package klvcodec

import (
	"math"

	"github.com/bluenviron/goklv/pkg/liberrors"
)

// IMAP special value identifiers, i.e. the five most significant bits.
const (
	imapUserDefined    = 0b11000
	imapPositiveInf    = 0b11001
	imapPositiveQNaN   = 0b11010
	imapPositiveSNaN   = 0b11011
	imapMISBSpecial    = 0b11100
	imapNegativeInf    = 0b11101
	imapNegativeQNaN   = 0b11110
	imapNegativeSNaN   = 0b11111
	imapMISBBelowMin   = 0b000
	imapMISBAboveMax   = 0b001
	imapSpecialBitsLen = 5
)

type imapTerms struct {
	forwardScale  float64
	backwardScale float64
	zeroOffset    float64
}

// Specification: MISB ST1201, section 8.1.2
func computeIMAPTerms(minimum float64, maximum float64, length int) imapTerms {
	floatExponent := math.Ceil(math.Log2(maximum - minimum))
	intExponent := float64(8*length - 1)

	t := imapTerms{
		forwardScale:  math.Exp2(intExponent - floatExponent),
		backwardScale: math.Exp2(floatExponent - intExponent),
	}

	if minimum < 0 && maximum > 0 {
		t.zeroOffset = t.forwardScale*minimum - math.Floor(t.forwardScale*minimum)
	}

	return t
}

// IMAPLength returns the number of bytes needed to encode [minimum, maximum]
// with the given precision using ST1201 IMAP.
// Specification: MISB ST1201, section 8.1.1
func IMAPLength(minimum float64, maximum float64, precision float64) (int, error) {
	err := checkRangePrecision(minimum, maximum, precision)
	if err != nil {
		return 0, err
	}

	bits := math.Ceil(math.Log2(maximum-minimum)) - math.Floor(math.Log2(precision)) + 1
	length := int(math.Ceil(bits / 8))

	if length > MaxIntLength {
		return 0, liberrors.ErrTypeOverflow{Msg: "precision requires more than 8 bytes"}
	}

	return length, nil
}

// IMAPPrecision returns the precision obtained by encoding [minimum, maximum]
// into the given number of bytes using ST1201 IMAP.
func IMAPPrecision(minimum float64, maximum float64, length int) (float64, error) {
	err := checkRangeLength(minimum, maximum, length)
	if err != nil {
		return 0, err
	}

	return math.Exp2(math.Log2(maximum-minimum) - float64(8*length) + 1), nil
}

// ReadIMAP reads an ST1201 IMAP-encoded float.
// Infinities, below-minimum and above-maximum values are returned as
// infinities, NaNs and user-defined values are returned as NaN.
// Specification: MISB ST1201, section 8.2.2
func ReadIMAP(buf []byte, minimum float64, maximum float64, length int) (float64, error) {
	err := checkRangeLength(minimum, maximum, length)
	if err != nil {
		return 0, err
	}

	u, err := ReadUint(buf, length)
	if err != nil {
		return 0, err
	}

	msb := uint64(1) << (8*length - 1)

	if (u&msb) != 0 && u != msb {
		otherBitsCount := 8*length - imapSpecialBitsLen
		otherBits := u & ((uint64(1) << otherBitsCount) - 1)

		switch u >> otherBitsCount {
		case imapPositiveInf:
			if otherBits != 0 {
				return 0, liberrors.ErrInvalidValue{Msg: "invalid +inf IMAP value: other bits not zero"}
			}
			return math.Inf(1), nil

		case imapNegativeInf:
			if otherBits != 0 {
				return 0, liberrors.ErrInvalidValue{Msg: "invalid -inf IMAP value: other bits not zero"}
			}
			return math.Inf(-1), nil

		case imapPositiveQNaN, imapNegativeQNaN, imapPositiveSNaN, imapNegativeSNaN, imapUserDefined:
			return math.NaN(), nil

		case imapMISBSpecial:
			otherBitsCount -= 3
			if (u & ((uint64(1) << otherBitsCount) - 1)) != 0 {
				return 0, liberrors.ErrInvalidValue{Msg: "invalid MISB special IMAP value: other bits not zero"}
			}

			switch (u >> otherBitsCount) & 0b111 {
			case imapMISBBelowMin:
				return math.Inf(-1), nil

			case imapMISBAboveMax:
				return math.Inf(1), nil
			}
		}

		return 0, liberrors.ErrInvalidValue{Msg: "reserved IMAP value"}
	}

	t := computeIMAPTerms(minimum, maximum, length)
	v := t.backwardScale*(float64(u)-t.zeroOffset) + minimum

	// exact zero overrides rounding errors
	precision, _ := IMAPPrecision(minimum, maximum, length)
	if math.Abs(v) < precision/2 {
		v = 0
	}

	if v < minimum || v > maximum {
		return 0, liberrors.ErrTypeOverflow{Msg: "value outside IMAP bounds"}
	}

	return v, nil
}

// AppendIMAP appends an ST1201 IMAP-encoded float.
// Values outside [minimum, maximum] are written as below-minimum or
// above-maximum, NaN is written as a quiet NaN.
// Specification: MISB ST1201, section 8.2.1
func AppendIMAP(buf []byte, v float64, minimum float64, maximum float64, length int) ([]byte, error) {
	err := checkRangeLength(minimum, maximum, length)
	if err != nil {
		return buf, err
	}

	shift := 8*length - imapSpecialBitsLen

	var u uint64

	switch {
	case math.IsNaN(v):
		if math.Signbit(v) {
			u = imapNegativeQNaN << shift
		} else {
			u = imapPositiveQNaN << shift
		}

	case math.IsInf(v, 1):
		u = imapPositiveInf << shift

	case math.IsInf(v, -1):
		u = imapNegativeInf << shift

	case v < minimum:
		u = (imapMISBSpecial<<3 | imapMISBBelowMin) << (shift - 3)

	case v > maximum:
		u = (imapMISBSpecial<<3 | imapMISBAboveMax) << (shift - 3)

	default:
		t := computeIMAPTerms(minimum, maximum, length)
		u = uint64(t.forwardScale*(v-minimum) + t.zeroOffset)
	}

	return AppendUint(buf, u, length)
}
