package klvcodec

import (
	"math"

	"github.com/bluenviron/goklv/pkg/liberrors"
)

func checkRange(minimum float64, maximum float64) error {
	if math.IsNaN(minimum) || math.IsInf(minimum, 0) {
		return liberrors.ErrInvalidArgument{Msg: "minimum must be finite"}
	}

	if math.IsNaN(maximum) || math.IsInf(maximum, 0) {
		return liberrors.ErrInvalidArgument{Msg: "maximum must be finite"}
	}

	if math.IsInf(maximum-minimum, 0) {
		return liberrors.ErrTypeOverflow{Msg: "span too large for double type"}
	}

	if !(minimum < maximum) {
		return liberrors.ErrInvalidArgument{Msg: "minimum must be less than maximum"}
	}

	return nil
}

func checkRangePrecision(minimum float64, maximum float64, precision float64) error {
	err := checkRange(minimum, maximum)
	if err != nil {
		return err
	}

	if math.IsNaN(precision) || math.IsInf(precision, 0) {
		return liberrors.ErrInvalidArgument{Msg: "precision must be finite"}
	}

	if !(precision > 0) {
		return liberrors.ErrInvalidArgument{Msg: "precision must be positive"}
	}

	if !(precision < maximum-minimum) {
		return liberrors.ErrInvalidArgument{Msg: "precision must be less than min-max span"}
	}

	return nil
}

func checkRangeLength(minimum float64, maximum float64, length int) error {
	err := checkRange(minimum, maximum)
	if err != nil {
		return err
	}

	if length <= 0 {
		return liberrors.ErrInvalidArgument{Msg: "length must not be zero"}
	}

	if length > MaxIntLength {
		return liberrors.ErrTypeOverflow{Msg: "value too large for native type"}
	}

	return nil
}

// FlintLength returns the number of bytes needed to map [minimum, maximum]
// onto an integer with the given precision.
func FlintLength(minimum float64, maximum float64, precision float64) (int, error) {
	err := checkRangePrecision(minimum, maximum, precision)
	if err != nil {
		return 0, err
	}

	bits := math.Log2(maximum-minimum) - math.Log2(precision)
	length := int(math.Ceil(bits / 8))

	if length > MaxIntLength {
		return 0, liberrors.ErrTypeOverflow{Msg: "precision requires more than 8 bytes"}
	}

	return length, nil
}

// FlintPrecision returns the precision obtained by mapping [minimum, maximum]
// onto an integer of the given length.
func FlintPrecision(minimum float64, maximum float64, length int) (float64, error) {
	err := checkRangeLength(minimum, maximum, length)
	if err != nil {
		return 0, err
	}

	return math.Exp2(math.Log2(maximum-minimum) - float64(8*length)), nil
}

// ReadUFlint reads an unsigned integer and maps it linearly onto [minimum, maximum].
func ReadUFlint(buf []byte, minimum float64, maximum float64, length int) (float64, error) {
	err := checkRangeLength(minimum, maximum, length)
	if err != nil {
		return 0, err
	}

	u, err := ReadUint(buf, length)
	if err != nil {
		return 0, err
	}

	scale := math.Ldexp(1, 8*length) - 1

	return minimum + float64(u)*(maximum-minimum)/scale, nil
}

// AppendUFlint maps v from [minimum, maximum] onto an unsigned integer and appends it.
func AppendUFlint(buf []byte, v float64, minimum float64, maximum float64, length int) ([]byte, error) {
	err := checkRangeLength(minimum, maximum, length)
	if err != nil {
		return buf, err
	}

	if math.IsNaN(v) || v < minimum || v > maximum {
		return buf, liberrors.ErrInvalidValue{Msg: "value outside FLINT bounds"}
	}

	maxInt := ^uint64(0) >> (64 - 8*length)
	f := math.Round((v - minimum) / (maximum - minimum) * (math.Ldexp(1, 8*length) - 1))

	var u uint64
	if f >= float64(maxInt) {
		u = maxInt
	} else {
		u = uint64(f)
	}

	return AppendUint(buf, u, length)
}

// ReadSFlint reads a signed integer and maps it linearly onto [minimum, maximum]
// around the midpoint of the range. The minimum integer is reserved as an
// error indicator and is returned as NaN.
func ReadSFlint(buf []byte, minimum float64, maximum float64, length int) (float64, error) {
	err := checkRangeLength(minimum, maximum, length)
	if err != nil {
		return 0, err
	}

	i, err := ReadInt(buf, length)
	if err != nil {
		return 0, err
	}

	maxInt := int64(^uint64(0) >> (64 - 8*length + 1)) //nolint:gosec
	if i < -maxInt {
		return math.NaN(), nil
	}

	half := (maximum - minimum) / 2

	return minimum + half + float64(i)*half/float64(maxInt), nil
}

// AppendSFlint maps v from [minimum, maximum] onto a signed integer and appends it.
// NaN is written as the reserved error indicator.
func AppendSFlint(buf []byte, v float64, minimum float64, maximum float64, length int) ([]byte, error) {
	err := checkRangeLength(minimum, maximum, length)
	if err != nil {
		return buf, err
	}

	maxInt := int64(^uint64(0) >> (64 - 8*length + 1)) //nolint:gosec

	if math.IsNaN(v) {
		return AppendInt(buf, -maxInt-1, length)
	}

	if v < minimum || v > maximum {
		return buf, liberrors.ErrInvalidValue{Msg: "value outside FLINT bounds"}
	}

	half := (maximum - minimum) / 2
	f := math.Round((v - minimum - half) / half * float64(maxInt))

	var i int64
	switch {
	case f >= float64(maxInt):
		i = maxInt
	case f <= -float64(maxInt):
		i = -maxInt
	default:
		i = int64(f)
	}

	return AppendInt(buf, i, length)
}
