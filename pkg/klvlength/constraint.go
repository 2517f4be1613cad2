// Package klvlength contains length constraints of KLV fields.
package klvlength

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bluenviron/goklv/pkg/liberrors"
)

type constraintType int

const (
	constraintTypeFree constraintType = iota
	constraintTypeFixed
	constraintTypeInterval
	constraintTypeSet
)

// Constraint describes the lengths a field is allowed to have.
// The zero value is an unconstrained length.
type Constraint struct {
	typ       constraintType
	fixed     int
	min       int
	max       int
	set       []int
	suggested int
}

// Free returns a constraint allowing any length.
func Free() Constraint {
	return Constraint{}
}

// Fixed returns a constraint allowing only the given length.
func Fixed(length int) (Constraint, error) {
	if length <= 0 {
		return Constraint{}, liberrors.ErrInvalidArgument{Msg: "length constraints cannot include zero"}
	}
	return Constraint{typ: constraintTypeFixed, fixed: length}, nil
}

// Interval returns a constraint allowing lengths between min and max, inclusive.
func Interval(minimum int, maximum int) (Constraint, error) {
	if minimum <= 0 || maximum <= 0 {
		return Constraint{}, liberrors.ErrInvalidArgument{Msg: "length constraints cannot include zero"}
	}
	if minimum == maximum {
		return Constraint{}, liberrors.ErrInvalidArgument{Msg: "length constraints cannot exclude all lengths"}
	}
	if minimum > maximum {
		minimum, maximum = maximum, minimum
	}
	return Constraint{typ: constraintTypeInterval, min: minimum, max: maximum}, nil
}

// Set returns a constraint allowing only the given lengths.
func Set(lengths ...int) (Constraint, error) {
	if len(lengths) == 0 {
		return Constraint{}, liberrors.ErrInvalidArgument{Msg: "length constraints cannot exclude all lengths"}
	}

	set := slices.Clone(lengths)
	slices.Sort(set)
	set = slices.Compact(set)

	if set[0] <= 0 {
		return Constraint{}, liberrors.ErrInvalidArgument{Msg: "length constraints cannot include zero"}
	}

	return Constraint{typ: constraintTypeSet, set: set}, nil
}

// MustFixed is like Fixed but panics in case of error.
// It is meant for static tables.
func MustFixed(length int) Constraint {
	c, err := Fixed(length)
	if err != nil {
		panic(err)
	}
	return c
}

// MustInterval is like Interval but panics in case of error.
func MustInterval(minimum int, maximum int) Constraint {
	c, err := Interval(minimum, maximum)
	if err != nil {
		panic(err)
	}
	return c
}

// MustSet is like Set but panics in case of error.
func MustSet(lengths ...int) Constraint {
	c, err := Set(lengths...)
	if err != nil {
		panic(err)
	}
	return c
}

// Allows checks whether a length satisfies the constraint.
func (c Constraint) Allows(length int) bool {
	switch c.typ {
	case constraintTypeFixed:
		return length == c.fixed

	case constraintTypeInterval:
		return length >= c.min && length <= c.max

	case constraintTypeSet:
		_, ok := slices.BinarySearch(c.set, length)
		return ok

	default:
		return true
	}
}

// IsFree checks whether the constraint allows any length.
func (c Constraint) IsFree() bool {
	return c.typ == constraintTypeFree
}

// FixedLength returns the only allowed length, if any.
func (c Constraint) FixedLength() (int, bool) {
	if c.typ == constraintTypeFixed {
		return c.fixed, true
	}
	return 0, false
}

// FixedOr returns the only allowed length, or fallback.
func (c Constraint) FixedOr(fallback int) int {
	if l, ok := c.FixedLength(); ok {
		return l
	}
	return fallback
}

// Bounds returns the minimum and maximum allowed length.
// The maximum of a free constraint is zero.
func (c Constraint) Bounds() (int, int) {
	switch c.typ {
	case constraintTypeFixed:
		return c.fixed, c.fixed

	case constraintTypeInterval:
		return c.min, c.max

	case constraintTypeSet:
		return c.set[0], c.set[len(c.set)-1]

	default:
		return 1, 0
	}
}

// Suggested returns the length to use when no other information is available.
func (c Constraint) Suggested() int {
	if c.suggested != 0 {
		return c.suggested
	}

	switch c.typ {
	case constraintTypeFixed:
		return c.fixed

	case constraintTypeInterval:
		return c.min

	case constraintTypeSet:
		return c.set[0]

	default:
		return 1
	}
}

// WithSuggested returns a copy of the constraint with a different suggested length.
func (c Constraint) WithSuggested(length int) (Constraint, error) {
	if length <= 0 || !c.Allows(length) {
		return Constraint{}, liberrors.ErrInvalidArgument{Msg: "suggested length is not permitted by constraints"}
	}
	c.set = slices.Clone(c.set)
	c.suggested = length
	return c, nil
}

// MustWithSuggested is like WithSuggested but panics in case of error.
func (c Constraint) MustWithSuggested(length int) Constraint {
	c, err := c.WithSuggested(length)
	if err != nil {
		panic(err)
	}
	return c
}

// Closest returns the allowed length nearest to length, preferring longer
// lengths, so that a value never gets truncated when possible.
func (c Constraint) Closest(length int) int {
	if c.Allows(length) {
		return length
	}

	switch c.typ {
	case constraintTypeFixed:
		return c.fixed

	case constraintTypeInterval:
		if length < c.min {
			return c.min
		}
		return c.max

	case constraintTypeSet:
		i, _ := slices.BinarySearch(c.set, length)
		if i == len(c.set) {
			return c.set[len(c.set)-1]
		}
		return c.set[i]

	default:
		return max(length, 1)
	}
}

// Description returns a human-readable description of the constraint.
func (c Constraint) Description() string {
	switch c.typ {
	case constraintTypeFixed:
		return fmt.Sprintf("exactly %d bytes", c.fixed)

	case constraintTypeInterval:
		return fmt.Sprintf("between %d and %d bytes", c.min, c.max)

	case constraintTypeSet:
		tmp := make([]string, len(c.set))
		for i, l := range c.set {
			tmp[i] = strconv.Itoa(l)
		}
		return "one of these lengths: " + strings.Join(tmp, ", ")

	default:
		return "unconstrained length"
	}
}

// String implements fmt.Stringer.
func (c Constraint) String() string {
	return c.Description()
}
