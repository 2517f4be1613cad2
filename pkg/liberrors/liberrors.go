// Package liberrors contains errors returned by the library.
package liberrors

import (
	"fmt"
)

// ErrBufferOverflow is returned when reading or writing would run past the
// end of the available bytes.
type ErrBufferOverflow struct {
	What      string
	Needed    int
	Available int
}

// Error implements the error interface.
func (e ErrBufferOverflow) Error() string {
	return fmt.Sprintf("%s overruns end of data buffer (needed %d, available %d)",
		e.What, e.Needed, e.Available)
}

// ErrTypeOverflow is returned when a value cannot be represented with the
// requested width or type.
type ErrTypeOverflow struct {
	Msg string
}

// Error implements the error interface.
func (e ErrTypeOverflow) Error() string {
	return e.Msg
}

// ErrInvalidValue is returned when a value is not acceptable for a format.
type ErrInvalidValue struct {
	Msg string
}

// Error implements the error interface.
func (e ErrInvalidValue) Error() string {
	return e.Msg
}

// ErrInvalidArgument is returned when an object is constructed or configured
// with arguments that can never be valid.
type ErrInvalidArgument struct {
	Msg string
}

// Error implements the error interface.
func (e ErrInvalidArgument) Error() string {
	return e.Msg
}

// ErrKeyNotFound is returned when a tag is not present in a set.
type ErrKeyNotFound struct {
	Key fmt.Stringer
}

// Error implements the error interface.
func (e ErrKeyNotFound) Error() string {
	return fmt.Sprintf("key %v not found", e.Key)
}

// ErrMultipleKeys is returned when a single value is requested for a tag
// that appears more than once.
type ErrMultipleKeys struct {
	Key   fmt.Stringer
	Count int
}

// Error implements the error interface.
func (e ErrMultipleKeys) Error() string {
	return fmt.Sprintf("key %v found %d times, expected once", e.Key, e.Count)
}

// ErrLengthMismatch is a soft error reporting a value whose length does not
// satisfy the constraints of its format.
type ErrLengthMismatch struct {
	Format string
	Length int
	Unit   string
}

// Error implements the error interface.
func (e ErrLengthMismatch) Error() string {
	return fmt.Sprintf("format `%s` received wrong number of %s (%d)",
		e.Format, e.Unit, e.Length)
}

// ErrTagCount is a soft error reporting a tag that appears too few or too
// many times in a set.
type ErrTagCount struct {
	Name     string
	Count    int
	Expected string
}

// Error implements the error interface.
func (e ErrTagCount) Error() string {
	return fmt.Sprintf("tag `%s` appears %d times; expected %s",
		e.Name, e.Count, e.Expected)
}

// ErrChecksumMismatch is a soft error reporting a packet whose checksum does
// not match its contents.
type ErrChecksumMismatch struct {
	Expected uint64
	Actual   uint64
}

// Error implements the error interface.
func (e ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("calculated checksum (0x%08x) does not equal checksum contained in packet (0x%08x)",
		e.Actual, e.Expected)
}
