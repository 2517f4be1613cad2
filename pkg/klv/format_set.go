package klv

import (
	"fmt"

	"github.com/bluenviron/goklv/pkg/klvcodec"
	"github.com/bluenviron/goklv/pkg/klvlength"
	"github.com/bluenviron/goklv/pkg/liberrors"
)

// ErrUnknownTag is a soft error reporting a tag absent from the traits of a set.
type ErrUnknownTag struct {
	Format string
	Tag    Tag
}

// Error implements the error interface.
func (e ErrUnknownTag) Error() string {
	return fmt.Sprintf("%s: unknown tag %d", e.Format, e.Tag)
}

func checkSet(name string, lookup *TraitsLookup, set *LocalSet) Warnings {
	var w Warnings

	for _, t := range lookup.traits[1:] {
		if t.Tag == 0 {
			continue
		}
		if n := set.Count(t.Tag); !t.Count.Allows(n) {
			w.Add(liberrors.ErrTagCount{Name: t.Name, Count: n, Expected: t.Count.String()})
		}
	}

	for _, tag := range set.Tags() {
		if !lookup.HasTag(tag) {
			w.Add(ErrUnknownTag{Format: name, Tag: tag})
		}
	}

	return w
}

// LocalSetFormat is the format of a local set, whose entries are keyed by
// BER-OID encoded tags.
type LocalSetFormat struct {
	// name used in descriptions.
	Name string

	// traits of the tags of the set.
	// It is a function so that sets can contain themselves.
	Lookup func() *TraitsLookup

	// allowed byte lengths of the whole set.
	Length klvlength.Constraint

	// checksum appended to packets of this format.
	// It can be nil.
	Checksum *ChecksumFormat

	// disables tag count validation.
	// It is used by child sets, which only carry differences.
	SkipCheck bool
}

// NewLocalSetFormat allocates a LocalSetFormat with a static lookup.
func NewLocalSetFormat(name string, lookup *TraitsLookup) *LocalSetFormat {
	return &LocalSetFormat{
		Name:   name,
		Lookup: func() *TraitsLookup { return lookup },
	}
}

// Kind implements Format.
func (*LocalSetFormat) Kind() Kind {
	return KindLocalSet
}

// Constraint implements Format.
func (f *LocalSetFormat) Constraint() klvlength.Constraint {
	return f.Length
}

// Description implements Format.
func (f *LocalSetFormat) Description() string {
	return describe(f.Name+" local set", f.Length)
}

// ChecksumFormat implements ChecksumFormatter.
func (f *LocalSetFormat) ChecksumFormat() *ChecksumFormat {
	return f.Checksum
}

// CheckSet validates tag counts and reports unknown tags.
func (f *LocalSetFormat) CheckSet(set *LocalSet) Warnings {
	return checkSet(f.Description(), f.Lookup(), set)
}

// ReadTyped implements Format.
func (f *LocalSetFormat) ReadTyped(buf []byte, w *Warnings) (Value, error) {
	lookup := f.Lookup()
	set := &LocalSet{}

	for len(buf) > 0 {
		tag, n, err := klvcodec.ReadBEROID(buf)
		if err != nil {
			return Value{}, fmt.Errorf("unable to read tag: %w", err)
		}
		buf = buf[n:]

		l, n, err := klvcodec.ReadBER(buf)
		if err != nil {
			return Value{}, fmt.Errorf("unable to read length of tag %d: %w", tag, err)
		}
		buf = buf[n:]

		if l > uint64(len(buf)) {
			return Value{}, liberrors.ErrBufferOverflow{
				What:      fmt.Sprintf("tag %d", tag),
				Needed:    int(l), //nolint:gosec
				Available: len(buf),
			}
		}

		traits := lookup.ByTag(Tag(tag))
		set.Add(Tag(tag), Read(traits.Format, buf[:l], w))
		buf = buf[l:]
	}

	if !f.SkipCheck {
		w.Extend(f.CheckSet(set))
	}

	return SetValue(set), nil
}

// AppendTyped implements Format.
func (f *LocalSetFormat) AppendTyped(buf []byte, v Value, w *Warnings) ([]byte, error) {
	lookup := f.Lookup()

	for tag, ev := range v.set.All() {
		format := lookup.ByTag(tag).Format

		buf = klvcodec.AppendBEROID(buf, uint64(tag))
		buf = klvcodec.AppendBER(buf, uint64(LengthOf(format, ev)))

		var err error
		buf, err = Append(format, buf, ev, w)
		if err != nil {
			return buf, fmt.Errorf("unable to write tag %d: %w", tag, err)
		}
	}

	return buf, nil
}

// LengthOfTyped implements Format.
func (f *LocalSetFormat) LengthOfTyped(v Value) int {
	lookup := f.Lookup()
	n := 0

	for tag, ev := range v.set.All() {
		l := LengthOf(lookup.ByTag(tag).Format, ev)
		n += klvcodec.BEROIDLength(uint64(tag)) + klvcodec.BERLength(uint64(l)) + l
	}

	return n
}

// Parse decodes a local set.
func (f *LocalSetFormat) Parse(buf []byte) (*LocalSet, Warnings, error) {
	var w Warnings

	v, err := f.ReadTyped(buf, &w)
	if err != nil {
		return nil, w, err
	}

	return v.set, w, nil
}

// Serialize encodes a local set, writing entries in the set's order.
func (f *LocalSetFormat) Serialize(set *LocalSet) ([]byte, Warnings, error) {
	var w Warnings

	buf, err := Append(f, nil, SetValue(set), &w)
	if err != nil {
		return nil, w, err
	}

	return buf, w, nil
}

// UniversalSetFormat is the format of a set whose entries are keyed by
// universal keys. Entries are stored in the LocalSet with the tag of
// the matching traits. Entries with unknown keys are stored with tag
// zero as a blob containing key and value.
type UniversalSetFormat struct {
	Name   string
	Lookup func() *TraitsLookup
	Length klvlength.Constraint
}

// Kind implements Format.
func (*UniversalSetFormat) Kind() Kind {
	return KindLocalSet
}

// Constraint implements Format.
func (f *UniversalSetFormat) Constraint() klvlength.Constraint {
	return f.Length
}

// Description implements Format.
func (f *UniversalSetFormat) Description() string {
	return describe(f.Name+" universal set", f.Length)
}

// CheckSet validates tag counts and reports unknown tags.
func (f *UniversalSetFormat) CheckSet(set *LocalSet) Warnings {
	return checkSet(f.Description(), f.Lookup(), set)
}

// ReadTyped implements Format.
func (f *UniversalSetFormat) ReadTyped(buf []byte, w *Warnings) (Value, error) {
	lookup := f.Lookup()
	set := &LocalSet{}

	for len(buf) > 0 {
		if len(buf) < UDSKeyLength {
			return Value{}, liberrors.ErrBufferOverflow{What: "universal key", Needed: UDSKeyLength, Available: len(buf)}
		}

		var key UDSKey
		copy(key[:], buf)

		l, n, err := klvcodec.ReadBER(buf[UDSKeyLength:])
		if err != nil {
			return Value{}, fmt.Errorf("unable to read length of key %v: %w", key, err)
		}

		start := UDSKeyLength + n
		if l > uint64(len(buf)-start) {
			return Value{}, liberrors.ErrBufferOverflow{
				What:      fmt.Sprintf("key %v", key),
				Needed:    int(l), //nolint:gosec
				Available: len(buf) - start,
			}
		}
		end := start + int(l) //nolint:gosec

		if lookup.HasUDSKey(key) {
			traits := lookup.ByUDSKey(key)
			set.Add(traits.Tag, Read(traits.Format, buf[start:end], w))
		} else {
			raw := make([]byte, 0, UDSKeyLength+int(l)) //nolint:gosec
			raw = append(raw, key[:]...)
			raw = append(raw, buf[start:end]...)
			set.Add(0, BlobValue(raw))
		}

		buf = buf[end:]
	}

	w.Extend(f.CheckSet(set))

	return SetValue(set), nil
}

func (f *UniversalSetFormat) split(lookup *TraitsLookup, tag Tag, v Value) (UDSKey, Format, Value, error) {
	if tag == 0 || !lookup.HasTag(tag) {
		if v.kind != KindBlob || len(v.b) < UDSKeyLength {
			return UDSKey{}, nil, Value{}, liberrors.ErrInvalidValue{
				Msg: fmt.Sprintf("%s: tag %d has no universal key", f.Description(), tag),
			}
		}

		var key UDSKey
		copy(key[:], v.b)
		return key, &BlobFormat{}, BlobValue(v.b[UDSKeyLength:]), nil
	}

	traits := lookup.ByTag(tag)
	return traits.UDSKey, traits.Format, v, nil
}

// AppendTyped implements Format.
func (f *UniversalSetFormat) AppendTyped(buf []byte, v Value, w *Warnings) ([]byte, error) {
	lookup := f.Lookup()

	for tag, ev := range v.set.All() {
		key, format, ev, err := f.split(lookup, tag, ev)
		if err != nil {
			return buf, err
		}

		buf = append(buf, key[:]...)
		buf = klvcodec.AppendBER(buf, uint64(LengthOf(format, ev)))

		buf, err = Append(format, buf, ev, w)
		if err != nil {
			return buf, fmt.Errorf("unable to write key %v: %w", key, err)
		}
	}

	return buf, nil
}

// LengthOfTyped implements Format.
func (f *UniversalSetFormat) LengthOfTyped(v Value) int {
	lookup := f.Lookup()
	n := 0

	for tag, ev := range v.set.All() {
		_, format, ev, err := f.split(lookup, tag, ev)
		if err != nil {
			continue
		}

		l := LengthOf(format, ev)
		n += UDSKeyLength + klvcodec.BERLength(uint64(l)) + l
	}

	return n
}
