package klv

import (
	"fmt"
	"slices"
	"strconv"
)

// TagCountRange is the number of times a tag may appear in a set.
// A negative Max means unbounded.
type TagCountRange struct {
	Min int
	Max int
}

// common tag count ranges.
var (
	CountOne       = TagCountRange{Min: 1, Max: 1}
	CountOptional  = TagCountRange{Min: 0, Max: 1}
	CountAny       = TagCountRange{Min: 0, Max: -1}
	CountOneOrMore = TagCountRange{Min: 1, Max: -1}
)

// Allows checks whether a count is within the range.
func (r TagCountRange) Allows(n int) bool {
	return n >= r.Min && (r.Max < 0 || n <= r.Max)
}

// AllowsMultiple checks whether the tag may appear more than once.
func (r TagCountRange) AllowsMultiple() bool {
	return r.Max < 0 || r.Max > 1
}

// String implements fmt.Stringer.
func (r TagCountRange) String() string {
	switch {
	case r.Max < 0:
		return "at least " + strconv.Itoa(r.Min)
	case r.Min == r.Max:
		return "exactly " + strconv.Itoa(r.Min)
	}
	return fmt.Sprintf("between %d and %d", r.Min, r.Max)
}

// TagTraits describes a tag of a standard.
type TagTraits struct {
	Tag         Tag
	UDSKey      UDSKey
	EnumName    string
	Name        string
	Description string
	Format      Format
	Count       TagCountRange

	// Subtags is the lookup of the set contained in the value, if any.
	Subtags func() *TraitsLookup
}

// TraitsLookup indexes the traits of a standard by tag, universal key,
// name and enumeration name.
// The first traits are returned when a lookup fails.
type TraitsLookup struct {
	traits []TagTraits
	byTag  map[Tag]int
	byKey  map[UDSKey]int
	byName map[string]int
	byEnum map[string]int
}

// NewTraitsLookup allocates a TraitsLookup.
// The first element describes unknown tags.
// Duplicate tags, keys or names are programming errors and cause a panic.
func NewTraitsLookup(traits []TagTraits) *TraitsLookup {
	if len(traits) == 0 {
		panic("traits lookup requires at least the unknown tag")
	}

	l := &TraitsLookup{
		traits: slices.Clone(traits),
		byTag:  make(map[Tag]int),
		byKey:  make(map[UDSKey]int),
		byName: make(map[string]int),
		byEnum: make(map[string]int),
	}

	for i, t := range l.traits[1:] {
		i++

		if t.Format == nil {
			l.traits[i].Format = &BlobFormat{}
		}

		if t.Tag != 0 {
			if _, ok := l.byTag[t.Tag]; ok {
				panic(fmt.Sprintf("duplicate tag %d", t.Tag))
			}
			l.byTag[t.Tag] = i
		}

		if t.UDSKey != (UDSKey{}) {
			k := t.UDSKey.Normalized()
			if _, ok := l.byKey[k]; ok {
				panic(fmt.Sprintf("duplicate key %v", t.UDSKey))
			}
			l.byKey[k] = i
		}

		if t.Name != "" {
			if _, ok := l.byName[t.Name]; ok {
				panic(fmt.Sprintf("duplicate name %s", t.Name))
			}
			l.byName[t.Name] = i
		}

		if t.EnumName != "" {
			if _, ok := l.byEnum[t.EnumName]; ok {
				panic(fmt.Sprintf("duplicate enum name %s", t.EnumName))
			}
			l.byEnum[t.EnumName] = i
		}
	}

	if l.traits[0].Format == nil {
		l.traits[0].Format = &BlobFormat{}
	}

	return l
}

// Unknown returns the traits used for unknown tags.
func (l *TraitsLookup) Unknown() *TagTraits {
	return &l.traits[0]
}

// ByTag returns the traits of a tag.
func (l *TraitsLookup) ByTag(tag Tag) *TagTraits {
	return &l.traits[l.byTag[tag]]
}

// ByUDSKey returns the traits of a universal key.
func (l *TraitsLookup) ByUDSKey(key UDSKey) *TagTraits {
	return &l.traits[l.byKey[key.Normalized()]]
}

// ByName returns the traits with the given name.
func (l *TraitsLookup) ByName(name string) *TagTraits {
	return &l.traits[l.byName[name]]
}

// ByEnumName returns the traits with the given enumeration name.
func (l *TraitsLookup) ByEnumName(name string) *TagTraits {
	return &l.traits[l.byEnum[name]]
}

// HasTag checks whether a tag is known.
func (l *TraitsLookup) HasTag(tag Tag) bool {
	_, ok := l.byTag[tag]
	return ok
}

// HasUDSKey checks whether a universal key is known.
func (l *TraitsLookup) HasUDSKey(key UDSKey) bool {
	_, ok := l.byKey[key.Normalized()]
	return ok
}

// Traits returns all known traits, excluding the unknown one.
func (l *TraitsLookup) Traits() []TagTraits {
	return slices.Clone(l.traits[1:])
}
