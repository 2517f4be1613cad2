// Package klvupdate decides which tags of an outgoing local set can be
// omitted because they did not change since they were last transmitted.
package klvupdate

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bluenviron/goklv/pkg/klv"
)

// MaxInterval is the maximum update interval, in microseconds.
// It is 30 seconds minus one frame at 30 frames per second.
const MaxInterval uint64 = 29_966_666

// Key identifies a tag of a standard.
type Key[S comparable] struct {
	Standard S
	Tag      klv.Tag
}

// ErrIntervalClamped is a warning reporting an interval that exceeded MaxInterval.
type ErrIntervalClamped struct {
	Interval uint64
}

// Error implements the error interface.
func (e ErrIntervalClamped) Error() string {
	return fmt.Sprintf("update interval %dus exceeds the maximum (%dus) and was clamped",
		e.Interval, MaxInterval)
}

// Intervals contains the minimum interval, in microseconds, between
// transmissions of unchanged tags.
// An interval set for a tag overrides the one set for its standard,
// which overrides the global one. The zero value retransmits every tag
// every time.
type Intervals[S comparable] struct {
	// called when an interval is clamped.
	OnWarning func(error)

	// converts standard names found in YAML configurations.
	// It is required by UnmarshalYAML when standards or tags are present.
	ResolveStandard func(string) (S, error)

	global    uint64
	standards map[S]uint64
	keys      map[Key[S]]uint64
}

func (i *Intervals[S]) clamp(v uint64) uint64 {
	if v <= MaxInterval {
		return v
	}

	if i.OnWarning != nil {
		i.OnWarning(ErrIntervalClamped{Interval: v})
	}
	return MaxInterval
}

// At returns the interval of a tag.
func (i *Intervals[S]) At(key Key[S]) uint64 {
	if v, ok := i.keys[key]; ok {
		return v
	}
	if v, ok := i.standards[key.Standard]; ok {
		return v
	}
	return i.global
}

// Set sets the global interval.
func (i *Intervals[S]) Set(v uint64) {
	i.global = i.clamp(v)
}

// SetStandard sets the interval of all tags of a standard.
func (i *Intervals[S]) SetStandard(standard S, v uint64) {
	if i.standards == nil {
		i.standards = make(map[S]uint64)
	}
	i.standards[standard] = i.clamp(v)
}

// SetKey sets the interval of a tag.
func (i *Intervals[S]) SetKey(key Key[S], v uint64) {
	if i.keys == nil {
		i.keys = make(map[Key[S]]uint64)
	}
	i.keys[key] = i.clamp(v)
}

type yamlTagInterval struct {
	Standard string        `yaml:"standard"`
	Tag      klv.Tag       `yaml:"tag"`
	Interval time.Duration `yaml:"interval"`
}

type yamlIntervals struct {
	Default   time.Duration            `yaml:"default"`
	Standards map[string]time.Duration `yaml:"standards"`
	Tags      []yamlTagInterval        `yaml:"tags"`
}

func toMicroseconds(d time.Duration) (uint64, error) {
	if d < 0 {
		return 0, fmt.Errorf("negative interval: %v", d)
	}
	return uint64(d.Microseconds()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
// Intervals are durations, for instance:
//
//	default: 1s
//	standards:
//	  st0601: 5s
//	tags:
//	  - standard: st0601
//	    tag: 3
//	    interval: 10s
func (i *Intervals[S]) UnmarshalYAML(value *yaml.Node) error {
	var in yamlIntervals
	err := value.Decode(&in)
	if err != nil {
		return err
	}

	if (len(in.Standards) != 0 || len(in.Tags) != 0) && i.ResolveStandard == nil {
		return fmt.Errorf("standards are present but no standard resolver is set")
	}

	v, err := toMicroseconds(in.Default)
	if err != nil {
		return err
	}
	i.Set(v)

	for name, d := range in.Standards {
		var standard S
		standard, err = i.ResolveStandard(name)
		if err != nil {
			return fmt.Errorf("invalid standard '%s': %w", name, err)
		}

		v, err = toMicroseconds(d)
		if err != nil {
			return err
		}
		i.SetStandard(standard, v)
	}

	for _, t := range in.Tags {
		var standard S
		standard, err = i.ResolveStandard(t.Standard)
		if err != nil {
			return fmt.Errorf("invalid standard '%s': %w", t.Standard, err)
		}

		v, err = toMicroseconds(t.Interval)
		if err != nil {
			return err
		}
		i.SetKey(Key[S]{Standard: standard, Tag: t.Tag}, v)
	}

	return nil
}
