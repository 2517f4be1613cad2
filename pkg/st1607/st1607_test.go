package st1607

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/goklv/pkg/klv"
)

func str(s string) klv.Value {
	return klv.StringValue(s)
}

func TestApplyChild(t *testing.T) {
	for _, ca := range []struct {
		name     string
		parent   []klv.Entry
		child    []klv.Entry
		policy   PolicyFunc
		expected []klv.Entry
		warnings int
	}{
		{
			"keep child",
			[]klv.Entry{{Tag: 1, Value: str("a")}, {Tag: 2, Value: str("b")}},
			[]klv.Entry{{Tag: 1, Value: str("c")}},
			nil,
			[]klv.Entry{{Tag: 1, Value: str("c")}, {Tag: 2, Value: str("b")}},
			0,
		},
		{
			"keep both",
			[]klv.Entry{{Tag: 5, Value: str("x")}},
			[]klv.Entry{{Tag: 5, Value: str("y")}},
			func(klv.Tag) Policy { return KeepBoth },
			[]klv.Entry{{Tag: 5, Value: str("x")}, {Tag: 5, Value: str("y")}},
			0,
		},
		{
			"keep parent",
			[]klv.Entry{{Tag: 5, Value: str("x")}},
			[]klv.Entry{{Tag: 5, Value: str("y")}, {Tag: 6, Value: str("z")}},
			func(klv.Tag) Policy { return KeepParent },
			[]klv.Entry{{Tag: 5, Value: str("x")}},
			0,
		},
		{
			"removal placeholder",
			[]klv.Entry{{Tag: 1, Value: str("a")}, {Tag: 2, Value: str("b")}},
			[]klv.Entry{{Tag: 2, Value: klv.Empty()}},
			nil,
			[]klv.Entry{{Tag: 1, Value: str("a")}},
			0,
		},
		{
			"multiple child values",
			[]klv.Entry{{Tag: 3, Value: str("a")}},
			[]klv.Entry{{Tag: 3, Value: str("b")}, {Tag: 3, Value: str("c")}},
			nil,
			[]klv.Entry{{Tag: 3, Value: str("b")}, {Tag: 3, Value: str("c")}},
			0,
		},
		{
			"ambiguous overwrite",
			[]klv.Entry{{Tag: 3, Value: str("a")}, {Tag: 3, Value: str("b")}},
			[]klv.Entry{{Tag: 3, Value: str("c")}},
			nil,
			[]klv.Entry{{Tag: 3, Value: str("c")}},
			1,
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			parent := klv.NewLocalSet(ca.parent...)
			w := ApplyChild(parent, klv.NewLocalSet(ca.child...), ca.policy)
			require.Len(t, w, ca.warnings)
			require.True(t, klv.NewLocalSet(ca.expected...).Equal(parent), "%v", parent)
		})
	}
}

func TestApplyChildDoesNotAlias(t *testing.T) {
	inner := klv.NewLocalSet(klv.Entry{Tag: 1, Value: str("a")})
	child := klv.NewLocalSet(klv.Entry{Tag: 9, Value: klv.SetValue(inner)})
	parent := &klv.LocalSet{}

	ApplyChild(parent, child, nil)
	inner.Add(2, str("b"))

	v, err := parent.Get(9)
	require.NoError(t, err)
	require.Equal(t, 1, v.AsSet().Len())
}

func TestMergeChild(t *testing.T) {
	outer := klv.NewLocalSet(
		klv.Entry{Tag: 1, Value: str("a")},
		klv.Entry{Tag: 2, Value: str("b")},
	)
	inner := klv.NewLocalSet(
		klv.Entry{Tag: 1, Value: str("c")},
		klv.Entry{Tag: 3, Value: klv.Empty()},
	)

	w := MergeChild(outer, inner, nil)
	require.Empty(t, w)
	require.True(t, klv.NewLocalSet(
		klv.Entry{Tag: 1, Value: str("c")},
		klv.Entry{Tag: 2, Value: str("b")},
		klv.Entry{Tag: 3, Value: klv.Empty()},
	).Equal(outer), "%v", outer)

	parent := klv.NewLocalSet(
		klv.Entry{Tag: 3, Value: str("x")},
		klv.Entry{Tag: 4, Value: str("y")},
	)
	ApplyChild(parent, outer, nil)
	require.True(t, klv.NewLocalSet(
		klv.Entry{Tag: 1, Value: str("c")},
		klv.Entry{Tag: 2, Value: str("b")},
		klv.Entry{Tag: 4, Value: str("y")},
	).Equal(parent), "%v", parent)
}

func TestDeriveChild(t *testing.T) {
	lhs := klv.NewLocalSet(
		klv.Entry{Tag: 1, Value: str("same")},
		klv.Entry{Tag: 2, Value: str("old")},
		klv.Entry{Tag: 3, Value: str("removed")},
		klv.Entry{Tag: 4, Value: str("x")},
		klv.Entry{Tag: 4, Value: str("y")},
	)
	rhs := klv.NewLocalSet(
		klv.Entry{Tag: 1, Value: str("same")},
		klv.Entry{Tag: 2, Value: str("new")},
		klv.Entry{Tag: 4, Value: str("y")},
		klv.Entry{Tag: 4, Value: str("x")},
		klv.Entry{Tag: 5, Value: str("added")},
	)

	child := DeriveChild(lhs, rhs)
	require.True(t, klv.NewLocalSet(
		klv.Entry{Tag: 2, Value: str("new")},
		klv.Entry{Tag: 3, Value: klv.Empty()},
		klv.Entry{Tag: 5, Value: str("added")},
	).Equal(child), "%v", child)

	result := lhs.Clone()
	w := ApplyChild(result, child, DefaultPolicy)
	require.Empty(t, w)
	require.True(t, rhs.Equal(result), "%v", result)
}

func TestDeriveChildInverse(t *testing.T) {
	sets := []*klv.LocalSet{
		klv.NewLocalSet(),
		klv.NewLocalSet(klv.Entry{Tag: 1, Value: klv.UintValue(1)}),
		klv.NewLocalSet(
			klv.Entry{Tag: 1, Value: klv.UintValue(2)},
			klv.Entry{Tag: 2, Value: klv.FloatValue(0.5)},
		),
		klv.NewLocalSet(
			klv.Entry{Tag: 2, Value: klv.FloatValue(0.5)},
			klv.Entry{Tag: 3, Value: klv.IntValue(-1)},
			klv.Entry{Tag: 3, Value: klv.IntValue(-2)},
		),
	}

	for _, lhs := range sets {
		for _, rhs := range sets {
			result := lhs.Clone()
			ApplyChild(result, DeriveChild(lhs, rhs), nil)
			require.True(t, rhs.Equal(result), "%v -> %v gives %v", lhs, rhs, result)
		}
	}
}

func TestChildSetFormat(t *testing.T) {
	lookup := klv.NewTraitsLookup([]klv.TagTraits{
		{Name: "Unknown"},
		{Tag: 1, Name: "Required", Format: &klv.UintFormat{}, Count: klv.CountOne},
		{Tag: 2, Name: "Optional", Format: &klv.UintFormat{}, Count: klv.CountOptional},
	})

	f := NewChildSetFormat("child", func() *klv.TraitsLookup { return lookup })

	set, w, err := f.Parse([]byte{0x02, 0x01, 0x05, 0x01, 0x00})
	require.NoError(t, err)
	require.Empty(t, w)
	require.Equal(t, 2, set.Len())
	require.True(t, set.AllAt(1)[0].IsEmpty())
}

func TestPolicyString(t *testing.T) {
	require.Equal(t, "keep both", KeepBoth.String())
	require.Equal(t, Policy(3), KeepBoth)
}
