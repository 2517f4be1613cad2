package klvupdate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/goklv/pkg/klv"
)

func TestTrackerUpdate(t *testing.T) {
	var tr Tracker[testStandard]
	key := Key[testStandard]{standardA, 5}

	set := klv.NewLocalSet(
		klv.Entry{Tag: 5, Value: klv.UintValue(1)},
		klv.Entry{Tag: 5, Value: klv.UintValue(2)},
	)
	require.True(t, tr.HasChanged(set, key))
	require.True(t, tr.Update(set, key, 0))
	require.False(t, tr.HasChanged(set, key))

	// same multiset, different order
	reordered := klv.NewLocalSet(
		klv.Entry{Tag: 5, Value: klv.UintValue(2)},
		klv.Entry{Tag: 5, Value: klv.UintValue(1)},
	)
	require.False(t, tr.Update(reordered, key, 1))

	changed := klv.NewLocalSet(
		klv.Entry{Tag: 5, Value: klv.UintValue(2)},
	)
	require.True(t, tr.Update(changed, key, 2))

	empty := klv.NewLocalSet()
	require.True(t, tr.Update(empty, key, 3))
	require.False(t, tr.Update(empty, key, 4))
}

func TestTrackerStoresCopies(t *testing.T) {
	var tr Tracker[testStandard]
	key := Key[testStandard]{standardA, 1}

	nested := klv.NewLocalSet(klv.Entry{Tag: 1, Value: klv.UintValue(1)})
	set := klv.NewLocalSet(klv.Entry{Tag: 1, Value: klv.SetValue(nested)})
	tr.Update(set, key, 0)

	nested.Add(2, klv.UintValue(2))
	require.True(t, tr.HasChanged(set, key))
}

func TestTrackerPrune(t *testing.T) {
	var tr Tracker[testStandard]
	var intervals Intervals[testStandard]
	intervals.SetKey(Key[testStandard]{standardA, 5}, 10)

	newSet := func() *klv.LocalSet {
		return klv.NewLocalSet(
			klv.Entry{Tag: 2, Value: klv.UintValue(0)},
			klv.Entry{Tag: 5, Value: klv.StringValue("V")},
		)
	}

	require.True(t, tr.Update(newSet(), Key[testStandard]{standardA, 5}, 0))

	set := newSet()
	tr.Prune(set, &intervals, standardA, 5)
	require.False(t, set.Has(5))
	require.True(t, set.Has(2))

	set = newSet()
	tr.Prune(set, &intervals, standardA, 11)
	require.True(t, set.Has(5))
	require.False(t, tr.HasChanged(set, Key[testStandard]{standardA, 5}))

	// transmission at 11 restarts the interval
	set = newSet()
	tr.Prune(set, &intervals, standardA, 15)
	require.False(t, set.Has(5))

	set = newSet()
	tr.Prune(set, &intervals, standardA, 21)
	require.True(t, set.Has(5))
}

func TestTrackerPruneChanged(t *testing.T) {
	var tr Tracker[testStandard]
	var intervals Intervals[testStandard]
	intervals.Set(1000)

	set := klv.NewLocalSet(klv.Entry{Tag: 1, Value: klv.UintValue(1)})
	tr.Prune(set, &intervals, standardA, 0)
	require.True(t, set.Has(1))

	set = klv.NewLocalSet(klv.Entry{Tag: 1, Value: klv.UintValue(2)})
	tr.Prune(set, &intervals, standardA, 1)
	require.True(t, set.Has(1))

	set = klv.NewLocalSet(klv.Entry{Tag: 1, Value: klv.UintValue(2)})
	tr.Prune(set, &intervals, standardA, 2)
	require.False(t, set.Has(1))
}

func TestTrackerPruneForgetsMissingTags(t *testing.T) {
	var tr Tracker[testStandard]
	var intervals Intervals[testStandard]
	intervals.Set(1000)

	tr.Prune(klv.NewLocalSet(
		klv.Entry{Tag: 1, Value: klv.UintValue(1)},
	), &intervals, standardA, 0)
	tr.Prune(klv.NewLocalSet(
		klv.Entry{Tag: 1, Value: klv.UintValue(1)},
	), &intervals, standardB, 0)

	// tag 1 disappears from standard A only
	tr.Prune(klv.NewLocalSet(), &intervals, standardA, 1)

	set := klv.NewLocalSet(klv.Entry{Tag: 1, Value: klv.UintValue(1)})
	tr.Prune(set, &intervals, standardA, 2)
	require.True(t, set.Has(1))

	set = klv.NewLocalSet(klv.Entry{Tag: 1, Value: klv.UintValue(1)})
	tr.Prune(set, &intervals, standardB, 2)
	require.False(t, set.Has(1))
}

func TestTrackerPruneNilIntervals(t *testing.T) {
	var tr Tracker[testStandard]

	for ts := range uint64(3) {
		set := klv.NewLocalSet(klv.Entry{Tag: 1, Value: klv.UintValue(1)})
		tr.Prune(set, nil, standardA, ts)
		require.True(t, set.Has(1))
	}
}

func TestTrackerClone(t *testing.T) {
	var tr Tracker[testStandard]
	var intervals Intervals[testStandard]
	intervals.Set(10)
	key := Key[testStandard]{standardA, 5}

	set := klv.NewLocalSet(klv.Entry{Tag: 5, Value: klv.UintValue(1)})
	tr.Update(set, key, 0)

	cl := tr.Clone()

	set = klv.NewLocalSet(klv.Entry{Tag: 5, Value: klv.UintValue(2)})
	cl.Prune(set, &intervals, standardA, 1)
	require.True(t, set.Has(5))
	require.False(t, cl.HasChanged(set, key))

	// the original keeps its own state
	require.True(t, tr.HasChanged(set, key))

	var empty Tracker[testStandard]
	require.True(t, empty.Clone().HasChanged(set, key))
}
