package settrie

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func ints(vs ...int64) []Element {
	out := make([]Element, len(vs))
	for i, v := range vs {
		out[i] = Int(v)
	}
	return out
}

// Round-trip insert/find with overlapping sets.
func TestScenarioSmallOverlappingSets(t *testing.T) {
	tr := New()
	tr.Insert(ints(2, 3, 4), "id2")
	tr.Insert(ints(2, 3, 4, 5), "id4")

	require.Equal(t, "id2", tr.Find(ints(4, 3, 2)))
	require.Equal(t, []string{"id2"}, tr.Subsets(ints(3, 4, 2)))

	got := tr.Supersets(ints(2, 3, 4))
	sort.Strings(got)
	require.Equal(t, []string{"id2", "id4"}, got)
}

// 2000 sets sharing the element 2021: exact find and superset queries.
func TestScenarioTwoThousandSets(t *testing.T) {
	const n = 2000
	tr := New()
	for i := 0; i < n; i++ {
		set := ints(2021, int64(3000+i), int64(4000+i*i))
		tr.Insert(set, fmt.Sprintf("idx_%d", i))
	}

	require.Equal(t, "idx_3", tr.Find(ints(2021, 3003, 4009)))
	require.Len(t, tr.Supersets(ints(2021)), n)
	require.Equal(t, []string{"idx_33"}, tr.Supersets(ints(3033)))
}

func TestInsertIdempotentAndLastWriterWins(t *testing.T) {
	tr := New()
	tr.Insert(ints(1, 2), "a")
	tr.Insert(ints(1, 2), "a")
	require.Equal(t, 1, tr.Len())
	require.Equal(t, "a", tr.Find(ints(1, 2)))

	tr.Insert(ints(1, 2), "b")
	require.Equal(t, 1, tr.Len())
	require.Equal(t, "b", tr.Find(ints(1, 2)))
}

func TestFindMissingReturnsEmpty(t *testing.T) {
	tr := New()
	tr.Insert(ints(1, 2), "a")
	require.Equal(t, "", tr.Find(ints(1, 2, 3)))
	require.Equal(t, "", tr.Find(ints(9)))
}

func TestEmptySetStoredAtRoot(t *testing.T) {
	tr := New()
	tr.Insert(nil, "empty")
	require.Equal(t, "empty", tr.Find(nil))
	require.Equal(t, 1, tr.Len())

	id := tr.NextSetID(IterStart)
	require.NotEqual(t, IterEnd, id)
	name, ok := tr.SetName(id)
	require.True(t, ok)
	require.Equal(t, "empty", name)

	elems, err := tr.Elements(id)
	require.NoError(t, err)
	require.Empty(t, elems)
}

// Heterogeneous sets, iteration, element membership.
func TestHeterogeneousSetsIteration(t *testing.T) {
	tr := New()
	tr.Insert(ints(1, 2, 3, 4), "ints")
	tr.Insert([]Element{String("Mon"), String("Tue")}, "days")
	tr.Insert(nil, "empty")
	tr.Insert([]Element{Real(3.0), Real(3.1), Real(3.14)}, "reals")

	seen := map[string][]Element{}
	for id := tr.NextSetID(IterStart); id != IterEnd; id = tr.NextSetID(id) {
		label, ok := tr.SetName(id)
		require.True(t, ok)
		elems, err := tr.Elements(id)
		require.NoError(t, err)
		seen[label] = elems
	}

	require.Len(t, seen, 4)
	require.Empty(t, seen["empty"])
	require.ElementsMatch(t, []Element{String("Mon"), String("Tue")}, seen["days"])
	require.ElementsMatch(t, []Element{Real(3.0), Real(3.1), Real(3.14)}, seen["reals"])
	require.ElementsMatch(t, ints(1, 2, 3, 4), seen["ints"])
}

func TestCloneIsIndependentDeepCopy(t *testing.T) {
	tr := New()
	tr.Insert(ints(1, 2), "a")

	clone, err := tr.Clone()
	require.NoError(t, err)
	require.Equal(t, "a", clone.Find(ints(1, 2)))

	tr.Insert(ints(3, 4), "b")
	require.Equal(t, "", clone.Find(ints(3, 4)))
	require.Equal(t, 1, clone.Len())
}

func TestReinsertingEveryStoredSetReproducesTheOriginal(t *testing.T) {
	original := New()
	original.Insert(ints(1, 2), "a")
	original.Insert(ints(1, 2, 3), "b")
	original.Insert([]Element{String("x")}, "c")
	original.Insert(nil, "d")

	fresh := New()
	for id := original.NextSetID(IterStart); id != IterEnd; id = original.NextSetID(id) {
		label, _ := original.SetName(id)
		elems, err := original.Elements(id)
		require.NoError(t, err)
		fresh.Insert(elems, label)
	}

	require.Equal(t, original.Len(), fresh.Len())
	for id := original.NextSetID(IterStart); id != IterEnd; id = original.NextSetID(id) {
		label, _ := original.SetName(id)
		elems, err := original.Elements(id)
		require.NoError(t, err)
		require.Equal(t, label, fresh.Find(elems))
	}
}
