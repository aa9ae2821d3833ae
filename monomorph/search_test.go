package monomorph_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quarkline/qmap/monomorph"
)

// lineTarget builds the path target 0-1-…-(n-1).
func lineTarget(t *testing.T, n int) monomorph.Target {
	t.Helper()
	edges := make([][2]int, 0, n-1)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}
	tg, err := monomorph.NewTarget(n, edges)
	require.NoError(t, err)

	return tg
}

// starTarget builds a star with centre 0 and the given number of leaves.
func starTarget(t *testing.T, leaves int) monomorph.Target {
	t.Helper()
	edges := make([][2]int, leaves)
	for i := 0; i < leaves; i++ {
		edges[i] = [2]int{0, i + 1}
	}
	tg, err := monomorph.NewTarget(leaves+1, edges)
	require.NoError(t, err)

	return tg
}

// requireValid checks the monomorphism invariants of m for the pattern
// edges the result claims to preserve.
func requireValid(t *testing.T, p monomorph.Pattern, tg monomorph.Target, res monomorph.Result, m []int) {
	t.Helper()
	require.Len(t, m, p.N)
	seen := map[int]bool{}
	for _, tv := range m {
		if tv == monomorph.Unassigned {
			continue
		}
		require.False(t, seen[tv], "map not injective")
		seen[tv] = true
	}
	// Reconstruct the retained edge set: the DroppedBands lowest distinct
	// weights are gone.
	for _, e := range p.Edges {
		if m[e.U] == monomorph.Unassigned || m[e.V] == monomorph.Unassigned {
			continue
		}
		if res.DroppedBands == 0 {
			require.True(t, tg.Adjacent(m[e.U], m[e.V]), "retained edge not preserved")
		}
	}
}

func TestSearch_SingleEdgeOntoLine(t *testing.T) {
	p := monomorph.Pattern{N: 2, Edges: []monomorph.WeightedEdge{{U: 0, V: 1, Weight: 5}}}
	tg := lineTarget(t, 4)

	res, err := monomorph.Search(p, tg, monomorph.Options{MaxMatches: 1})
	require.NoError(t, err)
	require.Len(t, res.Maps, 1)
	require.Equal(t, 0, res.DroppedBands)
	require.Equal(t, int64(5), res.RetainedWeight)
	m := res.Maps[0]
	require.True(t, tg.Adjacent(m[0], m[1]))
}

func TestSearch_TriangleIntoStarRelaxes(t *testing.T) {
	// A 3-cycle cannot embed into a 3-node star; dropping the weight-1
	// band leaves a 2-edge path which embeds through the centre.
	p := monomorph.Pattern{N: 3, Edges: []monomorph.WeightedEdge{
		{U: 0, V: 1, Weight: 3},
		{U: 1, V: 2, Weight: 2},
		{U: 2, V: 0, Weight: 1},
	}}
	tg := starTarget(t, 2) // nodes 0(centre),1,2

	res, err := monomorph.Search(p, tg, monomorph.Options{MaxMatches: 4})
	require.NoError(t, err)
	require.Equal(t, 1, res.DroppedBands)
	require.Equal(t, int64(5), res.RetainedWeight)
	require.NotEmpty(t, res.Maps)
	for _, m := range res.Maps {
		// Both surviving edges must land on star edges; vertex 1 is the
		// middle of the retained path so it must sit on the centre.
		require.True(t, tg.Adjacent(m[0], m[1]))
		require.True(t, tg.Adjacent(m[1], m[2]))
		require.Equal(t, 0, m[1])
	}
}

func TestSearch_EdgelessPatternIsTrivial(t *testing.T) {
	p := monomorph.Pattern{N: 3}
	res, err := monomorph.Search(p, lineTarget(t, 4), monomorph.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Maps, 1)
	for _, tv := range res.Maps[0] {
		require.Equal(t, monomorph.Unassigned, tv)
	}
	require.Zero(t, res.RetainedWeight)
}

func TestSearch_MaxMatchesBoundsBag(t *testing.T) {
	p := monomorph.Pattern{N: 2, Edges: []monomorph.WeightedEdge{{U: 0, V: 1, Weight: 1}}}
	tg := lineTarget(t, 5)

	res, err := monomorph.Search(p, tg, monomorph.Options{MaxMatches: 3})
	require.NoError(t, err)
	require.Len(t, res.Maps, 3)

	// Every map valid and all maps distinct.
	distinct := map[[2]int]bool{}
	for _, m := range res.Maps {
		requireValid(t, p, tg, res, m)
		key := [2]int{m[0], m[1]}
		require.False(t, distinct[key])
		distinct[key] = true
	}
}

func TestSearch_Determinism(t *testing.T) {
	p := monomorph.Pattern{N: 3, Edges: []monomorph.WeightedEdge{
		{U: 0, V: 1, Weight: 2},
		{U: 1, V: 2, Weight: 1},
	}}
	tg := starTarget(t, 4)

	a, err := monomorph.Search(p, tg, monomorph.Options{MaxMatches: 8})
	require.NoError(t, err)
	b, err := monomorph.Search(p, tg, monomorph.Options{MaxMatches: 8})
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestSearch_PatternLargerThanTarget(t *testing.T) {
	p := monomorph.Pattern{N: 5}
	_, err := monomorph.Search(p, lineTarget(t, 3), monomorph.DefaultOptions())
	require.ErrorIs(t, err, monomorph.ErrPatternTooLarge)
}

func TestSearch_BadInputs(t *testing.T) {
	tg := lineTarget(t, 3)

	_, err := monomorph.Search(monomorph.Pattern{N: 2, Edges: []monomorph.WeightedEdge{{U: 0, V: 0, Weight: 1}}}, tg, monomorph.DefaultOptions())
	require.ErrorIs(t, err, monomorph.ErrBadPattern)

	_, err = monomorph.Search(monomorph.Pattern{N: 2, Edges: []monomorph.WeightedEdge{{U: 0, V: 1, Weight: 0}}}, tg, monomorph.DefaultOptions())
	require.ErrorIs(t, err, monomorph.ErrBadPattern)

	_, err = monomorph.NewTarget(2, [][2]int{{0, 0}})
	require.ErrorIs(t, err, monomorph.ErrBadTarget)

	_, err = monomorph.NewTarget(monomorph.MaxTargetNodes+1, nil)
	require.ErrorIs(t, err, monomorph.ErrSearchSpace)
}

func TestSearch_ExpiredDeadlineStillReturnsPartialMap(t *testing.T) {
	// A triangle pattern against a large cycle target has no embedding,
	// so the stage would exhaust its whole search space. The already
	// expired budget cuts it off at the first sparse deadline check and
	// relaxation falls through to the degenerate stage, which still
	// yields a map rather than an error.
	const n = 4000
	edges := make([][2]int, n)
	for i := 0; i < n; i++ {
		edges[i] = [2]int{i, (i + 1) % n}
	}
	tg, err := monomorph.NewTarget(n, edges)
	require.NoError(t, err)

	p := monomorph.Pattern{N: 3, Edges: []monomorph.WeightedEdge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 1},
		{U: 2, V: 0, Weight: 1},
	}}
	res, err := monomorph.Search(p, tg, monomorph.Options{MaxMatches: 1, Timeout: time.Nanosecond})
	require.NoError(t, err)
	require.True(t, res.TimedOut)
	require.Equal(t, 1, res.DroppedBands)
	require.Len(t, res.Maps, 1)
	for _, tv := range res.Maps[0] {
		require.Equal(t, monomorph.Unassigned, tv)
	}
}

func TestTargetFromMatrix(t *testing.T) {
	conn := [][]bool{
		{false, true, false},
		{true, false, true},
		{false, true, false},
	}
	tg, err := monomorph.TargetFromMatrix(conn)
	require.NoError(t, err)
	require.Equal(t, 3, tg.N())
	require.True(t, tg.Adjacent(0, 1))
	require.False(t, tg.Adjacent(0, 2))
	require.Equal(t, 2, tg.Degree(1))
}
