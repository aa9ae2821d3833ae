package monomorph

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// deadlineMask spaces the cooperative deadline checks: one time.Now per
// 4096 node events keeps the overhead negligible.
const deadlineMask = 4095

// Search embeds pattern p into target t under opts.
//
// Stages: the full edge set is tried first; while a stage produces no
// embedding, the lowest distinct-weight band of edges is dropped and the
// remainder retried. The edgeless final stage always succeeds with a
// single all-Unassigned map, so a nil error implies at least one map.
//
// Determinism: identical inputs give identical Maps, in identical order.
// All maps of one Result preserve exactly the same retained edge set and
// therefore score equally; ties are fixed by discovery order.
//
// Errors: ErrBadPattern, ErrPatternTooLarge, and the hard ErrSearchSpace
// ceiling. Running out of time or matches is never an error.
func Search(p Pattern, t Target, opts Options) (Result, error) {
	if err := validatePattern(p); err != nil {
		return Result{}, err
	}
	if p.N > t.n {
		return Result{}, ErrPatternTooLarge
	}
	if opts.MaxMatches < 1 {
		opts.MaxMatches = 1
	}

	var (
		deadline    time.Time
		useDeadline bool
	)
	if opts.Timeout > 0 {
		deadline = time.Now().Add(opts.Timeout)
		useDeadline = true
	}

	bands := distinctWeights(p.Edges)
	timedOut := false
	for stage := 0; stage <= len(bands); stage++ {
		retained := retainAbove(p.Edges, bands, stage)
		if len(retained) == 0 {
			// Degenerate stage: nothing to preserve, trivially mappable.
			m := make([]int, p.N)
			for i := range m {
				m[i] = Unassigned
			}

			return Result{
				Maps:         [][]int{m},
				DroppedBands: stage,
				TimedOut:     timedOut,
			}, nil
		}

		e := newEngine(p.N, retained, t, opts.MaxMatches, deadline, useDeadline)
		if e.insoluble() {
			log.Debug("monomorph: stage trivially insoluble, relaxing",
				"stage", stage, "edges", len(retained))

			continue
		}
		stageTimedOut := e.run()
		timedOut = timedOut || stageTimedOut
		if len(e.maps) > 0 {
			return Result{
				Maps:           e.maps,
				RetainedWeight: totalWeight(retained),
				DroppedBands:   stage,
				TimedOut:       timedOut,
			}, nil
		}
		log.Debug("monomorph: no embedding, dropping lowest weight band",
			"stage", stage, "edges", len(retained), "timedOut", stageTimedOut)
	}

	// Unreachable: the edgeless stage above always returns.
	return Result{TimedOut: timedOut}, nil
}

func validatePattern(p Pattern) error {
	if p.N < 0 {
		return ErrBadPattern
	}
	for _, e := range p.Edges {
		if e.U < 0 || e.U >= p.N || e.V < 0 || e.V >= p.N || e.U == e.V || e.Weight < 1 {
			return ErrBadPattern
		}
	}

	return nil
}

// distinctWeights returns the sorted distinct edge weights, ascending.
func distinctWeights(edges []WeightedEdge) []int64 {
	seen := make(map[int64]struct{}, len(edges))
	for _, e := range edges {
		seen[e.Weight] = struct{}{}
	}
	out := make([]int64, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// retainAbove keeps the edges whose weight survives dropping the lowest
// `stage` distinct-weight bands.
func retainAbove(edges []WeightedEdge, bands []int64, stage int) []WeightedEdge {
	if stage == 0 {
		return edges
	}
	if stage >= len(bands) {
		return nil
	}
	cutoff := bands[stage-1]
	out := make([]WeightedEdge, 0, len(edges))
	for _, e := range edges {
		if e.Weight > cutoff {
			out = append(out, e)
		}
	}

	return out
}

func totalWeight(edges []WeightedEdge) int64 {
	var sum int64
	for _, e := range edges {
		sum += e.Weight
	}

	return sum
}

// engine holds the per-stage search state: pattern adjacency restricted to
// the retained edges, the fixed traversal order, and the explicit
// backtracking stack. One engine serves exactly one stage.
type engine struct {
	pn, tn int
	t      Target

	pneigh [][]int // retained pattern adjacency lists
	pdeg   []int
	nEdges int

	order []int // non-isolated pattern vertices, most-constrained first

	assign []int
	used   []bool
	frames []frame

	maxMatches  int
	deadline    time.Time
	useDeadline bool
	steps       int

	maps [][]int
}

// frame tracks, per depth, the next target candidate to try and the one
// currently bound (valid while any deeper frame is active).
type frame struct {
	next   int
	chosen int
}

func newEngine(pn int, retained []WeightedEdge, t Target, maxMatches int, deadline time.Time, useDeadline bool) *engine {
	e := &engine{
		pn:          pn,
		tn:          t.n,
		t:           t,
		pneigh:      make([][]int, pn),
		pdeg:        make([]int, pn),
		nEdges:      len(retained),
		maxMatches:  maxMatches,
		deadline:    deadline,
		useDeadline: useDeadline,
	}
	for _, we := range retained {
		e.pneigh[we.U] = append(e.pneigh[we.U], we.V)
		e.pneigh[we.V] = append(e.pneigh[we.V], we.U)
		e.pdeg[we.U]++
		e.pdeg[we.V]++
	}

	// Most-constrained-first traversal order over non-isolated vertices:
	// descending retained degree, ascending index on ties.
	for v := 0; v < pn; v++ {
		if e.pdeg[v] > 0 {
			e.order = append(e.order, v)
		}
	}
	sort.Slice(e.order, func(i, j int) bool {
		vi, vj := e.order[i], e.order[j]
		if e.pdeg[vi] != e.pdeg[vj] {
			return e.pdeg[vi] > e.pdeg[vj]
		}

		return vi < vj
	})

	e.assign = make([]int, pn)
	for i := range e.assign {
		e.assign[i] = Unassigned
	}
	e.used = make([]bool, t.n)
	e.frames = make([]frame, len(e.order)+1)

	return e
}

// insoluble applies the cheap counting bounds before any backtracking:
// a stage with more retained edges than target edges, or more non-isolated
// pattern vertices than target vertices, cannot embed.
func (e *engine) insoluble() bool {
	return e.nEdges > e.t.nEdges || len(e.order) > e.tn
}

// expired performs the sparse deadline test.
func (e *engine) expired() bool {
	e.steps++
	if !e.useDeadline || e.steps&deadlineMask != 0 {
		return false
	}

	return time.Now().After(e.deadline)
}

// feasible reports whether binding pattern vertex pv to target vertex tv
// keeps the partial map a monomorphism: tv unused, enough target degree,
// and every already-bound pattern neighbour adjacent on the target side.
func (e *engine) feasible(pv, tv int) bool {
	if e.used[tv] || e.t.deg[tv] < e.pdeg[pv] {
		return false
	}
	for _, q := range e.pneigh[pv] {
		if b := e.assign[q]; b != Unassigned && !e.t.adj[tv][b] {
			return false
		}
	}

	return true
}

// run drives the explicit-stack backtracking search and reports whether
// the deadline expired. Found maps accumulate in e.maps.
func (e *engine) run() bool {
	depth := 0
	for depth >= 0 {
		if e.expired() {
			return true
		}
		if depth == len(e.order) {
			found := make([]int, e.pn)
			copy(found, e.assign)
			e.maps = append(e.maps, found)
			if len(e.maps) >= e.maxMatches {
				return false
			}
			depth = e.backtrack(depth)

			continue
		}

		pv := e.order[depth]
		tv := e.frames[depth].next
		for tv < e.tn && !e.feasible(pv, tv) {
			tv++
		}
		if tv == e.tn {
			depth = e.backtrack(depth)

			continue
		}

		e.assign[pv] = tv
		e.used[tv] = true
		e.frames[depth].chosen = tv
		e.frames[depth].next = tv + 1
		depth++
		e.frames[depth].next = 0
	}

	return false
}

// backtrack unwinds one level, releasing the binding made there so its
// candidate loop resumes from the recorded cursor.
func (e *engine) backtrack(depth int) int {
	depth--
	if depth >= 0 {
		e.used[e.frames[depth].chosen] = false
		e.assign[e.order[depth]] = Unassigned
	}

	return depth
}
