// Package mcts implements PUCT Monte-Carlo Tree Search over crafting
// states, backed by a transposition table keyed on game.StateHash rather
// than a pointer tree — spec §3.4/§4.9 requires transpositions to merge
// (the same resource tuple reached via different action orders is the
// same search node), which a tree can't express. Grounded on
// executor/mcts/search.go's PUCT arithmetic and
// executor/mcts/alternating_search.go's expand-on-first-visit pattern.
package mcts

import "github.com/hantaoyin/ffxiv-crafting-mcts/game"

// nodeStats holds the network's cached evaluation of a state, populated
// the first time the search visits it.
type nodeStats struct {
	expanded bool
	value    float64
	policy   []float64 // length game.NumActions, the network's unmasked softmax output
}

// edgeKey identifies one (state, action) pair in the transposition table.
type edgeKey struct {
	state  game.StateHash
	action game.Action
}

// edgeStats holds the visit/value accumulators PUCT selection reads.
type edgeStats struct {
	n int32
	w float64 // cumulative backed-up value
}

func (e *edgeStats) q() float64 {
	if e.n == 0 {
		return 0
	}
	return e.w / float64(e.n)
}

// Table is the transposition table for one search (one call to Search,
// or one self-play episode's worth of searches if the caller chooses to
// reuse it — spec §4.9 doesn't require clearing between moves, only
// within the lifetime the caller decides).
type Table struct {
	nodes map[game.StateHash]*nodeStats
	edges map[edgeKey]*edgeStats
}

// NewTable builds an empty transposition table.
func NewTable() *Table {
	return &Table{
		nodes: make(map[game.StateHash]*nodeStats),
		edges: make(map[edgeKey]*edgeStats),
	}
}

func (t *Table) node(h game.StateHash) *nodeStats {
	n, ok := t.nodes[h]
	if !ok {
		n = &nodeStats{}
		t.nodes[h] = n
	}
	return n
}

func (t *Table) edge(h game.StateHash, a game.Action) *edgeStats {
	k := edgeKey{h, a}
	e, ok := t.edges[k]
	if !ok {
		e = &edgeStats{}
		t.edges[k] = e
	}
	return e
}

// VisitCounts returns the visit count of every legal action from state,
// in actions order (0 for actions never sampled).
func (t *Table) VisitCounts(h game.StateHash, actions []game.Action) []int32 {
	out := make([]int32, len(actions))
	for i, a := range actions {
		if e, ok := t.edges[edgeKey{h, a}]; ok {
			out[i] = e.n
		}
	}
	return out
}
