package mcts

import (
	"math"

	"github.com/hantaoyin/ffxiv-crafting-mcts/game"
	"github.com/hantaoyin/ffxiv-crafting-mcts/mlp"
	"github.com/hantaoyin/ffxiv-crafting-mcts/rng"
	"github.com/hantaoyin/ffxiv-crafting-mcts/rules"
)

// DirichletAlpha is the concentration parameter for the root-exploration
// noise injected into the root policy before the first simulation (spec
// §4.9/§9).
const DirichletAlpha = 1.03

// DirichletWeight is the fraction of the root prior replaced by noise.
const DirichletWeight = 0.25

// Search runs simulations rooted at state and returns the resulting
// transposition table, from which callers read out visit counts to build
// a policy target (spec §4.9/§4.10).
func Search(root *game.State, net *mlp.Network, simulations int, src *rng.Source) *Table {
	t := NewTable()
	applyRootNoise(t, root, net, src)

	for i := 0; i < simulations; i++ {
		simulate(t, root, net, src)
	}
	return t
}

// applyRootNoise expands the root (if not already expanded by a previous
// simulation) and mixes Dirichlet noise into its cached policy, in place,
// exactly once. Spec §4.9 samples noise at the network's full width
// (dimension NumActions, not just the legal subset) and mixes it straight
// into the raw softmax output — an invalid action still carries real prior
// mass after mixing, it is only excluded from selection by IsActionValid.
func applyRootNoise(t *Table, root *game.State, net *mlp.Network, src *rng.Source) {
	h := root.Hash()
	n := t.node(h)
	if !n.expanded {
		expand(n, root, net)
	}
	alpha := make([]float64, game.NumActions)
	for i := range alpha {
		alpha[i] = DirichletAlpha
	}
	noise := src.Dirichlet(alpha)
	for a := game.Action(0); a < game.NumActions; a++ {
		n.policy[a] = (1-DirichletWeight)*n.policy[a] + DirichletWeight*noise[a]
	}
}

// simulate walks one path from state to a leaf (an unexpanded node or a
// terminal state), evaluates it, and backs the value up through every
// edge on the path.
func simulate(t *Table, root *game.State, net *mlp.Network, src *rng.Source) {
	current := root
	var path []edgeKey

	for {
		if current.IsTerminal() {
			backup(t, path, rules.Score(current))
			return
		}

		h := current.Hash()
		n := t.node(h)
		if !n.expanded {
			expand(n, current, net)
			backup(t, path, n.value)
			return
		}

		a := selectAction(t, h, n, current)
		if a == game.NumActions {
			// No valid action: the path ends here with a zero return.
			backup(t, path, 0)
			return
		}
		path = append(path, edgeKey{h, a})
		current = rules.Step(current, a, src)
	}
}

// expand evaluates state through the network and caches its raw (unmasked)
// policy plus the value estimate. Spec §4.9 keeps the prior over the full
// action space — legality only gates which edges selectAction considers,
// it does not renormalize the prior down to the legal subset, so a legal
// action's prior is exactly the network's own softmax output for it, not
// that output rescaled to sum to 1 over legal actions alone.
func expand(n *nodeStats, state *game.State, net *mlp.Network) {
	features := state.Features()
	rawPolicy, value := net.Predict(features[:])

	policy := make([]float64, game.NumActions)
	copy(policy, rawPolicy)

	n.expanded = true
	n.policy = policy
	n.value = value
}

// selectAction picks the legal action maximizing the PUCT score
// Q + P*sqrt(sumN)/(1+N), grounded verbatim on executor/mcts/search.go's
// formula (the teacher's formula has no separate exploration coefficient
// beyond the prior itself). Returns game.NumActions when no action is valid.
func selectAction(t *Table, h game.StateHash, n *nodeStats, state *game.State) game.Action {
	legal := rules.LegalActions(state)
	if len(legal) == 0 {
		return game.NumActions
	}

	var sumN float64
	for _, a := range legal {
		sumN += float64(t.edge(h, a).n)
	}
	sqrtSumN := math.Sqrt(sumN)

	best := legal[0]
	bestScore := math.Inf(-1)
	for _, a := range legal {
		e := t.edge(h, a)
		u := e.q() + n.policy[a]*sqrtSumN/float64(1+e.n)
		if u > bestScore {
			bestScore = u
			best = a
		}
	}
	return best
}

func backup(t *Table, path []edgeKey, value float64) {
	for _, k := range path {
		e := t.edges[k]
		if e == nil {
			e = &edgeStats{}
			t.edges[k] = e
		}
		e.n++
		e.w += value
	}
}
