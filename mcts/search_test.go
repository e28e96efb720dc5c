package mcts

import (
	"math"
	"math/rand"
	"testing"

	"github.com/hantaoyin/ffxiv-crafting-mcts/game"
	"github.com/hantaoyin/ffxiv-crafting-mcts/mlp"
	"github.com/hantaoyin/ffxiv-crafting-mcts/rng"
	"github.com/hantaoyin/ffxiv-crafting-mcts/rules"
)

func freshNetwork() *mlp.Network {
	r := rand.New(rand.NewSource(11))
	return mlp.New(game.NumFeatures, int(game.NumActions), r)
}

func TestSearchProducesVisitedEdges(t *testing.T) {
	params := game.DefaultParams
	root := game.NewInitial(&params)
	net := freshNetwork()
	src := rng.NewSeeded(5)

	table := Search(root, net, 200, src)

	legal := rules.LegalActions(root)
	counts := table.VisitCounts(root.Hash(), legal)
	var total int32
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		t.Fatal("expected at least one simulation to traverse a root edge")
	}
}

func TestPolicyTargetSumsToOne(t *testing.T) {
	params := game.DefaultParams
	root := game.NewInitial(&params)
	net := freshNetwork()
	src := rng.NewSeeded(6)

	table := Search(root, net, 300, src)
	legal := rules.LegalActions(root)
	target := PolicyTarget(table, root, legal, 1.5)

	var sum float64
	for _, p := range target {
		if p < 0 {
			t.Fatalf("negative policy target %v", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("policy target sums to %v, want 1", sum)
	}
}

// TestPolicyTargetCoversFullActionSpace checks that PolicyTarget follows
// spec §4.9's set_target: it assigns every action in the full table — not
// just the legal subset — a weight, substituting the literal floor value
// for anything invalid or unvisited before a single normalization pass.
func TestPolicyTargetCoversFullActionSpace(t *testing.T) {
	params := game.DefaultParams
	root := game.NewInitial(&params)
	net := freshNetwork()
	src := rng.NewSeeded(9)

	table := Search(root, net, 100, src)
	legal := rules.LegalActions(root)
	target := PolicyTarget(table, root, legal, 1.5)

	if len(target) != int(game.NumActions) {
		t.Fatalf("len(target) = %d, want %d", len(target), game.NumActions)
	}
	for a, p := range target {
		if p <= 0 {
			t.Fatalf("action %d has non-positive target %v, want at least the floor", a, p)
		}
	}
}

// TestPolicyTargetMatchesSingleNormalizationFormula pins down the exact
// shape spec §4.9 requires: weight is N^invTemp for a visited legal action
// and the literal policyFloor for everything else, normalized once — not
// floored a second time after an initial normalization pass.
func TestPolicyTargetMatchesSingleNormalizationFormula(t *testing.T) {
	h := game.NewInitial(&game.DefaultParams).Hash()
	legal := []game.Action{game.BasicSynthesis, game.BasicTouch, game.Observe}

	table := NewTable()
	table.edge(h, game.BasicSynthesis).n = 9000
	table.edge(h, game.BasicTouch).n = 1000
	// game.Observe is legal here but never visited by the search.

	target := PolicyTarget(table, game.NewInitial(&game.DefaultParams), legal, 1.0)

	// Every action other than the two visited ones carries the floor.
	wantSum := 9000.0 + 1000.0 + float64(game.NumActions-2)*policyFloor
	wantBasicSynthesis := 9000.0 / wantSum
	wantBasicTouch := 1000.0 / wantSum
	wantObserve := policyFloor / wantSum

	const eps = 1e-9
	if d := target[game.BasicSynthesis] - wantBasicSynthesis; d > eps || d < -eps {
		t.Fatalf("BasicSynthesis target = %v, want %v", target[game.BasicSynthesis], wantBasicSynthesis)
	}
	if d := target[game.BasicTouch] - wantBasicTouch; d > eps || d < -eps {
		t.Fatalf("BasicTouch target = %v, want %v", target[game.BasicTouch], wantBasicTouch)
	}
	if d := target[game.Observe] - wantObserve; d > eps || d < -eps {
		t.Fatalf("Observe target = %v, want %v", target[game.Observe], wantObserve)
	}
	if d := target[game.Reuse] - wantObserve; d > eps || d < -eps {
		t.Fatalf("Reuse (invalid) target = %v, want %v (same literal floor as an unvisited legal action)", target[game.Reuse], wantObserve)
	}
}
