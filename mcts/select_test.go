package mcts

import (
	"testing"

	"github.com/hantaoyin/ffxiv-crafting-mcts/game"
	"github.com/hantaoyin/ffxiv-crafting-mcts/rng"
)

func TestSelectResignsWithNoLegalActions(t *testing.T) {
	table := NewTable()
	state := game.NewInitial(&game.DefaultParams)
	src := rng.NewSeeded(1)

	_, resign := Select(table, state, nil, 1.0, src)
	if !resign {
		t.Fatal("Select should resign when no actions are legal")
	}
}

func TestSelectResignsWhenEveryLegalActionIsUnvisited(t *testing.T) {
	table := NewTable()
	state := game.NewInitial(&game.DefaultParams)
	legal := []game.Action{game.BasicSynthesis, game.BasicTouch}
	src := rng.NewSeeded(2)

	_, resign := Select(table, state, legal, 1.0, src)
	if !resign {
		t.Fatal("Select should resign when every legal action has zero visits")
	}
}

func TestSelectOnlyEverReturnsAVisitedLegalAction(t *testing.T) {
	table := NewTable()
	state := game.NewInitial(&game.DefaultParams)
	legal := []game.Action{game.BasicSynthesis, game.BasicTouch, game.Observe}
	h := state.Hash()
	table.edge(h, game.BasicSynthesis).n = 10

	src := rng.NewSeeded(3)
	for i := 0; i < 20; i++ {
		action, resign := Select(table, state, legal, 1.0, src)
		if resign {
			t.Fatal("Select should not resign when at least one legal action has visits")
		}
		if action != game.BasicSynthesis {
			t.Fatalf("action = %v, want BasicSynthesis (the only action with any weight)", action)
		}
	}
}
