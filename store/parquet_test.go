package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hantaoyin/ffxiv-crafting-mcts/game"
	"github.com/hantaoyin/ffxiv-crafting-mcts/selfplay"
)

func sampleExamples() []selfplay.Example {
	ex := selfplay.Example{
		PolicyTarget: make([]float64, game.NumActions),
		Value:        0.42,
	}
	ex.Features[0] = 1
	ex.PolicyTarget[0] = 1
	return []selfplay.Example{ex}
}

func TestToRowsPreservesFieldsAndIndex(t *testing.T) {
	rows := ToRows("ep-1", sampleExamples())
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].EpisodeID != "ep-1" || rows[0].Move != 0 {
		t.Fatalf("row metadata mismatch: %+v", rows[0])
	}
	if rows[0].Value != 0.42 {
		t.Fatalf("Value = %v, want 0.42", rows[0].Value)
	}
	if len(rows[0].Features) != game.NumFeatures {
		t.Fatalf("len(Features) = %d, want %d", len(rows[0].Features), game.NumFeatures)
	}
}

func TestWriteBatchParquetAtomicProducesFile(t *testing.T) {
	dir := t.TempDir()
	rows := ToRows("ep-2", sampleExamples())

	path, err := WriteBatchParquetAtomic(dir, rows)
	if err != nil {
		t.Fatalf("WriteBatchParquetAtomic: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("path = %s, want under %s", path, dir)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file missing: %v", err)
	}

	tmpDir := filepath.Join(dir, "tmp")
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("reading tmp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected tmp dir to be empty after atomic rename, found %d entries", len(entries))
	}
}
