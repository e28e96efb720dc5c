// Package store persists self-play training examples to disk. Grounded
// on scraper/store/parquet.go's TrainingRow/WriteBatchParquet shape and
// atomic temp-then-rename write pattern, and scraper/store/log.go's
// append-only dedupe log, both retargeted from Battlesnake turns to
// crafting-episode training rows.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/hantaoyin/ffxiv-crafting-mcts/game"
	"github.com/hantaoyin/ffxiv-crafting-mcts/selfplay"
)

// TrainingRow is the on-disk shape of one selfplay.Example (spec §3.6).
// Features are stored flat rather than nested, mirroring the teacher's
// flat BodyX/BodyY columns over nested structs — parquet compresses flat
// numeric columns far better than repeated structs for this row shape.
type TrainingRow struct {
	EpisodeID    string    `parquet:"episode_id,dict"`
	Move         int32     `parquet:"move"`
	Features     []float64 `parquet:"features"`
	PolicyTarget []float64 `parquet:"policy_target"`
	Value        float64   `parquet:"value"`
}

// ToRows converts one episode's examples into TrainingRows tagged with
// episodeID and their move index.
func ToRows(episodeID string, examples []selfplay.Example) []TrainingRow {
	rows := make([]TrainingRow, len(examples))
	for i, ex := range examples {
		features := make([]float64, game.NumFeatures)
		copy(features, ex.Features[:])
		rows[i] = TrainingRow{
			EpisodeID:    episodeID,
			Move:         int32(i),
			Features:     features,
			PolicyTarget: ex.PolicyTarget,
			Value:        ex.Value,
		}
	}
	return rows
}

// WriteBatchParquetAtomic writes rows to a new timestamped file under
// outDir, via a temp file in outDir/tmp followed by an atomic rename —
// the exact pattern of scraper/store/parquet.go's
// WriteArchiveBatchParquetAtomic.
func WriteBatchParquetAtomic(outDir string, rows []TrainingRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("batch_%d.parquet", time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "crafting_training_row_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return finalPath, nil
}
