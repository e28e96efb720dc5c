// Command train runs the self-play/training driver loop: play a craft
// guided by MCTS, backfill its score, train the network on a sampled
// minibatch, repeat. Grounded on executor/main.go's flag parsing and
// signal.NotifyContext shutdown handling, with the ONNX client setup and
// bubbletea TUI (dead code even in the teacher — see DESIGN.md) dropped
// in favor of a plain log line every -log-interval iterations.
// Single-threaded throughout, per spec §5 — there is exactly one
// goroutine doing work, plus the signal-handling goroutine Go's runtime
// manages for us.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hantaoyin/ffxiv-crafting-mcts/game"
	"github.com/hantaoyin/ffxiv-crafting-mcts/mlp"
	"github.com/hantaoyin/ffxiv-crafting-mcts/rng"
	"github.com/hantaoyin/ffxiv-crafting-mcts/selfplay"
	"github.com/hantaoyin/ffxiv-crafting-mcts/store"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON CraftParams file (defaults to game.DefaultParams)")
	seed := flag.Int64("seed", 1, "RNG seed")
	logInterval := flag.Int("log-interval", 16, "Log a status line every N iterations")
	outDir := flag.String("out-dir", "data/generated", "Output directory for training parquet batches")
	flushEvery := flag.Int("flush-every", 50, "Flush a parquet batch every N iterations")
	runLogPath := flag.String("run-log", "data/run.log", "Path to the append-only run log")
	maxIterations := flag.Int64("max-iterations", 0, "If > 0, stop after this many iterations")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params, err := loadParams(*configPath)
	if err != nil {
		log.Fatalf("loading craft params: %v", err)
	}

	runLog, err := store.OpenRunLog(*runLogPath)
	if err != nil {
		log.Fatalf("opening run log: %v", err)
	}
	defer runLog.Close()

	src := rng.NewSeeded(*seed)
	net := mlp.New(game.NumFeatures, int(game.NumActions), rand.New(rand.NewSource(*seed)))
	buf := selfplay.NewBuffer()

	log.Printf("resuming at iteration %d", runLog.Count())

	startTime := time.Now()
	var pendingRows []store.TrainingRow
	iteration := runLog.Count()

	for {
		select {
		case <-ctx.Done():
			log.Printf("shutdown requested after %d iterations", iteration)
			flushPending(*outDir, &pendingRows)
			return
		default:
		}

		episode := selfplay.PlayEpisode(&params, net, src)
		buf.Add(episode...)
		if buf.Len() >= selfplay.BatchSize {
			for _, ex := range buf.Sample(selfplay.BatchSize, src) {
				net.Train(ex.Features[:], ex.PolicyTarget, ex.Value, selfplay.StepSize)
			}
		}

		episodeID := fmt.Sprintf("ep-%d", iteration)
		pendingRows = append(pendingRows, store.ToRows(episodeID, episode)...)

		var finalValue float64
		if len(episode) > 0 {
			finalValue = episode[len(episode)-1].Value
		}
		if err := runLog.Record(len(episode), finalValue); err != nil {
			log.Printf("run log record failed: %v", err)
		}

		if iteration%*flushEvery == 0 {
			flushPending(*outDir, &pendingRows)
		}

		if iteration%*logInterval == 0 {
			log.Printf("iter=%d moves=%d value=%.3f buffer=%d elapsed=%s",
				iteration, len(episode), finalValue, buf.Len(), time.Since(startTime).Round(time.Second))
		}

		iteration++
		if *maxIterations > 0 && int64(iteration) >= *maxIterations {
			flushPending(*outDir, &pendingRows)
			log.Printf("reached max-iterations=%d, stopping", *maxIterations)
			return
		}
	}
}

func flushPending(outDir string, rows *[]store.TrainingRow) {
	if len(*rows) == 0 {
		return
	}
	path, err := store.WriteBatchParquetAtomic(outDir, *rows)
	if err != nil {
		log.Printf("parquet flush failed: %v", err)
		return
	}
	log.Printf("flushed %d rows to %s", len(*rows), path)
	*rows = nil
}

func loadParams(path string) (game.CraftParams, error) {
	if path == "" {
		return game.DefaultParams, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return game.CraftParams{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	params := game.DefaultParams
	if err := json.NewDecoder(f).Decode(&params); err != nil {
		return game.CraftParams{}, fmt.Errorf("decode config: %w", err)
	}
	return params, nil
}
