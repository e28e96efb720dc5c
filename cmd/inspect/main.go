// Command inspect runs a one-shot DuckDB summary query over a directory
// of training parquet batches, trimmed from viewer/db.go's
// openDuckDBWithGlobs/read_parquet pattern down to a single query since
// this tool runs once and exits instead of serving a long-lived HTTP
// viewer (spec.md's Non-goals exclude a graphical display, and this
// domain has no per-game board state worth paginating).
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

func main() {
	dir := flag.String("dir", "data/generated", "Directory of training parquet batches to inspect")
	flag.Parse()

	db, err := openDuckDB(*dir)
	if err != nil {
		log.Fatalf("opening duckdb: %v", err)
	}
	defer db.Close()

	var episodes, rows int64
	var avgValue float64
	if err := db.QueryRow(`
		SELECT COUNT(DISTINCT episode_id), COUNT(*), AVG(value)
		FROM training_rows
	`).Scan(&episodes, &rows, &avgValue); err != nil {
		log.Fatalf("querying summary: %v", err)
	}

	fmt.Printf("episodes: %d\n", episodes)
	fmt.Printf("rows:     %d\n", rows)
	fmt.Printf("avg value: %.4f\n", avgValue)

	topRows, err := db.Query(`
		SELECT episode_id, COUNT(*) AS moves, MAX(value) AS value
		FROM training_rows
		GROUP BY episode_id
		ORDER BY value DESC
		LIMIT 10
	`)
	if err != nil {
		log.Fatalf("querying top episodes: %v", err)
	}
	defer topRows.Close()

	fmt.Println("\ntop episodes by quality:")
	for topRows.Next() {
		var episodeID string
		var moves int64
		var value float64
		if err := topRows.Scan(&episodeID, &moves, &value); err != nil {
			log.Fatalf("scanning top episode: %v", err)
		}
		fmt.Printf("  %-16s moves=%-4d value=%.4f\n", episodeID, moves, value)
	}
	if err := topRows.Err(); err != nil {
		log.Fatalf("iterating top episodes: %v", err)
	}
}

// openDuckDB opens an in-memory DuckDB connection with a view over every
// parquet batch under dir, mirroring viewer/db.go's glob-based
// read_parquet setup but for a single directory instead of a list of
// archive roots.
func openDuckDB(dir string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, err
	}

	glob := filepath.Join(dir, "**", "*.parquet")
	sqlText := `CREATE OR REPLACE VIEW training_rows AS
		SELECT * FROM read_parquet(['` + escapeSQLString(glob) + `'], filename=true, union_by_name=true)
		WHERE NOT contains(filename, '/tmp/')`
	if _, err := db.Exec(sqlText); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
