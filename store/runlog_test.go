package store

import (
	"path/filepath"
	"testing"
)

func TestRunLogRecordsAndReopensWithCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	l, err := OpenRunLog(path)
	if err != nil {
		t.Fatalf("OpenRunLog: %v", err)
	}
	if l.Count() != 0 {
		t.Fatalf("fresh log Count() = %d, want 0", l.Count())
	}
	for i := 0; i < 3; i++ {
		if err := l.Record(10+i, 0.5); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if l.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", l.Count())
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	l2, err := OpenRunLog(path)
	if err != nil {
		t.Fatalf("reopen OpenRunLog: %v", err)
	}
	defer l2.Close()
	if l2.Count() != 3 {
		t.Fatalf("reopened Count() = %d, want 3", l2.Count())
	}
}
