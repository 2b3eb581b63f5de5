package storage

import (
	"os"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	dir, err := os.MkdirTemp("", "katalon-storage-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := NewStorage(dir)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndLoadHistory(t *testing.T) {
	s := newTestStorage(t)

	run := BenchmarkRun{
		Timestamp:  time.Now(),
		DepthSet:   "depth20_low",
		Driver:     DriverPlain,
		Positions:  20,
		Correct:    19,
		Timeouts:   1,
		TotalNodes: 123456,
		Elapsed:    2 * time.Second,
	}

	if err := s.RecordRun(run); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	history, err := s.History()
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("len(History()) = %d, want 1", len(history))
	}
	if history[0].DepthSet != run.DepthSet || history[0].Correct != run.Correct {
		t.Errorf("History()[0] = %+v, want %+v", history[0], run)
	}
}

func TestHistoryForFiltersByDepthSet(t *testing.T) {
	s := newTestStorage(t)

	now := time.Now()
	if err := s.RecordRun(BenchmarkRun{Timestamp: now, DepthSet: "depth20_low"}); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := s.RecordRun(BenchmarkRun{Timestamp: now.Add(time.Millisecond), DepthSet: "depth10_high"}); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	filtered, err := s.HistoryFor("depth20_low")
	if err != nil {
		t.Fatalf("HistoryFor: %v", err)
	}
	if len(filtered) != 1 || filtered[0].DepthSet != "depth20_low" {
		t.Errorf("HistoryFor(depth20_low) = %+v, want one depth20_low run", filtered)
	}
}

func TestBenchmarkRunAccuracy(t *testing.T) {
	r := BenchmarkRun{Positions: 20, Correct: 15}
	if got := r.Accuracy(); got != 0.75 {
		t.Errorf("Accuracy() = %f, want 0.75", got)
	}

	empty := BenchmarkRun{}
	if got := empty.Accuracy(); got != 0 {
		t.Errorf("Accuracy() on zero positions = %f, want 0", got)
	}
}

func TestDataPaths(t *testing.T) {
	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir: %v", err)
	}
	if dataDir == "" {
		t.Fatal("GetDataDir returned empty path")
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("data directory was not created: %s", dataDir)
	}

	openingsDir, err := GetOpeningsDir()
	if err != nil {
		t.Fatalf("GetOpeningsDir: %v", err)
	}
	if _, err := os.Stat(openingsDir); os.IsNotExist(err) {
		t.Errorf("openings directory was not created: %s", openingsDir)
	}
}
