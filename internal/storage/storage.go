package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const runKeyPrefix = "run:"

// Driver names the search strategy used for a benchmark run.
type Driver string

const (
	DriverPlain     Driver = "plain"
	DriverMTDF      Driver = "mtdf"
	DriverBisection Driver = "bisection"
)

// BenchmarkRun records the outcome of one invocation of cmd/benchmark
// against a single depth{N}_{variant}.txt position set.
type BenchmarkRun struct {
	Timestamp  time.Time     `json:"timestamp"`
	DepthSet   string        `json:"depth_set"`
	Driver     Driver        `json:"driver"`
	Positions  int           `json:"positions"`
	Correct    int           `json:"correct"`
	Timeouts   int           `json:"timeouts"`
	TotalNodes uint64        `json:"total_nodes"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Accuracy returns the fraction of positions evaluated correctly.
func (r BenchmarkRun) Accuracy() float64 {
	if r.Positions == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Positions)
}

// Storage wraps BadgerDB for persisting benchmark run history.
type Storage struct {
	db *badger.DB
}

// NewStorage opens (creating if necessary) the database under dir.
func NewStorage(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func runKey(ts time.Time) []byte {
	return []byte(fmt.Sprintf("%s%020d", runKeyPrefix, ts.UnixNano()))
}

// RecordRun saves a completed benchmark run, keyed by its timestamp so that
// History returns runs in chronological order.
func (s *Storage) RecordRun(run BenchmarkRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(run.Timestamp), data)
	})
}

// History returns every recorded benchmark run, oldest first.
func (s *Storage) History() ([]BenchmarkRun, error) {
	var runs []BenchmarkRun

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			item := it.Item()
			var run BenchmarkRun
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &run)
			})
			if err != nil {
				return err
			}
			runs = append(runs, run)
		}
		return nil
	})

	return runs, err
}

// HistoryFor returns every recorded run for the given depth set, oldest
// first.
func (s *Storage) HistoryFor(depthSet string) ([]BenchmarkRun, error) {
	all, err := s.History()
	if err != nil {
		return nil, err
	}

	var filtered []BenchmarkRun
	for _, r := range all {
		if r.DepthSet == depthSet {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}
