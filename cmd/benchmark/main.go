// Command benchmark replays curated win/loss/draw position sets through the
// solver and reports timing, node counts, and any wrong evaluations found.
//
// Each line of a position set file has the form:
//
//	<notation> <win|loss|draw> <distance>
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mkern/katalon/internal/board"
	"github.com/mkern/katalon/internal/engine"
	"github.com/mkern/katalon/internal/storage"
)

var (
	dataDir = flag.String("datadir", "res/benchmark", "directory holding depth{N}_{variant}.txt position sets")
	timeout = flag.Duration("timeout", 10*time.Second, "per-position search timeout")
	driver  = flag.String("driver", "plain", "search driver: plain, mtdf, or bisection")
	history = flag.Bool("history", true, "record this run's results to the local benchmark history database")
)

type entry struct {
	board board.Board
	eval  engine.Eval
}

func parseEntry(line string) (entry, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return entry{}, fmt.Errorf("malformed line %q", line)
	}

	b, err := board.Load(fields[0])
	if err != nil {
		return entry{}, err
	}

	var result engine.Result
	switch fields[1] {
	case "win":
		result = engine.Win
	case "loss":
		result = engine.Loss
	case "draw":
		result = engine.Draw
	default:
		return entry{}, fmt.Errorf("unknown result %q", fields[1])
	}

	distance, err := strconv.ParseInt(fields[2], 10, 32)
	if err != nil {
		return entry{}, err
	}

	return entry{board: b, eval: engine.EvalFrom(result, int32(distance))}, nil
}

func loadSet(path string) ([]entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		e, err := parseEntry(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}

func search(b *board.Board, d string, table *engine.Table) (engine.Eval, engine.Stats, error) {
	switch d {
	case "mtdf":
		return engine.EvalMTDF(b, *timeout, table)
	case "bisection":
		return engine.EvalBisection(b, *timeout, table)
	default:
		return engine.EvalPlain(b, *timeout, table)
	}
}

func runSet(name string, entries []entry) storage.BenchmarkRun {
	run := storage.BenchmarkRun{
		Timestamp: time.Now(),
		DepthSet:  name,
		Driver:    storage.Driver(*driver),
		Positions: len(entries),
	}

	table := engine.NewTableFromBytes(engine.DefaultTableBytes)
	start := time.Now()

	for i, e := range entries {
		value, stats, err := search(&e.board, *driver, table)
		if err != nil {
			run.Timeouts++
			continue
		}
		if value != e.eval {
			fmt.Printf("error in %d: wrong eval of %s, should be %s\n", i, value, e.eval)
		} else {
			run.Correct++
		}
		run.TotalNodes += stats.Nodes
	}

	run.Elapsed = time.Since(start)
	return run
}

func main() {
	flag.Parse()

	variants := []string{"low", "high"}
	depths := []int{20, 10}

	var runs []storage.BenchmarkRun
	for _, depth := range depths {
		for _, variant := range variants {
			name := fmt.Sprintf("depth%d_%s", depth, variant)
			path := filepath.Join(*dataDir, name+".txt")

			entries, err := loadSet(path)
			if err != nil {
				log.Printf("skipping %s: %v", path, err)
				continue
			}

			fmt.Printf("starting benchmark of %s\n", name)
			runs = append(runs, runSet(name, entries))
		}
	}

	printReport(runs)

	if *history {
		if err := recordHistory(runs); err != nil {
			log.Printf("warning: could not record benchmark history: %v", err)
		}
	}
}

func printReport(runs []storage.BenchmarkRun) {
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].DepthSet < runs[j].DepthSet })

	fmt.Printf("%-16s %8s %8s %10s %10s\n", "test set", "timeouts", "correct", "time(ms)", "nodes")
	for _, r := range runs {
		fmt.Printf("%-16s %8d %8d %10d %10d\n",
			r.DepthSet, r.Timeouts, r.Correct, r.Elapsed.Milliseconds(), r.TotalNodes)
	}
}

func recordHistory(runs []storage.BenchmarkRun) error {
	dbDir, err := storage.GetDatabaseDir()
	if err != nil {
		return err
	}

	s, err := storage.NewStorage(dbDir)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, r := range runs {
		if err := s.RecordRun(r); err != nil {
			return err
		}
	}
	return nil
}
