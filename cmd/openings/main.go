// Command openings enumerates the distinct canonical board states reachable
// within a given movecount, deduplicating by symmetry orbit, dumps the
// resulting key set to disk, and reads the dump back to verify it.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/mkern/katalon/internal/board"
	"github.com/mkern/katalon/internal/cache"
	"github.com/mkern/katalon/internal/engine"
	"github.com/mkern/katalon/internal/storage"
)

var (
	depth   = flag.Int("depth", 2, "maximum movecount to enumerate")
	output  = flag.String("output", "", "output file path; defaults to <openings-dir>/depth<N>.bin")
	warm    = flag.Bool("warm", true, "solve and warm the opening cache for each canonical state")
	timeout = flag.Duration("timeout", 2*time.Second, "per-position search timeout while warming")
)

// backtrack enumerates the distinct canonical states reachable within depth
// plies, recording one representative key per symmetry orbit in states. When
// oc is non-nil, every newly discovered canonical state is also solved and
// stashed in oc; the searches run here do not read oc back.
func backtrack(b board.Board, depth int, states map[uint64]struct{}, oc *cache.OpeningCache, table *engine.Table) {
	if depth == 0 {
		return
	}

	recurse := func(square, cell uint8) {
		if !b.CanPlay(square, cell) {
			return
		}
		child := b
		child.Play(square, cell)

		keys := child.Keys()
		for _, key := range keys {
			if _, seen := states[key]; seen {
				return
			}
		}

		states[child.Key()] = struct{}{}
		if oc != nil {
			canonical := cache.Canonical(keys)
			if value, moves, _, err := engine.BestMoves(&child, *timeout, table); err == nil && len(moves) > 0 {
				oc.Put(canonical, cache.Entry{Value: int32(value.Raw()), BestMove: moves[0].Cell})
			}
		}
		backtrack(child, depth-1, states, oc, table)
	}

	if b.IsFirst() {
		for square := uint8(0); square < 5; square++ {
			for cell := uint8(0); cell < 5; cell++ {
				recurse(square, cell)
			}
		}
	} else {
		square, _ := b.Square()
		for cell := uint8(0); cell < 5; cell++ {
			recurse(square, cell)
		}
	}
}

func main() {
	flag.Parse()

	var oc *cache.OpeningCache
	var table *engine.Table
	if *warm {
		var err error
		oc, err = cache.New(1 << 16)
		if err != nil {
			log.Fatalf("could not create opening cache: %v", err)
		}
		defer oc.Close()
		table = engine.NewTableFromBytes(engine.DefaultTableBytes)
	}

	states := make(map[uint64]struct{})
	backtrack(board.New(), *depth, states, oc, table)

	fmt.Printf("count unique = %d\n", len(states))
	if oc != nil {
		m := oc.Metrics()
		fmt.Printf("warmed cache: %d entries, %.1f%% hit ratio\n", m.KeysAdded(), m.Ratio()*100)
	}

	path := *output
	if path == "" {
		dir, err := storage.GetOpeningsDir()
		if err != nil {
			log.Fatalf("could not resolve openings directory: %v", err)
		}
		path = filepath.Join(dir, fmt.Sprintf("depth%d.bin", *depth))
	}

	if err := storage.SaveOpenings(path, states); err != nil {
		log.Fatalf("could not save openings: %v", err)
	}
	fmt.Printf("saved to %s\n", path)

	loaded, err := storage.LoadOpenings(path)
	if err != nil {
		log.Fatalf("could not verify saved openings: %v", err)
	}
	if len(loaded) != len(states) {
		log.Fatalf("round-trip mismatch: wrote %d, read back %d", len(states), len(loaded))
	}
}
