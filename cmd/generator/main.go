// Command generator produces random positions at a fixed movecount and
// solves each one, printing notation/eval/time lines suitable for curating
// new benchmark position sets.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/mkern/katalon/internal/board"
	"github.com/mkern/katalon/internal/engine"
	"github.com/mkern/katalon/internal/player"
)

var (
	depth   = flag.Int("depth", 4, "movecount to generate positions at")
	timeout = flag.Duration("timeout", 5*time.Second, "per-position search timeout")
	count   = flag.Int("count", 0, "number of positions to generate; 0 runs forever")
)

func generate(depth int, rng *player.Random) (board.Board, string) {
	for {
		b := board.New()
		notation := ""
		reached := true

		for i := 0; i < depth; i++ {
			square, cell := rng.Play(&b)
			if b.IsFirst() {
				notation += strconv.Itoa(int(square))
			}
			notation += strconv.Itoa(int(cell))
			b.Play(square, cell)

			if _, over := b.IsOver(); over {
				reached = false
				break
			}
		}

		if reached {
			return b, notation
		}
	}
}

func main() {
	flag.Parse()

	rng := player.NewRandom(time.Now().UnixNano())
	table := engine.NewTableFromBytes(engine.DefaultTableBytes)

	for i := 0; *count == 0 || i < *count; i++ {
		b, notation := generate(*depth, rng)

		start := time.Now()
		value, _, err := engine.EvalPlain(&b, *timeout, table)
		if err != nil {
			continue
		}
		fmt.Printf("%s, %s, %dms\n", notation, value, time.Since(start).Milliseconds())
	}
}
