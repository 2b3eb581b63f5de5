// Package player implements the move-choosing strategies pitted against
// each other by cmd/play (cmd/maker and cmd/generator use the random mover):
// a human at the terminal, a uniformly random mover, and the exact solver.
package player

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/mkern/katalon/internal/board"
	"github.com/mkern/katalon/internal/engine"
)

// Player chooses a move to play from the current position.
type Player interface {
	Play(b *board.Board) (square, cell uint8)
}

// moveFormat matches an optional square digit followed by a mandatory cell
// digit, e.g. "24" (square 2, cell 4) or "4" (cell 4, square implied).
var moveFormat = regexp.MustCompile(`^([0-4]?)([0-4])$`)

// Human reads moves from an input stream, prompting on an output stream.
type Human struct {
	In  *bufio.Reader
	Out io.Writer
}

// NewHuman returns a Human reading from in and prompting to out.
func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{In: bufio.NewReader(in), Out: out}
}

// Play prompts for and validates a move, reprompting on any bad input.
func (h *Human) Play(b *board.Board) (uint8, uint8) {
	for {
		fmt.Fprintf(h.Out, "%s > ", b.OnTurn())

		line, err := h.In.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(h.Out, "Error: could not read input.")
			continue
		}
		line = strings.TrimSpace(line)

		m := moveFormat.FindStringSubmatch(line)
		if m == nil {
			fmt.Fprintln(h.Out, "Please use the move format: [0-4]<0-4>.")
			continue
		}

		cell := m[2][0] - '0'

		var square uint8
		if m[1] != "" {
			square = m[1][0] - '0'
			if !b.IsFirst() {
				if want, _ := b.Square(); square != want {
					fmt.Fprintf(h.Out,
						"Error: you provided the square %d, but the square constraint is on %d.\n"+
							"Hint: you don't have to specify the square.\n",
						square, want)
					continue
				}
			}
		} else {
			if b.IsFirst() {
				fmt.Fprintln(h.Out, "Error: please also provide the square.")
				continue
			}
			square, _ = b.Square()
		}

		if !b.CanPlay(square, cell) {
			fmt.Fprintln(h.Out, "Error: illegal move.")
			continue
		}
		return square, cell
	}
}

// Random plays a uniformly random legal move. The first move of the game is
// drawn from all 25 (square, cell) pairs rather than the 6 canonical ones,
// since any first move is legal and this player has no opening theory.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random player seeded from seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Play chooses a move uniformly among the legal ones.
func (r *Random) Play(b *board.Board) (uint8, uint8) {
	if b.IsFirst() {
		return uint8(r.rng.Intn(5)), uint8(r.rng.Intn(5))
	}

	square, _ := b.Square()
	var options []uint8
	for cell := uint8(0); cell < 5; cell++ {
		if b.CanPlay(square, cell) {
			options = append(options, cell)
		}
	}
	return square, options[r.rng.Intn(len(options))]
}

// Solver plays the first move of an optimal line, as found by the exact
// negamax search, within a fixed per-move timeout.
type Solver struct {
	Timeout time.Duration
	Table   *engine.Table
	rng     *rand.Rand
}

// NewSolver returns a Solver with the given per-move timeout, sharing table
// across moves (pass nil to have one allocated on first use).
func NewSolver(timeout time.Duration, table *engine.Table) *Solver {
	return &Solver{Timeout: timeout, Table: table, rng: rand.New(rand.NewSource(1))}
}

// Play searches b and returns one of the optimal moves, chosen uniformly at
// random among ties.
func (s *Solver) Play(b *board.Board) (uint8, uint8) {
	if s.Table == nil {
		s.Table = engine.NewTableFromBytes(engine.DefaultTableBytes)
	}

	_, moves, _, err := engine.BestMoves(b, s.Timeout, s.Table)
	if err != nil || len(moves) == 0 {
		// Ran out of time before resolving a single move: fall back to any
		// legal move rather than leaving the game stuck.
		fallback := NewRandom(s.rng.Int63())
		return fallback.Play(b)
	}

	m := moves[s.rng.Intn(len(moves))]
	return m.Square, m.Cell
}
