// Package engine implements the Katalon negamax solver.
package engine

import (
	"fmt"

	"github.com/mkern/katalon/internal/board"
)

// MovecountLimit upper-bounds the distance-to-result a search can report.
const MovecountLimit = board.MovecountLimit

// Eval is a single signed integer encoding a total-ordered (result,
// distance) pair: n > L means Win in (2L+1-n) plies, n < -L means Loss in
// (2L+1+n) plies, |n| <= L means Draw with signed preference distance n.
// Negation is plain arithmetic negation, which is why the encoding exists.
type Eval int32

const (
	// MaxEval is the best possible evaluation: an immediate win.
	MaxEval Eval = 2*MovecountLimit + 1
	// MinEval is the worst possible evaluation: an immediate loss.
	MinEval Eval = -(2*MovecountLimit + 1)
)

// Result names the outcome a terminal Eval encodes, independent of distance.
type Result uint8

const (
	Loss Result = iota
	Draw
	Win
)

func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "draw"
	}
}

// NewEval wraps a raw encoded value. Used by the null-window drivers, which
// operate directly on raw integer bounds rather than (result, distance).
func NewEval(n int32) Eval {
	return Eval(n)
}

// EvalFrom constructs the Eval for the given result at the given distance.
// distance must be in [0, L] for Win/Loss, and may range over [-L, L] for a
// Draw (the sign is a tie-breaking preference under negation).
func EvalFrom(r Result, distance int32) Eval {
	switch r {
	case Win:
		return Eval(2*MovecountLimit + 1 - distance)
	case Loss:
		return Eval(-(2*MovecountLimit + 1) + distance)
	default:
		return Eval(distance)
	}
}

// Raw returns the underlying encoded integer.
func (e Eval) Raw() int32 {
	return int32(e)
}

// Negate returns the evaluation from the opposing player's perspective.
func (e Eval) Negate() Eval {
	return -e
}

// Human decodes the evaluation into its result and distance. The distance is
// non-negative for a win or loss and keeps its sign for a draw.
func (e Eval) Human() (Result, int32) {
	n := int32(e)
	switch {
	case n > MovecountLimit:
		return Win, 2*MovecountLimit + 1 - n
	case n < -MovecountLimit:
		return Loss, 2*MovecountLimit + 1 + n
	default:
		return Draw, n
	}
}

func (e Eval) String() string {
	r, d := e.Human()
	return fmt.Sprintf("%s in %d", r, d)
}

// Relative rebases an Eval from the root's frame into the frame of a node
// reached after movecount-rootcount plies from the root. TT entries are
// stored relative to the node that produced them so they remain valid when
// the same node is later reached via a path of different length.
func (e Eval) Relative(rootcount, movecount int32) Eval {
	d := movecount - rootcount
	n := int32(e)
	switch {
	case n > MovecountLimit:
		return Eval(n + d)
	case n < -MovecountLimit:
		return Eval(n - d)
	case n >= 0:
		return Eval(n - d)
	default:
		return Eval(n + d)
	}
}

// Absolute is the inverse of Relative: it rebases a node-relative Eval (as
// read back from the TT) into the root's frame.
func (e Eval) Absolute(rootcount, movecount int32) Eval {
	d := movecount - rootcount
	n := int32(e)
	switch {
	case n > MovecountLimit:
		return Eval(n - d)
	case n < -MovecountLimit:
		return Eval(n + d)
	case n >= 0:
		return Eval(n + d)
	default:
		return Eval(n - d)
	}
}

// Less reports whether e ranks strictly below other in the total order.
func (e Eval) Less(other Eval) bool {
	return e < other
}

// Compare returns -1, 0, or 1 as e is less than, equal to, or greater than
// other.
func (e Eval) Compare(other Eval) int {
	switch {
	case e < other:
		return -1
	case e > other:
		return 1
	default:
		return 0
	}
}
