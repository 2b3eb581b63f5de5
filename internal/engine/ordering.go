package engine

import "github.com/mkern/katalon/internal/board"

// orderMoves sorts moves in place so that takes into an already-full square
// are searched last. Early squares tend to prune more of the tree since
// their subtrees are shallower, so trying them first raises alpha sooner.
func orderMoves(node *board.Board, moves []board.Move) {
	full := make([]bool, len(moves))
	for i, m := range moves {
		full[i] = node.IsFull(m.Square)
	}

	// Stable two-way partition: non-full moves first, full moves last.
	out := make([]board.Move, 0, len(moves))
	for i, m := range moves {
		if !full[i] {
			out = append(out, m)
		}
	}
	for i, m := range moves {
		if full[i] {
			out = append(out, m)
		}
	}
	copy(moves, out)
}
