package engine

import (
	"github.com/mkern/katalon/internal/board"
)

// Searcher holds the mutable state of a single negamax search: the
// transposition table it consults and updates, the root frame its Eval
// values are rebased against, and the stop signal it polls.
type Searcher struct {
	table      *Table
	rootcount  int32
	rootplayer board.Player
	stopCh     <-chan struct{}

	nodes    uint64
	timedOut bool
}

// NewSearcher creates a searcher rooted at node, sharing table across the
// whole call (and, if the caller reuses a table between calls, across
// searches too).
func NewSearcher(table *Table, node *board.Board, stopCh <-chan struct{}) *Searcher {
	return &Searcher{
		table:      table,
		rootcount:  node.MoveCount(),
		rootplayer: node.OnTurn(),
		stopCh:     stopCh,
	}
}

// Nodes returns the number of nodes visited so far.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// TimedOut reports whether the last search call was interrupted.
func (s *Searcher) TimedOut() bool {
	return s.timedOut
}

func (s *Searcher) stopped() bool {
	select {
	case <-s.stopCh:
		return true
	default:
		return false
	}
}

// evaluation scores a terminal result from the perspective of onturn, given
// the result's winner (if any) and the root player the whole search is
// rooted at.
func evaluation(result board.Result, onturn, rootplayer board.Player, distance int32) Eval {
	var r Result
	if winner, ok := result.Winner(); ok {
		if winner == rootplayer {
			r = Win
		} else {
			r = Loss
		}
	} else {
		r = Draw
	}

	e := EvalFrom(r, distance)
	if rootplayer != onturn {
		return e.Negate()
	}
	return e
}

// Eval runs a fail-soft alpha-beta negamax search of node within the
// (alpha, beta) window, returning the node's evaluation from the
// perspective of the player on turn at node.
func (s *Searcher) Eval(node *board.Board, alpha, beta Eval) (Eval, error) {
	if s.nodes&4095 == 0 && s.stopped() {
		s.timedOut = true
		return 0, errTimeout
	}
	s.nodes++

	alphaOriginal := alpha

	if entry, found := s.table.Get(node.Key()); found {
		tableValue := Eval(entry.Value).Absolute(s.rootcount, node.MoveCount())
		switch entry.Flag {
		case Exact:
			return tableValue, nil
		case LowerBound:
			if tableValue > alpha {
				alpha = tableValue
			}
		case UpperBound:
			if tableValue < beta {
				beta = tableValue
			}
		}
		if alpha >= beta {
			return tableValue, nil
		}
	}

	if result, over := node.IsOver(); over {
		return evaluation(result, node.OnTurn(), s.rootplayer, node.MoveCount()-s.rootcount), nil
	}

	moves := node.Moves()
	orderMoves(node, moves)

	value := MinEval
	var bestMove uint8 = board.NoMove

	for _, m := range moves {
		child := *node
		child.Play(m.Square, m.Cell)

		childValue, err := s.Eval(&child, -beta, -alpha)
		if err != nil {
			return 0, err
		}
		childValue = childValue.Negate()

		if childValue > value {
			value = childValue
			bestMove = board.PackMove(m)
		}

		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			break
		}
	}

	flag := Exact
	switch {
	case value <= alphaOriginal:
		flag = UpperBound
	case value >= beta:
		flag = LowerBound
	}
	s.table.Put(node.Key(), value.Relative(s.rootcount, node.MoveCount()), flag, bestMove)

	return value, nil
}

// Root runs the same search as Eval but additionally reports every move
// tied for best, per spec's bestmoves contract: the returned set accounts
// for every legal move whose resulting position negates to the returned
// value, not merely whichever one happened to be explored last.
func (s *Searcher) Root(node *board.Board, alpha, beta Eval) (Eval, []board.Move, error) {
	if result, over := node.IsOver(); over {
		return evaluation(result, node.OnTurn(), s.rootplayer, 0), nil, nil
	}

	moves := node.Moves()
	orderMoves(node, moves)

	alphaOriginal := alpha
	value := MinEval
	var best []board.Move

	for _, m := range moves {
		child := *node
		child.Play(m.Square, m.Cell)

		// Every child gets the full window so that a fail-soft bound is never
		// mistaken for a tie with the best value found so far.
		childValue, err := s.Eval(&child, -beta, -alphaOriginal)
		if err != nil {
			return 0, nil, err
		}
		childValue = childValue.Negate()

		switch {
		case childValue > value:
			value = childValue
			best = []board.Move{m}
		case childValue == value:
			best = append(best, m)
		}

		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			break
		}
	}

	flag := Exact
	switch {
	case value <= alphaOriginal:
		flag = UpperBound
	case value >= beta:
		flag = LowerBound
	}
	var bestMove uint8 = board.NoMove
	if len(best) > 0 {
		bestMove = board.PackMove(best[0])
	}
	s.table.Put(node.Key(), value.Relative(s.rootcount, node.MoveCount()), flag, bestMove)

	return value, best, nil
}
