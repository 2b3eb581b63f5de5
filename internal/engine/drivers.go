package engine

import (
	"errors"
	"time"

	"github.com/mkern/katalon/internal/board"
)

// errTimeout is returned internally by Searcher.Eval/Root when the search
// was interrupted by the driver's stop signal before finishing.
var errTimeout = errors.New("engine: search timed out")

// ErrTimeout is returned by the driver functions (BestMoves, EvalPlain,
// EvalMTDF, EvalBisection) when the search did not finish before timeout.
var ErrTimeout = errTimeout

// DefaultTableBytes sizes a fresh Table when a driver is not given one.
const DefaultTableBytes = 1 << 30 // 1 GiB

// runWithTimeout spawns work on a worker goroutine and races it against the
// given deadline. On timeout the stop channel is closed, telling the worker
// to return as soon as it next polls; the driver then blocks uninterrupted
// until the worker actually exits, so table state is never read concurrently
// with a write.
func runWithTimeout[T any](timeout time.Duration, work func(stopCh <-chan struct{}) T) T {
	stopCh := make(chan struct{})
	resultCh := make(chan T, 1)

	go func() {
		resultCh <- work(stopCh)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-resultCh:
		return result
	case <-timer.C:
		close(stopCh)
		return <-resultCh
	}
}

// result bundles a driver's outcome so it can travel through the single
// generic result channel used by runWithTimeout.
type result struct {
	value Eval
	moves []board.Move
	stats Stats
	err   error
}

// BestMoves returns the set of every move from node that is optimal for the
// player on turn, alongside the position's evaluation, within the given
// timeout. When node has only one legal move, that move is returned without
// running any search, and the accompanying Eval is undetermined — callers
// after the move set alone should ignore it, and should call EvalPlain (or
// another driver) directly if they need the actual evaluation.
func BestMoves(node *board.Board, timeout time.Duration, table *Table) (Eval, []board.Move, Stats, error) {
	// A single legal move needs no search to be optimal; return it directly,
	// matching original_source's bestmoves() short-circuit.
	if moves := node.Moves(); len(moves) == 1 {
		return NewEval(0), moves, Stats{}, nil
	}

	if table == nil {
		table = NewTableFromBytes(DefaultTableBytes)
	}

	r := runWithTimeout(timeout, func(stopCh <-chan struct{}) result {
		s := NewSearcher(table, node, stopCh)
		start := time.Now()
		value, moves, err := s.Root(node, MinEval, MaxEval)
		return result{value: value, moves: moves, err: err, stats: Stats{
			Nodes:    s.Nodes(),
			Elapsed:  time.Since(start),
			TimedOut: s.TimedOut(),
			Table:    table.statsSnapshot(),
		}}
	})

	return r.value, r.moves, r.stats, r.err
}

// EvalPlain evaluates node with a single full-window negamax search.
func EvalPlain(node *board.Board, timeout time.Duration, table *Table) (Eval, Stats, error) {
	if table == nil {
		table = NewTableFromBytes(DefaultTableBytes)
	}

	r := runWithTimeout(timeout, func(stopCh <-chan struct{}) result {
		s := NewSearcher(table, node, stopCh)
		start := time.Now()
		value, err := s.Eval(node, MinEval, MaxEval)
		return result{value: value, err: err, stats: Stats{
			Nodes:    s.Nodes(),
			Elapsed:  time.Since(start),
			TimedOut: s.TimedOut(),
			Table:    table.statsSnapshot(),
		}}
	})

	return r.value, r.stats, r.err
}

// EvalMTDF evaluates node with the MTD(f) null-window iteration: repeated
// zero-width searches converging on the exact value, typically visiting far
// fewer nodes than a single full-window search at the cost of more TT churn.
func EvalMTDF(node *board.Board, timeout time.Duration, table *Table) (Eval, Stats, error) {
	if table == nil {
		table = NewTableFromBytes(DefaultTableBytes)
	}

	r := runWithTimeout(timeout, func(stopCh <-chan struct{}) result {
		s := NewSearcher(table, node, stopCh)
		start := time.Now()

		max := int32(MaxEval)
		min := int32(MinEval)
		var guess int32

		var windows int
		for min < max {
			windows++
			beta := guess
			if min+1 > beta {
				beta = min + 1
			}
			alpha := beta - 1

			value, err := s.Eval(node, NewEval(alpha), NewEval(beta))
			if err != nil {
				return result{err: err, stats: Stats{
					Nodes: s.Nodes(), Elapsed: time.Since(start),
					TimedOut: true, NullWindows: windows, Table: table.statsSnapshot(),
				}}
			}
			guess = value.Raw()

			if guess < beta {
				max = guess
			} else {
				min = guess
			}
		}

		return result{value: NewEval(guess), stats: Stats{
			Nodes: s.Nodes(), Elapsed: time.Since(start),
			NullWindows: windows, Table: table.statsSnapshot(),
		}}
	})

	return r.value, r.stats, r.err
}

// EvalBisection evaluates node by binary-searching the Eval range with
// repeated null-window probes, converging in O(log(range)) searches.
func EvalBisection(node *board.Board, timeout time.Duration, table *Table) (Eval, Stats, error) {
	if table == nil {
		table = NewTableFromBytes(DefaultTableBytes)
	}

	r := runWithTimeout(timeout, func(stopCh <-chan struct{}) result {
		s := NewSearcher(table, node, stopCh)
		start := time.Now()

		max := int32(MaxEval)
		min := int32(MinEval)
		var mid int32
		var windows int

		for {
			windows++
			mid = (min + max) / 2

			alpha := NewEval(mid - 1)
			beta := NewEval(mid + 1)

			value, err := s.Eval(node, alpha, beta)
			if err != nil {
				return result{err: err, stats: Stats{
					Nodes: s.Nodes(), Elapsed: time.Since(start),
					TimedOut: true, NullWindows: windows, Table: table.statsSnapshot(),
				}}
			}
			got := value.Raw()

			if got == mid {
				break
			} else if got < mid {
				max = got
			} else {
				min = got
			}
		}

		return result{value: NewEval(mid), stats: Stats{
			Nodes: s.Nodes(), Elapsed: time.Since(start),
			NullWindows: windows, Table: table.statsSnapshot(),
		}}
	})

	return r.value, r.stats, r.err
}
