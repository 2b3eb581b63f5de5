package player

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mkern/katalon/internal/board"
	"github.com/mkern/katalon/internal/engine"
)

func TestHumanPlayAcceptsMoveWithSquare(t *testing.T) {
	in := strings.NewReader("02\n")
	var out bytes.Buffer
	h := NewHuman(in, &out)

	b := board.New()
	square, cell := h.Play(&b)
	if square != 0 || cell != 2 {
		t.Errorf("Play() = (%d, %d), want (0, 2)", square, cell)
	}
}

func TestHumanPlayRepromptsOnBadFormat(t *testing.T) {
	// "5" isn't a valid digit, "02" is legal, so the prompt should skip the
	// first line and return the second.
	in := strings.NewReader("5\n02\n")
	var out bytes.Buffer
	h := NewHuman(in, &out)

	b := board.New()
	square, cell := h.Play(&b)
	if square != 0 || cell != 2 {
		t.Errorf("Play() = (%d, %d), want (0, 2)", square, cell)
	}
	if !strings.Contains(out.String(), "move format") {
		t.Errorf("expected a reprompt message, got %q", out.String())
	}
}

func TestHumanPlayConstrainedToSquare(t *testing.T) {
	b := board.New()
	b.Play(0, 0)
	want, _ := b.Square()

	// "13" names the wrong square explicitly (should reprompt), then "3"
	// omits the square, which is inferred as the required one.
	in := strings.NewReader("13\n3\n")
	var out bytes.Buffer
	h := NewHuman(in, &out)

	square, cell := h.Play(&b)
	if square != want || cell != 3 {
		t.Errorf("Play() = (%d, %d), want (%d, 3)", square, cell, want)
	}
	if !strings.Contains(out.String(), "square constraint") {
		t.Errorf("expected a square-constraint reprompt, got %q", out.String())
	}
}

func TestRandomPlayFirstMoveCoversAllSquares(t *testing.T) {
	r := NewRandom(1)
	b := board.New()

	seen := make(map[uint8]bool)
	for i := 0; i < 500; i++ {
		square, cell := r.Play(&b)
		if !b.CanPlay(square, cell) {
			t.Fatalf("Play() returned illegal first move (%d, %d)", square, cell)
		}
		seen[square] = true
	}
	if len(seen) < 5 {
		t.Errorf("first move should draw from all 5 squares, not just the canonical 6 moves, saw only %v", seen)
	}
}

func TestRandomPlayRespectsSquareConstraint(t *testing.T) {
	b, err := board.Load("00")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	r := NewRandom(1)

	want, _ := b.Square()
	for i := 0; i < 20; i++ {
		square, cell := r.Play(&b)
		if square != want {
			t.Errorf("Play() square = %d, want %d", square, want)
		}
		if !b.CanPlay(square, cell) {
			t.Errorf("Play() returned illegal move (%d, %d)", square, cell)
		}
	}
}

func TestSolverPlayReturnsLegalMove(t *testing.T) {
	b, err := board.Load("2320212422")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := NewSolver(time.Second, engine.NewTableFromBytes(1<<20))
	square, cell := s.Play(&b)
	if !b.CanPlay(square, cell) {
		t.Errorf("Solver.Play() returned illegal move (%d, %d)", square, cell)
	}
}
