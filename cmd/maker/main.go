// Command maker is an interactive notation-editing REPL: type moves to play
// them, or one of the commands below to inspect or rewind the game.
package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mkern/katalon/internal/board"
	"github.com/mkern/katalon/internal/engine"
	"github.com/mkern/katalon/internal/player"
)

var moveFormat = regexp.MustCompile(`^([0-4]?)([0-4])$`)

type state struct {
	board    board.Board
	notation string
	finished bool
}

func newState() *state {
	return &state{board: board.New()}
}

func (s *state) play(square, cell uint8) {
	if s.board.IsFirst() {
		s.notation += strconv.Itoa(int(square))
	}
	s.notation += strconv.Itoa(int(cell))
	s.board.Play(square, cell)
}

func (s *state) undo() {
	switch s.board.MoveCount() {
	case 0:
		return
	case 1:
		s.notation = ""
		s.board = board.New()
	default:
		s.finished = false
		s.notation = s.notation[:len(s.notation)-1]
		b, err := board.Load(s.notation)
		if err != nil {
			panic(err)
		}
		s.board = b
	}
}

func (s *state) reset() {
	s.finished = false
	s.board = board.New()
	s.notation = ""
}

func (s *state) load(notation string) bool {
	b, err := board.Load(notation)
	if err != nil {
		fmt.Println(err)
		return false
	}
	_, over := b.IsOver()
	s.finished = over
	s.board = b
	s.notation = notation
	return true
}

func (s *state) String() string {
	if s.board.IsFirst() {
		return s.board.String()
	}
	return fmt.Sprintf("%s= %s\n", s.board.String(), s.notation)
}

func doPlay(m []string, s *state) {
	if s.finished {
		fmt.Println("Warn: the game already finished.")
		return
	}

	cell := uint8(m[2][0] - '0')

	if m[1] != "" {
		if !s.board.IsFirst() {
			fmt.Println("Error: please only provide the cell.")
			return
		}
		square := uint8(m[1][0] - '0')
		if !s.board.CanPlay(square, cell) {
			fmt.Println("Error: illegal move.")
			return
		}
		s.play(square, cell)
	} else {
		if s.board.IsFirst() {
			fmt.Println("Error: please also provide the square.")
			return
		}
		square, _ := s.board.Square()
		if !s.board.CanPlay(square, cell) {
			fmt.Println("Error: illegal move.")
			return
		}
		s.play(square, cell)
	}
	fmt.Print(s)

	if result, over := s.board.IsOver(); over {
		s.finished = true
		switch result {
		case board.ResultDraw:
			fmt.Println("It's a draw!")
		default:
			winner, _ := result.Winner()
			fmt.Printf("Player %s won!\n", winner)
		}
	}
}

var table = engine.NewTableFromBytes(engine.DefaultTableBytes)

// evalTimeout parses an optional trailing seconds argument, defaulting to
// 10 seconds when none is given.
func evalTimeout(args []string) time.Duration {
	if len(args) < 2 {
		return 10 * time.Second
	}
	secs, err := strconv.Atoi(args[1])
	if err != nil || secs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(secs) * time.Second
}

func doEval(b *board.Board, timeout time.Duration) {
	value, _, err := engine.EvalPlain(b, timeout, table)
	if err != nil {
		fmt.Printf("eval: search timed out: %v\n", err)
		return
	}
	fmt.Printf("eval: %s\n", value)
}

func doBest(b *board.Board, timeout time.Duration) {
	value, moves, _, err := engine.BestMoves(b, timeout, table)
	if err != nil {
		fmt.Printf("best: search timed out: %v\n", err)
		return
	}
	fmt.Printf("best: %s, moves: %v\n", value, moves)
}

func doRandom(s *state, rng *player.Random) {
	if s.finished {
		fmt.Println("Warn: the game already finished.")
		return
	}
	square, cell := rng.Play(&s.board)
	m := []string{"", "", ""}
	if s.board.IsFirst() {
		m[1] = strconv.Itoa(int(square))
	}
	m[2] = strconv.Itoa(int(cell))
	doPlay(m, s)
}

func doSquare(b *board.Board) {
	if b.IsFirst() {
		fmt.Println("square: none, this is the opening move")
		return
	}
	square, _ := b.Square()
	fmt.Printf("square: %d\n", square)
}

func help() {
	fmt.Print("[0-4]<0-4>: make move\n" +
		"u undo: undo last move\n" +
		"e eval [seconds]: evaluate state\n" +
		"b best [seconds]: evaluate state and list best moves\n" +
		"r random: play a uniformly random legal move\n" +
		"n new: new game\n" +
		"l load: load game\n" +
		"c count: print movecount\n" +
		"t takestreak: print takestreak\n" +
		"s square: print the square constraint\n" +
		"p print: print board\n" +
		"q quit: quit the maker\n" +
		"h help: show this help\n")
}

func parse(line string, s *state, rng *player.Random, last *string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		if *last == "" {
			return false
		}
		args = strings.Fields(*last)
	} else {
		*last = line
	}

	if m := moveFormat.FindStringSubmatch(args[0]); m != nil {
		doPlay(m, s)
		return false
	}

	switch args[0] {
	case "u", "undo":
		s.undo()
		fmt.Print(s)
	case "e", "eval":
		doEval(&s.board, evalTimeout(args))
	case "b", "best":
		doBest(&s.board, evalTimeout(args))
	case "r", "random":
		doRandom(s, rng)
	case "n", "new":
		s.reset()
		fmt.Print(s)
	case "l", "load":
		if len(args) < 2 {
			fmt.Println("Error: please provide a game to load.")
		} else if s.load(args[1]) {
			fmt.Print(s)
		}
	case "c", "count":
		fmt.Printf("movecount: %d\n", s.board.MoveCount())
	case "t", "takestreak":
		fmt.Printf("takestreak: %d\n", s.board.TakeStreak())
	case "s", "square":
		doSquare(&s.board)
	case "p", "print":
		fmt.Print(s)
	case "q", "quit":
		return true
	case "h", "help":
		help()
	default:
		fmt.Println("Error: invalid command, see 'help'.")
	}
	return false
}

func main() {
	s := newState()
	rng := player.NewRandom(time.Now().UnixNano())
	fmt.Print(s.board.String())

	var last string
	in := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s > ", s.board.OnTurn())
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		if parse(strings.TrimSpace(line), s, rng, &last) {
			break
		}
	}
}
