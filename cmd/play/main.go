// Command play runs games between two players in a loop, printing the
// winner of each round. Flags select which strategy sits in each seat.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mkern/katalon/internal/board"
	"github.com/mkern/katalon/internal/engine"
	"github.com/mkern/katalon/internal/player"
)

var (
	player1   = flag.String("player1", "random", "seat 1 player: human, random, or solver")
	player2   = flag.String("player2", "solver", "seat 2 player: human, random, or solver")
	verbose   = flag.Bool("verbose", true, "print the board after every move")
	rounds    = flag.Int("rounds", 1, "number of games to play; 0 runs forever")
	moveTime  = flag.Duration("movetime", 5*time.Second, "per-move timeout for the solver player")
	tableSize = flag.Uint64("hash", engine.DefaultTableBytes, "transposition table size in bytes, shared across a round")
)

func makePlayer(kind string, table *engine.Table) player.Player {
	switch kind {
	case "human":
		return player.NewHuman(os.Stdin, os.Stdout)
	case "random":
		return player.NewRandom(time.Now().UnixNano())
	case "solver":
		return player.NewSolver(*moveTime, table)
	default:
		log.Fatalf("unknown player kind %q", kind)
		return nil
	}
}

func runGame(players [2]player.Player, verbose bool) board.Result {
	b := board.New()
	if verbose {
		fmt.Print(b.String())
	}

	for {
		if result, over := b.IsOver(); over {
			return result
		}
		square, cell := players[b.OnTurn()].Play(&b)
		b.Play(square, cell)
		if verbose {
			fmt.Print("\n" + b.String())
		}
	}
}

func main() {
	flag.Parse()

	table := engine.NewTableFromBytes(*tableSize)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for i := 0; *rounds == 0 || i < *rounds; i++ {
		players := [2]player.Player{makePlayer(*player1, table), makePlayer(*player2, table)}

		result := runGame(players, *verbose)
		switch result {
		case board.ResultDraw:
			fmt.Fprintln(out, "It's a draw!")
		default:
			winner, _ := result.Winner()
			fmt.Fprintf(out, "Player %s won!\n", winner)
		}
		out.Flush()
	}
}
