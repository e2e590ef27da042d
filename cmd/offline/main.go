// Command offline plays a solo game in the terminal. It exercises the
// same engine as the server, so scores match online play exactly.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/robert-carpenter/spellcast-clone/internal/offline"
	"github.com/robert-carpenter/spellcast-clone/internal/words"
)

func main() {
	var (
		rounds    = flag.Int("rounds", 5, "number of rounds to play")
		seed      = flag.Uint64("seed", 0, "board seed (0 picks one)")
		wordsFile = flag.String("words", "", "dictionary file (default: embedded list)")
		name      = flag.String("name", "You", "player name")
	)
	flag.Parse()

	dict, err := words.Load(*wordsFile)
	if err != nil {
		logrus.WithError(err).Fatal("loading dictionary")
	}

	g := offline.New(*name, *rounds, *seed, dict)
	fmt.Println("Commands: word <id> <id> ...  |  shuffle  |  swap <id> <letter>  |  board  |  quit")
	printBoard(g)

	sc := bufio.NewScanner(os.Stdin)
	for !g.Completed() {
		fmt.Printf("[round %d | score %d | gems %d] > ", g.Round(), g.Score(), g.Gems())
		if !sc.Scan() {
			return
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit", "exit":
			return
		case "board":
			printBoard(g)
		case "shuffle":
			if err := g.Shuffle(); err != nil {
				fmt.Println("!", err)
				continue
			}
			printBoard(g)
		case "swap":
			if len(fields) != 3 {
				fmt.Println("usage: swap <tile-id> <letter>")
				continue
			}
			if err := g.Swap(fields[1], fields[2]); err != nil {
				fmt.Println("!", err)
				continue
			}
			printBoard(g)
		case "word":
			res, err := g.SubmitWord(fields[1:])
			if err != nil {
				fmt.Println("!", err)
				continue
			}
			fmt.Printf("%s scored %d points", res.Word, res.Points)
			if res.Gems > 0 {
				fmt.Printf(" (+%d gems)", res.Gems)
			}
			if res.LongWordBonus > 0 {
				fmt.Printf(" (long word bonus %d)", res.LongWordBonus)
			}
			fmt.Println()
			if !g.Completed() {
				printBoard(g)
			}
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
	fmt.Printf("Game over. Final score: %d\n", g.Score())
}

// printBoard renders the 5x5 grid with gem and multiplier markers.
func printBoard(g *offline.Game) {
	snap := g.Snapshot()
	if snap.Game == nil {
		return
	}
	fmt.Println()
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			t := snap.Game.Tiles[y*5+x]
			cell := t.Letter
			switch t.Multiplier {
			case "doubleLetter":
				cell += "²"
			case "tripleLetter":
				cell += "³"
			}
			if t.WordMultiplier == "doubleWord" {
				cell += "*"
			}
			if t.HasGem {
				cell += "◆"
			}
			fmt.Printf("%-6s", cell)
		}
		fmt.Println()
	}
	fmt.Println("tile ids are x-y, e.g. 0-0 is top-left")
	fmt.Println()
}
