// Package engine implements the rules of the word-building board game.
//
// The engine is a deterministic state machine over an explicit Room value:
// every operation validates fully, mutates the Room in place, and returns.
// It keeps no package-level mutable state and pulls randomness only from the
// xorshift64 generator seeded at game construction, so the same seed always
// produces the same boards, draws, and shuffles. The surrounding transport
// (or the offline adapter) is responsible for serializing calls per Room and
// broadcasting the resulting snapshot.
package engine

const (
	// BoardSize is the width and height of the square board.
	BoardSize = 5
	// NumTiles is the fixed number of tiles on the board.
	NumTiles = BoardSize * BoardSize

	// MinVowels is the minimum vowel count enforced over the whole board.
	MinVowels = 7
	// GemQuota is the board-wide gem count restored after every refresh.
	GemQuota = 10

	// StartingGems is each player's gem balance at game start.
	StartingGems = 3
	// ShuffleCost is the gem price of a board shuffle.
	ShuffleCost = 1
	// SwapCost is the gem price of swapping a single letter.
	SwapCost = 3

	// LongWordLength is the minimum word length earning the flat bonus.
	LongWordLength = 6
	// LongWordBonus is the flat score bonus for long words.
	LongWordBonus = 10

	// tripleLetterChance is the percentage chance the special letter tile
	// is a triple rather than a double.
	tripleLetterChance = 12
)

// Dictionary is the set of valid uppercase words the engine checks
// submissions against. The engine never mutates it.
type Dictionary interface {
	Contains(word string) bool
}
