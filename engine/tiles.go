package engine

import "fmt"

// Multiplier is the per-tile letter multiplier kind. At most one tile
// board-wide carries a value other than MultiplierNone.
type Multiplier uint8

const (
	MultiplierNone Multiplier = iota
	MultiplierDoubleLetter
	MultiplierTripleLetter
)

// String returns the wire name of the multiplier kind.
func (m Multiplier) String() string {
	switch m {
	case MultiplierDoubleLetter:
		return "doubleLetter"
	case MultiplierTripleLetter:
		return "tripleLetter"
	default:
		return "none"
	}
}

// Factor returns the score factor applied to the tile's letter value.
func (m Multiplier) Factor() int {
	switch m {
	case MultiplierDoubleLetter:
		return 2
	case MultiplierTripleLetter:
		return 3
	default:
		return 1
	}
}

// WordMultiplier is the board-wide word multiplier kind. At most one tile
// carries WordMultiplierDouble, and only once round 2 is reached.
type WordMultiplier uint8

const (
	WordMultiplierNone WordMultiplier = iota
	WordMultiplierDouble
)

// String returns the wire name of the word multiplier kind.
func (w WordMultiplier) String() string {
	switch w {
	case WordMultiplierDouble:
		return "doubleWord"
	default:
		return "none"
	}
}

// Tile is one of the 25 fixed-position cells on the board. Identity is
// positional: the ID never changes, only the letter and modifier fields
// mutate across refreshes.
type Tile struct {
	ID             string
	X              int
	Y              int
	Letter         byte // 'A'..'Z'
	HasGem         bool
	Multiplier     Multiplier
	WordMultiplier WordMultiplier
	BagTracked     bool // letter was drawn from the bag (vs assigned by swap)
}

// TileID returns the stable "x-y" coordinate key for a board position.
func TileID(x, y int) string {
	return fmt.Sprintf("%d-%d", x, y)
}

// adjacent reports whether two tiles touch in any of the 8 directions
// (Chebyshev distance 1, excluding the tile itself).
func adjacent(a, b *Tile) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx == 1
	}
	return dy == 1
}

// letterValues holds the point value of each letter, indexed by letter-'A'.
var letterValues = [26]int{
	1, 4, 5, 3, 1, 5, 3, 4, 1, 7, 6, 3, 4, // A..M
	2, 1, 4, 8, 2, 2, 2, 4, 5, 5, 7, 4, 8, // N..Z
}

// LetterValue returns the base point value of an uppercase letter.
func LetterValue(letter byte) int {
	if letter < 'A' || letter > 'Z' {
		return 0
	}
	return letterValues[letter-'A']
}

// letterFrequencies is the designed bag supply of each letter, indexed by
// letter-'A'. The totals skew toward vowels and common consonants so boards
// stay playable across repeated refreshes.
var letterFrequencies = [26]int{
	8, 2, 3, 4, 11, 2, 3, 3, 8, 1, 2, 5, 3, // A..M
	6, 7, 3, 1, 6, 5, 6, 5, 2, 2, 1, 2, 1, // N..Z
}

// vowels is the vowel subset used for minimum-vowel enforcement and
// vowel-only draws.
var vowels = [5]byte{'A', 'E', 'I', 'O', 'U'}

// isVowel reports whether the letter is one of AEIOU.
func isVowel(letter byte) bool {
	switch letter {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}
