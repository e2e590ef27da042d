package engine

// Shared test helpers.

// wordSet is a minimal Dictionary implementation for tests.
type wordSet map[string]struct{}

func (s wordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

func dictOf(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// newTestRoom creates an in-progress room with n connected players named
// p1..pn and a board built from the given seed.
func newTestRoom(n int, seed uint64) *Room {
	room := NewRoom("room-1", 3)
	names := []string{"p1", "p2", "p3", "p4", "p5", "p6"}
	for i := 0; i < n; i++ {
		AddPlayer(room, names[i], "Player"+names[i][1:])
	}
	StartNewGame(room, 3, seed)
	return room
}

// forceTile overwrites a tile's letter and modifiers directly, marking it
// not bag-tracked so releases don't disturb bag accounting.
func forceTile(g *GameState, id string, letter byte, mult Multiplier, word WordMultiplier) *Tile {
	t := g.tile(id)
	if t.BagTracked {
		g.Bag[t.Letter-'A']++
		t.BagTracked = false
	}
	t.Letter = letter
	t.Multiplier = mult
	t.WordMultiplier = word
	return t
}
