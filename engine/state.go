package engine

import "time"

// Submission records the most recent accepted word.
type Submission struct {
	PlayerID string
	Word     string
	Points   int
	Gems     int
	TileIDs  []string
}

// GameState is the per-room game instance. It is created by NewGameState,
// replaced wholesale on a new game, and discarded when the room resets to
// the lobby. All mutation goes through the engine operations.
type GameState struct {
	Tiles [NumTiles]Tile
	Bag   [26]int // remaining supply per letter, indexed by letter-'A'

	Round              int
	TotalRounds        int
	CurrentPlayerIndex int
	TurnStartedAt      int64 // unix milliseconds

	MultipliersEnabled    bool
	WordMultiplierEnabled bool
	RoundWordTileID       string // logical position of the 2W tile, by tile id

	SwapModePlayerID string
	LastSubmission   *Submission

	Completed bool
	WinnerID  string
	Log       []string

	RNG uint64 // xorshift64 state
}

// maxLogEntries caps the in-memory game log.
const maxLogEntries = 100

// NewGameState initializes a game of totalRounds rounds with a full letter
// bag and an empty board. The board is populated by StartNewGame. The seed
// is the explicit randomness injection point: identical seeds replay
// identically.
func NewGameState(seed uint64, totalRounds int) *GameState {
	if totalRounds < 1 {
		totalRounds = 1
	}
	g := &GameState{
		Round:       1,
		TotalRounds: totalRounds,
		RNG:         seed,
	}
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Bag = letterFrequencies
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			g.Tiles[y*BoardSize+x] = Tile{ID: TileID(x, y), X: x, Y: y}
		}
	}
	return g
}

// nextRand advances the xorshift64 generator.
func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n int) int {
	return int(g.nextRand() % uint64(n))
}

// tile returns the tile with the given id, or nil if the id is unknown.
func (g *GameState) tile(id string) *Tile {
	for i := range g.Tiles {
		if g.Tiles[i].ID == id {
			return &g.Tiles[i]
		}
	}
	return nil
}

// appendLog appends a human-readable entry to the game log, trimming the
// oldest entries past maxLogEntries.
func (g *GameState) appendLog(entry string) {
	g.Log = append(g.Log, entry)
	if len(g.Log) > maxLogEntries {
		g.Log = g.Log[len(g.Log)-maxLogEntries:]
	}
}

// nowMillis is the engine's clock; replaceable in tests.
var nowMillis = func() int64 { return time.Now().UnixMilli() }
