// Package offline runs a single-player game in-process with no
// transport, no timers, and no room plumbing. It drives the exact same
// engine entry points as the server, so scoring and board behavior are
// identical to multiplayer.
package offline

import (
	"time"

	"github.com/robert-carpenter/spellcast-clone/engine"
)

// localPlayerID is the fixed id of the solo player.
const localPlayerID = "local"

// Game is a solo game wrapper. Not safe for concurrent use; callers
// drive it from a single goroutine.
type Game struct {
	room *engine.Room
	dict engine.Dictionary
}

// New starts a solo game immediately. A zero seed is replaced with a
// clock-derived one, matching how the server seeds its games.
func New(name string, totalRounds int, seed uint64, dict engine.Dictionary) *Game {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	room := engine.NewRoom("offline", totalRounds)
	engine.AddPlayer(room, localPlayerID, name)
	engine.StartNewGame(room, totalRounds, seed)
	return &Game{room: room, dict: dict}
}

// SubmitWord plays the selected tiles. On success the board refreshes
// and the round advances, since a solo turn is a whole round.
func (g *Game) SubmitWord(tileIDs []string) (*engine.WordResult, error) {
	return engine.SubmitWord(g.room, localPlayerID, tileIDs, g.dict)
}

// Shuffle spends one gem to shuffle the board.
func (g *Game) Shuffle() error {
	return engine.ShuffleBoard(g.room, localPlayerID)
}

// Swap replaces the letter on tileID, charging the swap cost. The
// request/apply pair is collapsed since there is no UI round-trip to
// wait for.
func (g *Game) Swap(tileID, letter string) error {
	if err := engine.RequestSwapMode(g.room, localPlayerID); err != nil {
		return err
	}
	if err := engine.ApplySwap(g.room, localPlayerID, tileID, letter); err != nil {
		engine.CancelSwap(g.room, localPlayerID)
		return err
	}
	return nil
}

// Snapshot returns the public view of the game, identical to what the
// server would broadcast.
func (g *Game) Snapshot() engine.RoomSnapshot {
	return engine.ToPublicRoom(g.room)
}

// Score returns the solo player's current score.
func (g *Game) Score() int {
	return g.room.Players[0].Score
}

// Gems returns the solo player's gem balance.
func (g *Game) Gems() int {
	return g.room.Players[0].Gems
}

// Round returns the current round number.
func (g *Game) Round() int {
	return g.room.Game.Round
}

// Completed reports whether all rounds have been played.
func (g *Game) Completed() bool {
	return g.room.Game.Completed
}
