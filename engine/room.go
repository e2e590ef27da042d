package engine

import "fmt"

// RoomStatus is the lifecycle phase of a room.
type RoomStatus string

const (
	RoomStatusLobby      RoomStatus = "lobby"
	RoomStatusInProgress RoomStatus = "in-progress"
)

// Player is one member of a room. Score and gems reset on every new game;
// spectators joined mid-game and sit out until the next one.
type Player struct {
	ID          string
	Name        string
	IsHost      bool
	Score       int
	Gems        int
	JoinedAt    int64
	Connected   bool
	IsSpectator bool
}

// Room is the top-level aggregate all engine operations mutate. It is
// exclusively owned by the caller; the engine never reaches outside it
// except for the read-only dictionary.
type Room struct {
	ID      string
	HostID  string
	Players []*Player
	Status  RoomStatus
	Rounds  int
	Game    *GameState
}

// NewRoom creates a lobby room configured for the given number of rounds.
func NewRoom(id string, rounds int) *Room {
	if rounds < 1 {
		rounds = 1
	}
	return &Room{ID: id, Status: RoomStatusLobby, Rounds: rounds}
}

// FindPlayer returns the player with the given id, or nil.
func (r *Room) FindPlayer(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// ActivePlayers returns the non-spectator players in join order.
func (r *Room) ActivePlayers() []*Player {
	active := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if !p.IsSpectator {
			active = append(active, p)
		}
	}
	return active
}

// AddPlayer adds a player to the room. The first player becomes host;
// anyone joining while a game is in progress becomes a spectator until the
// next game. Re-adding an existing id just marks the player connected.
func AddPlayer(room *Room, playerID, name string) *Player {
	if p := room.FindPlayer(playerID); p != nil {
		p.Connected = true
		return p
	}
	p := &Player{
		ID:          playerID,
		Name:        name,
		Gems:        StartingGems,
		JoinedAt:    nowMillis(),
		Connected:   true,
		IsSpectator: room.Status == RoomStatusInProgress,
	}
	if len(room.Players) == 0 {
		p.IsHost = true
		room.HostID = p.ID
	}
	room.Players = append(room.Players, p)
	return p
}

// RemovePlayer removes a player from the room, transferring host identity
// and repairing the turn order. If the removed player was mid-turn the turn
// advances to the next active player computed against the pre-removal
// order, including the round advance a normal wrap would trigger. Returns
// false if the player is not in the room.
func RemovePlayer(room *Room, playerID string) bool {
	idx := -1
	for i, p := range room.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	removed := room.Players[idx]

	// Resolve the successor against the pre-removal list so the next
	// active player is neither skipped nor advanced twice.
	g := room.Game
	removingCurrent := false
	wrapped := false
	nextID := ""
	if g != nil && !g.Completed && !removed.IsSpectator && g.CurrentPlayerIndex == idx {
		removingCurrent = true
		n := len(room.Players)
		for i := 1; i < n; i++ {
			cand := room.Players[(idx+i)%n]
			if cand.IsSpectator || cand.ID == playerID {
				continue
			}
			nextID = cand.ID
			wrapped = idx+i >= n
			break
		}
	}

	room.Players = append(room.Players[:idx], room.Players[idx+1:]...)

	if removed.IsHost {
		transferHost(room)
	}

	if g == nil || g.Completed {
		return true
	}
	if removingCurrent {
		if nextID == "" {
			// No active players remain; leave the index clamped.
			g.CurrentPlayerIndex = 0
			return true
		}
		for i, p := range room.Players {
			if p.ID == nextID {
				g.CurrentPlayerIndex = i
				break
			}
		}
		g.TurnStartedAt = nowMillis()
		if wrapped {
			advanceRound(room)
		}
	} else if g.CurrentPlayerIndex > idx {
		// A player before the current one left; shift the index back.
		g.CurrentPlayerIndex--
	} else if g.CurrentPlayerIndex >= len(room.Players) && len(room.Players) > 0 {
		g.CurrentPlayerIndex = 0
	}
	return true
}

// transferHost hands host identity to the next eligible player, preferring
// non-spectators.
func transferHost(room *Room) {
	room.HostID = ""
	var fallback *Player
	for _, p := range room.Players {
		p.IsHost = false
		if fallback == nil {
			fallback = p
		}
	}
	for _, p := range room.Players {
		if !p.IsSpectator {
			p.IsHost = true
			room.HostID = p.ID
			return
		}
	}
	if fallback != nil {
		fallback.IsHost = true
		room.HostID = fallback.ID
	}
}

// StartNewGame resets every player's score and gems, clears spectator
// flags, builds a fresh board from a full bag, and seeds the first active
// turn. Any previous game state is discarded.
func StartNewGame(room *Room, totalRounds int, seed uint64) {
	if totalRounds < 1 {
		totalRounds = room.Rounds
	}
	room.Rounds = totalRounds
	room.Status = RoomStatusInProgress

	for _, p := range room.Players {
		p.Score = 0
		p.Gems = StartingGems
		p.IsSpectator = false
	}

	g := NewGameState(seed, totalRounds)
	g.buildBoard()
	g.TurnStartedAt = nowMillis()
	room.Game = g

	for i, p := range room.Players {
		if !p.IsSpectator {
			g.CurrentPlayerIndex = i
			break
		}
	}
	g.appendLog(fmt.Sprintf("New game started: %d rounds", totalRounds))
}

// ResetToLobby discards the game state and returns the room to the lobby.
func ResetToLobby(room *Room) {
	room.Game = nil
	room.Status = RoomStatusLobby
}

// currentTurnPlayer resolves the player whose turn it is, repairing a stale
// index that points out of range or at a spectator by skipping forward to
// the first active player. Returns nil when no active players exist.
func currentTurnPlayer(room *Room) *Player {
	g := room.Game
	if g == nil || len(room.Players) == 0 {
		return nil
	}
	n := len(room.Players)
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= n {
		g.CurrentPlayerIndex = 0
	}
	for i := 0; i < n; i++ {
		idx := (g.CurrentPlayerIndex + i) % n
		if !room.Players[idx].IsSpectator {
			g.CurrentPlayerIndex = idx
			return room.Players[idx]
		}
	}
	return nil
}
