package engine

// Public snapshot projections. These are the only shapes the transport
// layer serializes to clients; they carry no RNG state and no bag counts.

// PublicTile is the client-visible view of one board tile.
type PublicTile struct {
	ID             string `json:"id"`
	X              int    `json:"x"`
	Y              int    `json:"y"`
	Letter         string `json:"letter"`
	HasGem         bool   `json:"hasGem"`
	Multiplier     string `json:"multiplier"`
	WordMultiplier string `json:"wordMultiplier"`
}

// PublicPlayer is the client-visible view of one room member.
type PublicPlayer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsHost      bool   `json:"isHost"`
	Score       int    `json:"score"`
	Gems        int    `json:"gems"`
	Connected   bool   `json:"connected"`
	IsSpectator bool   `json:"isSpectator"`
}

// PublicSubmission mirrors the last accepted word for display.
type PublicSubmission struct {
	PlayerID string   `json:"playerId"`
	Word     string   `json:"word"`
	Points   int      `json:"points"`
	Gems     int      `json:"gems"`
	TileIDs  []string `json:"tileIds"`
}

// GameSnapshot is the shallow, serialization-safe projection of a
// GameState.
type GameSnapshot struct {
	Tiles                 []PublicTile      `json:"tiles"`
	Round                 int               `json:"round"`
	TotalRounds           int               `json:"totalRounds"`
	CurrentPlayerID       string            `json:"currentPlayerId"`
	TurnStartedAt         int64             `json:"turnStartedAt"`
	MultipliersEnabled    bool              `json:"multipliersEnabled"`
	WordMultiplierEnabled bool              `json:"wordMultiplierEnabled"`
	SwapModePlayerID      string            `json:"swapModePlayerId,omitempty"`
	LastSubmission        *PublicSubmission `json:"lastSubmission,omitempty"`
	Completed             bool              `json:"completed"`
	WinnerID              string            `json:"winnerId,omitempty"`
	Log                   []string          `json:"log"`
}

// RoomSnapshot is the whole-room projection broadcast after every
// operation.
type RoomSnapshot struct {
	ID      string         `json:"id"`
	HostID  string         `json:"hostId"`
	Status  RoomStatus     `json:"status"`
	Rounds  int            `json:"rounds"`
	Players []PublicPlayer `json:"players"`
	Game    *GameSnapshot  `json:"game,omitempty"`
}

// ToPublicGameState projects a GameState for serialization. Returns nil for
// a nil game so lobby rooms snapshot cleanly.
func ToPublicGameState(room *Room) *GameSnapshot {
	g := room.Game
	if g == nil {
		return nil
	}
	snap := &GameSnapshot{
		Tiles:                 make([]PublicTile, NumTiles),
		Round:                 g.Round,
		TotalRounds:           g.TotalRounds,
		TurnStartedAt:         g.TurnStartedAt,
		MultipliersEnabled:    g.MultipliersEnabled,
		WordMultiplierEnabled: g.WordMultiplierEnabled,
		SwapModePlayerID:      g.SwapModePlayerID,
		Completed:             g.Completed,
		WinnerID:              g.WinnerID,
		Log:                   append([]string(nil), g.Log...),
	}
	for i := range g.Tiles {
		t := &g.Tiles[i]
		snap.Tiles[i] = PublicTile{
			ID:             t.ID,
			X:              t.X,
			Y:              t.Y,
			Letter:         string(t.Letter),
			HasGem:         t.HasGem,
			Multiplier:     t.Multiplier.String(),
			WordMultiplier: t.WordMultiplier.String(),
		}
	}
	if !g.Completed {
		if p := currentTurnPlayer(room); p != nil {
			snap.CurrentPlayerID = p.ID
		}
	}
	if s := g.LastSubmission; s != nil {
		snap.LastSubmission = &PublicSubmission{
			PlayerID: s.PlayerID,
			Word:     s.Word,
			Points:   s.Points,
			Gems:     s.Gems,
			TileIDs:  append([]string(nil), s.TileIDs...),
		}
	}
	return snap
}

// ToPublicRoom projects the whole room, game included.
func ToPublicRoom(room *Room) RoomSnapshot {
	snap := RoomSnapshot{
		ID:      room.ID,
		HostID:  room.HostID,
		Status:  room.Status,
		Rounds:  room.Rounds,
		Players: make([]PublicPlayer, len(room.Players)),
		Game:    ToPublicGameState(room),
	}
	for i, p := range room.Players {
		snap.Players[i] = PublicPlayer{
			ID:          p.ID,
			Name:        p.Name,
			IsHost:      p.IsHost,
			Score:       p.Score,
			Gems:        p.Gems,
			Connected:   p.Connected,
			IsSpectator: p.IsSpectator,
		}
	}
	return snap
}
