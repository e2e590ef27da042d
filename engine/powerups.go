package engine

import "fmt"

// validatePowerup runs the checks shared by both power-ups: the game must
// be running and the requester must be the current-turn player.
func validatePowerup(room *Room, playerID string) (*Player, error) {
	g := room.Game
	if g == nil {
		return nil, ErrGameNotStarted
	}
	if g.Completed {
		return nil, ErrGameCompleted
	}
	if room.FindPlayer(playerID) == nil {
		return nil, ErrPlayerNotFound
	}
	player := currentTurnPlayer(room)
	if player == nil || player.ID != playerID {
		return nil, ErrNotYourTurn
	}
	return player, nil
}

// ShuffleBoard spends one gem to permute the board contents. The
// word-multiplier's logical position (tracked by tile id) is preserved;
// letters, gems, and the letter multiplier all move.
func ShuffleBoard(room *Room, playerID string) error {
	player, err := validatePowerup(room, playerID)
	if err != nil {
		return err
	}
	if player.Gems < ShuffleCost {
		return ErrInsufficientGems
	}
	player.Gems -= ShuffleCost
	room.Game.shuffleTiles()
	room.Game.appendLog(fmt.Sprintf("%s shuffled the board", player.Name))
	return nil
}

// RequestSwapMode validates turn and gem balance and marks the player as
// the pending swapper. Gems are not deducted until the swap is applied.
func RequestSwapMode(room *Room, playerID string) error {
	player, err := validatePowerup(room, playerID)
	if err != nil {
		return err
	}
	if player.Gems < SwapCost {
		return ErrInsufficientGems
	}
	room.Game.SwapModePlayerID = playerID
	return nil
}

// ApplySwap sets the chosen tile's letter to the requested one and deducts
// the swap cost. Turn and gems are re-validated at apply time since both
// may have changed after RequestSwapMode. Every tile's letter multiplier is
// snapshotted before the mutation and restored after, so a swap can never
// shift multiplier placement.
func ApplySwap(room *Room, playerID, tileID, letter string) error {
	g := room.Game
	if g == nil {
		return ErrGameNotStarted
	}
	if g.Completed {
		return ErrGameCompleted
	}
	if g.SwapModePlayerID == "" || g.SwapModePlayerID != playerID {
		return ErrNotInSwapMode
	}
	player := room.FindPlayer(playerID)
	if player == nil {
		return ErrPlayerNotFound
	}
	if cur := currentTurnPlayer(room); cur == nil || cur.ID != playerID {
		return ErrNotYourTurn
	}
	if player.Gems < SwapCost {
		return ErrInsufficientGems
	}
	t := g.tile(tileID)
	if t == nil || letter == "" {
		return ErrInvalidSelection
	}
	ch := letter[0]
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	if ch < 'A' || ch > 'Z' {
		return ErrInvalidSelection
	}

	var multipliers [NumTiles]Multiplier
	for i := range g.Tiles {
		multipliers[i] = g.Tiles[i].Multiplier
	}

	g.releaseTile(t)
	t.Letter = ch
	t.BagTracked = false // swapped-in letters bypass the bag

	for i := range g.Tiles {
		g.Tiles[i].Multiplier = multipliers[i]
	}
	g.applyWordMultiplier()

	player.Gems -= SwapCost
	g.SwapModePlayerID = ""
	g.appendLog(fmt.Sprintf("%s swapped a letter to %c", player.Name, ch))
	return nil
}

// CancelSwap clears a pending swap without charge. Safe to call when no
// swap is pending.
func CancelSwap(room *Room, playerID string) {
	g := room.Game
	if g == nil {
		return
	}
	if g.SwapModePlayerID == playerID {
		g.SwapModePlayerID = ""
	}
}
