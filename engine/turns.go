package engine

import "fmt"

// AdvanceTurn moves the turn to the next non-spectator player. When the
// cyclic search wraps past the end of the roster — every remaining active
// player has had a turn — the round advances. With zero active players the
// call is a no-op.
func AdvanceTurn(room *Room) {
	g := room.Game
	if g == nil || g.Completed {
		return
	}
	n := len(room.Players)
	if n == 0 {
		return
	}
	start := g.CurrentPlayerIndex
	if start < 0 || start >= n {
		start = 0
	}
	for i := 1; i <= n; i++ {
		idx := (start + i) % n
		if room.Players[idx].IsSpectator {
			continue
		}
		g.CurrentPlayerIndex = idx
		g.TurnStartedAt = nowMillis()
		g.SwapModePlayerID = "" // a pending swap does not survive the turn
		if start+i >= n {
			advanceRound(room)
		}
		return
	}
}

// AdvanceRound advances the round directly, bypassing the turn cycle. Used
// by host controls; normal play reaches it through AdvanceTurn's wrap.
func AdvanceRound(room *Room) {
	advanceRound(room)
}

// advanceRound either escalates to the next round or completes the game.
//
// On a round advance the board letters and gems are deliberately left in
// place: only the multiplier-enablement flags flip and the word-multiplier
// tile moves (to a tile other than its previous one when possible). From
// round 2 on both the letter multiplier and the 2W tile are in play.
func advanceRound(room *Room) {
	g := room.Game
	if g == nil || g.Completed {
		return
	}
	if g.Round < g.TotalRounds {
		g.Round++
		g.MultipliersEnabled = true
		g.WordMultiplierEnabled = true
		g.pickWordMultiplierTile(true)
		if !g.hasLetterMultiplier() {
			g.assignLetterMultiplier()
		}
		g.ensureMinimumVowels()
		g.TurnStartedAt = nowMillis()
		g.appendLog(fmt.Sprintf("Round %d of %d begins", g.Round, g.TotalRounds))
		return
	}

	g.Completed = true
	g.SwapModePlayerID = ""
	g.WinnerID = determineWinner(room)
	if w := room.FindPlayer(g.WinnerID); w != nil {
		g.appendLog(fmt.Sprintf("Game over: %s wins with %d points", w.Name, w.Score))
	} else {
		g.appendLog("Game over")
	}
}

// determineWinner returns the id of the highest-scoring active player,
// falling back to all players when nobody is active. Ties go to the earlier
// player in join order.
func determineWinner(room *Room) string {
	pool := room.ActivePlayers()
	if len(pool) == 0 {
		pool = room.Players
	}
	var winner *Player
	for _, p := range pool {
		if winner == nil || p.Score > winner.Score {
			winner = p
		}
	}
	if winner == nil {
		return ""
	}
	return winner.ID
}
