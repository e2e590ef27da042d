package engine

import (
	"fmt"
	"strings"
)

// WordResult is the payload of an accepted submission.
type WordResult struct {
	Word          string
	Points        int
	Gems          int
	LongWordBonus int
}

// SubmitWord validates the selected tile path as a dictionary word, scores
// it, collects gems, refreshes the consumed tiles, and advances the turn.
// On any validation failure the room is left untouched and a RuleError is
// returned.
func SubmitWord(room *Room, playerID string, tileIDs []string, dict Dictionary) (*WordResult, error) {
	g := room.Game
	if g == nil {
		return nil, ErrGameNotStarted
	}
	if g.Completed {
		return nil, ErrGameCompleted
	}
	if len(tileIDs) == 0 {
		return nil, ErrEmptySelection
	}
	player := currentTurnPlayer(room)
	if player == nil || player.ID != playerID {
		return nil, ErrNotYourTurn
	}

	tiles := make([]*Tile, len(tileIDs))
	seen := make(map[string]bool, len(tileIDs))
	for i, id := range tileIDs {
		t := g.tile(id)
		if t == nil || seen[id] {
			return nil, ErrInvalidSelection
		}
		seen[id] = true
		if i > 0 && !adjacent(tiles[i-1], t) {
			return nil, ErrInvalidSelection
		}
		tiles[i] = t
	}

	var sb strings.Builder
	for _, t := range tiles {
		sb.WriteByte(t.Letter)
	}
	word := strings.ToUpper(sb.String())
	if !dict.Contains(word) {
		return nil, ErrNotAWord
	}

	points := 0
	doubleWord := false
	gems := 0
	for _, t := range tiles {
		points += LetterValue(t.Letter) * t.Multiplier.Factor()
		if t.WordMultiplier == WordMultiplierDouble {
			doubleWord = true
		}
		if t.HasGem {
			gems++
		}
	}
	if doubleWord {
		points *= 2
	}
	bonus := 0
	if len(word) >= LongWordLength {
		bonus = LongWordBonus
	}
	points += bonus

	player.Score += points
	player.Gems += gems

	g.LastSubmission = &Submission{
		PlayerID: player.ID,
		Word:     word,
		Points:   points,
		Gems:     gems,
		TileIDs:  append([]string(nil), tileIDs...),
	}

	g.refreshTiles(tileIDs)
	if g.MultipliersEnabled && !g.hasLetterMultiplier() {
		g.assignLetterMultiplier()
	}

	entry := fmt.Sprintf("%s played %s for %d points", player.Name, word, points)
	if gems > 0 {
		entry += fmt.Sprintf(" (+%d gems)", gems)
	}
	g.appendLog(entry)

	AdvanceTurn(room)

	return &WordResult{Word: word, Points: points, Gems: gems, LongWordBonus: bonus}, nil
}
