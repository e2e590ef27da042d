package engine

import (
	"errors"
	"testing"
)

// TestSubmitWordScoresAndAdvances is the end-to-end scenario: a forced
// C-A-T path with a double letter on C and doubleWord on T must score
// (5*2 + 1 + 2) * 2 = 26, credit p1, and advance the turn to p2.
func TestSubmitWordScoresAndAdvances(t *testing.T) {
	room := newTestRoom(2, 42)
	g := room.Game
	g.WordMultiplierEnabled = true
	g.RoundWordTileID = "2-0"
	forceTile(g, "0-0", 'C', MultiplierDoubleLetter, WordMultiplierNone)
	forceTile(g, "1-0", 'A', MultiplierNone, WordMultiplierNone)
	forceTile(g, "2-0", 'T', MultiplierNone, WordMultiplierDouble)

	res, err := SubmitWord(room, "p1", []string{"0-0", "1-0", "2-0"}, dictOf("CAT"))
	if err != nil {
		t.Fatalf("SubmitWord() error = %v", err)
	}
	if res.Word != "CAT" {
		t.Errorf("Word = %q, want CAT", res.Word)
	}
	if res.Points != 26 {
		t.Errorf("Points = %d, want 26", res.Points)
	}
	if room.Players[0].Score != 26 {
		t.Errorf("p1 score = %d, want 26", room.Players[0].Score)
	}
	if g.CurrentPlayerIndex != 1 {
		t.Errorf("CurrentPlayerIndex = %d after submission, want 1", g.CurrentPlayerIndex)
	}
	if g.LastSubmission == nil || g.LastSubmission.Word != "CAT" {
		t.Error("LastSubmission not recorded")
	}
}

// TestSubmitWordLongWordBonus verifies the flat bonus applies at the
// length threshold.
func TestSubmitWordLongWordBonus(t *testing.T) {
	room := newTestRoom(1, 42)
	g := room.Game

	// Lay out LETTER along the top row: L3 E1 T2 T2 E1 R2 = 11, +10 bonus.
	ids := []string{"0-0", "1-0", "2-0", "3-0", "4-0", "4-1"}
	word := "LETTER"
	for i, id := range ids {
		forceTile(g, id, word[i], MultiplierNone, WordMultiplierNone)
	}

	res, err := SubmitWord(room, "p1", ids, dictOf("LETTER"))
	if err != nil {
		t.Fatalf("SubmitWord() error = %v", err)
	}
	if res.LongWordBonus != LongWordBonus {
		t.Errorf("LongWordBonus = %d, want %d", res.LongWordBonus, LongWordBonus)
	}
	if want := 11 + LongWordBonus; res.Points != want {
		t.Errorf("Points = %d, want %d", res.Points, want)
	}
}

// TestSubmitWordCollectsGems verifies gem tiles credit the player and the
// quota is restored after the refresh.
func TestSubmitWordCollectsGems(t *testing.T) {
	room := newTestRoom(1, 42)
	g := room.Game
	forceTile(g, "0-0", 'G', MultiplierNone, WordMultiplierNone).HasGem = true
	forceTile(g, "1-0", 'O', MultiplierNone, WordMultiplierNone).HasGem = true
	g.ensureGemQuota()
	gemsBefore := room.Players[0].Gems

	res, err := SubmitWord(room, "p1", []string{"0-0", "1-0"}, dictOf("GO"))
	if err != nil {
		t.Fatalf("SubmitWord() error = %v", err)
	}
	if res.Gems != 2 {
		t.Errorf("Gems = %d, want 2", res.Gems)
	}
	if got := room.Players[0].Gems; got != gemsBefore+2 {
		t.Errorf("player gems = %d, want %d", got, gemsBefore+2)
	}
	if got := g.gemCount(); got != GemQuota {
		t.Errorf("gemCount() = %d after refresh, want %d", got, GemQuota)
	}
}

// TestSubmitWordRejections verifies each failure mode rejects without
// mutating scores or the board.
func TestSubmitWordRejections(t *testing.T) {
	dict := dictOf("CAT")

	tests := []struct {
		name    string
		setup   func(room *Room)
		player  string
		tileIDs []string
		wantErr RuleError
	}{
		{
			name:    "no game",
			setup:   func(room *Room) { room.Game = nil },
			player:  "p1",
			tileIDs: []string{"0-0"},
			wantErr: ErrGameNotStarted,
		},
		{
			name:    "completed game",
			setup:   func(room *Room) { room.Game.Completed = true },
			player:  "p1",
			tileIDs: []string{"0-0"},
			wantErr: ErrGameCompleted,
		},
		{
			name:    "empty selection",
			setup:   func(room *Room) {},
			player:  "p1",
			tileIDs: nil,
			wantErr: ErrEmptySelection,
		},
		{
			name:    "out of turn",
			setup:   func(room *Room) {},
			player:  "p2",
			tileIDs: []string{"0-0"},
			wantErr: ErrNotYourTurn,
		},
		{
			name:    "unknown tile",
			setup:   func(room *Room) {},
			player:  "p1",
			tileIDs: []string{"9-9"},
			wantErr: ErrInvalidSelection,
		},
		{
			name:    "repeated tile",
			setup:   func(room *Room) {},
			player:  "p1",
			tileIDs: []string{"0-0", "1-0", "0-0"},
			wantErr: ErrInvalidSelection,
		},
		{
			name:    "non-adjacent path",
			setup:   func(room *Room) {},
			player:  "p1",
			tileIDs: []string{"0-0", "4-4"},
			wantErr: ErrInvalidSelection,
		},
		{
			name:    "dictionary miss",
			setup:   func(room *Room) {},
			player:  "p1",
			tileIDs: []string{"0-0", "1-0", "2-0"},
			wantErr: ErrNotAWord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := newTestRoom(2, 42)
			g := room.Game
			forceTile(g, "0-0", 'X', MultiplierNone, WordMultiplierNone)
			forceTile(g, "1-0", 'Y', MultiplierNone, WordMultiplierNone)
			forceTile(g, "2-0", 'Z', MultiplierNone, WordMultiplierNone)
			tt.setup(room)

			scoreBefore := room.Players[0].Score
			var lettersBefore [NumTiles]byte
			if room.Game != nil {
				for i := range room.Game.Tiles {
					lettersBefore[i] = room.Game.Tiles[i].Letter
				}
			}

			_, err := SubmitWord(room, tt.player, tt.tileIDs, dict)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SubmitWord() error = %v, want %v", err, tt.wantErr)
			}
			if room.Players[0].Score != scoreBefore {
				t.Error("score mutated by rejected submission")
			}
			if room.Game != nil {
				for i := range room.Game.Tiles {
					if room.Game.Tiles[i].Letter != lettersBefore[i] {
						t.Fatal("board mutated by rejected submission")
					}
				}
			}
		})
	}
}

// TestSubmitWordReassignsLetterMultiplier verifies a consumed special tile
// is replaced somewhere on the board after the refresh.
func TestSubmitWordReassignsLetterMultiplier(t *testing.T) {
	room := newTestRoom(1, 42)
	g := room.Game
	g.MultipliersEnabled = true
	forceTile(g, "0-0", 'G', MultiplierDoubleLetter, WordMultiplierNone)
	forceTile(g, "1-0", 'O', MultiplierNone, WordMultiplierNone)

	if _, err := SubmitWord(room, "p1", []string{"0-0", "1-0"}, dictOf("GO")); err != nil {
		t.Fatalf("SubmitWord() error = %v", err)
	}
	if !g.hasLetterMultiplier() {
		t.Error("letter multiplier not reassigned after consuming the special tile")
	}
}

// TestSubmitWordStaleTurnIndex verifies the turn resolver skips a stored
// index pointing at a spectator.
func TestSubmitWordStaleTurnIndex(t *testing.T) {
	room := newTestRoom(2, 42)
	g := room.Game
	room.Players[0].IsSpectator = true
	g.CurrentPlayerIndex = 0
	forceTile(g, "0-0", 'G', MultiplierNone, WordMultiplierNone)
	forceTile(g, "1-0", 'O', MultiplierNone, WordMultiplierNone)

	if _, err := SubmitWord(room, "p2", []string{"0-0", "1-0"}, dictOf("GO")); err != nil {
		t.Fatalf("SubmitWord() error = %v, want stale index resolved to p2", err)
	}
}
