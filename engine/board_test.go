package engine

import (
	"sort"
	"testing"
)

// TestBuildBoardInvariants verifies a fresh board has 25 tiles, the vowel
// minimum, and the full gem quota.
func TestBuildBoardInvariants(t *testing.T) {
	room := newTestRoom(2, 42)
	g := room.Game

	if len(g.Tiles) != NumTiles {
		t.Fatalf("len(Tiles) = %d, want %d", len(g.Tiles), NumTiles)
	}
	for i := range g.Tiles {
		tile := &g.Tiles[i]
		if tile.Letter < 'A' || tile.Letter > 'Z' {
			t.Errorf("tile %s letter %q, want A-Z", tile.ID, tile.Letter)
		}
		if want := TileID(tile.X, tile.Y); tile.ID != want {
			t.Errorf("tile at (%d,%d) has id %q, want %q", tile.X, tile.Y, tile.ID, want)
		}
	}
	if got := g.vowelCount(); got < MinVowels {
		t.Errorf("vowelCount() = %d, want >= %d", got, MinVowels)
	}
	if got := g.gemCount(); got != GemQuota {
		t.Errorf("gemCount() = %d, want %d", got, GemQuota)
	}
}

// TestBuildBoardRoundOneHasNoMultipliers verifies multipliers stay off the
// board until round 2.
func TestBuildBoardRoundOneHasNoMultipliers(t *testing.T) {
	room := newTestRoom(2, 7)
	g := room.Game

	if g.MultipliersEnabled || g.WordMultiplierEnabled {
		t.Fatal("multipliers enabled in round 1")
	}
	for i := range g.Tiles {
		if g.Tiles[i].Multiplier != MultiplierNone {
			t.Errorf("tile %s has multiplier %v in round 1", g.Tiles[i].ID, g.Tiles[i].Multiplier)
		}
		if g.Tiles[i].WordMultiplier != WordMultiplierNone {
			t.Errorf("tile %s has word multiplier in round 1", g.Tiles[i].ID)
		}
	}
}

// TestBuildBoardDeterministic verifies the same seed produces an identical
// board.
func TestBuildBoardDeterministic(t *testing.T) {
	g1 := newTestRoom(2, 99).Game
	g2 := newTestRoom(2, 99).Game

	for i := range g1.Tiles {
		if g1.Tiles[i].Letter != g2.Tiles[i].Letter {
			t.Errorf("tile %s: %q vs %q", g1.Tiles[i].ID, g1.Tiles[i].Letter, g2.Tiles[i].Letter)
		}
		if g1.Tiles[i].HasGem != g2.Tiles[i].HasGem {
			t.Errorf("tile %s gem mismatch across identical seeds", g1.Tiles[i].ID)
		}
	}
}

// TestBuildBoardDifferentSeeds verifies distinct seeds produce distinct
// boards.
func TestBuildBoardDifferentSeeds(t *testing.T) {
	g1 := newTestRoom(1, 1).Game
	g2 := newTestRoom(1, 2).Game

	same := true
	for i := range g1.Tiles {
		if g1.Tiles[i].Letter != g2.Tiles[i].Letter {
			same = false
			break
		}
	}
	if same {
		t.Error("seeds 1 and 2 produced identical boards (extremely unlikely if RNG is working)")
	}
}

// boardContents returns the sorted multiset of movable tile contents, used
// to assert that a shuffle permutes rather than mutates.
func boardContents(g *GameState) []tileContent {
	contents := make([]tileContent, NumTiles)
	for i := range g.Tiles {
		tile := &g.Tiles[i]
		contents[i] = tileContent{tile.Letter, tile.HasGem, tile.Multiplier, tile.BagTracked}
	}
	sort.Slice(contents, func(i, j int) bool {
		a, b := contents[i], contents[j]
		if a.letter != b.letter {
			return a.letter < b.letter
		}
		if a.hasGem != b.hasGem {
			return !a.hasGem
		}
		if a.multiplier != b.multiplier {
			return a.multiplier < b.multiplier
		}
		return !a.bagTracked && b.bagTracked
	})
	return contents
}

// TestShufflePermutesContents verifies a shuffle changes only the
// assignment of contents to tile ids, never the multiset of contents.
func TestShufflePermutesContents(t *testing.T) {
	room := newTestRoom(1, 42)
	g := room.Game
	g.MultipliersEnabled = true
	g.assignLetterMultiplier()

	before := boardContents(g)
	g.shuffleTiles()
	after := boardContents(g)

	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("content multiset changed at %d: %+v vs %+v", i, before[i], after[i])
		}
	}
}

// TestShufflePreservesWordMultiplierTile verifies the doubleWord flag stays
// on the logical RoundWordTileID tile through a shuffle.
func TestShufflePreservesWordMultiplierTile(t *testing.T) {
	room := newTestRoom(1, 42)
	g := room.Game
	g.WordMultiplierEnabled = true
	g.pickWordMultiplierTile(false)
	wordTile := g.RoundWordTileID

	g.shuffleTiles()

	if g.RoundWordTileID != wordTile {
		t.Fatalf("RoundWordTileID = %q after shuffle, want %q", g.RoundWordTileID, wordTile)
	}
	for i := range g.Tiles {
		tile := &g.Tiles[i]
		want := WordMultiplierNone
		if tile.ID == wordTile {
			want = WordMultiplierDouble
		}
		if tile.WordMultiplier != want {
			t.Errorf("tile %s word multiplier = %v, want %v", tile.ID, tile.WordMultiplier, want)
		}
	}
}

// TestRefreshTilesScoped verifies only the submitted tiles are redrawn and
// the vowel minimum holds afterwards.
func TestRefreshTilesScoped(t *testing.T) {
	room := newTestRoom(1, 42)
	g := room.Game

	refreshed := map[string]bool{"0-0": true, "1-0": true, "2-0": true}
	type kept struct {
		letter byte
		gem    bool
	}
	before := make(map[string]kept)
	for i := range g.Tiles {
		if !refreshed[g.Tiles[i].ID] {
			before[g.Tiles[i].ID] = kept{g.Tiles[i].Letter, g.Tiles[i].HasGem}
		}
	}

	g.refreshTiles([]string{"0-0", "1-0", "2-0"})

	for i := range g.Tiles {
		tile := &g.Tiles[i]
		if refreshed[tile.ID] {
			if tile.HasGem && g.gemCount() > GemQuota {
				t.Errorf("refreshed tile %s kept its gem beyond quota", tile.ID)
			}
			continue
		}
		// Untouched tiles may only change letter via vowel enforcement,
		// which draws vowels.
		was := before[tile.ID]
		if tile.Letter != was.letter && !isVowel(tile.Letter) {
			t.Errorf("untouched tile %s changed %q -> %q (not vowel enforcement)", tile.ID, was.letter, tile.Letter)
		}
		if tile.HasGem != was.gem && !tile.HasGem {
			t.Errorf("untouched tile %s lost its gem", tile.ID)
		}
	}
	if got := g.vowelCount(); got < MinVowels {
		t.Errorf("vowelCount() = %d after refresh, want >= %d", got, MinVowels)
	}
	if got := g.gemCount(); got != GemQuota {
		t.Errorf("gemCount() = %d after refresh, want %d", got, GemQuota)
	}
}

// TestPickWordMultiplierForceNew verifies forceNew moves the 2W tile to a
// different tile id.
func TestPickWordMultiplierForceNew(t *testing.T) {
	room := newTestRoom(1, 42)
	g := room.Game
	g.WordMultiplierEnabled = true
	g.pickWordMultiplierTile(false)

	for i := 0; i < 20; i++ {
		prev := g.RoundWordTileID
		g.pickWordMultiplierTile(true)
		if g.RoundWordTileID == prev {
			t.Fatalf("forceNew kept word multiplier on %q", prev)
		}
	}
}
