package engine

// buildBoard draws all 25 tiles from the bag and enforces the vowel minimum
// and gem quota. Called once per game by StartNewGame.
func (g *GameState) buildBoard() {
	for i := range g.Tiles {
		t := &g.Tiles[i]
		t.Letter, t.BagTracked = g.drawLetter(false)
		t.HasGem = false
		t.Multiplier = MultiplierNone
		t.WordMultiplier = WordMultiplierNone
	}
	g.ensureMinimumVowels()
	g.ensureGemQuota()
	if g.MultipliersEnabled && !g.hasLetterMultiplier() {
		g.assignLetterMultiplier()
	}
}

// refreshTiles redraws only the given tiles: their letters go back to the
// bag, new letters are drawn, and their gem and letter-multiplier flags are
// cleared. All other tiles, including the word-multiplier assignment, are
// untouched.
func (g *GameState) refreshTiles(tileIDs []string) {
	for _, id := range tileIDs {
		t := g.tile(id)
		if t == nil {
			continue
		}
		g.releaseTile(t)
		t.Letter, t.BagTracked = g.drawLetter(false)
		t.HasGem = false
		t.Multiplier = MultiplierNone
	}
	g.ensureMinimumVowels()
	g.ensureGemQuota()
}

// vowelCount returns the number of vowel tiles on the board.
func (g *GameState) vowelCount() int {
	count := 0
	for i := range g.Tiles {
		if isVowel(g.Tiles[i].Letter) {
			count++
		}
	}
	return count
}

// ensureMinimumVowels force-redraws random non-vowel tiles into vowels until
// the board-wide vowel count reaches MinVowels. Replaced letters are
// returned to the bag first so the accounting stays balanced.
func (g *GameState) ensureMinimumVowels() {
	for g.vowelCount() < MinVowels {
		candidates := make([]*Tile, 0, NumTiles)
		for i := range g.Tiles {
			if !isVowel(g.Tiles[i].Letter) {
				candidates = append(candidates, &g.Tiles[i])
			}
		}
		if len(candidates) == 0 {
			return
		}
		t := candidates[g.randN(len(candidates))]
		g.releaseTile(t)
		t.Letter, t.BagTracked = g.drawLetter(true)
	}
}

// gemCount returns the number of gem-bearing tiles on the board.
func (g *GameState) gemCount() int {
	count := 0
	for i := range g.Tiles {
		if g.Tiles[i].HasGem {
			count++
		}
	}
	return count
}

// ensureGemQuota flags random gem-less tiles until the board carries
// GemQuota gems.
func (g *GameState) ensureGemQuota() {
	for g.gemCount() < GemQuota {
		candidates := make([]*Tile, 0, NumTiles)
		for i := range g.Tiles {
			if !g.Tiles[i].HasGem {
				candidates = append(candidates, &g.Tiles[i])
			}
		}
		if len(candidates) == 0 {
			return
		}
		candidates[g.randN(len(candidates))].HasGem = true
	}
}

// hasLetterMultiplier reports whether any tile carries a letter multiplier.
func (g *GameState) hasLetterMultiplier() bool {
	for i := range g.Tiles {
		if g.Tiles[i].Multiplier != MultiplierNone {
			return true
		}
	}
	return false
}

// assignLetterMultiplier places the single special letter tile on a random
// multiplier-free tile: triple letter with tripleLetterChance percent
// probability, double letter otherwise.
func (g *GameState) assignLetterMultiplier() {
	candidates := make([]*Tile, 0, NumTiles)
	for i := range g.Tiles {
		if g.Tiles[i].Multiplier == MultiplierNone {
			candidates = append(candidates, &g.Tiles[i])
		}
	}
	if len(candidates) == 0 {
		return
	}
	t := candidates[g.randN(len(candidates))]
	if g.randN(100) < tripleLetterChance {
		t.Multiplier = MultiplierTripleLetter
	} else {
		t.Multiplier = MultiplierDoubleLetter
	}
}

// tileContent is the movable part of a tile during a shuffle. The word
// multiplier is deliberately excluded: it is tracked by tile id and
// reapplied after the permutation.
type tileContent struct {
	letter     byte
	hasGem     bool
	multiplier Multiplier
	bagTracked bool
}

// shuffleTiles permutes tile contents across the 25 fixed slots with an
// unbiased Fisher-Yates shuffle, then reapplies the word-multiplier flag so
// that whichever tile holds RoundWordTileID still shows doubleWord.
func (g *GameState) shuffleTiles() {
	var contents [NumTiles]tileContent
	for i := range g.Tiles {
		t := &g.Tiles[i]
		contents[i] = tileContent{t.Letter, t.HasGem, t.Multiplier, t.BagTracked}
	}
	for i := NumTiles - 1; i > 0; i-- {
		j := g.randN(i + 1)
		contents[i], contents[j] = contents[j], contents[i]
	}
	for i := range g.Tiles {
		t := &g.Tiles[i]
		t.Letter = contents[i].letter
		t.HasGem = contents[i].hasGem
		t.Multiplier = contents[i].multiplier
		t.BagTracked = contents[i].bagTracked
	}
	g.applyWordMultiplier()
}

// applyWordMultiplier sets the doubleWord flag on the tile holding
// RoundWordTileID and clears it everywhere else.
func (g *GameState) applyWordMultiplier() {
	for i := range g.Tiles {
		t := &g.Tiles[i]
		if g.WordMultiplierEnabled && t.ID == g.RoundWordTileID {
			t.WordMultiplier = WordMultiplierDouble
		} else {
			t.WordMultiplier = WordMultiplierNone
		}
	}
}

// pickWordMultiplierTile assigns RoundWordTileID to a random tile. With
// forceNew the previous tile id is excluded from the candidate pool unless
// it is the only tile.
func (g *GameState) pickWordMultiplierTile(forceNew bool) {
	candidates := make([]string, 0, NumTiles)
	for i := range g.Tiles {
		if forceNew && g.Tiles[i].ID == g.RoundWordTileID && NumTiles > 1 {
			continue
		}
		candidates = append(candidates, g.Tiles[i].ID)
	}
	if len(candidates) == 0 {
		return
	}
	g.RoundWordTileID = candidates[g.randN(len(candidates))]
	g.applyWordMultiplier()
}
