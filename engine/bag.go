package engine

// The letter bag is a weighted-without-replacement distribution: drawing
// picks a letter proportional to its remaining count, so the board's letter
// mix stays close to the designed frequencies across repeated refreshes.
// When the (possibly filtered) pool is exhausted the draw falls back to a
// uniform pick over the static alphabet and the result is marked as not
// bag-tracked, so the game never stalls on an empty bag.

// drawLetter draws a letter from the bag, optionally restricted to vowels.
// It returns the letter and whether it came from the bag (and was consumed
// from it).
func (g *GameState) drawLetter(vowelsOnly bool) (letter byte, fromBag bool) {
	total := 0
	for i, count := range g.Bag {
		if vowelsOnly && !isVowel(byte('A'+i)) {
			continue
		}
		total += count
	}
	if total == 0 {
		// Bag (or its vowel subset) is exhausted: uniform fallback.
		if vowelsOnly {
			return vowels[g.randN(len(vowels))], false
		}
		return byte('A' + g.randN(26)), false
	}

	// Cumulative-weight linear search over remaining counts.
	pick := g.randN(total)
	for i, count := range g.Bag {
		if vowelsOnly && !isVowel(byte('A'+i)) {
			continue
		}
		if pick < count {
			g.Bag[i]--
			return byte('A' + i), true
		}
		pick -= count
	}
	// Unreachable while counts are non-negative.
	return 'E', false
}

// releaseTile returns a tile's letter to the bag if it was bag-tracked.
// Letters assigned by direct swap bypass the bag and are not returned.
func (g *GameState) releaseTile(t *Tile) {
	if !t.BagTracked {
		return
	}
	if t.Letter >= 'A' && t.Letter <= 'Z' {
		g.Bag[t.Letter-'A']++
	}
	t.BagTracked = false
}

// bagCount returns the total number of letters remaining in the bag.
func (g *GameState) bagCount() int {
	total := 0
	for _, count := range g.Bag {
		total += count
	}
	return total
}
