package game

// EvaluatePieces compares the current player's piece count with that of the
// strongest opponent, producing a score between -1 and 1 from the current
// player's perspective.
func EvaluatePieces(s State) float64 {
	gs, ok := s.(gameState)
	if !ok {
		panic("unexpected state type")
	}
	g := gs.game

	counts := make([]float64, g.NumPlayers()+1)
	for _, row := range g.Grid() {
		for _, owner := range row {
			counts[owner]++
		}
	}

	current := g.Turn()
	best := 0.0
	for player := 1; player <= g.NumPlayers(); player++ {
		if player != current {
			best = max(best, counts[player])
		}
	}
	return normalize(counts[current], best)
}

// normalize converts two values into a single score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	// [a/(a+b)-0.5]*2 = (a-b)/(a+b)
	return (value - otherValue) / total
}
