package agent

import (
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher"

	"golang.org/x/exp/slices"
)

type Agent interface {
	// FindMove returns a move and performance metrics (if collected) from the simulation process
	FindMove(state game.State, updates []searcher.Segment) (game.Position, metrics.SearchMetric)
}

// bestFirst orders a policy by decreasing visits, breaking ties in row-major
// order so equal policies always yield the same move.
func bestFirst(policy map[game.Position]float64) []game.Position {
	moves := make([]game.Position, 0, len(policy))
	for move := range policy {
		moves = append(moves, move)
	}
	slices.SortFunc(moves, func(a, b game.Position) int {
		switch {
		case policy[a] != policy[b]:
			if policy[a] > policy[b] {
				return -1
			}
			return 1
		case a.Row != b.Row:
			return a.Row - b.Row
		default:
			return a.Col - b.Col
		}
	})
	return moves
}
