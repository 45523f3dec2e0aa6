package engine

import "reversi/experiments/metrics"

// MaxMoves bounds a game. Reversi games end within side*side moves, so the
// bound only guards against a misbehaving referee.
const MaxMoves = 10000

type Engine interface {
	// Run plays a game till it is over or a max number of moves is reached
	Run() (winners []int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
