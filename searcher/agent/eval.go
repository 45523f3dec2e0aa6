package agent

import (
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.State, updates []searcher.Segment) (game.Position, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state, updates)
	return findMax(policy), metric
}

// findMax returns the most visited move, or an off-board position for an
// empty policy
func findMax(policy map[game.Position]float64) game.Position {
	moves := bestFirst(policy)
	if len(moves) == 0 {
		return game.Position{Row: -1, Col: -1}
	}
	return moves[0]
}
