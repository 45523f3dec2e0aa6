package agent

import (
	"math"

	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training. Moves are
// sampled from the visit counts raised to 1/temperature.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return &trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(state game.State, updates []searcher.Segment) (game.Position, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state, updates)
	policy = adjustTemperature(policy, a.temperature)
	return sample(policy, a.rng.Float64()), metric
}

func adjustTemperature(policy map[game.Position]float64, temperature float64) map[game.Position]float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[game.Position]float64, len(policy))
	for move, visits := range policy {
		prob := math.Pow(visits, exponent)
		sum += prob
		adjusted[move] = prob
	}
	if sum == 0 {
		return adjusted
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

// sample walks the policy in a fixed order so a given draw in [0, 1) always
// picks the same move
func sample(policy map[game.Position]float64, sampled float64) game.Position {
	moves := bestFirst(policy)
	if len(moves) == 0 {
		return game.Position{Row: -1, Col: -1}
	}
	cumulative := 0.0
	for _, move := range moves {
		cumulative += policy[move]
		if sampled < cumulative {
			return move
		}
	}
	return moves[len(moves)-1] // Fallback in case of rounding errors
}
