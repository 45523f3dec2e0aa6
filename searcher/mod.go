package searcher

import (
	"math"

	"reversi/game"

	"golang.org/x/exp/slices"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const Win = 1.0   // Reward for a sole winner, split among tied winners
const Loss = -Win // Reward for every other player

// MaxCutoff lets rollouts run until the game is over
const MaxCutoff = math.MaxInt

// Segment is one move of the lineage played since the previous search, with the
// hash of the state the move led to.
type Segment struct {
	Move      game.Position
	StateHash game.StateHash
}

// terminalReward shares the win between every tied winner
func terminalReward(winners []string) func(player string) float64 {
	return func(player string) float64 {
		if slices.Contains(winners, player) {
			return Win / float64(len(winners))
		}
		return Loss
	}
}

// evaluationReward spreads a cutoff score given from the perspective of the
// player to move: that player gets the score, everyone else its negation.
func evaluationReward(current string, score float64) func(player string) float64 {
	return func(player string) float64 {
		if player == current {
			return score
		}
		return -score
	}
}
