package player

import (
	"errors"
	"fmt"

	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher"
	"reversi/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// Player kinds accepted by New
const (
	KindRandom   = "random"
	KindGreedy   = "greedy"
	KindMCTS     = "mcts"
	KindTraining = "mcts-sample"
)

var (
	ErrNoMoves     = errors.New("no moves available")
	ErrUnknownKind = errors.New("unknown player kind")
	ErrNoBudget    = errors.New("search needs episodes or a duration")
)

// Player picks a move for whoever is to move in g. Updates are the moves played
// since the player's previous turn.
type Player interface {
	ChooseMove(g game.Game, updates []searcher.Segment) (game.Position, metrics.SearchMetric, error)
}

// New builds the player described by config
func New(config metrics.AgentConfig) (Player, error) {
	switch config.Kind {
	case KindRandom:
		return NewRandom(config.Seed), nil
	case KindGreedy:
		return Greedy{}, nil
	case KindMCTS, KindTraining:
		if config.Episodes <= 0 && config.Duration <= 0 {
			return nil, fmt.Errorf("agent %d: %w", config.ID, ErrNoBudget)
		}
		mcts := searcher.NewMCTS(
			config.Goroutines,
			searcher.WithEpisodes(config.Episodes),
			searcher.WithDuration(config.Duration),
			searcher.WithCutoff(config.Cutoff),
			searcher.WithMetrics(),
		)
		if config.Kind == KindTraining {
			return NewSearching(agent.NewTrainingAgent(mcts, 1.0, config.Seed)), nil
		}
		return NewSearching(agent.NewEvaluationAgent(mcts)), nil
	default:
		return nil, fmt.Errorf("agent %d: %w %q", config.ID, ErrUnknownKind, config.Kind)
	}
}

// Random plays a uniformly random available move
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (p *Random) ChooseMove(g game.Game, _ []searcher.Segment) (game.Position, metrics.SearchMetric, error) {
	moves := g.AvailableMoves()
	if len(moves) == 0 {
		return game.Position{}, metrics.SearchMetric{}, ErrNoMoves
	}
	return moves[p.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}

// Greedy plays the move that leaves it the most pieces, preferring the first
// such move in row-major order.
type Greedy struct{}

func (Greedy) ChooseMove(g game.Game, _ []searcher.Segment) (game.Position, metrics.SearchMetric, error) {
	moves := g.AvailableMoves()
	if len(moves) == 0 {
		return game.Position{}, metrics.SearchMetric{}, ErrNoMoves
	}

	me := g.Turn()
	best, bestCount := moves[0], -1
	for _, move := range moves {
		next, err := g.SimulateMoves([]game.Position{move})
		if err != nil {
			return game.Position{}, metrics.SearchMetric{}, fmt.Errorf("simulate %v: %w", move, err)
		}
		if count := countPieces(next.Grid(), me); count > bestCount {
			best, bestCount = move, count
		}
	}
	return best, metrics.SearchMetric{}, nil
}

func countPieces(grid game.Grid, player int) int {
	count := 0
	for _, row := range grid {
		for _, owner := range row {
			if owner == player {
				count++
			}
		}
	}
	return count
}

// Searching asks a tree search agent for its move
type Searching struct {
	agent agent.Agent
}

func NewSearching(a agent.Agent) *Searching {
	return &Searching{agent: a}
}

func (p *Searching) ChooseMove(g game.Game, updates []searcher.Segment) (game.Position, metrics.SearchMetric, error) {
	moves := g.AvailableMoves()
	if len(moves) == 0 {
		return game.Position{}, metrics.SearchMetric{}, ErrNoMoves
	}

	move, metric := p.agent.FindMove(game.NewState(g), updates)
	if !slices.Contains(moves, move) {
		log.Warn().Msgf("search returned unavailable move %v, playing %v instead", move, moves[0])
		return moves[0], metric, nil
	}
	return move, metric, nil
}
