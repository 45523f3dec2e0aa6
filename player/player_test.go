package player

import (
	"errors"
	"testing"
	"time"

	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

// stubGame offers fixed moves. Simulating a move hands the mover as many
// pieces as the move's gain entry.
type stubGame struct {
	turn  int
	moves []game.Position
	gains map[game.Position]int
}

var _ game.Game = stubGame{}

func (s stubGame) Size() int {
	return 4
}

func (s stubGame) NumPlayers() int {
	return 2
}

func (s stubGame) Turn() int {
	return s.turn
}

func (s stubGame) AvailableMoves() []game.Position {
	return s.moves
}

func (s stubGame) Done() bool {
	return len(s.moves) == 0
}

func (s stubGame) Outcome() []int {
	return []int{}
}

func (s stubGame) PieceAt(game.Position) (int, error) {
	return 0, nil
}

func (s stubGame) LegalMove(pos game.Position) (bool, error) {
	return slices.Contains(s.moves, pos), nil
}

func (s stubGame) ApplyMove(game.Position) error {
	return errors.New("stub is read-only")
}

func (s stubGame) LoadGame(int, game.Grid) error {
	return errors.New("stub is read-only")
}

func (s stubGame) Grid() game.Grid {
	return game.Grid{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}
}

func (s stubGame) SimulateMoves(moves []game.Position) (game.Game, error) {
	grid := s.Grid()
	for _, move := range moves {
		for i := 0; i < s.gains[move]; i++ {
			grid[i/4][i%4] = s.turn
		}
	}
	return gridGame{stubGame: s, grid: grid}, nil
}

type gridGame struct {
	stubGame
	grid game.Grid
}

func (g gridGame) Grid() game.Grid { return g.grid }

// stubAgent always proposes the same move
type stubAgent struct {
	move game.Position
}

func (a stubAgent) FindMove(game.State, []searcher.Segment) (game.Position, metrics.SearchMetric) {
	return a.move, metrics.SearchMetric{Episodes: 1}
}

func TestNoMoves(t *testing.T) {
	done := stubGame{turn: 1}
	players := map[string]Player{
		"random":    NewRandom(1),
		"greedy":    Greedy{},
		"searching": NewSearching(stubAgent{}),
	}
	for name, p := range players {
		t.Run(name, func(t *testing.T) {
			_, _, err := p.ChooseMove(done, nil)
			require.ErrorIs(t, err, ErrNoMoves)
		})
	}
}

func TestRandom(t *testing.T) {
	moves := []game.Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 3, Col: 3}}
	g := stubGame{turn: 1, moves: moves}

	seen := map[game.Position]bool{}
	p := NewRandom(42)
	for i := 0; i < 200; i++ {
		move, _, err := p.ChooseMove(g, nil)
		require.NoError(t, err)
		require.Contains(t, moves, move)
		seen[move] = true
	}
	require.Len(t, seen, len(moves), "Every move should eventually be picked")

	t.Run("seeded players agree", func(t *testing.T) {
		a, b := NewRandom(7), NewRandom(7)
		for i := 0; i < 20; i++ {
			moveA, _, _ := a.ChooseMove(g, nil)
			moveB, _, _ := b.ChooseMove(g, nil)
			require.Equal(t, moveA, moveB)
		}
	})
}

func TestGreedy(t *testing.T) {
	t.Run("maximizes own pieces", func(t *testing.T) {
		g := stubGame{
			turn:  2,
			moves: []game.Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 2, Col: 3}},
			gains: map[game.Position]int{{Row: 0, Col: 1}: 2, {Row: 1, Col: 0}: 5, {Row: 2, Col: 3}: 3},
		}
		move, _, err := Greedy{}.ChooseMove(g, nil)
		require.NoError(t, err)
		require.Equal(t, game.Position{Row: 1, Col: 0}, move)
	})

	t.Run("first best move wins ties", func(t *testing.T) {
		g := stubGame{
			turn:  1,
			moves: []game.Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 2, Col: 3}},
			gains: map[game.Position]int{{Row: 0, Col: 1}: 1, {Row: 1, Col: 0}: 4, {Row: 2, Col: 3}: 4},
		}
		move, _, err := Greedy{}.ChooseMove(g, nil)
		require.NoError(t, err)
		require.Equal(t, game.Position{Row: 1, Col: 0}, move)
	})

	t.Run("on a real game", func(t *testing.T) {
		r, err := game.NewReversi(8, 2, true)
		require.NoError(t, err)
		require.NoError(t, r.ApplyMove(game.Position{Row: 3, Col: 2}))

		move, _, err := Greedy{}.ChooseMove(r, nil)
		require.NoError(t, err)
		// Every reply captures exactly one piece, so the first one wins
		require.Equal(t, r.AvailableMoves()[0], move)
	})
}

func TestSearching(t *testing.T) {
	g := stubGame{turn: 1, moves: []game.Position{{Row: 0, Col: 1}, {Row: 2, Col: 3}}}

	t.Run("plays the agent's move", func(t *testing.T) {
		move, metric, err := NewSearching(stubAgent{move: game.Position{Row: 2, Col: 3}}).ChooseMove(g, nil)
		require.NoError(t, err)
		require.Equal(t, game.Position{Row: 2, Col: 3}, move)
		require.Equal(t, 1, metric.Episodes)
	})

	t.Run("falls back to the first available move", func(t *testing.T) {
		move, _, err := NewSearching(stubAgent{move: game.Position{Row: 3, Col: 3}}).ChooseMove(g, nil)
		require.NoError(t, err)
		require.Equal(t, game.Position{Row: 0, Col: 1}, move)
	})
}

func TestNew(t *testing.T) {
	r, err := game.NewReversi(6, 2, true)
	require.NoError(t, err)

	tests := []struct {
		name   string
		config metrics.AgentConfig
	}{
		{"random", metrics.AgentConfig{Kind: KindRandom, Seed: 3}},
		{"greedy", metrics.AgentConfig{Kind: KindGreedy}},
		{"mcts by episodes", metrics.AgentConfig{Kind: KindMCTS, Goroutines: 2, Episodes: 30}},
		{"mcts by duration", metrics.AgentConfig{Kind: KindMCTS, Goroutines: 2, Duration: 5 * time.Millisecond, Cutoff: 10}},
		{"sampling mcts", metrics.AgentConfig{Kind: KindTraining, Goroutines: 1, Episodes: 30, Seed: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.config)
			require.NoError(t, err)

			move, _, err := p.ChooseMove(r, nil)
			require.NoError(t, err)
			require.Contains(t, r.AvailableMoves(), move)
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		_, err := New(metrics.AgentConfig{Kind: "oracle"})
		require.ErrorIs(t, err, ErrUnknownKind)
	})

	t.Run("search without budget", func(t *testing.T) {
		_, err := New(metrics.AgentConfig{Kind: KindMCTS, Goroutines: 4})
		require.ErrorIs(t, err, ErrNoBudget)
	})
}
