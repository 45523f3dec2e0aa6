package gamemaster

import (
	"errors"
	"testing"

	"reversi/game"

	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, side, players int, othello bool) *LocalEngine {
	t.Helper()
	engine, err := NewLocalEngine(side, players, othello)
	require.NoError(t, err)
	return engine
}

func TestNewLocalEngine(t *testing.T) {
	tests := []struct {
		name    string
		side    int
		players int
		othello bool
		target  error
	}{
		{"othello with three players", 7, 3, true, game.ErrOthelloPlayers},
		{"parity checked before othello", 8, 3, true, game.ErrParity},
		{"too many players", 10, 10, false, game.ErrPlayerCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewLocalEngine(tt.side, tt.players, tt.othello)

			require.Nil(t, engine)
			require.ErrorIs(t, err, tt.target)
			require.ErrorIs(t, err, game.ErrConfiguration)
			var config *game.ConfigurationError
			require.True(t, errors.As(err, &config))
			require.Equal(t, tt.players, config.Players)
		})
	}
}

func TestLocalEngineInit(t *testing.T) {
	engine := newEngine(t, 8, 2, true)
	state, getUpdate := engine.Init()

	require.Equal(t, 8, state.Size())
	require.Equal(t, 1, state.Turn())
	require.Equal(t, []game.Position{{Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 4, Col: 5}, {Row: 5, Col: 4}}, state.AvailableMoves())

	// No moves played yet
	_, ok := getUpdate()
	require.False(t, ok)

	// The snapshot is not the refereed game
	require.NoError(t, state.ApplyMove(game.Position{Row: 3, Col: 2}))
	require.Equal(t, 1, engine.game.Turn())
}

func TestLocalEnginePlayValidMove(t *testing.T) {
	engine := newEngine(t, 8, 2, true)
	_, getUpdate := engine.Init()

	require.NoError(t, engine.Play(game.Position{Row: 3, Col: 2}))

	u, ok := getUpdate()
	require.True(t, ok, "expected an update after playing a move")
	require.Equal(t, 1, u.Player)
	require.Equal(t, game.Position{Row: 3, Col: 2}, u.Move)
	require.Equal(t, 2, u.Turn)
	require.False(t, u.Done)
	require.Equal(t, 1, u.Grid[3][3], "The flanked piece should be captured")
	require.Equal(t, game.NewState(engine.game).Hash(), u.Hash)

	_, ok = getUpdate()
	require.False(t, ok, "expected a single update per move")
}

func TestLocalEnginePlayRejections(t *testing.T) {
	t.Run("before init", func(t *testing.T) {
		engine := newEngine(t, 8, 2, true)
		require.ErrorIs(t, engine.Play(game.Position{Row: 3, Col: 2}), ErrNotStarted)
	})

	t.Run("illegal move", func(t *testing.T) {
		engine := newEngine(t, 8, 2, true)
		_, getUpdate := engine.Init()

		err := engine.Play(game.Position{Row: 0, Col: 0})

		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, 1, engine.game.Turn(), "A rejected move should not advance the turn")
		_, ok := getUpdate()
		require.False(t, ok)
	})

	t.Run("occupied cell", func(t *testing.T) {
		engine := newEngine(t, 8, 2, true)
		engine.Init()
		require.ErrorIs(t, engine.Play(game.Position{Row: 3, Col: 3}), ErrIllegalMove)
	})

	t.Run("out of bounds", func(t *testing.T) {
		engine := newEngine(t, 8, 2, true)
		engine.Init()

		err := engine.Play(game.Position{Row: 8, Col: 0})

		require.ErrorIs(t, err, game.ErrOutOfBounds)
		var bounds *game.BoundsError
		require.True(t, errors.As(err, &bounds))
		require.Equal(t, game.Position{Row: 8, Col: 0}, bounds.Pos)
	})
}

func TestLocalEnginePlayGameOver(t *testing.T) {
	engine := newEngine(t, 3, 3, false)
	require.NoError(t, engine.Load(3, game.Grid{
		{1, 1, 1},
		{2, 2, 2},
		{3, 3, 0},
	}))
	_, getUpdate := engine.Init()

	require.NoError(t, engine.Play(game.Position{Row: 2, Col: 2}))

	// The final update is delivered before the getter reports the end
	u, ok := getUpdate()
	require.True(t, ok, "expected a final update before game ends")
	require.True(t, u.Done)
	require.Equal(t, 3, u.Player)

	_, ok = getUpdate()
	require.False(t, ok, "expected no updates after game over")

	require.ErrorIs(t, engine.Play(game.Position{Row: 0, Col: 0}), ErrGameOver)
	require.Equal(t, []int{1, 2, 3}, engine.Outcome())
	require.Equal(t, []int{0, 3, 3, 3}, engine.Counts())
}

func TestLocalEngineLoad(t *testing.T) {
	t.Run("finished position", func(t *testing.T) {
		engine := newEngine(t, 3, 3, false)
		require.NoError(t, engine.Load(2, game.Grid{
			{1, 1, 1},
			{2, 2, 2},
			{3, 3, 3},
		}))

		state, getUpdate := engine.Init()

		require.True(t, state.Done())
		_, ok := getUpdate()
		require.False(t, ok)
		require.ErrorIs(t, engine.Play(game.Position{Row: 0, Col: 0}), ErrGameOver)
	})

	t.Run("invalid position", func(t *testing.T) {
		engine := newEngine(t, 3, 3, false)
		err := engine.Load(1, game.Grid{{1}})
		require.ErrorIs(t, err, game.ErrGridSize)
	})

	t.Run("after init", func(t *testing.T) {
		engine := newEngine(t, 8, 2, true)
		engine.Init()
		require.ErrorIs(t, engine.Load(1, engine.game.Grid()), ErrAlreadyStarted)
	})
}

func TestLocalEngineIdenticalInitStates(t *testing.T) {
	state1, _ := newEngine(t, 6, 2, true).Init()
	state2, _ := newEngine(t, 6, 2, true).Init()

	require.Equal(t, state1.Grid(), state2.Grid(), "expected the same initial state configuration")
}
