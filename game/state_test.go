package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStateSnapshot(t *testing.T) {
	r := newGame(t, 8, 2, true)
	state := NewState(r)

	require.NoError(t, r.ApplyMove(Position{3, 2}))

	require.Equal(t, "Player1", state.Player(), "State should not follow the live game")
	require.Equal(t, []Position{{2, 3}, {3, 2}, {4, 5}, {5, 4}}, state.LegalMoves())
}

func TestStatePlay(t *testing.T) {
	r := newGame(t, 8, 2, true)
	before := r.Grid()
	state := NewState(r)

	next := state.Play(Position{3, 2})

	require.Equal(t, "Player2", next.Player())
	require.Equal(t, "Player1", state.Player(), "Play should not mutate the receiver")
	require.NotEqual(t, state.Hash(), next.Hash())
	require.Empty(t, next.Winners())
	if diff := cmp.Diff(before, r.Grid()); diff != "" {
		t.Errorf("Play changed the source game (-before +after):\n%s", diff)
	}
}

func TestStateHash(t *testing.T) {
	t.Run("same position same hash", func(t *testing.T) {
		a := NewState(newGame(t, 8, 2, true)).Play(Position{3, 2})
		b := NewState(newGame(t, 8, 2, true)).Play(Position{3, 2})
		require.Equal(t, a.Hash(), b.Hash())
	})

	t.Run("turn is part of the hash", func(t *testing.T) {
		grid := newGame(t, 4, 2, true).Grid()
		a := NewState(loadGame(t, 2, 1, grid))
		b := NewState(loadGame(t, 2, 2, grid))
		require.NotEqual(t, a.Hash(), b.Hash())
	})

	t.Run("finished positions ignore the turn", func(t *testing.T) {
		grid := Grid{
			{1, 1, 1},
			{2, 2, 2},
			{3, 3, 3},
		}
		a := NewState(loadGame(t, 3, 1, grid))
		b := NewState(loadGame(t, 3, 3, grid))
		require.Equal(t, a.Hash(), b.Hash())
	})
}

func TestStateWinners(t *testing.T) {
	state := NewState(loadGame(t, 3, 1, Grid{
		{1, 1, 1},
		{2, 2, 2},
		{3, 3, 3},
	}))

	require.Empty(t, state.LegalMoves())
	require.Equal(t, []string{"Player1", "Player2", "Player3"}, state.Winners())
}

func TestEvaluatePieces(t *testing.T) {
	t.Run("even position", func(t *testing.T) {
		state := NewState(newGame(t, 8, 2, true))
		require.InDelta(t, 0.0, EvaluatePieces(state), 1e-9)
	})

	t.Run("scored for the player to move", func(t *testing.T) {
		state := NewState(newGame(t, 8, 2, true)).Play(Position{3, 2})
		// Player 2 to move with 1 piece against 4
		require.InDelta(t, -0.6, EvaluatePieces(state), 1e-9)
	})

	t.Run("compares against the strongest opponent", func(t *testing.T) {
		state := NewState(loadGame(t, 3, 1, stuckPlayerGrid()))
		// Player 1 holds 6, player 3 holds 3
		require.InDelta(t, 1.0/3.0, EvaluatePieces(state), 1e-9)
	})

	t.Run("panics on foreign states", func(t *testing.T) {
		require.Panics(t, func() { EvaluatePieces(nil) })
	})
}
