package searcher

import (
	"reversi/game"

	"golang.org/x/exp/slices"
)

type mockState struct {
	player  string
	moves   []game.Position
	played  []game.Position
	hash    game.StateHash
	winners []string
}

func (m mockState) Player() string {
	return m.player
}

func (m mockState) LegalMoves() []game.Position {
	return m.moves
}

func (m mockState) Play(move game.Position) game.State {
	return mockState{player: m.player, played: append(slices.Clone(m.played), move)}
}

func (m mockState) Hash() game.StateHash {
	return m.hash
}

func (m mockState) Winners() []string {
	return m.winners
}
