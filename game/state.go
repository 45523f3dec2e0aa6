package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// gameState adapts a Game to the State a searcher expands. It owns a private
// snapshot, so the game it was built from can keep changing.
type gameState struct {
	game Game
}

// NewState snapshots g for searching.
func NewState(g Game) State {
	snapshot, err := g.SimulateMoves(nil)
	if err != nil {
		panic(fmt.Sprintf("snapshot failed: %v", err))
	}
	return gameState{game: snapshot}
}

// PlayerName is the identifier a State uses for a player number.
func PlayerName(player int) string {
	return fmt.Sprintf("Player%d", player)
}

// Player returns the identifier of the current player.
func (s gameState) Player() string {
	return PlayerName(s.game.Turn())
}

func (s gameState) LegalMoves() []Position {
	return s.game.AvailableMoves()
}

func (s gameState) Play(move Position) State {
	next, err := s.game.SimulateMoves([]Position{move})
	if err != nil {
		panic(err)
	}
	return gameState{game: next}
}

func (s gameState) Winners() []string {
	outcome := s.game.Outcome()
	winners := make([]string, len(outcome))
	for i, player := range outcome {
		winners[i] = PlayerName(player)
	}
	return winners
}

func (s gameState) Hash() StateHash {
	hasher := fnv.New64a()

	// Hash whose turn it is, unless nobody can move
	turn := int64(s.game.Turn())
	if s.game.Done() {
		turn = 0
	}
	binary.Write(hasher, binary.LittleEndian, turn)

	// Hash cells
	for _, row := range s.game.Grid() {
		for _, owner := range row {
			binary.Write(hasher, binary.LittleEndian, int8(owner))
		}
	}

	return StateHash(hasher.Sum64())
}
