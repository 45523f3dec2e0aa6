package game

import (
	"errors"
	"fmt"
)

// Error families. Use errors.Is to test for a family or for a specific reason.
var (
	ErrConfiguration = errors.New("invalid game configuration")
	ErrOutOfBounds   = errors.New("position outside the board")
	ErrInvalidLoad   = errors.New("invalid game state")
)

// Reasons a game cannot be constructed.
var (
	ErrPlayerCount    = fmt.Errorf("%w: the number of players must be between %d and %d inclusive", ErrConfiguration, MinPlayers, MaxPlayers)
	ErrParity         = fmt.Errorf("%w: the number of players and side length must have the same parity", ErrConfiguration)
	ErrOthelloPlayers = fmt.Errorf("%w: the Othello variant can only be played with 2 players", ErrConfiguration)
	ErrBoardTooSmall  = fmt.Errorf("%w: the side length must be at least %d", ErrConfiguration, MinSide)
)

// Reasons a saved game cannot be loaded.
var (
	ErrTurnRange = fmt.Errorf("%w: turn is inconsistent with the number of players", ErrInvalidLoad)
	ErrGridSize  = fmt.Errorf("%w: grid size is inconsistent with the board size", ErrInvalidLoad)
	ErrCellValue = fmt.Errorf("%w: grid value is inconsistent with the number of players", ErrInvalidLoad)
)

// ConfigurationError reports the parameters a game was rejected with.
type ConfigurationError struct {
	Err     error
	Side    int
	Players int
	Othello bool
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("side=%d players=%d othello=%t: %v", e.Side, e.Players, e.Othello, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// BoundsError reports a position that does not lie on a side x side board.
type BoundsError struct {
	Pos  Position
	Side int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%v on a %dx%d board: %v", e.Pos, e.Side, e.Side, ErrOutOfBounds)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// LoadValidationError reports why LoadGame refused a state. Row and Col
// locate the offending cell for ErrCellValue and the offending row for
// ErrGridSize; they are -1 otherwise.
type LoadValidationError struct {
	Err   error
	Turn  int
	Row   int
	Col   int
	Value int
}

func (e *LoadValidationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrTurnRange):
		return fmt.Sprintf("turn %d: %v", e.Turn, e.Err)
	case e.Col >= 0:
		return fmt.Sprintf("cell (%d, %d) holds %d: %v", e.Row, e.Col, e.Value, e.Err)
	case e.Row >= 0:
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *LoadValidationError) Unwrap() error {
	return e.Err
}
