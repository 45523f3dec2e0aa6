package gamemaster

import (
	"errors"
	"fmt"

	"reversi/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var (
	ErrGameOver       = errors.New("game is over - no moves allowed")
	ErrIllegalMove    = errors.New("illegal move")
	ErrNotStarted     = errors.New("game has not been started")
	ErrAlreadyStarted = errors.New("game has already been started")
)

// Update is published after every accepted move
type Update struct {
	Player int // Player who moved
	Move   game.Position
	Grid   game.Grid
	Turn   int // Player to move next
	Done   bool
	Hash   game.StateHash
}

// UpdateGetter returns the next pending update without blocking. It reports
// false when no update is pending or the game is over and every update has been
// read.
type UpdateGetter func() (Update, bool)

type Engine interface {
	Init() (game.Game, UpdateGetter)
	Play(game.Position) error
}

// LocalEngine referees a single in-process game. Unlike the rules engine, it
// only accepts legal moves.
type LocalEngine struct {
	game     *game.Reversi
	updateCh chan Update
	gameOver bool
}

var _ Engine = (*LocalEngine)(nil)

func NewLocalEngine(side, players int, othello bool) (*LocalEngine, error) {
	r, err := game.NewReversi(side, players, othello)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return &LocalEngine{game: r}, nil
}

// Load replaces the starting position. It must be called before Init.
func (e *LocalEngine) Load(turn int, grid game.Grid) error {
	if e.updateCh != nil {
		return ErrAlreadyStarted
	}
	if err := e.game.LoadGame(turn, grid); err != nil {
		return fmt.Errorf("failed to load game: %w", err)
	}
	return nil
}

// Init starts the game and returns a snapshot of the starting position with a
// getter for the updates that follow.
func (e *LocalEngine) Init() (game.Game, UpdateGetter) {
	// Every accepted move fills an empty cell
	size := e.game.Size()
	e.updateCh = make(chan Update, size*size+1)
	e.gameOver = e.game.Done()
	if e.gameOver {
		close(e.updateCh)
	}

	log.Debug().Msgf("game started with %d players on a %dx%d board, player %d to move",
		e.game.NumPlayers(), size, size, e.game.Turn())

	updateCh := e.updateCh
	return e.game.Copy(), func() (Update, bool) {
		select {
		case u, ok := <-updateCh:
			return u, ok
		default:
			// No updates yet
			return Update{}, false
		}
	}
}

func (e *LocalEngine) Play(move game.Position) error {
	if e.updateCh == nil {
		return ErrNotStarted
	}
	if e.gameOver {
		return ErrGameOver
	}

	if _, err := e.game.PieceAt(move); err != nil {
		return fmt.Errorf("move %v: %w", move, err)
	}
	if !slices.Contains(e.game.AvailableMoves(), move) {
		return fmt.Errorf("%w: player %d cannot play %v", ErrIllegalMove, e.game.Turn(), move)
	}

	player := e.game.Turn()
	if err := e.game.ApplyMove(move); err != nil {
		return fmt.Errorf("move %v: %w", move, err)
	}

	u := Update{
		Player: player,
		Move:   move,
		Grid:   e.game.Grid(),
		Turn:   e.game.Turn(),
		Done:   e.game.Done(),
		Hash:   game.NewState(e.game).Hash(),
	}
	log.Debug().Msgf("player %d played %v", player, move)

	e.updateCh <- u
	if u.Done {
		// Send final update then close
		e.gameOver = true
		close(e.updateCh)
		log.Debug().Msgf("game over with outcome %v", e.game.Outcome())
	}

	return nil
}

func (e *LocalEngine) NumPlayers() int {
	return e.game.NumPlayers()
}

// Outcome returns the players tied for the most pieces, empty while running
func (e *LocalEngine) Outcome() []int {
	return e.game.Outcome()
}

// Counts returns the number of pieces held by each player, index 0 unused
func (e *LocalEngine) Counts() []int {
	counts := make([]int, e.game.NumPlayers()+1)
	for _, row := range e.game.Grid() {
		for _, owner := range row {
			if owner > 0 {
				counts[owner]++
			}
		}
	}
	return counts
}
