package game

// Game is the capability set consumers (bots, referees, front ends) rely on.
// Reversi is the production implementation; anything else is a test double.
//
// Grid and SimulateMoves always hand out independent copies, so a consumer
// can never alias the engine's board.
type Game interface {
	Size() int
	NumPlayers() int
	// Grid returns a copy of the board, 0 meaning an empty cell.
	Grid() Grid
	// Turn is the player (numbered from 1) who moves next. Meaningless once Done.
	Turn() int
	// AvailableMoves lists the legal positions for Turn in row-major order.
	AvailableMoves() []Position
	Done() bool
	// Outcome lists every player tied for the most pieces, or nothing while
	// the game is still running.
	Outcome() []int

	PieceAt(pos Position) (int, error)
	LegalMove(pos Position) (bool, error)
	// ApplyMove assumes pos is legal. An on-board illegal position is placed
	// without capturing anything.
	ApplyMove(pos Position) error
	LoadGame(turn int, grid Grid) error
	// SimulateMoves returns a new game with moves applied, leaving the
	// receiver untouched.
	SimulateMoves(moves []Position) (Game, error)
}

type StateHash uint64

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() string
	LegalMoves() []Position
	Play(Position) State
	Hash() StateHash
	Winners() []string
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(State) float64
