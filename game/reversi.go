package game

const (
	MinPlayers = 2
	MaxPlayers = 9
	MinSide    = 3
)

// The eight compass and diagonal directions a capture can run along.
var directions = []Position{
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
}

// Reversi is a multi-player generalisation of Othello/Reversi on a
// side x side board.
//
// Until the central players x players square is full, any empty cell inside
// it is a legal placement and nothing is captured. After that a move must
// flank a run of opponent pieces along at least one direction.
type Reversi struct {
	side       int
	players    int
	othello    bool
	board      *Board
	totalTurns int // turns elapsed, skipped turns included
	done       bool
}

var _ Game = (*Reversi)(nil)

// NewReversi creates a game. When othello is set the board starts with the
// four-piece Othello layout, otherwise empty.
func NewReversi(side, players int, othello bool) (*Reversi, error) {
	if err := ValidateSetup(side, players, othello); err != nil {
		return nil, err
	}

	r := &Reversi{
		side:    side,
		players: players,
		othello: othello,
		board:   NewBoard(side),
	}
	if othello {
		mid := side / 2
		r.board.Set(Position{mid, mid - 1}, Piece(1))
		r.board.Set(Position{mid - 1, mid}, Piece(1))
		r.board.Set(Position{mid - 1, mid - 1}, Piece(2))
		r.board.Set(Position{mid, mid}, Piece(2))
	}
	return r, nil
}

// ValidateSetup applies the construction rules in order and reports the
// first one broken.
func ValidateSetup(side, players int, othello bool) error {
	var reason error
	switch {
	case players < MinPlayers || players > MaxPlayers:
		reason = ErrPlayerCount
	case players%2 != side%2:
		reason = ErrParity
	case othello && players != 2:
		reason = ErrOthelloPlayers
	case side < MinSide:
		reason = ErrBoardTooSmall
	default:
		return nil
	}
	return &ConfigurationError{Err: reason, Side: side, Players: players, Othello: othello}
}

func (r *Reversi) Size() int {
	return r.side
}

func (r *Reversi) NumPlayers() int {
	return r.players
}

func (r *Reversi) Othello() bool {
	return r.othello
}

func (r *Reversi) Grid() Grid {
	return r.board.Grid()
}

func (r *Reversi) Turn() int {
	return r.totalTurns%r.players + 1
}

func (r *Reversi) Done() bool {
	return r.done
}

// AvailableMoves returns nil once the game is done.
func (r *Reversi) AvailableMoves() []Position {
	if r.done {
		return nil
	}
	return r.movesFor(Piece(r.Turn()))
}

func (r *Reversi) Outcome() []int {
	if !r.done {
		return []int{}
	}
	counts := r.board.Count(r.players)
	best := 0
	for player := 1; player <= r.players; player++ {
		best = max(best, counts[player])
	}
	winners := []int{}
	for player := 1; player <= r.players; player++ {
		if counts[player] == best {
			winners = append(winners, player)
		}
	}
	return winners
}

func (r *Reversi) PieceAt(pos Position) (int, error) {
	if err := r.checkBounds(pos); err != nil {
		return 0, err
	}
	return r.board.Get(pos).Player(), nil
}

func (r *Reversi) LegalMove(pos Position) (bool, error) {
	if err := r.checkBounds(pos); err != nil {
		return false, err
	}
	return r.legalFor(pos, Piece(r.Turn())), nil
}

// ApplyMove places a piece for the current player, captures every flanked
// run, then hands the turn to the next player able to move. If nobody can
// move the game is over.
//
// An on-board position that is not legal is still placed, but captures
// nothing.
func (r *Reversi) ApplyMove(pos Position) error {
	if err := r.checkBounds(pos); err != nil {
		return err
	}
	r.apply(pos)
	return nil
}

func (r *Reversi) apply(pos Position) {
	mover := Piece(r.Turn())
	capture := !r.inOpening() && r.legalFor(pos, mover)

	r.board.Set(pos, mover)
	if capture {
		for _, d := range directions {
			r.flip(pos, d, mover)
		}
	}

	r.totalTurns++
	r.settle()
}

// LoadGame replaces the whole state. Nothing changes unless turn and grid
// are both valid. A loaded position where turn cannot move passes the turn
// on, and one where nobody can move is done.
func (r *Reversi) LoadGame(turn int, grid Grid) error {
	if err := r.validateLoad(turn, grid); err != nil {
		return err
	}
	r.board = boardFromGrid(grid)
	r.totalTurns = turn - 1
	r.done = false
	r.settle()
	return nil
}

func (r *Reversi) validateLoad(turn int, grid Grid) error {
	if turn < 1 || turn > r.players {
		return &LoadValidationError{Err: ErrTurnRange, Turn: turn, Row: -1, Col: -1}
	}
	if len(grid) != r.side {
		return &LoadValidationError{Err: ErrGridSize, Turn: turn, Row: -1, Col: -1}
	}
	for i, row := range grid {
		if len(row) != r.side {
			return &LoadValidationError{Err: ErrGridSize, Turn: turn, Row: i, Col: -1}
		}
		for j, owner := range row {
			if owner < 0 || owner > r.players {
				return &LoadValidationError{Err: ErrCellValue, Turn: turn, Row: i, Col: j, Value: owner}
			}
		}
	}
	return nil
}

// SimulateMoves plays moves on a copy of the game, skipping stuck players
// as ApplyMove does, and stops early once the copy is done. Every position
// is bounds checked before anything is played.
func (r *Reversi) SimulateMoves(moves []Position) (Game, error) {
	sim, err := r.Simulate(moves)
	if err != nil {
		return nil, err
	}
	return sim, nil
}

// Simulate is SimulateMoves returning the concrete type.
func (r *Reversi) Simulate(moves []Position) (*Reversi, error) {
	for _, pos := range moves {
		if err := r.checkBounds(pos); err != nil {
			return nil, err
		}
	}
	sim := r.Copy()
	for _, pos := range moves {
		if sim.done {
			break
		}
		sim.apply(pos)
	}
	return sim, nil
}

// Copy returns an independent deep copy.
func (r *Reversi) Copy() *Reversi {
	c := *r
	c.board = r.board.Copy()
	return &c
}

func (r *Reversi) String() string {
	return r.board.String()
}

func (r *Reversi) checkBounds(pos Position) error {
	if !r.board.InBoard(pos) {
		return &BoundsError{Pos: pos, Side: r.side}
	}
	return nil
}

// settle moves the turn past every player without a legal move. A full
// rotation with no legal move anywhere ends the game.
func (r *Reversi) settle() {
	for skipped := 0; skipped < r.players; skipped++ {
		if r.hasMove(Piece(r.Turn())) {
			return
		}
		r.totalTurns++
	}
	r.done = true
}

// openingBounds returns the half-open index range [lo, hi) of the central
// square, clipped to the board.
func (r *Reversi) openingBounds() (lo, hi int) {
	n := (r.side - r.players) / 2
	return max(n, 0), min(r.side-n, r.side)
}

func (r *Reversi) inCentre(pos Position) bool {
	lo, hi := r.openingBounds()
	return pos.Row >= lo && pos.Row < hi && pos.Col >= lo && pos.Col < hi
}

// inOpening reports whether the central square still has an empty cell.
func (r *Reversi) inOpening() bool {
	lo, hi := r.openingBounds()
	for i := lo; i < hi; i++ {
		for j := lo; j < hi; j++ {
			if r.board.Get(Position{i, j}) == NoPiece {
				return true
			}
		}
	}
	return false
}

func (r *Reversi) legalFor(pos Position, mover Piece) bool {
	if r.board.Get(pos) != NoPiece {
		return false
	}
	if r.inOpening() {
		return r.inCentre(pos)
	}
	for _, d := range directions {
		if r.flanks(pos, d, mover) > 0 {
			return true
		}
	}
	return false
}

// flanks returns how many opponent pieces lie between pos and the nearest
// mover piece along d, or 0 if the run is not closed by a mover piece.
func (r *Reversi) flanks(pos, d Position, mover Piece) int {
	run := 0
	for cur := pos.add(d); r.board.InBoard(cur); cur = cur.add(d) {
		switch r.board.Get(cur) {
		case NoPiece:
			return 0
		case mover:
			return run
		}
		run++
	}
	return 0
}

func (r *Reversi) flip(pos, d Position, mover Piece) {
	run := r.flanks(pos, d, mover)
	cur := pos
	for i := 0; i < run; i++ {
		cur = cur.add(d)
		r.board.Set(cur, mover)
	}
}

func (r *Reversi) movesFor(mover Piece) []Position {
	moves := []Position{}
	for i := 0; i < r.side; i++ {
		for j := 0; j < r.side; j++ {
			pos := Position{i, j}
			if r.legalFor(pos, mover) {
				moves = append(moves, pos)
			}
		}
	}
	return moves
}

func (r *Reversi) hasMove(mover Piece) bool {
	for i := 0; i < r.side; i++ {
		for j := 0; j < r.side; j++ {
			if r.legalFor(Position{i, j}, mover) {
				return true
			}
		}
	}
	return false
}
