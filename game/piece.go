package game

import "strconv"

// Piece marks a cell as owned by a player. Players are numbered from 1;
// the zero Piece is an empty cell.
type Piece int

const NoPiece Piece = 0

func (p Piece) Player() int {
	return int(p)
}

func (p Piece) String() string {
	if p == NoPiece {
		return " "
	}
	return strconv.Itoa(int(p))
}
