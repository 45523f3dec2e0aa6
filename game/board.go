package game

import (
	"fmt"
	"strings"
)

// Position addresses a cell by row (top to bottom) and column (left to right).
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

func (p Position) add(d Position) Position {
	return Position{p.Row + d.Row, p.Col + d.Col}
}

// Grid is the exchange format for a board: row-major, 0 for an empty cell,
// otherwise the owning player's number.
type Grid [][]int

// Copy returns a grid that shares no rows with g.
func (g Grid) Copy() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Board is a square grid of pieces.
type Board struct {
	side  int
	cells [][]Piece
}

// NewBoard returns an empty side x side board.
func NewBoard(side int) *Board {
	cells := make([][]Piece, side)
	for i := range cells {
		cells[i] = make([]Piece, side)
	}
	return &Board{side: side, cells: cells}
}

// boardFromGrid assumes grid is square and already validated.
func boardFromGrid(grid Grid) *Board {
	b := NewBoard(len(grid))
	for i, row := range grid {
		for j, owner := range row {
			b.cells[i][j] = Piece(owner)
		}
	}
	return b
}

func (b *Board) Side() int {
	return b.side
}

// InBoard reports whether pos lies on the board.
func (b *Board) InBoard(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.side && pos.Col >= 0 && pos.Col < b.side
}

// Get assumes pos is on the board.
func (b *Board) Get(pos Position) Piece {
	return b.cells[pos.Row][pos.Col]
}

// Set assumes pos is on the board.
func (b *Board) Set(pos Position, p Piece) {
	b.cells[pos.Row][pos.Col] = p
}

func (b *Board) Copy() *Board {
	cells := make([][]Piece, b.side)
	for i, row := range b.cells {
		cells[i] = append([]Piece(nil), row...)
	}
	return &Board{side: b.side, cells: cells}
}

func (b *Board) Grid() Grid {
	grid := make(Grid, b.side)
	for i, row := range b.cells {
		grid[i] = make([]int, b.side)
		for j, p := range row {
			grid[i][j] = p.Player()
		}
	}
	return grid
}

// Count tallies pieces per player; index 0 counts empty cells.
func (b *Board) Count(players int) []int {
	counts := make([]int, players+1)
	for _, row := range b.cells {
		for _, p := range row {
			if p >= NoPiece && p.Player() <= players {
				counts[p]++
			}
		}
	}
	return counts
}

// Box-drawing characters indexed by which of the north, east, south and west
// arms are drawn at a corner point.
var junctions = map[[4]bool]string{
	{false, false, false, false}: " ",
	{false, false, false, true}:  "╴",
	{false, false, true, false}:  "╷",
	{false, false, true, true}:   "┐",
	{false, true, false, false}:  "╶",
	{false, true, false, true}:   "─",
	{false, true, true, false}:   "┌",
	{false, true, true, true}:    "┬",
	{true, false, false, false}:  "╵",
	{true, false, false, true}:   "┘",
	{true, false, true, false}:   "│",
	{true, false, true, true}:    "┤",
	{true, true, false, false}:   "└",
	{true, true, false, true}:    "┴",
	{true, true, true, false}:    "├",
	{true, true, true, true}:     "┼",
}

// String draws the board with box-drawing walls, each piece shown as its
// player number.
func (b *Board) String() string {
	n := 2*b.side + 1
	last := n - 1
	lines := make([]string, n)
	for k := 0; k < n; k++ {
		var sb strings.Builder
		for l := 0; l < n; l++ {
			switch {
			case k%2 == 0 && l%2 == 0:
				sb.WriteString(junctions[[4]bool{k > 0, l < last, k < last, l > 0}])
			case k%2 == 0:
				sb.WriteString("─")
			case l%2 == 0:
				sb.WriteString("│")
			default:
				sb.WriteString(b.cells[(k-1)/2][(l-1)/2].String())
			}
		}
		lines[k] = sb.String()
	}
	return strings.Join(lines, "\n")
}
