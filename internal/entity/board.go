package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

const (
	BoardSize = 9

	FirstPosition  = 1
	LastPosition   = 9
	CenterPosition = 5
)

// Line is a triple of board positions.
type Line [3]int

var winningLines = [8]Line{
	{1, 2, 3}, // rows
	{4, 5, 6},
	{7, 8, 9},
	{1, 4, 7}, // columns
	{2, 5, 8},
	{3, 6, 9},
	{1, 5, 9}, // diagonals
	{3, 5, 7},
}

// WinningLines returns the 8 winning lines in table order.
func WinningLines() [8]Line {
	return winningLines
}

// Board is the 3x3 grid, positions 1..9 in row-major order.
// The zero value is an empty board.
type Board struct {
	cells [BoardSize]Mark
}

func NewBoard() *Board {
	return &Board{}
}

func IsValidPosition(position int) bool {
	return position >= FirstPosition && position <= LastPosition
}

// MarkAt places mark on an empty position. It never overwrites a cell.
func (that *Board) MarkAt(position int, mark Mark) error {
	if !mark.IsPlayerMark() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	if !IsValidPosition(position) {
		return fmt.Errorf("%w: position %d", apperror.ErrOccupiedOrInvalidPosition, position)
	}

	if that.cells[position-1] != EmptyCell {
		return fmt.Errorf("%w: position %d holds %s", apperror.ErrOccupiedOrInvalidPosition, position, that.cells[position-1])
	}

	that.cells[position-1] = mark

	return nil
}

// At returns the mark on position, EmptyCell for positions out of range.
func (that *Board) At(position int) Mark {
	if !IsValidPosition(position) {
		return EmptyCell
	}
	return that.cells[position-1]
}

// OpenPositions returns the empty positions in ascending order.
func (that *Board) OpenPositions() []int {
	open := make([]int, 0, BoardSize)
	for i, cell := range that.cells {
		if cell == EmptyCell {
			open = append(open, i+1)
		}
	}
	return open
}

func (that *Board) IsFull() bool {
	return len(that.OpenPositions()) == 0
}

func (that *Board) CountMarksOnLine(mark Mark, line Line) int {
	count := 0
	for _, position := range line {
		if that.At(position) == mark {
			count++
		}
	}
	return count
}

func (that *Board) Reset() {
	that.cells = [BoardSize]Mark{}
}

func (that *Board) Cells() [BoardSize]Mark {
	return that.cells
}

// String renders the board on one line, e.g. "XO_|_X_|__O".
func (that *Board) String() string {
	var sb strings.Builder
	for i, cell := range that.cells {
		if i > 0 && i%3 == 0 {
			sb.WriteByte('|')
		}
		if cell == EmptyCell {
			sb.WriteByte('_')
			continue
		}
		sb.WriteString(cell.String())
	}
	return sb.String()
}
