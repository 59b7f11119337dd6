package tictactoe

import "github.com/rocketscienceinc/tictactoe-console/internal/entity"

// WinnerOf returns the mark holding a complete line, scanning lines in table order.
func WinnerOf(board *entity.Board) (entity.Mark, bool) {
	line, ok := WinningLineOf(board)
	if !ok {
		return entity.EmptyCell, false
	}
	return board.At(line[0]), true
}

// WinningLineOf returns the first complete line in table order.
func WinningLineOf(board *entity.Board) (entity.Line, bool) {
	for _, line := range entity.WinningLines() {
		for _, mark := range [...]entity.Mark{entity.PlayerX, entity.PlayerO} {
			if board.CountMarksOnLine(mark, line) == len(line) {
				return line, true
			}
		}
	}
	return entity.Line{}, false
}

func IsRoundOver(board *entity.Board) bool {
	if board.IsFull() {
		return true
	}
	_, ok := WinnerOf(board)
	return ok
}
