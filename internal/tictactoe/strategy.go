package tictactoe

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

// Strategy selects the next position for a player. The board is a copy;
// strategies never mutate the controller's board.
type Strategy interface {
	ChoosePosition(ctx context.Context, board entity.Board, own, opponent entity.Mark) (int, error)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(ctx context.Context, board entity.Board, own, opponent entity.Mark) (int, error)

func (f StrategyFunc) ChoosePosition(ctx context.Context, board entity.Board, own, opponent entity.Mark) (int, error) {
	return f(ctx, board, own, opponent)
}

// Intn is the random source of the computer strategy. *rand.Rand from
// golang.org/x/exp/rand and math/rand both satisfy it.
type Intn interface {
	Intn(n int) int
}

type computerStrategy struct {
	rng Intn
}

// NewComputerStrategy returns the heuristic opponent: win now, block now,
// take the center, otherwise a uniformly random open position.
func NewComputerStrategy(rng Intn) Strategy {
	return &computerStrategy{
		rng: rng,
	}
}

func (that *computerStrategy) ChoosePosition(_ context.Context, board entity.Board, own, opponent entity.Mark) (int, error) {
	if position, ok := winningMoveFor(&board, own); ok {
		return position, nil
	}

	if position, ok := winningMoveFor(&board, opponent); ok {
		return position, nil
	}

	if board.At(entity.CenterPosition) == entity.EmptyCell {
		return entity.CenterPosition, nil
	}

	availableCells := board.OpenPositions()
	if len(availableCells) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}

	return availableCells[that.rng.Intn(len(availableCells))], nil
}

// winningMoveFor returns the empty position completing a line on which mark
// already holds two cells, first line in table order.
func winningMoveFor(board *entity.Board, mark entity.Mark) (int, bool) {
	for _, line := range entity.WinningLines() {
		if board.CountMarksOnLine(mark, line) != 2 || board.CountMarksOnLine(entity.EmptyCell, line) != 1 {
			continue
		}

		for _, position := range line {
			if board.At(position) == entity.EmptyCell {
				return position, true
			}
		}
	}

	return 0, false
}
