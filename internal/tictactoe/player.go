package tictactoe

import "github.com/rocketscienceinc/tictactoe-console/internal/entity"

// Player is a match participant. Human and computer players differ only in
// the Strategy that supplies their moves.
type Player struct {
	side     entity.Side
	mark     entity.Mark
	score    int
	strategy Strategy
}

func NewPlayer(side entity.Side, mark entity.Mark, strategy Strategy) *Player {
	return &Player{
		side:     side,
		mark:     mark,
		strategy: strategy,
	}
}

func (that *Player) Side() entity.Side {
	return that.side
}

func (that *Player) Mark() entity.Mark {
	return that.mark
}

func (that *Player) Score() int {
	return that.score
}

func (that *Player) Strategy() Strategy {
	return that.strategy
}

func (that *Player) increaseScore() {
	that.score++
}
