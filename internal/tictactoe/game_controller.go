package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const DefaultPointsForMatch = 3

// State of a match.
type State uint8

const (
	StateRoundInProgress State = iota
	StateRoundOver
	StateMatchOver
)

func (s State) String() string {
	switch s {
	case StateRoundOver:
		return entity.StatusRoundOver
	case StateMatchOver:
		return entity.StatusMatchOver
	default:
		return entity.StatusRoundInProgress
	}
}

type Option func(controller *GameController)

// WithPointsForMatch sets the number of round wins that ends the match.
func WithPointsForMatch(points int) Option {
	return func(controller *GameController) {
		controller.pointsForMatch = points
	}
}

// WithFirstMover sets the side moving first in the first round.
func WithFirstMover(side entity.Side) Option {
	return func(controller *GameController) {
		controller.firstMover = side
	}
}

func WithMatchID(id string) Option {
	return func(controller *GameController) {
		controller.id = id
	}
}

// GameController runs the rounds of one match. It exclusively owns the board.
type GameController struct {
	id             string
	board          entity.Board
	players        [2]*Player
	pointsForMatch int

	round       int
	firstMover  entity.Side
	mover       entity.Side
	state       State
	lastOutcome entity.Outcome
	matchWinner entity.Side
}

func NewGameController(human, computer *Player, options ...Option) (*GameController, error) {
	if human == nil || computer == nil {
		return nil, fmt.Errorf("%w: missing player", apperror.ErrInvalidPlayers)
	}

	if human.side != entity.SideHuman || computer.side != entity.SideComputer {
		return nil, fmt.Errorf("%w: sides %s and %s", apperror.ErrInvalidPlayers, human.side, computer.side)
	}

	if !human.mark.IsPlayerMark() || !computer.mark.IsPlayerMark() || human.mark == computer.mark {
		return nil, fmt.Errorf("%w: marks %q and %q", apperror.ErrInvalidPlayers, human.mark, computer.mark)
	}

	if human.strategy == nil || computer.strategy == nil {
		return nil, fmt.Errorf("%w: missing strategy", apperror.ErrInvalidPlayers)
	}

	controller := &GameController{
		pointsForMatch: DefaultPointsForMatch,
		firstMover:     entity.SideHuman,
		round:          1,
		state:          StateRoundInProgress,
	}
	controller.players[entity.SideHuman] = human
	controller.players[entity.SideComputer] = computer

	for _, option := range options {
		option(controller)
	}

	if controller.pointsForMatch < 1 {
		return nil, fmt.Errorf("%w: points for match %d", apperror.ErrInvalidPlayers, controller.pointsForMatch)
	}

	if controller.firstMover != entity.SideHuman && controller.firstMover != entity.SideComputer {
		return nil, fmt.Errorf("%w: first mover %d", apperror.ErrInvalidPlayers, controller.firstMover)
	}

	controller.mover = controller.firstMover

	return controller, nil
}

// PlayTurn plays one ply for the side to move. On error the board and the
// state are left untouched.
func (that *GameController) PlayTurn(ctx context.Context) (State, error) {
	if err := that.confirmRoundInProgress(); err != nil {
		return that.state, err
	}

	player := that.players[that.mover]
	opponent := that.players[that.mover.Opponent()]

	position, err := player.strategy.ChoosePosition(ctx, that.board, player.mark, opponent.mark)
	if err != nil {
		return that.state, fmt.Errorf("%s failed to choose position: %w", player.side, err)
	}

	if err = that.board.MarkAt(position, player.mark); err != nil {
		if player.side == entity.SideComputer || !errors.Is(err, apperror.ErrOccupiedOrInvalidPosition) {
			return that.state, fmt.Errorf("%w: %s chose %d: %w", apperror.ErrContractViolation, player.side, position, err)
		}

		return that.state, fmt.Errorf("invalid turn: %w", err)
	}

	that.mover = that.mover.Opponent()

	if IsRoundOver(&that.board) {
		that.resolveRound()
	}

	return that.state, nil
}

// PlayRound plays turns until the current round is over.
func (that *GameController) PlayRound(ctx context.Context) (State, error) {
	for that.state == StateRoundInProgress {
		if _, err := that.PlayTurn(ctx); err != nil {
			return that.state, err
		}
	}

	return that.state, nil
}

// NextRound starts the next round with the other side moving first.
func (that *GameController) NextRound() error {
	switch that.state {
	case StateRoundInProgress:
		return apperror.ErrRoundInProgress
	case StateMatchOver:
		return apperror.ErrMatchOver
	}

	that.board.Reset()
	that.firstMover = that.firstMover.Opponent()
	that.mover = that.firstMover
	that.round++
	that.lastOutcome = entity.OutcomeNone
	that.state = StateRoundInProgress

	return nil
}

func (that *GameController) resolveRound() {
	that.lastOutcome = entity.OutcomeTie

	if mark, ok := WinnerOf(&that.board); ok {
		winner := that.playerByMark(mark)
		winner.increaseScore()
		that.lastOutcome = entity.OutcomeFor(winner.side)

		if winner.score >= that.pointsForMatch {
			that.matchWinner = winner.side
			that.state = StateMatchOver
			return
		}
	}

	that.state = StateRoundOver
}

func (that *GameController) playerByMark(mark entity.Mark) *Player {
	if that.players[entity.SideHuman].mark == mark {
		return that.players[entity.SideHuman]
	}
	return that.players[entity.SideComputer]
}

func (that *GameController) confirmRoundInProgress() error {
	switch that.state {
	case StateRoundOver:
		return apperror.ErrRoundOver
	case StateMatchOver:
		return apperror.ErrMatchOver
	default:
		return nil
	}
}

func (that *GameController) ID() string {
	return that.id
}

// Board returns a copy of the current board.
func (that *GameController) Board() entity.Board {
	return that.board
}

func (that *GameController) State() State {
	return that.state
}

func (that *GameController) Mover() entity.Side {
	return that.mover
}

func (that *GameController) FirstMover() entity.Side {
	return that.firstMover
}

func (that *GameController) Round() int {
	return that.round
}

func (that *GameController) PointsForMatch() int {
	return that.pointsForMatch
}

// LastOutcome is the outcome of the current round once it is over.
func (that *GameController) LastOutcome() entity.Outcome {
	return that.lastOutcome
}

func (that *GameController) MatchWinner() (entity.Side, bool) {
	return that.matchWinner, that.state == StateMatchOver
}

func (that *GameController) Player(side entity.Side) *Player {
	return that.players[side]
}

// RoundResult describes the current round; Outcome is OutcomeNone while the
// round is in progress.
func (that *GameController) RoundResult() entity.RoundResult {
	human := that.players[entity.SideHuman]
	computer := that.players[entity.SideComputer]

	result := entity.RoundResult{
		MatchID:       that.id,
		Round:         that.round,
		Board:         that.board,
		Outcome:       that.lastOutcome,
		HumanMark:     human.mark,
		ComputerMark:  computer.mark,
		HumanScore:    human.score,
		ComputerScore: computer.score,
		PointsToWin:   that.pointsForMatch,
	}
	result.MatchWinner, result.MatchOver = that.MatchWinner()
	result.WinningLine, result.HasWinningLine = WinningLineOf(&that.board)

	return result
}

// Snapshot returns the serialisable view of the match.
func (that *GameController) Snapshot() *entity.Match {
	human := that.players[entity.SideHuman]
	computer := that.players[entity.SideComputer]

	match := &entity.Match{
		ID:            that.id,
		Round:         that.round,
		Status:        that.state.String(),
		FirstMover:    that.firstMover.String(),
		HumanMark:     human.mark.String(),
		ComputerMark:  computer.mark.String(),
		HumanScore:    human.score,
		ComputerScore: computer.score,
		PointsToWin:   that.pointsForMatch,
		UpdatedAt:     time.Now().UTC(),
	}

	for i, cell := range that.board.Cells() {
		if cell != entity.EmptyCell {
			match.Board[i] = cell.String()
		}
	}

	switch that.state {
	case StateRoundInProgress:
		match.Mover = that.mover.String()
	case StateRoundOver:
		match.LastOutcome = that.lastOutcome.String()
	case StateMatchOver:
		match.LastOutcome = that.lastOutcome.String()
		match.Winner = that.matchWinner.String()
	}

	return match
}
