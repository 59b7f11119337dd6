package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
)

const (
	questionNextRound = "Do you want to play again?"
	questionNewMatch  = "Do you want to start a new match?"
)

type frontEnd interface {
	DisplayWelcome()
	DisplayBoard(board entity.Board)
	DisplayRoundResult(result entity.RoundResult)
	DisplayGoodbye()

	ConfirmPlayAgain(ctx context.Context, question string) (bool, error)
}

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	DeleteByID(ctx context.Context, id string) error
}

// ControllerFactory builds the controller of a new match with fresh scores.
type ControllerFactory func(matchID string) (*tictactoe.GameController, error)

type MatchManager struct {
	logger        *slog.Logger
	ui            frontEnd
	matchRepo     matchRepo
	newController ControllerFactory
}

func NewMatchManager(logger *slog.Logger, ui frontEnd, matchRepo matchRepo, newController ControllerFactory) *MatchManager {
	return &MatchManager{
		logger: logger.With("component", "match_manager"),

		ui:            ui,
		matchRepo:     matchRepo,
		newController: newController,
	}
}

// Run plays matches until the human declines to continue or quits.
func (that *MatchManager) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	that.ui.DisplayWelcome()
	defer that.ui.DisplayGoodbye()

	for {
		result, err := that.PlayMatch(ctx)
		if isLeaving(err) {
			log.Info("player left the game", "reason", err)
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to play match: %w", err)
		}

		if !result.MatchOver {
			return nil
		}

		again, err := that.ui.ConfirmPlayAgain(ctx, questionNewMatch)
		if isLeaving(err) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to confirm new match: %w", err)
		}

		if !again {
			return nil
		}
	}
}

// PlayMatch plays one match. The returned result is the last finished round;
// MatchOver is false when the human stopped before the match was decided.
func (that *MatchManager) PlayMatch(ctx context.Context) (entity.RoundResult, error) {
	matchID := pkg.GenerateMatchID()
	log := that.logger.With("method", "PlayMatch", "matchID", matchID)

	controller, err := that.newController(matchID)
	if err != nil {
		return entity.RoundResult{}, fmt.Errorf("failed to create match: %w", err)
	}

	log.Info("match started", "pointsToWin", controller.PointsForMatch(), "firstMover", controller.FirstMover().String())

	that.saveMatch(ctx, controller)
	defer that.deleteMatch(context.WithoutCancel(ctx), controller)

	for {
		if controller.Mover() == entity.SideHuman {
			that.ui.DisplayBoard(controller.Board())
		}

		mover := controller.Mover()

		state, err := controller.PlayTurn(ctx)
		if err != nil {
			if errors.Is(err, apperror.ErrOccupiedOrInvalidPosition) && !errors.Is(err, apperror.ErrContractViolation) {
				log.Warn("human move rejected", "error", err)
				continue
			}

			return controller.RoundResult(), fmt.Errorf("failed to play turn: %w", err)
		}

		board := controller.Board()
		log.Debug("turn played", "round", controller.Round(), "side", mover.String(), "board", board.String())

		that.saveMatch(ctx, controller)

		if state == tictactoe.StateRoundInProgress {
			continue
		}

		result := controller.RoundResult()
		that.ui.DisplayRoundResult(result)

		log.Info("round over",
			"round", result.Round,
			"outcome", result.Outcome.String(),
			"humanScore", result.HumanScore,
			"computerScore", result.ComputerScore,
		)

		if state == tictactoe.StateMatchOver {
			log.Info("match over", "winner", result.MatchWinner.String())
			return result, nil
		}

		again, err := that.ui.ConfirmPlayAgain(ctx, questionNextRound)
		if err != nil {
			return result, fmt.Errorf("failed to confirm next round: %w", err)
		}

		if !again {
			return result, nil
		}

		if err = controller.NextRound(); err != nil {
			return result, fmt.Errorf("failed to start next round: %w", err)
		}

		that.saveMatch(ctx, controller)
	}
}

// saveMatch publishes the match snapshot. Storage errors never stop the game.
func (that *MatchManager) saveMatch(ctx context.Context, controller *tictactoe.GameController) {
	if err := that.matchRepo.CreateOrUpdate(ctx, controller.Snapshot()); err != nil {
		that.logger.Error("failed to save match", "matchID", controller.ID(), "error", err)
	}
}

func (that *MatchManager) deleteMatch(ctx context.Context, controller *tictactoe.GameController) {
	log := that.logger.With("method", "deleteMatch", "matchID", controller.ID())

	if err := that.matchRepo.DeleteByID(ctx, controller.ID()); err != nil {
		log.Error("failed to delete match", "error", err)
		return
	}

	log.Debug("match deleted")
}

func isLeaving(err error) bool {
	return errors.Is(err, apperror.ErrQuit) || errors.Is(err, context.Canceled)
}
