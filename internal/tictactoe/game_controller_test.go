package tictactoe

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// scripted plays the given positions in order.
func scripted(t *testing.T, positions ...int) Strategy {
	t.Helper()

	next := 0
	return StrategyFunc(func(_ context.Context, _ entity.Board, _, _ entity.Mark) (int, error) {
		require.Less(t, next, len(positions), "script exhausted")
		position := positions[next]
		next++
		return position, nil
	})
}

func newScriptedController(t *testing.T, human, computer []int, options ...Option) *GameController {
	t.Helper()

	controller, err := NewGameController(
		NewPlayer(entity.SideHuman, entity.PlayerX, scripted(t, human...)),
		NewPlayer(entity.SideComputer, entity.PlayerO, scripted(t, computer...)),
		options...,
	)
	require.NoError(t, err)

	return controller
}

func TestNewGameController(t *testing.T) {
	strategy := NewComputerStrategy(&fixedIntn{})

	t.Run("Starts the first round with the human to move", func(t *testing.T) {
		// Given: two valid players
		controller, err := NewGameController(
			NewPlayer(entity.SideHuman, entity.PlayerX, strategy),
			NewPlayer(entity.SideComputer, entity.PlayerO, strategy),
			WithMatchID("match-1"),
		)

		// Then: the match starts in round 1 on an empty board
		require.NoError(t, err)
		assert.Equal(t, "match-1", controller.ID())
		assert.Equal(t, StateRoundInProgress, controller.State())
		assert.Equal(t, 1, controller.Round())
		assert.Equal(t, entity.SideHuman, controller.Mover())
		assert.Equal(t, entity.SideHuman, controller.FirstMover())
		assert.Equal(t, DefaultPointsForMatch, controller.PointsForMatch())
		assert.Equal(t, entity.OutcomeNone, controller.LastOutcome())
		assert.Equal(t, entity.Board{}, controller.Board())
		assert.Zero(t, controller.Player(entity.SideHuman).Score())
		assert.Zero(t, controller.Player(entity.SideComputer).Score())

		_, over := controller.MatchWinner()
		assert.False(t, over)
	})

	t.Run("Honours the first mover option", func(t *testing.T) {
		controller, err := NewGameController(
			NewPlayer(entity.SideHuman, entity.PlayerO, strategy),
			NewPlayer(entity.SideComputer, entity.PlayerX, strategy),
			WithFirstMover(entity.SideComputer),
			WithPointsForMatch(5),
		)

		require.NoError(t, err)
		assert.Equal(t, entity.SideComputer, controller.Mover())
		assert.Equal(t, 5, controller.PointsForMatch())
	})

	invalid := []struct {
		name     string
		human    *Player
		computer *Player
		options  []Option
	}{
		{
			name:     "Same marks",
			human:    NewPlayer(entity.SideHuman, entity.PlayerX, strategy),
			computer: NewPlayer(entity.SideComputer, entity.PlayerX, strategy),
		},
		{
			name:     "Empty mark",
			human:    NewPlayer(entity.SideHuman, entity.EmptyCell, strategy),
			computer: NewPlayer(entity.SideComputer, entity.PlayerO, strategy),
		},
		{
			name:     "Swapped sides",
			human:    NewPlayer(entity.SideComputer, entity.PlayerX, strategy),
			computer: NewPlayer(entity.SideHuman, entity.PlayerO, strategy),
		},
		{
			name:     "Missing strategy",
			human:    NewPlayer(entity.SideHuman, entity.PlayerX, nil),
			computer: NewPlayer(entity.SideComputer, entity.PlayerO, strategy),
		},
		{
			name:     "Missing player",
			human:    NewPlayer(entity.SideHuman, entity.PlayerX, strategy),
			computer: nil,
		},
		{
			name:     "Zero points for match",
			human:    NewPlayer(entity.SideHuman, entity.PlayerX, strategy),
			computer: NewPlayer(entity.SideComputer, entity.PlayerO, strategy),
			options:  []Option{WithPointsForMatch(0)},
		},
		{
			name:     "Unknown first mover",
			human:    NewPlayer(entity.SideHuman, entity.PlayerX, strategy),
			computer: NewPlayer(entity.SideComputer, entity.PlayerO, strategy),
			options:  []Option{WithFirstMover(entity.Side(7))},
		},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			controller, err := NewGameController(tt.human, tt.computer, tt.options...)

			require.ErrorIs(t, err, apperror.ErrInvalidPlayers)
			assert.Nil(t, controller)
		})
	}
}

func TestGameController_PlayTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Marks the board and flips the mover", func(t *testing.T) {
		// Given: a new match
		controller := newScriptedController(t, []int{5}, []int{1})

		// When: the human and the computer each play once
		state, err := controller.PlayTurn(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateRoundInProgress, state)
		assert.Equal(t, entity.SideComputer, controller.Mover())

		_, err = controller.PlayTurn(ctx)
		require.NoError(t, err)

		// Then: both marks are on the board and the human moves again
		board := controller.Board()
		assert.Equal(t, entity.PlayerX, board.At(5))
		assert.Equal(t, entity.PlayerO, board.At(1))
		assert.Equal(t, entity.SideHuman, controller.Mover())
	})

	t.Run("Occupied human choice is recoverable", func(t *testing.T) {
		// Given: the human picks the cell the computer just took
		controller := newScriptedController(t, []int{7, 1, 2}, []int{1})
		_, err := controller.PlayTurn(ctx)
		require.NoError(t, err)
		_, err = controller.PlayTurn(ctx)
		require.NoError(t, err)
		before := controller.Board()

		// When: the human plays the occupied cell
		state, err := controller.PlayTurn(ctx)

		// Then: the move is rejected without touching the board or the turn
		require.ErrorIs(t, err, apperror.ErrOccupiedOrInvalidPosition)
		assert.NotErrorIs(t, err, apperror.ErrContractViolation)
		assert.Equal(t, StateRoundInProgress, state)
		assert.Equal(t, before, controller.Board())
		assert.Equal(t, entity.SideHuman, controller.Mover())

		// Then: the next valid choice is accepted
		_, err = controller.PlayTurn(ctx)
		require.NoError(t, err)
		board := controller.Board()
		assert.Equal(t, entity.PlayerX, board.At(2))
	})

	t.Run("Out of range human choice is recoverable", func(t *testing.T) {
		controller := newScriptedController(t, []int{10}, nil)

		_, err := controller.PlayTurn(ctx)

		require.ErrorIs(t, err, apperror.ErrOccupiedOrInvalidPosition)
		assert.NotErrorIs(t, err, apperror.ErrContractViolation)
		assert.Equal(t, entity.Board{}, controller.Board())
	})

	t.Run("Occupied computer choice is a contract violation", func(t *testing.T) {
		// Given: a computer strategy that picks the human's cell
		controller := newScriptedController(t, []int{7}, []int{7})
		_, err := controller.PlayTurn(ctx)
		require.NoError(t, err)

		// When: the computer plays
		_, err = controller.PlayTurn(ctx)

		// Then: the error is distinguishable and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrContractViolation)
		require.ErrorIs(t, err, apperror.ErrOccupiedOrInvalidPosition)
		board := controller.Board()
		assert.Equal(t, entity.PlayerX, board.At(7))
		assert.Equal(t, entity.SideComputer, controller.Mover())
	})

	t.Run("Strategy errors are returned untouched", func(t *testing.T) {
		// Given: a human who quits
		quitter := StrategyFunc(func(_ context.Context, _ entity.Board, _, _ entity.Mark) (int, error) {
			return 0, apperror.ErrQuit
		})
		controller, err := NewGameController(
			NewPlayer(entity.SideHuman, entity.PlayerX, quitter),
			NewPlayer(entity.SideComputer, entity.PlayerO, NewComputerStrategy(&fixedIntn{})),
		)
		require.NoError(t, err)

		// When: the human is asked for a move
		state, err := controller.PlayTurn(ctx)

		// Then: the quit is propagated and nothing changes
		require.ErrorIs(t, err, apperror.ErrQuit)
		assert.Equal(t, StateRoundInProgress, state)
		assert.Equal(t, entity.Board{}, controller.Board())
		assert.Equal(t, entity.SideHuman, controller.Mover())
	})
}

func TestGameController_RoundResolution(t *testing.T) {
	ctx := context.Background()

	t.Run("Human win scores a point and ends the round", func(t *testing.T) {
		// Given: the human completes the top row
		controller := newScriptedController(t, []int{1, 2, 3}, []int{4, 5})

		// When: the round is played out
		state, err := controller.PlayRound(ctx)

		// Then: the round is over with a human win
		require.NoError(t, err)
		assert.Equal(t, StateRoundOver, state)
		assert.Equal(t, entity.OutcomeHumanWin, controller.LastOutcome())
		assert.Equal(t, 1, controller.Player(entity.SideHuman).Score())
		assert.Equal(t, 0, controller.Player(entity.SideComputer).Score())

		// Then: no further turn is accepted until the next round
		_, err = controller.PlayTurn(ctx)
		require.ErrorIs(t, err, apperror.ErrRoundOver)
	})

	t.Run("Full board without a line is a tie", func(t *testing.T) {
		// Given: moves filling the board without three in a line
		controller := newScriptedController(t, []int{1, 3, 4, 8, 9}, []int{2, 5, 7, 6})

		// When: the round is played out
		state, err := controller.PlayRound(ctx)

		// Then: the round is a tie and nobody scores
		require.NoError(t, err)
		assert.Equal(t, StateRoundOver, state)
		assert.Equal(t, entity.OutcomeTie, controller.LastOutcome())
		assert.Zero(t, controller.Player(entity.SideHuman).Score())
		assert.Zero(t, controller.Player(entity.SideComputer).Score())
		board := controller.Board()
		assert.True(t, board.IsFull())
	})

	t.Run("NextRound resets the board and swaps the first mover", func(t *testing.T) {
		// Given: a finished round the human started
		controller := newScriptedController(t, []int{1, 2, 3}, []int{4, 5})
		_, err := controller.PlayRound(ctx)
		require.NoError(t, err)

		// When: the next round starts
		err = controller.NextRound()

		// Then: the computer moves first on an empty board
		require.NoError(t, err)
		assert.Equal(t, StateRoundInProgress, controller.State())
		assert.Equal(t, 2, controller.Round())
		assert.Equal(t, entity.SideComputer, controller.FirstMover())
		assert.Equal(t, entity.SideComputer, controller.Mover())
		assert.Equal(t, entity.Board{}, controller.Board())
		assert.Equal(t, entity.OutcomeNone, controller.LastOutcome())
		assert.Equal(t, 1, controller.Player(entity.SideHuman).Score())
	})

	t.Run("NextRound is refused while a round is in progress", func(t *testing.T) {
		controller := newScriptedController(t, nil, nil)

		err := controller.NextRound()

		require.ErrorIs(t, err, apperror.ErrRoundInProgress)
	})
}

func TestGameController_MatchOver(t *testing.T) {
	ctx := context.Background()

	// Given: a match to two points where the human wins both rounds;
	// round 2 is started by the computer
	controller := newScriptedController(t,
		[]int{1, 2, 3, 4, 5, 6},
		[]int{4, 5, 1, 2, 9},
		WithPointsForMatch(2),
		WithMatchID("m-1"),
	)

	// When: both rounds are played
	state, err := controller.PlayRound(ctx)
	require.NoError(t, err)
	require.Equal(t, StateRoundOver, state)
	require.NoError(t, controller.NextRound())

	state, err = controller.PlayRound(ctx)

	// Then: the match is over with the human as winner
	require.NoError(t, err)
	assert.Equal(t, StateMatchOver, state)
	assert.Equal(t, entity.OutcomeHumanWin, controller.LastOutcome())
	assert.Equal(t, 2, controller.Player(entity.SideHuman).Score())
	assert.Zero(t, controller.Player(entity.SideComputer).Score())

	winner, over := controller.MatchWinner()
	assert.True(t, over)
	assert.Equal(t, entity.SideHuman, winner)

	// Then: the match is terminal
	_, err = controller.PlayTurn(ctx)
	require.ErrorIs(t, err, apperror.ErrMatchOver)
	require.ErrorIs(t, controller.NextRound(), apperror.ErrMatchOver)

	// Then: the snapshot reflects the final state
	snapshot := controller.Snapshot()
	assert.Equal(t, "m-1", snapshot.ID)
	assert.Equal(t, entity.StatusMatchOver, snapshot.Status)
	assert.Equal(t, "human", snapshot.Winner)
	assert.Equal(t, "human_win", snapshot.LastOutcome)
	assert.Equal(t, "computer", snapshot.FirstMover)
	assert.Equal(t, 2, snapshot.HumanScore)
	assert.Equal(t, 2, snapshot.PointsToWin)
	assert.Equal(t, [entity.BoardSize]string{"O", "O", "", "X", "X", "X", "", "", "O"}, snapshot.Board)
	assert.Empty(t, snapshot.Mover)
	assert.True(t, snapshot.IsFinished())
}

func TestGameController_FullMatchProperties(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	// the human side plays uniformly random open positions
	randomHuman := StrategyFunc(func(_ context.Context, board entity.Board, _, _ entity.Mark) (int, error) {
		open := board.OpenPositions()
		return open[rng.Intn(len(open))], nil
	})

	controller, err := NewGameController(
		NewPlayer(entity.SideHuman, entity.PlayerX, randomHuman),
		NewPlayer(entity.SideComputer, entity.PlayerO, NewComputerStrategy(rng)),
	)
	require.NoError(t, err)

	const maxRounds = 500

	previousHuman, previousComputer := 0, 0
	firstMover := controller.FirstMover()

	for round := 1; round <= maxRounds; round++ {
		// first mover alternates regardless of the previous outcome
		require.Equal(t, firstMover, controller.FirstMover(), "round %d", round)
		require.Equal(t, firstMover, controller.Mover())

		state, err := controller.PlayRound(ctx)
		require.NoError(t, err)

		human := controller.Player(entity.SideHuman).Score()
		computer := controller.Player(entity.SideComputer).Score()

		// scores never decrease and grow by at most one point per round
		require.GreaterOrEqual(t, human, previousHuman)
		require.GreaterOrEqual(t, computer, previousComputer)
		require.LessOrEqual(t, (human-previousHuman)+(computer-previousComputer), 1)

		switch controller.LastOutcome() {
		case entity.OutcomeHumanWin:
			require.Equal(t, previousHuman+1, human)
		case entity.OutcomeComputerWin:
			require.Equal(t, previousComputer+1, computer)
		case entity.OutcomeTie:
			require.Equal(t, previousHuman+previousComputer, human+computer)
		default:
			require.Failf(t, "unexpected outcome", "round %d", round)
		}

		previousHuman, previousComputer = human, computer

		if state == StateMatchOver {
			winner, over := controller.MatchWinner()
			require.True(t, over)
			assert.Equal(t, DefaultPointsForMatch, controller.Player(winner).Score())
			assert.Less(t, controller.Player(winner.Opponent()).Score(), DefaultPointsForMatch)
			return
		}

		require.NoError(t, controller.NextRound())
		firstMover = firstMover.Opponent()
	}

	t.Fatalf("match did not finish in %d rounds", maxRounds)
}
