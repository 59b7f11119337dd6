package console

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

// ChoosePosition asks the human for a square until one of the open positions
// is entered. It makes the console usable as the human's strategy.
func (that *Console) ChoosePosition(ctx context.Context, board entity.Board, _, _ entity.Mark) (int, error) {
	log := that.logger.With("method", "ChoosePosition")

	open := board.OpenPositions()
	if len(open) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}

	for {
		that.printf("Choose a square (%s): ", JoinOr(open, ", ", "or"))

		input, err := that.readLine(ctx)
		if err != nil {
			return 0, err
		}

		if isQuit(input) {
			return 0, apperror.ErrQuit
		}

		position, err := strconv.Atoi(input)
		if err == nil && slices.Contains(open, position) {
			return position, nil
		}

		log.Debug("invalid square", "input", input)
		that.println("Sorry, that's not a valid choice.")
		that.println()
	}
}

// ConfirmPlayAgain asks a yes/no question until y or n is answered.
func (that *Console) ConfirmPlayAgain(ctx context.Context, question string) (bool, error) {
	for {
		that.printf("%s (y/n): ", question)

		input, err := that.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(input) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}

		if isQuit(input) {
			return false, nil
		}
	}
}

// JoinOr lists values for a prompt: "1", "1 or 2", "1, 2, or 3".
func JoinOr(values []int, separator, last string) string {
	words := make([]string, len(values))
	for i, value := range values {
		words[i] = strconv.Itoa(value)
	}

	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	case 2:
		return words[0] + " " + last + " " + words[1]
	default:
		return strings.Join(words[:len(words)-1], separator) + separator + last + " " + words[len(words)-1]
	}
}
