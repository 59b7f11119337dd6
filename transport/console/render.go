package console

import (
	"fmt"
	"slices"

	"github.com/mattn/go-runewidth"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const (
	colorX       = "1" // ANSI red
	colorO       = "4" // ANSI blue
	colorWinning = "2" // ANSI green

	computerName  = "Computer"
	scoreLabelGap = 2
)

func (that *Console) DisplayWelcome() {
	that.clearScreen()
	that.println("Welcome to Tic Tac Toe!")
	that.println()
}

func (that *Console) DisplayGoodbye() {
	that.println("Thanks for playing Tic Tac Toe!")
}

// DisplayBoard draws the 3x3 grid.
func (that *Console) DisplayBoard(board entity.Board) {
	that.clearScreen()
	that.drawBoard(board, nil)
}

// DisplayRoundResult draws the final board with the winning line highlighted,
// then the outcome and the score.
func (that *Console) DisplayRoundResult(result entity.RoundResult) {
	that.clearScreen()

	var highlight []int
	if result.HasWinningLine {
		highlight = result.WinningLine[:]
	}
	that.drawBoard(result.Board, highlight)

	switch result.Outcome {
	case entity.OutcomeHumanWin:
		that.println("You won! Congratulations!")
	case entity.OutcomeComputerWin:
		that.println("I won! Take that, human!")
	default:
		that.println("A tie game. How boring.")
	}

	that.println()
	that.drawScores(result)
	that.println()

	if !result.MatchOver {
		that.printf("%d wins to win the match!\n", result.PointsToWin)
		return
	}

	if result.MatchWinner == entity.SideHuman {
		that.println("You are the match winner!")
	} else {
		that.println("I am the match winner!")
	}
}

// drawScores aligns the score column by display width, so wide names such as
// CJK ones line up with the computer's label.
func (that *Console) drawScores(result entity.RoundResult) {
	human := fmt.Sprintf("%s (%s)", that.playerName, result.HumanMark)
	computer := fmt.Sprintf("%s (%s)", computerName, result.ComputerMark)
	width := max(runewidth.StringWidth(human), runewidth.StringWidth(computer)) + scoreLabelGap

	that.printf("%s%d\n", runewidth.FillRight(human, width), result.HumanScore)
	that.printf("%s%d\n", runewidth.FillRight(computer, width), result.ComputerScore)
}

func (that *Console) drawBoard(board entity.Board, highlight []int) {
	square := func(position int) string {
		mark := board.At(position)
		style := that.out.String(mark.String())

		switch mark {
		case entity.PlayerX:
			style = style.Foreground(that.out.Color(colorX)).Bold()
		case entity.PlayerO:
			style = style.Foreground(that.out.Color(colorO)).Bold()
		}

		if slices.Contains(highlight, position) {
			style = style.Foreground(that.out.Color(colorWinning)).Underline()
		}

		return style.String()
	}

	that.println()
	for row := 0; row < 3; row++ {
		first := row*3 + 1

		that.println("     |     |")
		that.printf("  %s  |  %s  |  %s\n", square(first), square(first+1), square(first+2))
		that.println("     |     |")

		if row < 2 {
			that.println("-----+-----+-----")
		}
	}
	that.println()
}

func (that *Console) clearScreen() {
	if that.clear {
		that.out.ClearScreen()
	}
}
