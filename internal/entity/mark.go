package entity

// Mark is the content of a board cell.
type Mark uint8

const (
	EmptyCell Mark = iota
	PlayerX
	PlayerO
)

func (m Mark) String() string {
	switch m {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return " "
	}
}

// IsPlayerMark reports whether m is one of the two marks a player may hold.
func (m Mark) IsPlayerMark() bool {
	return m == PlayerX || m == PlayerO
}

// Side identifies a participant of a match.
type Side uint8

const (
	SideHuman Side = iota
	SideComputer
)

func (s Side) Opponent() Side {
	if s == SideHuman {
		return SideComputer
	}
	return SideHuman
}

func (s Side) String() string {
	if s == SideComputer {
		return "computer"
	}
	return "human"
}

// ParseSide accepts "human" or "computer".
func ParseSide(value string) (Side, bool) {
	switch value {
	case "human":
		return SideHuman, true
	case "computer":
		return SideComputer, true
	default:
		return SideHuman, false
	}
}

// Outcome is the result of a finished round.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeHumanWin
	OutcomeComputerWin
	OutcomeTie
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHumanWin:
		return "human_win"
	case OutcomeComputerWin:
		return "computer_win"
	case OutcomeTie:
		return "tie"
	default:
		return "none"
	}
}

// OutcomeFor returns the win outcome of the given side.
func OutcomeFor(side Side) Outcome {
	if side == SideComputer {
		return OutcomeComputerWin
	}
	return OutcomeHumanWin
}
