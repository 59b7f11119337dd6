package apperror

import "errors"

var (
	ErrOccupiedOrInvalidPosition = errors.New("position is occupied or out of range")
	ErrInvalidMark               = errors.New("invalid mark")
	ErrInvalidPlayers            = errors.New("players must have distinct sides and marks")
	ErrContractViolation         = errors.New("engine contract violated")
	ErrNoAvailableMoves          = errors.New("no available moves")
	ErrRoundInProgress           = errors.New("round is still in progress")
	ErrRoundOver                 = errors.New("round is already over")
	ErrMatchOver                 = errors.New("match is already over")
	ErrQuit                      = errors.New("player quit")
)
