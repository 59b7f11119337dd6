package entity

import "time"

const (
	StatusRoundInProgress = "round_in_progress"
	StatusRoundOver       = "round_over"
	StatusMatchOver       = "match_over"
)

// Match is the serialisable view of a live match.
type Match struct {
	ID            string            `json:"id"`
	Round         int               `json:"round"`
	Board         [BoardSize]string `json:"board"`
	Status        string            `json:"status"`
	Mover         string            `json:"mover,omitempty"`
	FirstMover    string            `json:"first_mover"`
	HumanMark     string            `json:"human_mark"`
	ComputerMark  string            `json:"computer_mark"`
	HumanScore    int               `json:"human_score"`
	ComputerScore int               `json:"computer_score"`
	PointsToWin   int               `json:"points_to_win"`
	LastOutcome   string            `json:"last_outcome,omitempty"`
	Winner        string            `json:"winner,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusMatchOver
}

// RoundResult describes a finished round for announcements.
type RoundResult struct {
	MatchID        string
	Round          int
	Board          Board
	Outcome        Outcome
	WinningLine    Line
	HasWinningLine bool
	HumanMark      Mark
	ComputerMark   Mark
	HumanScore     int
	ComputerScore  int
	PointsToWin    int
	MatchOver      bool
	MatchWinner    Side
}
