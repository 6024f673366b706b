package engine

import (
	"errors"
	"time"

	"hex/experiments/metrics"
	"hex/game"
)

// The human always plays PlayerA, the computer PlayerB.
const (
	Human    = game.PlayerA
	Computer = game.PlayerB
)

var (
	ErrNotYourTurn = errors.New("not this player's turn")
	ErrGameOver    = errors.New("game is over")
	ErrNoMoves     = errors.New("no legal move left")
)

type State int

const (
	PlayerToMove State = iota
	ComputerToMove
	GameWon
)

func (s State) String() string {
	switch s {
	case PlayerToMove:
		return "player to move"
	case ComputerToMove:
		return "computer to move"
	case GameWon:
		return "game won"
	default:
		return "unknown"
	}
}

// Move is one committed move of a game.
type Move struct {
	Step    int
	Player  game.Player
	Cell    game.Cell // Where the stone was placed
	Swap    bool      // The opponent's opening stone was taken over under the pie rule
	Score   float64   // Estimated win probability, computer moves only
	Elapsed time.Duration
}

// searchTracker is implemented by evaluators that collect metrics per decision.
type searchTracker interface {
	StartSearch(workers int)
	CompleteSearch() metrics.SearchMetric
}

// NextFirst returns who opens the next game: the loser of the last one.
func NextFirst(winner game.Player) game.Player {
	if winner == game.Empty {
		return Human
	}
	return winner.Opponent()
}
