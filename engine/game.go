package engine

import (
	"fmt"
	"time"

	"hex/config"
	"hex/experiments/metrics"
	"hex/game"
	"hex/searcher"

	"github.com/rs/zerolog/log"
)

// Game is the turn state machine of one human-versus-computer game. It owns the board replicas
// and is their only writer; it is not safe for concurrent use.
type Game struct {
	cfg       *config.Config
	replicas  *game.Replicas
	evaluator searcher.Evaluator
	state     State
	winner    game.Player
	first     game.Player
	history   []Move
	metrics   []metrics.MoveMetric
	onAssess  func(Assessment)
}

// NewGame starts an empty game with one board replica per configured worker.
func NewGame(cfg *config.Config, evaluator searcher.Evaluator, first game.Player) (*Game, error) {
	replicas, err := game.NewReplicas(cfg.BoardSize, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create boards: %w", err)
	}
	if first != Human && first != Computer {
		first = Human
	}

	g := &Game{
		cfg:       cfg,
		replicas:  replicas,
		evaluator: evaluator,
		first:     first,
		winner:    game.Empty,
	}
	if first == Computer {
		g.state = ComputerToMove
	}

	log.Info().Msgf("new game on a %dx%d board, %s moves first", cfg.BoardSize, cfg.BoardSize, first)
	return g, nil
}

// OnAssess registers a callback for every candidate the computer scores.
func (g *Game) OnAssess(fn func(Assessment)) {
	g.onAssess = fn
}

func (g *Game) State() State          { return g.state }
func (g *Game) Winner() game.Player   { return g.winner }
func (g *Game) First() game.Player    { return g.first }
func (g *Game) Board() *game.Board    { return g.replicas.Primary() }
func (g *Game) Config() config.Config { return *g.cfg }

func (g *Game) History() []Move {
	return append([]Move(nil), g.history...)
}

func (g *Game) Metrics() []metrics.MoveMetric {
	return append([]metrics.MoveMetric(nil), g.metrics...)
}

// LastMove returns the most recent move of p.
func (g *Game) LastMove(p game.Player) (Move, bool) {
	for i := len(g.history) - 1; i >= 0; i-- {
		if g.history[i].Player == p {
			return g.history[i], true
		}
	}
	return Move{}, false
}

// Swapped reports whether the last move used the pie rule.
func (g *Game) Swapped() bool {
	return len(g.history) > 0 && g.history[len(g.history)-1].Swap
}

func (g *Game) movesBy(p game.Player) int {
	n := 0
	for _, m := range g.history {
		if m.Player == p {
			n++
		}
	}
	return n
}

// request builds the BestMove request for side in the current position.
func (g *Game) request(side game.Player) Request {
	own, opp := g.movesBy(side), g.movesBy(side.Opponent())
	req := Request{
		Side:         side,
		OpponentLast: game.NoCell,
		Symmetric:    g.cfg.PieSymmetric,
		PieRule:      g.cfg.PieRule && own == 0 && opp == 1,
		Opening:      g.cfg.PieRule && own == 0 && opp == 0,
	}
	if last, ok := g.LastMove(side.Opponent()); ok {
		req.OpponentLast = last.Cell
	}
	return req
}

// CanSwap reports whether the human may take over the computer's opening stone.
func (g *Game) CanSwap() bool {
	return g.state == PlayerToMove && g.request(Human).PieRule
}

func (g *Game) checkTurn(p game.Player) error {
	switch {
	case g.state == GameWon:
		return ErrGameOver
	case p == Human && g.state != PlayerToMove, p == Computer && g.state != ComputerToMove:
		return ErrNotYourTurn
	}
	return nil
}

// PlayHuman plays the human's cell. When the pie rule is available, selecting the computer's
// opening stone swaps it onto the human's side.
func (g *Game) PlayHuman(c game.Cell) (Move, error) {
	if err := g.checkTurn(Human); err != nil {
		return Move{}, err
	}

	move := Move{Step: len(g.history) + 1, Player: Human, Cell: c}
	if last, ok := g.LastMove(Computer); ok && g.CanSwap() && c == last.Cell {
		move.Cell = g.swapTarget(c)
		move.Swap = true
		g.replicas.Remove(c)
	}

	if err := g.replicas.Place(move.Cell, Human); err != nil {
		if move.Swap {
			_ = g.replicas.Place(c, Computer)
		}
		return Move{}, err
	}

	g.commit(move)
	return move, nil
}

// PlayComputer picks and plays the computer's move.
func (g *Game) PlayComputer() (Move, error) {
	if err := g.checkTurn(Computer); err != nil {
		return Move{}, err
	}

	start := time.Now()
	req := g.request(Computer)
	d, err := g.decide(g.evaluator, req, g.onAssess)
	if err != nil {
		return Move{}, fmt.Errorf("computer move: %w", err)
	}

	move := Move{
		Step:    len(g.history) + 1,
		Player:  Computer,
		Cell:    d.Cell,
		Swap:    d.Swap,
		Score:   d.Score,
		Elapsed: time.Since(start),
	}
	if d.Swap {
		g.replicas.Remove(d.Source)
	}
	if err := g.replicas.Place(d.Cell, Computer); err != nil {
		return Move{}, fmt.Errorf("computer move: %w", err)
	}

	g.metrics = append(g.metrics, metrics.MoveMetric{
		Step:         move.Step,
		Player:       Computer.String(),
		Cell:         int(move.Cell),
		Score:        move.Score,
		Swapped:      move.Swap,
		SearchMetric: d.Metric,
	})
	g.commit(move)
	return move, nil
}

// Advise scores the human's options with the computer's policy, without playing. Play the
// suggestion with PlayHuman(d.Select()).
func (g *Game) Advise(evaluator searcher.Evaluator) (Decision, error) {
	if err := g.checkTurn(Human); err != nil {
		return Decision{}, err
	}
	return g.decide(evaluator, g.request(Human), nil)
}

func (g *Game) decide(evaluator searcher.Evaluator, req Request, onAssess func(Assessment)) (Decision, error) {
	tracker, tracked := evaluator.(searchTracker)
	if tracked {
		tracker.StartSearch(g.replicas.Len())
	}

	d, err := BestMove(g.replicas, evaluator, req, onAssess)
	if err != nil {
		return Decision{}, err
	}
	if tracked {
		d.Metric = tracker.CompleteSearch()
	}
	return d, nil
}

func (g *Game) swapTarget(c game.Cell) game.Cell {
	if g.cfg.PieSymmetric {
		return g.Board().Transpose(c)
	}
	return c
}

// commit records the move and advances the state machine.
func (g *Game) commit(move Move) {
	g.history = append(g.history, move)

	name := g.Board().Topology().Name(move.Cell)
	if move.Swap {
		log.Info().Msgf("move %d: %s swaps onto %s (pie rule)", move.Step, move.Player, name)
	} else if move.Player == Computer {
		log.Info().Msgf("move %d: %s plays %s (score %.1f%%, %s)", move.Step, move.Player, name, 100*move.Score, move.Elapsed.Round(time.Millisecond))
	} else {
		log.Info().Msgf("move %d: %s plays %s", move.Step, move.Player, name)
	}

	if g.Board().HasConnection(move.Player) {
		g.state = GameWon
		g.winner = move.Player
		log.Info().Msgf("%s wins after %d moves", g.winner, len(g.history))
		return
	}

	if move.Player == Human {
		g.state = ComputerToMove
	} else {
		g.state = PlayerToMove
	}
}

// VictoryPath is the winning chain once the game is won.
func (g *Game) VictoryPath() []game.Cell {
	if g.state != GameWon {
		return nil
	}
	return g.Board().VictoryPath(g.winner)
}

// GameMetric summarizes a finished game.
func (g *Game) GameMetric(start time.Time) metrics.GameMetric {
	end := time.Now()
	return metrics.GameMetric{
		StartingPlayer: g.first.String(),
		Winner:         g.winner.String(),
		StartTime:      start,
		EndTime:        end,
		Duration:       end.Sub(start),
		TotalMoves:     len(g.history),
	}
}
