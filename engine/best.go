package engine

import (
	"fmt"

	"hex/experiments/metrics"
	"hex/game"
	"hex/meta"
	"hex/searcher"

	"github.com/rs/zerolog/log"
)

// Request describes the position BestMove decides for.
type Request struct {
	Side         game.Player
	OpponentLast game.Cell // The opponent's last stone, NoCell if none
	PieRule      bool      // Also score taking over the opponent's opening stone
	Symmetric    bool      // The taken-over stone goes on the transposed cell
	Opening      bool      // First move under the pie rule: avoid scores the opponent would swap
}

// Assessment is the score of one candidate.
type Assessment struct {
	Cell  game.Cell
	Score float64
	Swap  bool
}

// Decision is the candidate BestMove picked.
type Decision struct {
	Cell     game.Cell // Where the stone goes
	Source   game.Cell // Opponent stone removed by a swap, NoCell otherwise
	Score    float64
	Swap     bool
	Fallback bool // Nothing passed the opening filter, the worst cell was chosen
	Assessed int  // Candidates scored, adoption included
	Adoption *Assessment
	Metric   metrics.SearchMetric
}

// Select is the cell a player picks to carry out the decision: for a swap, the opponent's stone.
func (d Decision) Select() game.Cell {
	if d.Swap {
		return d.Source
	}
	return d.Cell
}

// BestMove scores every legal cell for req.Side by placing it speculatively on all replicas and
// asking evaluator. Cells are scanned in increasing order and ties keep the first cell. Every
// replica is back in its original position when BestMove returns, error or not.
func BestMove(replicas *game.Replicas, evaluator searcher.Evaluator, req Request, onAssess func(Assessment)) (Decision, error) {
	board := replicas.Primary()
	best := Assessment{Cell: game.NoCell, Score: -1}
	worst := Assessment{Cell: game.NoCell, Score: 2}
	assessed := 0

	for c := game.Cell(0); int(c) < board.Dimension(); c++ {
		if !board.Legal(c) {
			continue
		}

		if err := replicas.Place(c, req.Side); err != nil {
			return Decision{}, err
		}
		score, err := evaluator.Evaluate(replicas, req.Side)
		replicas.Remove(c)
		if err != nil {
			return Decision{}, fmt.Errorf("assessing %s: %w", board.Topology().Name(c), err)
		}

		a := Assessment{Cell: c, Score: score}
		assessed++
		if onAssess != nil {
			onAssess(a)
		}
		log.Debug().Msgf("%s assessed %s: %.3f", req.Side, board.Topology().Name(c), score)

		// Opening under the pie rule: a move worth more than even would just be swapped away
		if score > best.Score && !(req.Opening && score > meta.PIE_THRESHOLD) {
			best = a
		}
		if score < worst.Score {
			worst = a
		}
	}

	if worst.Cell == game.NoCell {
		return Decision{}, ErrNoMoves
	}

	d := Decision{Cell: best.Cell, Source: game.NoCell, Score: best.Score, Assessed: assessed}

	if req.PieRule && req.OpponentLast != game.NoCell {
		adoption, err := assessAdoption(replicas, evaluator, req)
		if err != nil {
			return Decision{}, err
		}
		if adoption != nil {
			d.Adoption = adoption
			d.Assessed++
			if onAssess != nil {
				onAssess(*adoption)
			}
			// Swap only when the opening is strong: the best ordinary reply is not already
			// favorable, and taking the opening over beats it.
			if adoption.Score > best.Score && best.Score <= meta.PIE_THRESHOLD {
				d.Cell = adoption.Cell
				d.Source = req.OpponentLast
				d.Score = adoption.Score
				d.Swap = true
			}
		}
	}

	if d.Cell == game.NoCell {
		d.Cell = worst.Cell
		d.Score = worst.Score
		d.Fallback = true
	}

	return d, nil
}

// assessAdoption scores taking over the opponent's stone. It returns nil when the adoption is not
// possible in this position.
func assessAdoption(replicas *game.Replicas, evaluator searcher.Evaluator, req Request) (*Assessment, error) {
	board := replicas.Primary()
	source := req.OpponentLast
	if !board.Topology().OnBoard(source) || board.Owner(source) != req.Side.Opponent() {
		return nil, nil
	}
	target := source
	if req.Symmetric {
		target = board.Transpose(source)
	}

	replicas.Remove(source)
	defer func() {
		// Remove leaves source empty, so restoring it cannot fail on a consistent set
		if err := replicas.Place(source, req.Side.Opponent()); err != nil {
			log.Error().Err(err).Msg("failed to restore the opening stone")
		}
	}()

	if !board.Legal(target) {
		return nil, nil
	}
	if err := replicas.Place(target, req.Side); err != nil {
		return nil, err
	}
	score, err := evaluator.Evaluate(replicas, req.Side)
	replicas.Remove(target)
	if err != nil {
		return nil, fmt.Errorf("assessing pie rule: %w", err)
	}

	return &Assessment{Cell: target, Score: score, Swap: true}, nil
}
