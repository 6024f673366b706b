package searcher

import (
	"hex/game"

	"golang.org/x/exp/rand"
)

// Rollout estimates side's chance to win the position on b by completing the board at random
// trials times. Each playout shuffles the empty cells and hands them out alternately, starting
// with side's opponent. Hex cannot end in a draw, so every completed board has a winner and the
// fraction of side's wins is an unbiased estimate. b is restored before returning.
func Rollout(b *game.Board, side game.Player, trials int, rng *rand.Rand) float64 {
	if trials <= 0 {
		return 0
	}

	moves := b.EmptyCells(make([]game.Cell, 0, b.Dimension()))
	if len(moves) == 0 { // Finished position
		if b.HasConnection(side) {
			return 1
		}
		return 0
	}

	wins := 0
	first := side.Opponent()
	for i := 0; i < trials; i++ {
		rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
		b.Fill(moves, first)
		if b.HasConnection(side) {
			wins++
		}
	}
	b.Clear(moves)

	return float64(wins) / float64(trials)
}
