package searcher

import (
	"testing"

	"hex/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRollout(t *testing.T) {
	t.Run("score is a probability and the board is restored", func(t *testing.T) {
		b, err := game.NewBoard(5)
		require.NoError(t, err)
		require.NoError(t, b.Place(12, game.PlayerB))
		before := b.Clone()

		score := Rollout(b, game.PlayerB, 500, rand.New(rand.NewSource(1)))

		require.GreaterOrEqual(t, score, 0.0)
		require.LessOrEqual(t, score, 1.0)
		require.True(t, b.Equal(before), "Rollout should leave the board as received")
	})

	t.Run("connected side always wins", func(t *testing.T) {
		b, _ := game.NewBoard(3)
		for _, c := range []game.Cell{3, 4, 5} {
			require.NoError(t, b.Place(c, game.PlayerB))
		}

		require.Equal(t, 1.0, Rollout(b, game.PlayerB, 200, rand.New(rand.NewSource(2))))
		require.Equal(t, 0.0, Rollout(b, game.PlayerA, 200, rand.New(rand.NewSource(2))))
	})

	t.Run("finished board", func(t *testing.T) {
		b, _ := game.NewBoard(3)
		b.Fill(b.EmptyCells(nil), game.PlayerA)
		winner := b.Winner()

		require.Equal(t, 1.0, Rollout(b, winner, 10, rand.New(rand.NewSource(3))))
		require.Equal(t, 0.0, Rollout(b, winner.Opponent(), 10, rand.New(rand.NewSource(3))))
	})

	t.Run("no trials", func(t *testing.T) {
		b, _ := game.NewBoard(3)
		require.Equal(t, 0.0, Rollout(b, game.PlayerA, 0, rand.New(rand.NewSource(4))))
	})

	t.Run("different seeds agree within Monte Carlo variance", func(t *testing.T) {
		b, _ := game.NewBoard(4)
		require.NoError(t, b.Place(5, game.PlayerB))

		s1 := Rollout(b, game.PlayerB, 4000, rand.New(rand.NewSource(11)))
		s2 := Rollout(b, game.PlayerB, 4000, rand.New(rand.NewSource(12)))

		// Standard error is below 0.008 with 4000 trials
		require.InDelta(t, s1, s2, 0.06)
	})

	t.Run("center opening favors the player who took it", func(t *testing.T) {
		b, _ := game.NewBoard(5)
		require.NoError(t, b.Place(12, game.PlayerB))

		score := Rollout(b, game.PlayerB, 4000, rand.New(rand.NewSource(5)))

		require.Greater(t, score, 0.5, "An extra stone in the center should be an advantage")
	})
}
