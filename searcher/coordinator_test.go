package searcher

import (
	"sync"
	"testing"

	"hex/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newReplicas(t *testing.T, size, workers int) *game.Replicas {
	t.Helper()
	r, err := game.NewReplicas(size, workers)
	require.NoError(t, err)
	return r
}

func TestNewCoordinator(t *testing.T) {
	t.Run("panics without trials", func(t *testing.T) {
		require.Panics(t, func() {
			NewCoordinator(0)
		}, "Should panic when no trials are given")
	})

	t.Run("splitting the budget across workers", func(t *testing.T) {
		c := NewCoordinator(3000)
		require.Equal(t, 1500, c.TrialsPerWorker(2))
		require.Equal(t, 3000, c.TrialsPerWorker(0))
		require.Equal(t, 1, NewCoordinator(3).TrialsPerWorker(8), "Every worker should run at least one trial")
	})
}

func TestCoordinatorEvaluate(t *testing.T) {
	t.Run("averaging partial scores", func(t *testing.T) {
		replicas := newReplicas(t, 3, 4)
		c := NewCoordinator(400)
		c.rollout = func(b *game.Board, side game.Player, trials int, rng *rand.Rand) float64 {
			for i := 0; i < replicas.Len(); i++ {
				if replicas.At(i) == b {
					return float64(i) / 4
				}
			}
			return -1
		}

		score, err := c.Evaluate(replicas, game.PlayerB)

		require.NoError(t, err)
		require.InDelta(t, (0+0.25+0.5+0.75)/4, score, 1e-9)
	})

	t.Run("each worker gets its own board, seed and share of trials", func(t *testing.T) {
		replicas := newReplicas(t, 3, 8)
		c := NewCoordinator(800, WithSeedGenerator(func() uint64 { return 42 }))

		var mu sync.Mutex
		boards := map[*game.Board]bool{}
		draws := map[uint64]bool{}
		shares := []int{}
		c.rollout = func(b *game.Board, side game.Player, trials int, rng *rand.Rand) float64 {
			mu.Lock()
			defer mu.Unlock()
			shares = append(shares, trials)
			boards[b] = true
			draws[rng.Uint64()] = true
			return 0.5
		}

		_, err := c.Evaluate(replicas, game.PlayerA)

		require.NoError(t, err)
		require.Len(t, boards, 8, "Every replica should be used by exactly one worker")
		require.Len(t, draws, 8, "Workers should not share a random sequence")
		require.Equal(t, []int{100, 100, 100, 100, 100, 100, 100, 100}, shares)
	})

	t.Run("failing worker fails the evaluation", func(t *testing.T) {
		replicas := newReplicas(t, 3, 3)
		c := NewCoordinator(30)
		c.rollout = func(b *game.Board, side game.Player, trials int, rng *rand.Rand) float64 {
			if b == replicas.At(1) {
				panic("broken board")
			}
			return 1
		}

		_, err := c.Evaluate(replicas, game.PlayerB)

		require.ErrorIs(t, err, ErrWorkerFailed)
	})

	t.Run("replicas left in different positions", func(t *testing.T) {
		replicas := newReplicas(t, 3, 2)
		c := NewCoordinator(20)
		c.rollout = func(b *game.Board, side game.Player, trials int, rng *rand.Rand) float64 {
			if b == replicas.At(1) {
				_ = b.Place(0, side)
			}
			return 0
		}

		_, err := c.Evaluate(replicas, game.PlayerB)

		require.ErrorIs(t, err, game.ErrReplicaDivergence)
	})

	t.Run("real rollouts keep replicas in sync", func(t *testing.T) {
		replicas := newReplicas(t, 5, 4)
		require.NoError(t, replicas.Place(12, game.PlayerB))
		c := NewCoordinator(400, WithMetrics())
		c.StartSearch(replicas.Len())

		score, err := c.Evaluate(replicas, game.PlayerB)

		require.NoError(t, err)
		require.GreaterOrEqual(t, score, 0.0)
		require.LessOrEqual(t, score, 1.0)
		require.NoError(t, replicas.Verify())
		require.Equal(t, 1, replicas.Primary().Count(game.PlayerB))

		metric := c.CompleteSearch()
		require.Equal(t, 1, metric.Evaluations)
		require.Equal(t, 400, metric.Playouts)
		require.Equal(t, 4, metric.Workers)
	})
}

func TestWorkerSeeds(t *testing.T) {
	seeds := workerSeeds(0, 64)
	unique := map[uint64]bool{}
	for _, s := range seeds {
		unique[s] = true
	}
	require.Len(t, unique, 64, "Seeds should be distinct even for a constant base")
}
