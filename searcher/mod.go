package searcher

import (
	"errors"
	"time"

	"hex/game"
)

var ErrWorkerFailed = errors.New("evaluation worker failed")

// Evaluator scores a position for side: the estimated probability that side wins from it, with
// the opponent to move. Every replica must hold the position and is left holding it.
type Evaluator interface {
	Evaluate(replicas *game.Replicas, side game.Player) (float64, error)
}

type SeedGenerator func() uint64

// ClockSeed uses the current time in nanoseconds.
func ClockSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// golden is the 64-bit golden ratio; multiplying by an odd constant is a bijection, so distinct
// worker indexes always give distinct offsets.
const golden = 0x9E3779B97F4A7C15

// workerSeeds derives one seed per worker from a single clock reading.
func workerSeeds(base uint64, workers int) []uint64 {
	seeds := make([]uint64, workers)
	for i := range seeds {
		seeds[i] = base + uint64(i+1)*golden
	}
	return seeds
}
