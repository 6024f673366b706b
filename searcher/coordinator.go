package searcher

import (
	"fmt"
	"hex/experiments/metrics"
	"hex/game"
	"hex/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(c *Coordinator)

type rolloutFunc func(b *game.Board, side game.Player, trials int, rng *rand.Rand) float64

// Coordinator fans one evaluation out over the board replicas, one goroutine per replica, and
// averages the partial scores. Goroutines live for a single Evaluate call.
type Coordinator struct {
	trials  int
	seed    SeedGenerator
	metrics metrics.Collector
	rollout rolloutFunc
}

func WithSeedGenerator(seed SeedGenerator) Option {
	return func(c *Coordinator) {
		if seed != nil {
			c.seed = seed
		}
	}
}

func WithMetrics() Option {
	return func(c *Coordinator) {
		c.metrics = metrics.NewCollector()
	}
}

// NewCoordinator splits a budget of trials playouts per evaluation across the workers.
func NewCoordinator(trials int, options ...Option) *Coordinator {
	c := &Coordinator{ // Default values
		trials:  trials,
		seed:    ClockSeed,
		metrics: metrics.NewDummyCollector(),
		rollout: Rollout,
	}
	for _, option := range options {
		option(c)
	}
	if c.trials <= 0 {
		panic("Must specify a positive number of trials")
	}
	return c
}

func (c *Coordinator) Trials() int { return c.trials }

// TrialsPerWorker is the share of the budget each of workers replicas runs.
func (c *Coordinator) TrialsPerWorker(workers int) int {
	return max(1, c.trials/max(1, workers))
}

// Evaluate runs the rollouts for side on every replica in parallel and returns the mean of the
// partial scores. Any worker failure fails the whole evaluation.
func (c *Coordinator) Evaluate(replicas *game.Replicas, side game.Player) (float64, error) {
	workers := replicas.Len()
	trials := c.TrialsPerWorker(workers)
	seeds := workerSeeds(c.seed(), workers)
	scores := make([]float64, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		board := replicas.At(i)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %d: %v: %w", i, r, ErrWorkerFailed)
				}
			}()
			rng := rand.New(rand.NewSource(seeds[i]))
			scores[i] = c.rollout(board, side, trials, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("evaluation aborted")
		return 0, err
	}

	if err := replicas.Verify(); err != nil {
		return 0, fmt.Errorf("after evaluation: %w", err)
	}

	c.metrics.AddEvaluation()
	c.metrics.AddPlayouts(trials * workers)

	return utils.Mean(scores), nil
}

// StartSearch and CompleteSearch bracket the evaluations made for one move decision.
func (c *Coordinator) StartSearch(workers int) {
	c.metrics.Start(workers, c.trials)
}

func (c *Coordinator) CompleteSearch() metrics.SearchMetric {
	return c.metrics.Complete()
}
