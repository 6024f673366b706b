package experiments

import (
	"fmt"

	"hex/config"
	"hex/experiments/metrics"
	"hex/game"
	"hex/searcher"

	"github.com/rs/zerolog/log"
)

var throughputWorkers = []int{1, 2, 4, 8, 16}

// RunThroughputExperiment times one full move decision on the opening position per worker count,
// at the configured playout budget.
func RunThroughputExperiment(cfg config.Config) ([]metrics.SearchMetric, error) {
	log.Info().Msg("starting throughput experiment...")

	results := []metrics.SearchMetric{}
	for _, workers := range throughputWorkers {
		metric, err := measureThroughput(cfg.BoardSize, workers, cfg.Trials)
		if err != nil {
			return nil, err
		}
		results = append(results, metric)
		log.Info().Msgf("%d workers: %d evaluations in %s, %.0f playouts/s", workers, metric.Evaluations, metric.Duration, metric.PlayoutsPerSecond())
	}

	log.Info().Msg("completed throughput experiment")

	writer, err := metrics.NewWriter("throughput")
	if err != nil {
		return results, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSearchMetrics(results); err != nil {
		return results, fmt.Errorf("failed to write search metrics: %w", err)
	}
	log.Info().Msgf("stored search metrics in %s", writer.Dir())
	return results, nil
}

// measureThroughput scores every opening cell for PlayerB, as the computer's first decision does.
func measureThroughput(size, workers, trials int) (metrics.SearchMetric, error) {
	replicas, err := game.NewReplicas(size, workers)
	if err != nil {
		return metrics.SearchMetric{}, err
	}
	coordinator := searcher.NewCoordinator(trials, searcher.WithMetrics())

	coordinator.StartSearch(replicas.Len())
	board := replicas.Primary()
	for c := game.Cell(0); int(c) < board.Dimension(); c++ {
		if err := replicas.Place(c, game.PlayerB); err != nil {
			return metrics.SearchMetric{}, err
		}
		_, err := coordinator.Evaluate(replicas, game.PlayerB)
		replicas.Remove(c)
		if err != nil {
			return metrics.SearchMetric{}, err
		}
	}
	return coordinator.CompleteSearch(), nil
}
