package experiments

import (
	"fmt"
	"time"

	"hex/config"
	"hex/engine"
	"hex/experiments/metrics"
	"hex/game"
	"hex/searcher"

	"github.com/rs/zerolog/log"
)

const NumGames = 10 // Per match up

// MatchUp pits a computer setup (playing O) against an advisor setup playing X through Advise.
type MatchUp struct {
	Computer metrics.AgentConfig
	Advisor  metrics.AgentConfig
}

// Results is everything an experiment recorded.
type Results struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// Wins counts the games won by agent, on either side.
func (r Results) Wins(agent int) int {
	wins := 0
	for _, g := range r.Games {
		if (g.Winner == engine.Computer.String() && g.Computer == agent) ||
			(g.Winner == engine.Human.String() && g.Advisor == agent) {
			wins++
		}
	}
	return wins
}

// RunTrialBudgetExperiment measures playing strength against the playout budget: each agent
// plays a fixed baseline budget.
func RunTrialBudgetExperiment(cfg config.Config, games int) (Results, error) {
	baseline := metrics.AgentConfig{ID: 0, Workers: cfg.Workers, Trials: cfg.Trials}
	configs := []metrics.AgentConfig{
		{ID: 1, Workers: cfg.Workers, Trials: max(1, cfg.Trials/4)},
		{ID: 2, Workers: cfg.Workers, Trials: max(1, cfg.Trials/2)},
		{ID: 3, Workers: cfg.Workers, Trials: cfg.Trials * 2},
	}

	// Each matchup pairs an agent against the baseline advisor
	matchUps := []MatchUp{}
	for _, config := range configs {
		matchUps = append(matchUps, MatchUp{Computer: config, Advisor: baseline})
	}

	results := runExperiment("trial_budget", cfg, matchUps, games)
	return results, store("trial_budget", append(configs, baseline), results)
}

func runExperiment(name string, cfg config.Config, matchUps []MatchUp, games int) Results {
	// Run a number of games for each matchup
	count := 0
	results := Results{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between computer=%+v and advisor=%+v...", mi+1, len(matchUps), matchUp.Computer, matchUp.Advisor)

		// The loser of each game opens the next one
		first := cfg.First()
		for i := 0; i < games; i++ {
			gameMetric, moveMetrics, err := runGame(cfg, matchUp, first)
			if err != nil {
				log.Error().Err(err).Msgf("matchup %d of %d game %d failed", mi+1, len(matchUps), i+1)
				continue
			}
			count++
			results.Games = append(results.Games, metrics.GameRecord{
				ID:         count,
				Computer:   matchUp.Computer.ID,
				Advisor:    matchUp.Advisor.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				results.Moves = append(results.Moves, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, gameMetric.Winner)
			winner, _ := game.ParsePlayer(gameMetric.Winner)
			first = engine.NextFirst(winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)
	return results
}

// runGame plays one self-play game: the advisor's suggestions are played as the human's moves.
func runGame(cfg config.Config, matchUp MatchUp, first game.Player) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameCfg := cfg
	gameCfg.Workers = matchUp.Computer.Workers
	computer := createCoordinator(matchUp.Computer)
	advisor := createCoordinator(matchUp.Advisor)

	g, err := engine.NewGame(&gameCfg, computer, first)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	start := time.Now()
	for g.State() != engine.GameWon {
		if g.State() == engine.ComputerToMove {
			if _, err := g.PlayComputer(); err != nil {
				return metrics.GameMetric{}, nil, err
			}
			continue
		}

		d, err := g.Advise(advisor)
		if err != nil {
			return metrics.GameMetric{}, nil, fmt.Errorf("advisor: %w", err)
		}
		if _, err := g.PlayHuman(d.Select()); err != nil {
			return metrics.GameMetric{}, nil, err
		}
	}

	return g.GameMetric(start), g.Metrics(), nil
}

func createCoordinator(config metrics.AgentConfig) *searcher.Coordinator {
	return searcher.NewCoordinator(config.Trials, searcher.WithMetrics())
}

func store(name string, configs []metrics.AgentConfig, results Results) error {
	// Store experiment metadata
	writer, err := metrics.NewWriter(name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(results.Games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(results.Moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}
