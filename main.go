package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"hex/config"
	"hex/experiments"
	"hex/searcher"
	"hex/ui"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("hex", flag.ContinueOnError)
	path := fs.String("config", "", "YAML configuration file")
	size := fs.Int("size", 0, "Board size")
	pie := fs.Bool("pie", true, "Enforce the pie rule")
	symmetric := fs.Bool("pie-symmetric", true, "A swapped stone moves to the transposed cell")
	first := fs.String("first", "", "First player, X (human) or O (computer)")
	trials := fs.Int("trials", 0, "Playouts per assessed move, split across workers")
	workers := fs.Int("workers", 0, "Parallel workers")
	colorX := fs.Int("color-x", 0, "Player color (0-15)")
	colorO := fs.Int("color-o", 0, "Computer color (0-15)")
	colorSelection := fs.Int("color-sel", 0, "Selection background color (0-15)")
	logFile := fs.String("log", "", "Log file")
	mode := fs.String("mode", "tui", "tui, text or experiment")
	games := fs.Int("games", experiments.NumGames, "Games per match up in experiment mode")
	debug := fs.Bool("debug", false, "Sets log level to debug")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *path != "" {
		loaded, err := config.Load(*path)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	// Flags given on the command line override the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.BoardSize = *size
		case "pie":
			cfg.PieRule = *pie
		case "pie-symmetric":
			cfg.PieSymmetric = *symmetric
		case "first":
			cfg.FirstPlayer = strings.ToUpper(*first)
		case "trials":
			cfg.Trials = *trials
		case "workers":
			cfg.Workers = *workers
		case "color-x":
			cfg.Colors.Player = *colorX
		case "color-o":
			cfg.Colors.Computer = *colorO
		case "color-sel":
			cfg.Colors.Selection = *colorSelection
		case "log":
			cfg.LogFile = *logFile
		}
	})

	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			return fmt.Errorf("configuration: %w", err)
		}
		return err
	}

	closeLog, err := setupLogging(cfg.LogFile, *mode == "tui", *debug)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info().Msgf("board %d, pie rule %t (symmetric %t), first %s, %d trials on %d workers",
		cfg.BoardSize, cfg.PieRule, cfg.PieSymmetric, cfg.FirstPlayer, cfg.Trials, cfg.Workers)

	coordinator := searcher.NewCoordinator(cfg.Trials, searcher.WithMetrics())

	switch *mode {
	case "tui":
		return ui.RunTUI(&cfg, coordinator)
	case "text":
		return ui.NewText(os.Stdin, os.Stdout, &cfg, coordinator, termenv.EnvColorProfile()).Run()
	case "experiment":
		if _, err := experiments.RunThroughputExperiment(cfg); err != nil {
			return err
		}
		results, err := experiments.RunTrialBudgetExperiment(cfg, *games)
		if err != nil {
			return err
		}
		log.Info().Msgf("baseline won %d of %d games", results.Wins(0), len(results.Games))
		return nil
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
}

// setupLogging sends logs to the log file when set; otherwise to stderr, except under the full
// screen interface where they would garble the display.
func setupLogging(path string, fullScreen, debug bool) (func(), error) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	closer := func() {}
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	case fullScreen:
		out = io.Discard
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer, nil
}
