package config

import (
	"fmt"
	"os"

	"hex/game"
	"hex/meta"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a run. It is built once at startup and only read afterwards.
type Config struct {
	BoardSize    int    `yaml:"board_size"`
	PieRule      bool   `yaml:"pie_rule"`
	PieSymmetric bool   `yaml:"pie_symmetric"` // Swap onto the transposed cell rather than the same cell
	FirstPlayer  string `yaml:"first_player"`  // "X" (human) or "O" (computer)
	Trials       int    `yaml:"trials"`        // Playouts per assessed move, split across workers
	Workers      int    `yaml:"workers"`
	Colors       Colors `yaml:"colors"`
	LogFile      string `yaml:"log_file"`
}

// Colors are console palette indexes (0..15), display only.
type Colors struct {
	Player    int `yaml:"player"`
	Computer  int `yaml:"computer"`
	Selection int `yaml:"selection"`
}

// ConfigError reports a setting that cannot be used.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Default() Config {
	return Config{
		BoardSize:    meta.BOARD_SIZE,
		PieRule:      true,
		PieSymmetric: true,
		FirstPlayer:  game.PlayerA.String(),
		Trials:       meta.TRIALS,
		Workers:      meta.WORKERS,
		Colors: Colors{
			Player:    meta.COLOR_PLAYER,
			Computer:  meta.COLOR_COMPUTER,
			Selection: meta.COLOR_SELECTION,
		},
	}
}

// Load reads a YAML file over the defaults; keys missing from the file keep their default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Normalized clamps the settings that have a safe fallback.
func (c Config) Normalized() Config {
	if c.Trials < meta.MIN_TRIALS {
		c.Trials = meta.MIN_TRIALS
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if !validColor(c.Colors.Player) {
		c.Colors.Player = meta.COLOR_PLAYER
	}
	if !validColor(c.Colors.Computer) {
		c.Colors.Computer = meta.COLOR_COMPUTER
	}
	if !validColor(c.Colors.Selection) {
		c.Colors.Selection = meta.COLOR_SELECTION
	}
	return c
}

func validColor(c int) bool {
	return c >= 0 && c <= 15
}

// Validate rejects the settings without a safe fallback.
func (c Config) Validate() error {
	if c.BoardSize < game.MinSize || c.BoardSize > game.MaxSize {
		return &ConfigError{
			Field:  "board_size",
			Reason: fmt.Sprintf("%d not in [%d, %d]", c.BoardSize, game.MinSize, game.MaxSize),
		}
	}
	if _, ok := game.ParsePlayer(c.FirstPlayer); !ok {
		return &ConfigError{Field: "first_player", Reason: fmt.Sprintf("%q is neither X nor O", c.FirstPlayer)}
	}
	return nil
}

// First is the player making the first move of the first game.
func (c Config) First() game.Player {
	p, ok := game.ParsePlayer(c.FirstPlayer)
	if !ok {
		return game.PlayerA
	}
	return p
}
