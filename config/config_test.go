package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"hex/game"
	"hex/meta"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Equal(t, 11, cfg.BoardSize)
	require.True(t, cfg.PieRule)
	require.True(t, cfg.PieSymmetric)
	require.Equal(t, game.PlayerA, cfg.First())
	require.Equal(t, cfg, cfg.Normalized(), "Defaults should need no clamping")
}

func TestLoad(t *testing.T) {
	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
board_size: 7
pie_rule: false
first_player: O
trials: 5000
colors:
  computer: 9
`)
		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 7, cfg.BoardSize)
		require.False(t, cfg.PieRule)
		require.True(t, cfg.PieSymmetric, "Missing keys should keep their default")
		require.Equal(t, game.PlayerB, cfg.First())
		require.Equal(t, 5000, cfg.Trials)
		require.Equal(t, meta.WORKERS, cfg.Workers)
		require.Equal(t, 9, cfg.Colors.Computer)
		require.Equal(t, meta.COLOR_PLAYER, cfg.Colors.Player)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := Load(writeConfig(t, "board_size: [1, 2"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	for _, size := range []int{2, 16} {
		cfg := Default()
		cfg.BoardSize = size

		err := cfg.Validate()

		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr), "Size %d should be a config error", size)
		require.Equal(t, "board_size", cfgErr.Field)
	}

	cfg := Default()
	cfg.FirstPlayer = "Z"
	require.ErrorContains(t, cfg.Validate(), "first_player")
}

func TestNormalized(t *testing.T) {
	cfg := Default()
	cfg.Trials = 10
	cfg.Workers = 0
	cfg.Colors.Selection = 42

	got := cfg.Normalized()

	require.Equal(t, meta.MIN_TRIALS, got.Trials)
	require.Equal(t, 1, got.Workers)
	require.Equal(t, meta.COLOR_SELECTION, got.Colors.Selection)
	require.Equal(t, 10, cfg.Trials, "Normalized should not modify the receiver")
}
