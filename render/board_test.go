package render

import (
	"bytes"
	"strings"
	"testing"

	"hex/config"
	"hex/game"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func plain() Options {
	return Options{Profile: termenv.Ascii, Colors: config.Default().Colors}
}

func sample(t *testing.T) *game.Board {
	t.Helper()
	b, err := game.NewBoard(3)
	require.NoError(t, err)
	require.NoError(t, b.Place(0, game.PlayerA))
	require.NoError(t, b.Place(5, game.PlayerB))
	return b
}

func TestBoard(t *testing.T) {
	t.Run("drawing the rhombus with edge markers", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Board(&buf, sample(t), plain()))

		expected := strings.Join([]string{
			"   X X X",
			"  O X . . O",
			"   O . . O O",
			"    O . . . O",
			"       X X X",
			"",
		}, "\n")
		require.Equal(t, expected, buf.String())
	})

	t.Run("labels for typed moves", func(t *testing.T) {
		opts := plain()
		opts.Labels = true
		lines := strings.Split(String(sample(t), opts), "\n")

		require.Equal(t, "   a b c", lines[0])
		require.True(t, strings.HasSuffix(lines[2], " 1"))
		require.True(t, strings.HasSuffix(lines[4], " 3"))
	})

	t.Run("highlight is invisible without colors", func(t *testing.T) {
		opts := plain()
		opts.Highlight = []game.Cell{0, 4}
		require.Equal(t, String(sample(t), plain()), String(sample(t), opts))
	})

	t.Run("colors use escape sequences", func(t *testing.T) {
		opts := plain()
		opts.Profile = termenv.ANSI
		opts.Highlight = []game.Cell{4}
		require.Contains(t, String(sample(t), opts), "\x1b[")
	})
}

func TestPosition(t *testing.T) {
	b := sample(t)
	lines := strings.Split(String(b, plain()), "\n")
	width, height := Extent(b.Size())
	require.Equal(t, len(lines)-1, height)

	for c := game.Cell(0); int(c) < b.Dimension(); c++ {
		x, y := Position(b.Topology(), c)
		require.Less(t, x, width)
		require.Equal(t, byte(b.Owner(c).Symbol()), lines[y][x], "Cell %d should be drawn at %d,%d", c, x, y)
	}
}
