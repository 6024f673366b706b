package render

import (
	"io"
	"strconv"
	"strings"

	"hex/config"
	"hex/game"

	"github.com/muesli/termenv"
)

// Options controls how a board is drawn.
type Options struct {
	Profile   termenv.Profile
	Colors    config.Colors
	Highlight []game.Cell // Drawn on the selection background
	Labels    bool        // Column letters above and row numbers on the right, for typed moves
}

// Board writes the rhombus: each row is shifted one column right of the previous one, X edge
// markers above and below, O edge markers on both sides.
func Board(w io.Writer, b *game.Board, opts Options) error {
	_, err := io.WriteString(w, String(b, opts))
	return err
}

func String(b *game.Board, opts Options) string {
	p := newPainter(opts)
	n := b.Size()
	var sb strings.Builder

	if opts.Labels {
		sb.WriteString("  ")
		for c := 0; c < n; c++ {
			sb.WriteString(" ")
			sb.WriteByte(byte('a' + c))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("  ")
	for c := 0; c < n; c++ {
		sb.WriteString(" " + p.marker(game.PlayerA))
	}
	sb.WriteString("\n")

	for r := 0; r < n; r++ {
		sb.WriteString(strings.Repeat(" ", r+2))
		sb.WriteString(p.marker(game.PlayerB))
		for c := 0; c < n; c++ {
			cell, _ := b.CellAt(r, c)
			sb.WriteString(" " + p.cell(cell, b.Owner(cell)))
		}
		sb.WriteString(" " + p.marker(game.PlayerB))
		if opts.Labels {
			sb.WriteString(" " + strconv.Itoa(r+1))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat(" ", n+3))
	for c := 0; c < n; c++ {
		sb.WriteString(" " + p.marker(game.PlayerA))
	}
	sb.WriteString("\n")

	return sb.String()
}

// Position is where String draws cell c, in columns and lines from the top left corner of an
// unlabeled board.
func Position(t *game.Topology, c game.Cell) (x, y int) {
	r, col := t.Coordinates(c)
	return r + 4 + 2*col, r + 1
}

// Extent is the width and height of an unlabeled board of the given size.
func Extent(size int) (width, height int) {
	return 3*size + 4, size + 2
}

type painter struct {
	profile   termenv.Profile
	colors    map[game.Player]termenv.Color
	selection termenv.Color
	highlight map[game.Cell]bool
}

func newPainter(opts Options) painter {
	p := painter{
		profile: opts.Profile,
		colors: map[game.Player]termenv.Color{
			game.PlayerA: opts.Profile.Color(strconv.Itoa(opts.Colors.Player)),
			game.PlayerB: opts.Profile.Color(strconv.Itoa(opts.Colors.Computer)),
		},
		selection: opts.Profile.Color(strconv.Itoa(opts.Colors.Selection)),
		highlight: make(map[game.Cell]bool, len(opts.Highlight)),
	}
	for _, c := range opts.Highlight {
		p.highlight[c] = true
	}
	return p
}

func (p painter) marker(owner game.Player) string {
	return p.profile.String(string(owner.Symbol())).Foreground(p.colors[owner]).String()
}

func (p painter) cell(c game.Cell, owner game.Player) string {
	style := p.profile.String(string(owner.Symbol()))
	if owner != game.Empty {
		style = style.Foreground(p.colors[owner]).Bold()
	}
	if p.highlight[c] {
		style = style.Background(p.selection)
	}
	return style.String()
}
