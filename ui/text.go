package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"hex/config"
	"hex/engine"
	"hex/game"
	"hex/render"
	"hex/searcher"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
)

// Text plays games line by line: cells are typed in letter-number notation, such as c2.
type Text struct {
	in        *bufio.Scanner
	out       io.Writer
	cfg       *config.Config
	evaluator searcher.Evaluator
	profile   termenv.Profile
}

func NewText(in io.Reader, out io.Writer, cfg *config.Config, evaluator searcher.Evaluator, profile termenv.Profile) *Text {
	return &Text{
		in:        bufio.NewScanner(in),
		out:       out,
		cfg:       cfg,
		evaluator: evaluator,
		profile:   profile,
	}
}

// Run plays games until the input ends or the player quits. The loser opens the next game.
func (t *Text) Run() error {
	first := t.cfg.First()
	for {
		g, err := engine.NewGame(t.cfg, t.evaluator, first)
		if err != nil {
			return err
		}

		quit, err := t.play(g)
		if err != nil || quit {
			return err
		}

		t.printBoard(g, g.VictoryPath())
		t.printLines(statusLines(g))
		fmt.Fprint(t.out, "Press <Enter> to start a new game (loser starts), 'quit' to quit: ")
		line, ok := t.readLine()
		if !ok || isQuit(line) {
			return nil
		}
		first = engine.NextFirst(g.Winner())
	}
}

func (t *Text) play(g *engine.Game) (bool, error) {
	for g.State() != engine.GameWon {
		if g.State() == engine.ComputerToMove {
			fmt.Fprintln(t.out, "Computer [O] is assessing moves...")
			if _, err := g.PlayComputer(); err != nil {
				return false, err
			}
			continue
		}

		var highlight []game.Cell
		if last, ok := g.LastMove(engine.Computer); ok {
			highlight = []game.Cell{last.Cell}
		}
		t.printBoard(g, highlight)
		t.printLines(statusLines(g))
		if hint := swapHint(g); hint != "" {
			fmt.Fprintln(t.out, hint)
		}
		fmt.Fprint(t.out, "Player [X]: enter a cell such as c2, 'hint' or 'quit': ")

		line, ok := t.readLine()
		if !ok || isQuit(line) {
			return true, nil
		}
		if err := t.command(g, line); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (t *Text) command(g *engine.Game, line string) error {
	topo := g.Board().Topology()
	switch line {
	case "":
		return nil
	case "h", "hint":
		d, err := g.Advise(t.evaluator)
		if err != nil {
			return err
		}
		fmt.Fprintln(t.out, hintLine(topo, d))
		return nil
	}

	c, err := topo.ParseCell(line)
	if err != nil {
		fmt.Fprintf(t.out, "%q is not a cell of this board\n", line)
		return nil
	}
	if _, err := g.PlayHuman(c); err != nil {
		if errors.Is(err, game.ErrOccupied) {
			fmt.Fprintf(t.out, "%s is already taken\n", topo.Name(c))
			return nil
		}
		return err
	}
	return nil
}

func (t *Text) readLine() (string, bool) {
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			log.Error().Err(err).Msg("failed to read input")
		}
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(t.in.Text())), true
}

func (t *Text) printBoard(g *engine.Game, highlight []game.Cell) {
	fmt.Fprintln(t.out)
	err := render.Board(t.out, g.Board(), render.Options{
		Profile:   t.profile,
		Colors:    t.cfg.Colors,
		Highlight: highlight,
		Labels:    true,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to draw the board")
	}
}

func (t *Text) printLines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(t.out, line)
	}
}

func isQuit(line string) bool {
	return line == "q" || line == "quit" || line == "exit"
}
