package ui

import (
	"errors"
	"fmt"
	"strings"

	"hex/config"
	"hex/engine"
	"hex/game"
	"hex/render"
	"hex/searcher"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
)

// Events posted by the background search to the screen loop.
type assessed struct {
	engine.Assessment
}

type searched struct {
	hint *engine.Decision
	err  error
}

type styles struct {
	base      tcell.Style
	player    tcell.Style
	computer  tcell.Style
	selection tcell.Color
}

// TUI is the full screen game: arrows move the cursor, Enter plays, h asks for a hint and Esc
// quits. Searches run in the background and report through screen interrupts; the game is only
// touched from the event loop while no search runs.
type TUI struct {
	screen    tcell.Screen
	cfg       *config.Config
	evaluator searcher.Evaluator
	styles    styles

	game     *engine.Game
	cursor   game.Cell
	busy     bool
	snapshot *game.Board // Drawn instead of the live board while a search runs
	probe    game.Cell
	progress int
	message  string
}

// RunTUI plays on the terminal until the player quits.
func RunTUI(cfg *config.Config, evaluator searcher.Evaluator) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open the terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize the terminal: %w", err)
	}
	defer screen.Fini()

	t, err := NewTUI(screen, cfg, evaluator)
	if err != nil {
		return err
	}
	return t.Run()
}

// NewTUI starts the first game on an initialized screen.
func NewTUI(screen tcell.Screen, cfg *config.Config, evaluator searcher.Evaluator) (*TUI, error) {
	base := tcell.StyleDefault
	t := &TUI{
		screen:    screen,
		cfg:       cfg,
		evaluator: evaluator,
		styles: styles{
			base:      base,
			player:    base.Foreground(tcell.PaletteColor(cfg.Colors.Player)).Bold(true),
			computer:  base.Foreground(tcell.PaletteColor(cfg.Colors.Computer)).Bold(true),
			selection: tcell.PaletteColor(cfg.Colors.Selection),
		},
	}
	if err := t.newGame(cfg.First()); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TUI) Run() error {
	for {
		t.draw()
		quit, err := t.handle(t.screen.PollEvent())
		if quit || err != nil {
			return err
		}
	}
}

func (t *TUI) newGame(first game.Player) error {
	g, err := engine.NewGame(t.cfg, t.evaluator, first)
	if err != nil {
		return err
	}
	g.OnAssess(func(a engine.Assessment) {
		// Progress only: dropping it when the queue is full is harmless
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(assessed{a}))
	})

	t.game = g
	t.message = ""
	t.cursor = game.Cell(g.Board().Dimension() / 2)
	if g.State() == engine.ComputerToMove {
		t.startComputer()
	}
	return nil
}

// background runs fn against the game off the event loop.
func (t *TUI) background(fn func(g *engine.Game) searched) {
	g := t.game
	t.busy = true
	t.snapshot = g.Board().Clone()
	t.probe = game.NoCell
	t.progress = 0

	go func() {
		t.screen.PostEventWait(tcell.NewEventInterrupt(fn(g)))
	}()
}

func (t *TUI) startComputer() {
	t.message = ""
	t.background(func(g *engine.Game) searched {
		_, err := g.PlayComputer()
		return searched{err: err}
	})
}

func (t *TUI) startHint() {
	t.message = "Looking for a hint..."
	t.background(func(g *engine.Game) searched {
		d, err := g.Advise(t.evaluator)
		return searched{hint: &d, err: err}
	})
}

func (t *TUI) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case nil:
		return true, nil
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case assessed:
			t.probe = data.Cell
			t.progress++
		case searched:
			return false, t.finishSearch(data)
		}
	}
	return false, nil
}

func (t *TUI) finishSearch(s searched) error {
	t.busy = false
	t.snapshot = nil
	if s.err != nil {
		log.Error().Err(s.err).Msg("search failed")
		return s.err
	}

	topo := t.game.Board().Topology()
	if s.hint != nil {
		t.cursor = s.hint.Select()
		t.message = hintLine(topo, *s.hint)
		return nil
	}
	if last, ok := t.game.LastMove(engine.Computer); ok {
		t.cursor = last.Cell
	}
	return nil
}

func (t *TUI) handleKey(ev *tcell.EventKey) (bool, error) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true, nil
	}
	if t.busy {
		return false, nil
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		t.moveCursor(0, -1)
	case tcell.KeyRight:
		t.moveCursor(0, 1)
	case tcell.KeyUp:
		t.moveCursor(-1, 0)
	case tcell.KeyDown:
		t.moveCursor(1, 0)
	case tcell.KeyEnter:
		return false, t.enter()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h', 'H':
			if t.game.State() == engine.PlayerToMove {
				t.startHint()
			}
		case 'q', 'Q':
			return true, nil
		}
	}
	return false, nil
}

func (t *TUI) moveCursor(dr, dc int) {
	topo := t.game.Board().Topology()
	r, c := topo.Coordinates(t.cursor)
	if next, ok := topo.CellAt(r+dr, c+dc); ok {
		t.cursor = next
	}
}

func (t *TUI) enter() error {
	switch t.game.State() {
	case engine.GameWon:
		return t.newGame(engine.NextFirst(t.game.Winner()))
	case engine.PlayerToMove:
		_, err := t.game.PlayHuman(t.cursor)
		if errors.Is(err, game.ErrOccupied) {
			t.message = "That cell is taken"
			return nil
		}
		if err != nil {
			return err
		}
		t.message = ""
		if t.game.State() == engine.ComputerToMove {
			t.startComputer()
		}
	}
	return nil
}

func (t *TUI) draw() {
	t.screen.Clear()
	board := t.game.Board()
	if t.snapshot != nil {
		board = t.snapshot
	}
	topo := board.Topology()
	const left, top = 1, 1

	text := render.String(board, render.Options{Profile: termenv.Ascii})
	for y, line := range strings.Split(text, "\n") {
		for x, r := range line {
			t.screen.SetContent(left+x, top+y, r, nil, t.runeStyle(r))
		}
	}

	highlight := func(c game.Cell, r rune) {
		x, y := render.Position(topo, c)
		t.screen.SetContent(left+x, top+y, r, nil, t.runeStyle(r).Background(t.styles.selection))
	}
	switch {
	case t.busy:
		if t.probe != game.NoCell {
			highlight(t.probe, engine.Computer.Symbol())
		}
	case t.game.State() == engine.GameWon:
		for _, c := range t.game.VictoryPath() {
			highlight(c, board.Owner(c).Symbol())
		}
	default:
		highlight(t.cursor, board.Owner(t.cursor).Symbol())
	}

	_, height := render.Extent(board.Size())
	y := top + height + 1
	for _, line := range t.statusLines() {
		t.drawLine(left, y, line)
		y++
	}
	t.screen.Show()
}

func (t *TUI) statusLines() []string {
	if t.busy && t.message == "" {
		return []string{fmt.Sprintf("Computer [O] is assessing moves... (%d done)", t.progress)}
	}

	lines := statusLines(t.game)
	if t.message != "" {
		lines = append(lines, t.message)
	}
	switch t.game.State() {
	case engine.PlayerToMove:
		if hint := swapHint(t.game); hint != "" {
			lines = append(lines, hint)
		}
		lines = append(lines, "Player [X]: use <Arrows> to move, <Enter> to select, <h> for a hint")
	case engine.GameWon:
		lines = append(lines, "", "press <Enter> to start a new game (loser starts)", "press <Esc> to quit the game...")
	}
	return lines
}

func (t *TUI) runeStyle(r rune) tcell.Style {
	switch r {
	case engine.Human.Symbol():
		return t.styles.player
	case engine.Computer.Symbol():
		return t.styles.computer
	}
	return t.styles.base
}

func (t *TUI) drawLine(x, y int, s string) {
	for i, r := range s {
		t.screen.SetContent(x+i, y, r, nil, t.styles.base)
	}
}
