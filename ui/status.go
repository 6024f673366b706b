package ui

import (
	"fmt"

	"hex/engine"
	"hex/game"
)

func who(p game.Player) string {
	if p == engine.Computer {
		return "Computer [O]"
	}
	return "Player [X]"
}

// statusLines describe the last move, or the result once the game is over.
func statusLines(g *engine.Game) []string {
	lines := []string{}
	topo := g.Board().Topology()

	if last, ok := lastMove(g); ok && g.State() != engine.GameWon {
		if last.Swap {
			lines = append(lines, "Pie rule!")
		}
		if last.Player == engine.Computer {
			lines = append(lines, fmt.Sprintf("%s just played %s (score = %.1f%%) in %.1f seconds",
				who(last.Player), topo.Name(last.Cell), 100*last.Score, last.Elapsed.Seconds()))
		} else {
			lines = append(lines, fmt.Sprintf("%s just played %s", who(last.Player), topo.Name(last.Cell)))
		}
	}

	if g.State() == engine.GameWon {
		lines = append(lines,
			"******** GAME OVER ********",
			fmt.Sprintf("%s wins the game!", who(g.Winner())),
		)
	}
	return lines
}

func lastMove(g *engine.Game) (engine.Move, bool) {
	history := g.History()
	if len(history) == 0 {
		return engine.Move{}, false
	}
	return history[len(history)-1], true
}

func swapHint(g *engine.Game) string {
	if !g.CanSwap() {
		return ""
	}
	return "Select the computer's stone to take it over (pie rule)"
}

func hintLine(topo *game.Topology, d engine.Decision) string {
	if d.Swap {
		return fmt.Sprintf("Hint: take over %s (score = %.1f%%)", topo.Name(d.Source), 100*d.Score)
	}
	return fmt.Sprintf("Hint: %s (score = %.1f%%)", topo.Name(d.Cell), 100*d.Score)
}
