package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Name writes a cell as a column letter and a 1-based row number, e.g. "c2" for row 1, column 2.
func (t *Topology) Name(c Cell) string {
	if !t.OnBoard(c) {
		return "--"
	}
	row, col := t.Coordinates(c)
	return fmt.Sprintf("%c%d", 'a'+col, row+1)
}

// ParseCell reads the notation written by Name. Case is ignored.
func (t *Topology) ParseCell(s string) (Cell, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 || s[0] < 'a' || s[0] > 'z' {
		return NoCell, fmt.Errorf("cell %q: expected a column letter and a row number", s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return NoCell, fmt.Errorf("cell %q: %w", s, err)
	}
	c, ok := t.CellAt(row-1, int(s[0]-'a'))
	if !ok {
		return NoCell, fmt.Errorf("cell %q: %w", s, ErrOffBoard)
	}
	return c, nil
}
