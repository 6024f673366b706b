package game

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Cell is a row-major index into the board. Eight bits bound the board size to MaxSize.
type Cell uint8

// NoCell is never a cell of any board.
const NoCell Cell = math.MaxUint8

const (
	MinSize = 3
	MaxSize = 15
)

var (
	ErrBoardSize = errors.New("board size out of range")
	ErrOccupied  = errors.New("cell is occupied")
	ErrOffBoard  = errors.New("cell is off the board")
)

// Edge flags stored per cell in Topology.sides
const (
	topRow uint8 = 1 << iota
	bottomRow
	leftColumn
	rightColumn
)

// Topology is the hex adjacency of a size x size board. It is immutable after construction and
// shared by every board of the same size.
type Topology struct {
	size      int
	neighbors [][]Cell
	sides     []uint8
	edges     [3][2][]Cell // indexed by Player, then first/second edge
}

func NewTopology(size int) (*Topology, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("size %d not in [%d, %d]: %w", size, MinSize, MaxSize, ErrBoardSize)
	}

	dimension := size * size
	t := &Topology{
		size:      size,
		neighbors: make([][]Cell, dimension),
		sides:     make([]uint8, dimension),
	}

	// Neighbor order follows the six hex directions, clipped at the border
	offsets := [6][2]int{{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}}
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			c := Cell(row*size + col)
			list := make([]Cell, 0, len(offsets))
			for _, o := range offsets {
				if n, ok := t.CellAt(row+o[0], col+o[1]); ok {
					list = append(list, n)
				}
			}
			t.neighbors[c] = list

			if row == 0 {
				t.sides[c] |= topRow
			}
			if row == size-1 {
				t.sides[c] |= bottomRow
			}
			if col == 0 {
				t.sides[c] |= leftColumn
			}
			if col == size-1 {
				t.sides[c] |= rightColumn
			}
		}
	}

	for i := 0; i < size; i++ {
		t.edges[PlayerA][0] = append(t.edges[PlayerA][0], Cell(i))
		t.edges[PlayerA][1] = append(t.edges[PlayerA][1], Cell((size-1)*size+i))
		t.edges[PlayerB][0] = append(t.edges[PlayerB][0], Cell(i*size))
		t.edges[PlayerB][1] = append(t.edges[PlayerB][1], Cell(i*size+size-1))
	}

	return t, nil
}

func (t *Topology) Size() int { return t.size }

// Dimension is the number of cells.
func (t *Topology) Dimension() int { return len(t.neighbors) }

func (t *Topology) OnBoard(c Cell) bool { return int(c) < len(t.neighbors) }

func (t *Topology) Neighbors(c Cell) []Cell { return t.neighbors[c] }

// Edge returns the cells of the player's first (0) or second (1) target edge.
func (t *Topology) Edge(p Player, which int) []Cell { return t.edges[p][which] }

func (t *Topology) Coordinates(c Cell) (row, col int) {
	return int(c) / t.size, int(c) % t.size
}

// CellAt returns false when (row, col) falls outside the board.
func (t *Topology) CellAt(row, col int) (Cell, bool) {
	if row < 0 || row >= t.size || col < 0 || col >= t.size {
		return NoCell, false
	}
	return Cell(row*t.size + col), true
}

// Transpose mirrors a cell across the main diagonal, swapping the roles of rows and columns.
func (t *Topology) Transpose(c Cell) Cell {
	if !t.OnBoard(c) {
		return NoCell
	}
	row, col := t.Coordinates(c)
	n, _ := t.CellAt(col, row)
	return n
}

// NewBoard returns an empty board sharing this topology.
func (t *Topology) NewBoard() *Board {
	dimension := t.Dimension()
	return &Board{
		topo:   t,
		owners: make([]Player, dimension),
		marks:  make([]uint32, dimension),
		queue:  make([]Cell, 0, dimension),
	}
}

// Board is the ownership state of every cell. A board is not safe for concurrent use: the
// connectivity check reuses scratch buffers held by the board.
type Board struct {
	topo   *Topology
	owners []Player

	marks []uint32
	epoch uint32
	queue []Cell
}

func NewBoard(size int) (*Board, error) {
	t, err := NewTopology(size)
	if err != nil {
		return nil, err
	}
	return t.NewBoard(), nil
}

func (b *Board) Topology() *Topology { return b.topo }
func (b *Board) Size() int           { return b.topo.size }
func (b *Board) Dimension() int      { return len(b.owners) }

func (b *Board) Owner(c Cell) Player { return b.owners[c] }

// Legal reports whether a stone may be placed on c.
func (b *Board) Legal(c Cell) bool {
	return b.topo.OnBoard(c) && b.owners[c] == Empty
}

// Place puts a stone of player p on c. The board is unchanged on error.
func (b *Board) Place(c Cell, p Player) error {
	if !b.topo.OnBoard(c) {
		return fmt.Errorf("cell %d: %w", c, ErrOffBoard)
	}
	if b.owners[c] != Empty {
		return fmt.Errorf("cell %d owned by %s: %w", c, b.owners[c], ErrOccupied)
	}
	b.owners[c] = p
	return nil
}

// Remove empties c. Callers only remove stones they placed.
func (b *Board) Remove(c Cell) {
	b.owners[c] = Empty
}

// set is the unchecked write used by playouts.
func (b *Board) set(c Cell, p Player) {
	b.owners[c] = p
}

// Fill assigns owners to cells in order without checks. Rollouts use it to complete a board and
// Clear to undo it.
func (b *Board) Fill(cells []Cell, first Player) {
	p := first
	for _, c := range cells {
		b.set(c, p)
		p = p.Opponent()
	}
}

func (b *Board) Clear(cells []Cell) {
	for _, c := range cells {
		b.set(c, Empty)
	}
}

// EmptyCells appends the free cells in increasing order to dst.
func (b *Board) EmptyCells(dst []Cell) []Cell {
	for i, owner := range b.owners {
		if owner == Empty {
			dst = append(dst, Cell(i))
		}
	}
	return dst
}

func (b *Board) Count(p Player) int {
	n := 0
	for _, owner := range b.owners {
		if owner == p {
			n++
		}
	}
	return n
}

func (b *Board) Coordinates(c Cell) (row, col int)   { return b.topo.Coordinates(c) }
func (b *Board) CellAt(row, col int) (Cell, bool)     { return b.topo.CellAt(row, col) }
func (b *Board) Transpose(c Cell) Cell                { return b.topo.Transpose(c) }
func (b *Board) Neighbors(c Cell) []Cell              { return b.topo.Neighbors(c) }

// Clone copies the ownership state. The copy shares the topology but not the scratch buffers.
func (b *Board) Clone() *Board {
	c := b.topo.NewBoard()
	copy(c.owners, b.owners)
	return c
}

// Equal compares ownership only.
func (b *Board) Equal(other *Board) bool {
	if b.topo.size != other.topo.size {
		return false
	}
	for i := range b.owners {
		if b.owners[i] != other.owners[i] {
			return false
		}
	}
	return true
}

// String draws one line per row, e.g. "X.O" for a 3x3 row.
func (b *Board) String() string {
	var sb strings.Builder
	size := b.topo.size
	for row := 0; row < size; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < size; col++ {
			sb.WriteRune(b.owners[row*size+col].Symbol())
		}
	}
	return sb.String()
}
