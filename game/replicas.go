package game

import (
	"errors"
	"fmt"
)

var ErrReplicaDivergence = errors.New("board replicas diverged")

// Replicas is a set of identical boards, one per evaluation worker. Every change goes through
// Place and Remove so that all boards always hold the same position. The owner of a Replicas
// is its only writer.
type Replicas struct {
	boards []*Board
}

func NewReplicas(size, count int) (*Replicas, error) {
	if count < 1 {
		count = 1
	}
	topo, err := NewTopology(size)
	if err != nil {
		return nil, err
	}
	r := &Replicas{boards: make([]*Board, count)}
	for i := range r.boards {
		r.boards[i] = topo.NewBoard()
	}
	return r, nil
}

func (r *Replicas) Len() int { return len(r.boards) }

// Primary is the board used for legality, win detection and display.
func (r *Replicas) Primary() *Board { return r.boards[0] }

func (r *Replicas) At(i int) *Board { return r.boards[i] }

func (r *Replicas) Topology() *Topology { return r.boards[0].topo }

// Place applies the move to every replica. The move is validated on the primary board first so a
// rejected move leaves all replicas untouched.
func (r *Replicas) Place(c Cell, p Player) error {
	if err := r.boards[0].Place(c, p); err != nil {
		return err
	}
	for i, b := range r.boards[1:] {
		if err := b.Place(c, p); err != nil {
			for _, done := range r.boards[:i+1] {
				done.Remove(c)
			}
			return fmt.Errorf("replica %d: %w: %w", i+1, ErrReplicaDivergence, err)
		}
	}
	return nil
}

func (r *Replicas) Remove(c Cell) {
	for _, b := range r.boards {
		b.Remove(c)
	}
}

// Verify checks that every replica matches the primary board.
func (r *Replicas) Verify() error {
	for i, b := range r.boards[1:] {
		if !b.Equal(r.boards[0]) {
			return fmt.Errorf("replica %d differs from replica 0: %w", i+1, ErrReplicaDivergence)
		}
	}
	return nil
}
