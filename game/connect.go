package game

import "slices"

// targetSide is the edge flag a player's search has to reach.
func targetSide(p Player) uint8 {
	if p == PlayerA {
		return bottomRow
	}
	return rightColumn
}

// HasConnection reports whether p's stones link both of p's target edges. It runs a
// breadth-first search from p's stones on the first edge and stops at the first stone on the
// second edge. It allocates nothing: visits are stamped with a per-call epoch.
func (b *Board) HasConnection(p Player) bool {
	if p != PlayerA && p != PlayerB {
		return false
	}

	// No stone on the far edge, no path
	reached := false
	for _, c := range b.topo.edges[p][1] {
		if b.owners[c] == p {
			reached = true
			break
		}
	}
	if !reached {
		return false
	}

	b.epoch++
	if b.epoch == 0 { // Wrapped: stale stamps could collide
		clear(b.marks)
		b.epoch = 1
	}
	epoch := b.epoch
	target := targetSide(p)

	queue := b.queue[:0]
	for _, c := range b.topo.edges[p][0] {
		if b.owners[c] == p {
			b.marks[c] = epoch
			queue = append(queue, c)
		}
	}

	for i := 0; i < len(queue); i++ {
		c := queue[i]
		if b.topo.sides[c]&target != 0 {
			b.queue = queue
			return true
		}
		for _, n := range b.topo.neighbors[c] {
			if b.owners[n] == p && b.marks[n] != epoch {
				b.marks[n] = epoch
				queue = append(queue, n)
			}
		}
	}
	b.queue = queue
	return false
}

// VictoryPath returns the cells of a chain of p's stones linking p's edges, in increasing
// order, or nil when there is none. Unlike HasConnection it keeps a parent per visited cell.
func (b *Board) VictoryPath(p Player) []Cell {
	if p != PlayerA && p != PlayerB {
		return nil
	}

	dimension := b.Dimension()
	parent := make([]Cell, dimension)
	visited := make([]bool, dimension)
	for i := range parent {
		parent[i] = NoCell
	}
	target := targetSide(p)

	queue := make([]Cell, 0, dimension)
	for _, c := range b.topo.edges[p][0] {
		if b.owners[c] == p {
			visited[c] = true
			queue = append(queue, c)
		}
	}

	for i := 0; i < len(queue); i++ {
		c := queue[i]
		if b.topo.sides[c]&target != 0 {
			var path []Cell
			for n := c; n != NoCell; n = parent[n] {
				path = append(path, n)
			}
			slices.Sort(path)
			return path
		}
		for _, n := range b.topo.neighbors[c] {
			if b.owners[n] == p && !visited[n] {
				visited[n] = true
				parent[n] = c
				queue = append(queue, n)
			}
		}
	}
	return nil
}

// Winner returns the player whose edges are connected, or Empty.
func (b *Board) Winner() Player {
	if b.HasConnection(PlayerA) {
		return PlayerA
	}
	if b.HasConnection(PlayerB) {
		return PlayerB
	}
	return Empty
}
