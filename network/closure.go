package network

import "fmt"

type closureStats struct {
	Passes int
	Added  int
}

type frame struct {
	obj  int
	next int
}

// closer expands a matrix into its closure in place. Scratch state is
// reused between roots.
type closer struct {
	m       *Matrix
	rels    *Relations
	visited []bool
	stack   []frame
}

// closeMatrix runs propagation passes over every root until a pass adds
// no relation. Cells that already hold a relation are never overwritten
// and the diagonal is never written.
func closeMatrix(m *Matrix, rels *Relations) (closureStats, error) {
	c := &closer{
		m:       m,
		rels:    rels,
		visited: make([]bool, m.Size()),
		stack:   make([]frame, 0, m.Size()),
	}

	var stats closureStats
	for {
		stats.Passes++
		added := 0
		for root := 0; root < m.Size(); root++ {
			n, err := c.walk(root)
			if err != nil {
				return stats, err
			}
			added += n
		}
		stats.Added += added
		if added == 0 {
			return stats, nil
		}
	}
}

// walk is a depth-first traversal from root over transitionable edges.
// Each object is entered at most once per root. Every object reached is
// recorded against the root with the relation of the edge that reached
// it. When the root's own relation to the object inherits, whether
// asserted or just recorded, the object's row is copied into the root's
// empty cells.
func (c *closer) walk(root int) (int, error) {
	for i := range c.visited {
		c.visited[i] = false
	}
	c.visited[root] = true
	c.stack = append(c.stack[:0], frame{obj: root})

	added := 0
	for len(c.stack) > 0 {
		top := &c.stack[len(c.stack)-1]
		if top.next == c.m.Size() {
			c.stack = c.stack[:len(c.stack)-1]
			continue
		}
		j := top.next
		top.next++

		id := c.m.At(top.obj, j)
		if id == NoRelation || c.visited[j] {
			continue
		}
		rel, err := c.rels.Lookup(id)
		if err != nil {
			return added, fmt.Errorf("closure of row %d at (%d, %d): %w", root, top.obj, j, err)
		}
		if !rel.Transitionable() {
			continue
		}

		c.visited[j] = true
		if c.m.setIfEmpty(root, j, id) {
			added++
		}
		held, err := c.rels.Lookup(c.m.At(root, j))
		if err != nil {
			return added, fmt.Errorf("closure of row %d at (%d, %d): %w", root, root, j, err)
		}
		if held.Inherits() {
			added += c.inherit(root, j)
		}
		c.stack = append(c.stack, frame{obj: j})
	}
	return added, nil
}

func (c *closer) inherit(root, from int) int {
	added := 0
	for j := 0; j < c.m.Size(); j++ {
		if j == root {
			continue
		}
		id := c.m.At(from, j)
		if id == NoRelation {
			continue
		}
		if c.m.setIfEmpty(root, j, id) {
			added++
		}
	}
	return added
}
