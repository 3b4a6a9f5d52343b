package network

import (
	"fmt"
	"strings"
)

// Relations looks relation definitions up by id.
type Relations struct {
	defs []Relation
	byID map[int]Relation
}

func NewRelations(defs []Relation) *Relations {
	r := &Relations{
		defs: make([]Relation, len(defs)),
		byID: make(map[int]Relation, len(defs)),
	}
	copy(r.defs, defs)
	for _, def := range defs {
		r.byID[def.ID] = def
	}
	return r
}

func (r *Relations) Lookup(id int) (Relation, error) {
	def, ok := r.byID[id]
	if !ok {
		return Relation{}, &IdentifierError{Kind: RelationKind, ID: id}
	}
	return def, nil
}

func (r *Relations) Len() int {
	return len(r.defs)
}

// Matrix is a dense square table of relation ids, NoRelation where two
// objects are not related. Row is the subject, column the object.
type Matrix struct {
	n     int
	cells []int
}

func NewMatrix(n int) *Matrix {
	m := &Matrix{n: n, cells: make([]int, n*n)}
	for i := range m.cells {
		m.cells[i] = NoRelation
	}
	return m
}

func (m *Matrix) Size() int {
	return m.n
}

func (m *Matrix) At(i, j int) int {
	return m.cells[i*m.n+j]
}

func (m *Matrix) set(i, j, rel int) {
	m.cells[i*m.n+j] = rel
}

// setIfEmpty writes rel at (i, j) unless the cell already holds a relation.
func (m *Matrix) setIfEmpty(i, j, rel int) bool {
	if m.cells[i*m.n+j] != NoRelation {
		return false
	}
	m.cells[i*m.n+j] = rel
	return true
}

func (m *Matrix) Clone() *Matrix {
	c := &Matrix{n: m.n, cells: make([]int, len(m.cells))}
	copy(c.cells, m.cells)
	return c
}

func (m *Matrix) Equal(o *Matrix) bool {
	if m.n != o.n {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Count returns the number of related ordered pairs.
func (m *Matrix) Count() int {
	c := 0
	for _, v := range m.cells {
		if v != NoRelation {
			c++
		}
	}
	return c
}

func (m *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%2d", m.At(i, j))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
