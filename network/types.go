package network

import "fmt"

// NoRelation marks an empty matrix cell.
const NoRelation = -1

// InheritanceType is the relation type that copies properties along an edge.
const InheritanceType = 1

type Object struct {
	Key  int
	Name string
}

type Relation struct {
	ID   int
	Name string
	Type int
}

// Transitionable reports whether closure follows edges of this relation.
func (r Relation) Transitionable() bool {
	return r.Type > 0
}

// Inherits reports whether reaching an object through this relation copies
// that object's relations onto the source.
func (r Relation) Inherits() bool {
	return r.Type == InheritanceType
}

// Fact is an asserted edge, keyed by object keys and relation id as they
// appear in the source text.
type Fact struct {
	LHS      int
	Relation int
	RHS      int
}

func (f Fact) String() string {
	return fmt.Sprintf("%d:%d:%d", f.LHS, f.Relation, f.RHS)
}

// Triple is a fact or query result with every part resolved to its name.
type Triple struct {
	Subject  string
	Relation string
	Object   string
}

func (t Triple) String() string {
	return fmt.Sprintf("%s -> %s -> %s", t.Subject, t.Relation, t.Object)
}

// Domain is the parsed form of a description, in declaration order.
type Domain struct {
	Objects   []Object
	Relations []Relation
	Facts     []Fact
}
