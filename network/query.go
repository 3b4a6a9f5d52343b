package network

// Answer is the result of a query. A fully concrete pattern is a membership
// test and answers with Holds; any other pattern lists its matches.
type Answer struct {
	Pattern    string
	Membership bool
	Holds      bool
	Triples    []Triple
}

func (a *Answer) clone() *Answer {
	c := *a
	if a.Triples != nil {
		c.Triples = make([]Triple, len(a.Triples))
		copy(c.Triples, a.Triples)
	}
	return &c
}

// Query parses text as an A:B:C pattern and answers it against the closed
// matrix.
func (n *Network) Query(text string) (*Answer, error) {
	p, err := ParsePattern(text)
	if err != nil {
		return nil, err
	}
	return n.Answer(p)
}

// Answer answers a parsed pattern, consulting the answer cache if one is
// configured.
func (n *Network) Answer(p *Pattern) (*Answer, error) {
	key := p.String()
	if n.cache != nil {
		if a, ok := n.cache.Get(key); ok {
			return a.clone(), nil
		}
	}

	a := &Answer{Pattern: key}
	if p.Concrete() {
		holds, err := n.Ask(p.Subject.Int(), p.Relation.Int(), p.Object.Int())
		if err != nil {
			return nil, err
		}
		a.Membership = true
		a.Holds = holds
	} else {
		triples, err := n.Find(p)
		if err != nil {
			return nil, err
		}
		a.Triples = triples
	}

	if n.cache != nil {
		n.cache.Add(key, a.clone())
	}
	return a, nil
}

// Ask reports whether the closed matrix relates subject to object by
// exactly the given relation.
func (n *Network) Ask(subject, relation, object int) (bool, error) {
	i, err := n.index.Position(subject)
	if err != nil {
		return false, err
	}
	if _, err := n.relations.Lookup(relation); err != nil {
		return false, err
	}
	j, err := n.index.Position(object)
	if err != nil {
		return false, err
	}
	return n.closed.At(i, j) == relation, nil
}

// span is a half-open range of matrix positions.
type span struct {
	from, to int
}

func (n *Network) objectSpan(t *Term) (span, error) {
	if t.Wildcard {
		return span{0, n.index.Len()}, nil
	}
	i, err := n.index.Position(t.Int())
	if err != nil {
		return span{}, err
	}
	return span{i, i + 1}, nil
}

// Find lists every triple of the closed matrix matching p, by subject
// position and then object position.
func (n *Network) Find(p *Pattern) ([]Triple, error) {
	subjects, err := n.objectSpan(p.Subject)
	if err != nil {
		return nil, err
	}
	if !p.Relation.Wildcard {
		if _, err := n.relations.Lookup(p.Relation.Int()); err != nil {
			return nil, err
		}
	}
	objects, err := n.objectSpan(p.Object)
	if err != nil {
		return nil, err
	}

	var out []Triple
	for i := subjects.from; i < subjects.to; i++ {
		for j := objects.from; j < objects.to; j++ {
			id := n.closed.At(i, j)
			if id == NoRelation {
				continue
			}
			if !p.Relation.Wildcard && id != p.Relation.Int() {
				continue
			}
			out = append(out, n.named(i, id, j))
		}
	}
	return out, nil
}

func (n *Network) named(i, id, j int) Triple {
	return Triple{
		Subject:  n.index.Name(i),
		Relation: n.RelationName(id),
		Object:   n.index.Name(j),
	}
}
