package network

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// Options configure how a network is built.
type Options struct {
	// Debug dumps the parsed description and the closed matrix to Logger.
	Debug bool
	// StrictFacts rejects a second fact for an ordered pair of objects
	// instead of letting it replace the first.
	StrictFacts bool
	// CacheSize bounds the number of cached query answers. Zero disables
	// the cache.
	CacheSize int
	Logger    logrus.FieldLogger
}

// Network is a loaded, closed semantic network. It is read-only once New
// returns and may be queried from several goroutines.
type Network struct {
	setup     string
	domain    *Domain
	index     *Index
	relations *Relations
	asserted  *Matrix
	closed    *Matrix
	triples   []Triple // asserted facts, named, in declaration order

	log   logrus.FieldLogger
	cache *lru.Cache[string, *Answer]
}

// Load reads a description file and builds its network.
func Load(path string, opts Options) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %+w", path, err)
	}
	n, err := New(string(data), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return n, nil
}

// New parses text, materializes its facts and closes the resulting matrix.
func New(text string, opts Options) (*Network, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	domain, err := ParseDomain(text)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		log.Debugf("parsed domain: %s", repr.String(domain, repr.Indent("  ")))
	}

	n := &Network{
		setup:     text,
		domain:    domain,
		relations: NewRelations(domain.Relations),
		log:       log,
	}
	if n.index, err = NewIndex(domain.Objects); err != nil {
		return nil, err
	}
	if n.asserted, err = n.materialize(opts.StrictFacts); err != nil {
		return nil, err
	}

	n.closed = n.asserted.Clone()
	stats, err := closeMatrix(n.closed, n.relations)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"objects":   n.index.Len(),
		"relations": n.relations.Len(),
		"facts":     len(domain.Facts),
		"passes":    stats.Passes,
		"inferred":  stats.Added,
	}).Debug("network closed")
	if opts.Debug {
		log.Debugf("closed matrix:\n%s", n.closed)
	}

	if opts.CacheSize > 0 {
		if n.cache, err = lru.New[string, *Answer](opts.CacheSize); err != nil {
			return nil, fmt.Errorf("failed to create answer cache: %w", err)
		}
	}
	return n, nil
}

// materialize builds the asserted matrix, checking every fact against the
// declared objects and relations.
func (n *Network) materialize(strict bool) (*Matrix, error) {
	m := NewMatrix(n.index.Len())
	for _, f := range n.domain.Facts {
		i, err := n.index.Position(f.LHS)
		if err != nil {
			return nil, fmt.Errorf("fact %s: %w", f, err)
		}
		if _, err := n.relations.Lookup(f.Relation); err != nil {
			return nil, fmt.Errorf("fact %s: %w", f, err)
		}
		j, err := n.index.Position(f.RHS)
		if err != nil {
			return nil, fmt.Errorf("fact %s: %w", f, err)
		}

		if prev := m.At(i, j); prev != NoRelation {
			if strict {
				return nil, fmt.Errorf("%w: fact %s, objects %d and %d already related by %d", ErrDuplicateFact, f, f.LHS, f.RHS, prev)
			}
			n.log.WithFields(logrus.Fields{
				"fact":     f.String(),
				"replaced": prev,
			}).Warn("duplicate fact replaces earlier relation")
		}
		m.set(i, j, f.Relation)
		n.triples = append(n.triples, n.named(i, f.Relation, j))
	}
	return m, nil
}

// Setup returns the description text exactly as loaded.
func (n *Network) Setup() string {
	return n.setup
}

func (n *Network) Objects() []Object {
	return append([]Object(nil), n.domain.Objects...)
}

func (n *Network) Relations() []Relation {
	return append([]Relation(nil), n.domain.Relations...)
}

func (n *Network) Facts() []Fact {
	return append([]Fact(nil), n.domain.Facts...)
}

// AssertedTriples returns the facts of the description with names
// resolved, in declaration order.
func (n *Network) AssertedTriples() []Triple {
	return append([]Triple(nil), n.triples...)
}

// Asserted returns the matrix of asserted facts. Callers must not modify it.
func (n *Network) Asserted() *Matrix {
	return n.asserted
}

// Closed returns the closed matrix. Callers must not modify it.
func (n *Network) Closed() *Matrix {
	return n.closed
}

// RelationName returns the name of a relation id, or "" if it is unknown.
func (n *Network) RelationName(id int) string {
	rel, err := n.relations.Lookup(id)
	if err != nil {
		return ""
	}
	return rel.Name
}

// Labels returns object names in matrix order, cut to width runes when
// width is positive.
func (n *Network) Labels(width int) []string {
	out := make([]string, n.index.Len())
	for i := range out {
		name := []rune(n.index.Name(i))
		if width > 0 && len(name) > width {
			name = name[:width]
		}
		out[i] = string(name)
	}
	return out
}
