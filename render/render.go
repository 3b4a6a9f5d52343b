// Package render draws the asserted facts of a network as a Graphviz
// digraph.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"semnet/network"
)

// ParseFormat maps a format name to its Graphviz output format.
func ParseFormat(name string) (graphviz.Format, error) {
	switch strings.ToLower(name) {
	case "png":
		return graphviz.PNG, nil
	case "svg":
		return graphviz.SVG, nil
	case "jpg", "jpeg":
		return graphviz.JPG, nil
	case "dot", "gv":
		return graphviz.XDOT, nil
	}
	return "", fmt.Errorf("unknown render format %q", name)
}

// build adds one node per distinct name and one labelled edge per triple.
func build(graph *cgraph.Graph, triples []network.Triple) error {
	nodes := map[string]*cgraph.Node{}
	node := func(name string) (*cgraph.Node, error) {
		if n, ok := nodes[name]; ok {
			return n, nil
		}
		n, err := graph.CreateNode(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create node %q: %w", name, err)
		}
		n.SetShape(cgraph.BoxShape)
		nodes[name] = n
		return n, nil
	}

	for i, t := range triples {
		from, err := node(t.Subject)
		if err != nil {
			return err
		}
		to, err := node(t.Object)
		if err != nil {
			return err
		}
		e, err := graph.CreateEdge(fmt.Sprintf("e%d", i), from, to)
		if err != nil {
			return fmt.Errorf("failed to create edge %s: %w", t, err)
		}
		e.SetLabel(t.Relation)
	}
	return nil
}

func draw(triples []network.Triple, fn func(*graphviz.Graphviz, *cgraph.Graph) error) (err error) {
	g := graphviz.New()
	graph, err := g.Graph()
	if err != nil {
		return fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() {
		if cerr := graph.Close(); cerr != nil && err == nil {
			err = cerr
		}
		g.Close()
	}()

	if err := build(graph, triples); err != nil {
		return err
	}
	return fn(g, graph)
}

// Write renders triples to w.
func Write(w io.Writer, triples []network.Triple, format graphviz.Format) error {
	return draw(triples, func(g *graphviz.Graphviz, graph *cgraph.Graph) error {
		return g.Render(graph, format, w)
	})
}

// File renders triples to the file at path.
func File(path string, triples []network.Triple, format graphviz.Format) error {
	return draw(triples, func(g *graphviz.Graphviz, graph *cgraph.Graph) error {
		if err := g.RenderFilename(graph, format, path); err != nil {
			return fmt.Errorf("failed to render %s: %w", path, err)
		}
		return nil
	})
}
