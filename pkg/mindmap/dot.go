package mindmap

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/matzehuels/orbit/pkg/errors"
)

// ParseDOT imports a mind map from Graphviz DOT source.
//
// Nodes keep their DOT name as ID and their label (if any) as Name; Order
// follows declaration order. Edges become hierarchy edges unless they carry
// type=reference or style=dashed.
func ParseDOT(src []byte) (*Graph, error) {
	cg, err := graphviz.ParseBytes(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	if cg == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "parse DOT: no graph in input")
	}
	defer cg.Close()

	g := New()
	var nodes []*cgraph.Node
	for n, err := cg.FirstNode(); n != nil; n, err = cg.NextNode(n) {
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read DOT node")
		}
		id, err := n.Name()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read DOT node name")
		}
		node := Node{ID: id, Order: len(nodes)}
		if label := n.GetStr("label"); label != "" && label != `\N` && label != id {
			node.Name = label
		}
		if err := g.AddNode(node); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	for _, n := range nodes {
		for e, err := cg.FirstOut(n); e != nil; e, err = cg.NextOut(e) {
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read DOT edge")
			}
			if err := g.AddEdge(dotEdge(e)); err != nil {
				return nil, err
			}
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func dotEdge(e *cgraph.Edge) Edge {
	tail, _ := e.Tail()
	head, _ := e.Head()
	src, _ := tail.Name()
	dst, _ := head.Name()

	typ := EdgeHierarchy
	if EdgeType(e.GetStr("type")) == EdgeReference || strings.Contains(e.GetStr("style"), "dashed") {
		typ = EdgeReference
	}
	return Edge{Source: src, Target: dst, Type: typ}
}

// ToDOT converts a graph to DOT. Nodes present in pos are pinned at their
// coordinates (pos="x,y!", y flipped to Graphviz's upward axis) so that
// neato -n reproduces the layout. Reference edges are dashed.
func ToDOT(g *Graph, pos Positions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, n := range g.SortedNodes() {
		attrs := []string{fmt.Sprintf("label=%q", n.DisplayName())}
		if p, ok := pos[n.ID]; ok {
			attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f!\"", p.X, -p.Y))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.SortedEdges() {
		if e.IsHierarchy() {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, type=reference];\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}
