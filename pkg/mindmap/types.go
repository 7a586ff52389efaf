package mindmap

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/orbit/pkg/errors"
)

// EdgeType distinguishes structural edges from cross links.
type EdgeType string

// Edge types.
const (
	// EdgeHierarchy means the target is a structural child of the source.
	EdgeHierarchy EdgeType = "hierarchy"
	// EdgeReference is a cross link; the layout engine ignores it.
	EdgeReference EdgeType = "reference"
)

// Valid reports whether t is a known edge type.
func (t EdgeType) Valid() bool {
	return t == EdgeHierarchy || t == EdgeReference
}

// Node is a mind map node. It is owned by the caller; the engine only reads it.
type Node struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
	ParentID string `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Order    int    `json:"order,omitempty" bson:"order,omitempty"`
}

// DisplayName returns the name if set, otherwise the ID.
func (n Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Edge is a directed edge between two nodes.
type Edge struct {
	ID     string   `json:"id" bson:"id"`
	Source string   `json:"source" bson:"source"`
	Target string   `json:"target" bson:"target"`
	Type   EdgeType `json:"type" bson:"type"`
}

// IsHierarchy reports whether the edge participates in layout.
func (e Edge) IsHierarchy() bool { return e.Type == EdgeHierarchy }

// Graph is the flat node and edge collection handed to the layout engine.
//
// The zero value is not usable - use New.
type Graph struct {
	Nodes map[string]Node
	Edges map[string]Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		Nodes: make(map[string]Node),
		Edges: make(map[string]Edge),
	}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges of any type.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// AddNode adds a node. Returns an INVALID_INPUT error for empty or duplicate IDs.
func (g *Graph) AddNode(n Node) error {
	if err := errors.ValidateNodeID(n.ID); err != nil {
		return err
	}
	if _, exists := g.Nodes[n.ID]; exists {
		return errors.New(errors.ErrCodeInvalidInput, "duplicate node id %q", n.ID)
	}
	g.Nodes[n.ID] = n
	return nil
}

// AddEdge adds an edge. An empty ID is derived from the endpoints and an
// empty type defaults to hierarchy. Endpoints are not checked here; use
// Validate once the graph is complete.
func (g *Graph) AddEdge(e Edge) error {
	if e.Type == "" {
		e.Type = EdgeHierarchy
	}
	if !e.Type.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "edge %s→%s has unknown type %q", e.Source, e.Target, e.Type)
	}
	if e.ID == "" {
		e.ID = g.edgeID(e.Source, e.Target)
	}
	if _, exists := g.Edges[e.ID]; exists {
		return errors.New(errors.ErrCodeInvalidInput, "duplicate edge id %q", e.ID)
	}
	g.Edges[e.ID] = e
	return nil
}

// edgeID derives a stable identifier for an edge without one.
func (g *Graph) edgeID(source, target string) string {
	id := source + "->" + target
	for i := 2; ; i++ {
		if _, exists := g.Edges[id]; !exists {
			return id
		}
		id = fmt.Sprintf("%s->%s#%d", source, target, i)
	}
}

// SortedNodes returns all nodes ordered by Order, then ID.
func (g *Graph) SortedNodes() []Node {
	nodes := make([]Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, compareNodes)
	return nodes
}

// SortedEdges returns all edges ordered by ID.
func (g *Graph) SortedEdges() []Edge {
	edges := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(a, b Edge) int { return cmp.Compare(a.ID, b.ID) })
	return edges
}

// HierarchyEdges returns only hierarchy edges, ordered by ID.
func (g *Graph) HierarchyEdges() []Edge {
	var out []Edge
	for _, e := range g.SortedEdges() {
		if e.IsHierarchy() {
			out = append(out, e)
		}
	}
	return out
}

// Children returns the hierarchy children of id ordered by Order, then ID.
// Targets that are not nodes of the graph are skipped.
func (g *Graph) Children(id string) []string {
	var kids []Node
	for _, e := range g.Edges {
		if !e.IsHierarchy() || e.Source != id {
			continue
		}
		if n, ok := g.Nodes[e.Target]; ok {
			kids = append(kids, n)
		}
	}
	slices.SortFunc(kids, compareNodes)
	ids := make([]string, len(kids))
	for i, n := range kids {
		ids[i] = n.ID
	}
	return ids
}

// DeriveHierarchyEdges adds a hierarchy edge for every node whose ParentID
// names an existing node and which has no incoming hierarchy edge yet.
// Returns the number of edges added.
func (g *Graph) DeriveHierarchyEdges() int {
	hasParent := make(map[string]bool)
	for _, e := range g.Edges {
		if e.IsHierarchy() {
			hasParent[e.Target] = true
		}
	}

	added := 0
	for _, n := range g.SortedNodes() {
		if n.ParentID == "" || hasParent[n.ID] {
			continue
		}
		if _, ok := g.Nodes[n.ParentID]; !ok {
			continue
		}
		_ = g.AddEdge(Edge{Source: n.ParentID, Target: n.ID, Type: EdgeHierarchy})
		hasParent[n.ID] = true
		added++
	}
	return added
}

// Validate checks structural integrity:
//   - every edge references existing nodes
//   - every edge has a known type
//   - no node has more than one hierarchy parent
//   - a node's ParentID, when set, matches its hierarchy parent
//
// Cycles are not rejected here; the layout engine reports a fully cyclic
// graph as having no roots.
func (g *Graph) Validate() error {
	parents := make(map[string]string)
	for _, e := range g.SortedEdges() {
		if _, ok := g.Nodes[e.Source]; !ok {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %q: unknown source node %q", e.ID, e.Source)
		}
		if _, ok := g.Nodes[e.Target]; !ok {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %q: unknown target node %q", e.ID, e.Target)
		}
		if !e.Type.Valid() {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %q: unknown type %q", e.ID, e.Type)
		}
		if !e.IsHierarchy() {
			continue
		}
		if prev, ok := parents[e.Target]; ok && prev != e.Source {
			return errors.New(errors.ErrCodeInvalidGraph, "node %q has more than one hierarchy parent (%q, %q)", e.Target, prev, e.Source)
		}
		parents[e.Target] = e.Source
	}

	for id, n := range g.Nodes {
		if n.ParentID == "" {
			continue
		}
		if p, ok := parents[id]; ok && p != n.ParentID {
			return errors.New(errors.ErrCodeInvalidGraph, "node %q: parent_id %q disagrees with hierarchy edge from %q", id, n.ParentID, p)
		}
	}
	return nil
}

func compareNodes(a, b Node) int {
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
