package circular

import (
	"cmp"
	"slices"

	"github.com/matzehuels/orbit/pkg/mindmap"
)

// TreeNode is one node of a tree built for a single layout pass.
type TreeNode struct {
	ID          string
	Children    []*TreeNode
	Depth       int
	SubtreeSize int
}

// IsLeaf reports whether the node has no children.
func (t *TreeNode) IsLeaf() bool { return len(t.Children) == 0 }

// Walk visits the tree depth-first in pre-order.
func (t *TreeNode) Walk(fn func(*TreeNode)) {
	fn(t)
	for _, c := range t.Children {
		c.Walk(fn)
	}
}

// hierarchy indexes hierarchy edges by source. Child lists are ordered by
// node Order, then ID, and only name nodes of the graph.
type hierarchy struct {
	children map[string][]string
	isChild  map[string]bool
}

func newHierarchy(g *mindmap.Graph) *hierarchy {
	h := &hierarchy{
		children: make(map[string][]string),
		isChild:  make(map[string]bool),
	}
	for _, e := range g.Edges {
		if !e.IsHierarchy() {
			continue
		}
		if _, ok := g.Nodes[e.Target]; !ok {
			continue
		}
		h.isChild[e.Target] = true
		if _, ok := g.Nodes[e.Source]; ok {
			h.children[e.Source] = append(h.children[e.Source], e.Target)
		}
	}
	for src, kids := range h.children {
		slices.SortFunc(kids, func(a, b string) int { return compareByOrder(g, a, b) })
		h.children[src] = slices.Compact(kids)
	}
	return h
}

// FindRootNodes returns every node that is not the target of a hierarchy
// edge, ordered by Order, then ID. A graph whose hierarchy edges form only
// cycles has no roots.
func FindRootNodes(g *mindmap.Graph) []string {
	return newHierarchy(g).roots(g)
}

func (h *hierarchy) roots(g *mindmap.Graph) []string {
	var roots []string
	for id := range g.Nodes {
		if !h.isChild[id] {
			roots = append(roots, id)
		}
	}
	slices.SortFunc(roots, func(a, b string) int { return compareByOrder(g, a, b) })
	return roots
}

// BuildTree builds the tree below rootID. Only nodes in nodeIDs are included;
// a nil set admits every node. A node reachable twice, through a cycle or a
// second parent, is only attached at its first occurrence.
func BuildTree(g *mindmap.Graph, rootID string, nodeIDs map[string]bool) *TreeNode {
	return newHierarchy(g).build(rootID, nodeIDs, make(map[string]bool))
}

func (h *hierarchy) build(rootID string, nodeIDs, seen map[string]bool) *TreeNode {
	return h.buildAt(rootID, 0, nodeIDs, seen)
}

func (h *hierarchy) buildAt(id string, depth int, nodeIDs, seen map[string]bool) *TreeNode {
	seen[id] = true
	t := &TreeNode{ID: id, Depth: depth, SubtreeSize: 1}
	for _, child := range h.children[id] {
		if seen[child] || (nodeIDs != nil && !nodeIDs[child]) {
			continue
		}
		c := h.buildAt(child, depth+1, nodeIDs, seen)
		t.Children = append(t.Children, c)
		t.SubtreeSize += c.SubtreeSize
	}
	return t
}

func compareByOrder(g *mindmap.Graph, a, b string) int {
	if c := cmp.Compare(g.Nodes[a].Order, g.Nodes[b].Order); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}
