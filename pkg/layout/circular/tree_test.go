package circular

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/orbit/pkg/mindmap"
)

// graphOf builds a graph from hierarchy edges written as "parent>child".
// Extra node IDs without edges can be listed as plain names.
func graphOf(t *testing.T, specs ...string) *mindmap.Graph {
	t.Helper()
	g := mindmap.New()
	add := func(id string) {
		if _, ok := g.Nodes[id]; !ok {
			if err := g.AddNode(mindmap.Node{ID: id}); err != nil {
				t.Fatalf("AddNode(%q): %v", id, err)
			}
		}
	}
	for _, s := range specs {
		parent, child, isEdge := strings.Cut(s, ">")
		add(parent)
		if !isEdge {
			continue
		}
		add(child)
		if err := g.AddEdge(mindmap.Edge{Source: parent, Target: child, Type: mindmap.EdgeHierarchy}); err != nil {
			t.Fatalf("AddEdge(%s): %v", s, err)
		}
	}
	return g
}

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestFindRootNodes(t *testing.T) {
	tests := []struct {
		name  string
		graph func(t *testing.T) *mindmap.Graph
		want  []string
	}{
		{
			name:  "Empty",
			graph: func(t *testing.T) *mindmap.Graph { return mindmap.New() },
			want:  nil,
		},
		{
			name:  "Forest",
			graph: func(t *testing.T) *mindmap.Graph { return graphOf(t, "r2>a", "r1>b", "b>c", "lone") },
			want:  []string{"lone", "r1", "r2"},
		},
		{
			name: "ReferenceEdgesIgnored",
			graph: func(t *testing.T) *mindmap.Graph {
				g := graphOf(t, "r>a", "x")
				_ = g.AddEdge(mindmap.Edge{Source: "a", Target: "x", Type: mindmap.EdgeReference})
				return g
			},
			want: []string{"r", "x"},
		},
		{
			name:  "FullyCyclic",
			graph: func(t *testing.T) *mindmap.Graph { return graphOf(t, "a>b", "b>c", "c>a") },
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindRootNodes(tt.graph(t)); !slices.Equal(got, tt.want) {
				t.Errorf("FindRootNodes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindRootNodesOrder(t *testing.T) {
	g := mindmap.New()
	_ = g.AddNode(mindmap.Node{ID: "a", Order: 3})
	_ = g.AddNode(mindmap.Node{ID: "b", Order: 1})
	_ = g.AddNode(mindmap.Node{ID: "c", Order: 1})

	if got, want := FindRootNodes(g), []string{"b", "c", "a"}; !slices.Equal(got, want) {
		t.Errorf("FindRootNodes = %v, want %v", got, want)
	}
}

func TestBuildTreeSubtreeSizes(t *testing.T) {
	g := graphOf(t, "r>a", "r>b", "a>c", "a>d", "d>e", "b>f")
	tree := BuildTree(g, "r", nil)

	if tree.SubtreeSize != 7 {
		t.Errorf("root SubtreeSize = %d, want 7", tree.SubtreeSize)
	}
	tree.Walk(func(n *TreeNode) {
		sum := 1
		for _, c := range n.Children {
			sum += c.SubtreeSize
			if c.Depth != n.Depth+1 {
				t.Errorf("%s depth = %d, want %d", c.ID, c.Depth, n.Depth+1)
			}
		}
		if n.SubtreeSize != sum {
			t.Errorf("%s SubtreeSize = %d, want 1+children = %d", n.ID, n.SubtreeSize, sum)
		}
	})
}

func TestBuildTreeChildOrder(t *testing.T) {
	g := mindmap.New()
	for _, n := range []mindmap.Node{{ID: "r"}, {ID: "z", Order: 0}, {ID: "y", Order: 2}, {ID: "x", Order: 1}} {
		_ = g.AddNode(n)
	}
	for _, c := range []string{"y", "x", "z"} {
		_ = g.AddEdge(mindmap.Edge{Source: "r", Target: c})
	}

	var got []string
	for _, c := range BuildTree(g, "r", nil).Children {
		got = append(got, c.ID)
	}
	if want := []string{"z", "x", "y"}; !slices.Equal(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
}

func TestBuildTreeNodeFilter(t *testing.T) {
	g := graphOf(t, "r>a", "r>b", "a>c")
	tree := BuildTree(g, "r", map[string]bool{"r": true, "a": true, "c": true})

	if tree.SubtreeSize != 3 {
		t.Errorf("SubtreeSize = %d, want 3", tree.SubtreeSize)
	}
	if len(tree.Children) != 1 || tree.Children[0].ID != "a" {
		t.Errorf("children = %v, want only a", tree.Children)
	}
}

func TestBuildTreeCycleTerminates(t *testing.T) {
	g := graphOf(t, "a>b", "b>c", "c>a")
	tree := BuildTree(g, "a", nil)
	if tree.SubtreeSize != 3 {
		t.Errorf("SubtreeSize = %d, want 3", tree.SubtreeSize)
	}
}
