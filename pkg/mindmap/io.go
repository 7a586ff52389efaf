package mindmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/orbit/pkg/errors"
)

// Document is the JSON wire form of a Graph. Nodes and edges are sorted so
// that serialization is deterministic.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges,omitempty"`
}

// ToDocument converts a graph to its wire form.
func ToDocument(g *Graph) Document {
	return Document{Nodes: g.SortedNodes(), Edges: g.SortedEdges()}
}

// FromDocument builds a graph from its wire form. Edges are derived from
// parent_id for nodes without an incoming hierarchy edge, and the result is
// validated.
func FromDocument(doc Document) (*Graph, error) {
	g := New()
	for _, n := range doc.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}
	g.DeriveHierarchyEdges()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a graph to JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph decodes JSON bytes into a validated graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	return ReadGraph(bytes.NewReader(data))
}

// WriteGraph writes a graph as indented JSON.
func WriteGraph(g *Graph, w io.Writer) error {
	return encodeJSON(w, ToDocument(g))
}

// WriteGraphFile writes a graph to a JSON file.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON graph from r.
func ReadGraph(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	return FromDocument(doc)
}

// ReadGraphFile reads a JSON graph file.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// =============================================================================
// Position Serialization API
// =============================================================================

// MarshalPositions converts positions to JSON bytes. Keys are emitted in
// sorted order by encoding/json.
func MarshalPositions(p Positions) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePositions(p, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePositions writes positions as indented JSON.
func WritePositions(p Positions, w io.Writer) error {
	if p == nil {
		p = Positions{}
	}
	return encodeJSON(w, p)
}

// WritePositionsFile writes positions to a JSON file.
func WritePositionsFile(p Positions, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePositions(p, f)
}

// ReadPositions decodes a JSON positions object.
func ReadPositions(r io.Reader) (Positions, error) {
	p := Positions{}
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode positions")
	}
	return p, nil
}

// ReadPositionsFile reads a JSON positions file.
func ReadPositionsFile(path string) (Positions, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPositions(f)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
