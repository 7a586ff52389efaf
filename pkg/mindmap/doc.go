// Package mindmap provides the input and output types of the layout engine
// together with their serialization formats.
//
// A mind map arrives as a flat list of nodes and edges. Only edges of type
// [EdgeHierarchy] describe the tree structure; [EdgeReference] edges are cross
// links that the layout engine ignores. The engine writes its result into a
// [Positions] map keyed by node ID.
//
// # Core Types
//
//   - [Graph]: Flat node and edge maps (the engine input)
//   - [Node], [Edge]: Structural types
//   - [Position], [Positions]: Node centers (the engine output)
//
// # Graph Serialization
//
// Graphs use a simple JSON document with sorted node and edge lists:
//
//	{
//	  "nodes": [{"id": "root", "name": "Project"}, {"id": "a", "name": "Idea", "parent_id": "root"}],
//	  "edges": [{"id": "root->a", "source": "root", "target": "a", "type": "hierarchy"}]
//	}
//
// Common operations:
//
//	g, _ := mindmap.ReadGraphFile("map.json")     // File → Graph
//	mindmap.WriteGraphFile(g, "out.json")         // Graph → File
//	data, _ := mindmap.MarshalGraph(g)            // Graph → []byte
//
// Graphviz DOT files can be imported with [ParseDOT]; every DOT edge becomes
// a hierarchy edge unless it carries type=reference or style=dashed.
//
// # Position Serialization
//
// Positions serialize as an object keyed by node ID:
//
//	{"root": {"x": 400, "y": 300}, "a": {"x": 400, "y": 150}}
//
// # Concurrency
//
// Graph and Positions are plain maps and are not safe for concurrent writes.
package mindmap
