package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/mindmap"
)

// Input formats recognised by LoadGraph.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// DetectFormat picks the input format from a file extension. Unknown
// extensions are treated as JSON.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot", ".gv":
		return FormatDOT
	default:
		return FormatJSON
	}
}

// LoadGraph reads and validates a mindmap from a JSON or DOT file.
func LoadGraph(path string) (*mindmap.Graph, error) {
	if DetectFormat(path) == FormatJSON {
		return mindmap.ReadGraphFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return ParseGraph(data, FormatDOT)
}

// ParseGraph decodes a mindmap in the given format.
func ParseGraph(data []byte, format string) (*mindmap.Graph, error) {
	switch format {
	case FormatJSON, "":
		return mindmap.UnmarshalGraph(data)
	case FormatDOT:
		return mindmap.ParseDOT(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q (must be json or dot)", format)
	}
}
