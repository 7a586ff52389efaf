package cache

// LayoutKeyOpts holds everything besides the graph that changes a layout.
type LayoutKeyOpts struct {
	// Mode is "full" or "focus".
	Mode string `json:"mode"`

	// Selected is the re-centered node in focus mode.
	Selected string `json:"selected,omitempty"`

	// CenterX and CenterY locate the layout center in full mode.
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`

	// PositionsHash fingerprints the input positions in focus mode, which
	// anchor the subtree and act as obstacles.
	PositionsHash string `json:"positions_hash,omitempty"`

	// Params are the engine parameters; any JSON-encodable value works.
	Params any `json:"params"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key for a layout of the graph with graphHash.
	// It fails when opts cannot be encoded.
	LayoutKey(graphHash string, opts LayoutKeyOpts) (string, error)
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>" over the graph hash and options.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) (string, error) {
	return hashKey("layout", graphHash, opts)
}
