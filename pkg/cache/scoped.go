package cache

// ScopedKeyer prefixes the keys of another Keyer. The [cache] prefix setting
// installs one so deployments sharing a Redis or MongoDB backend never read
// each other's layouts.
type ScopedKeyer struct {
	Inner  Keyer
	Prefix string
}

// NewScopedKeyer wraps inner, or the DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{Inner: inner, Prefix: prefix}
}

// LayoutKey returns the inner key with Prefix prepended.
func (k ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) (string, error) {
	key, err := k.Inner.LayoutKey(graphHash, opts)
	if err != nil {
		return "", err
	}
	return k.Prefix + key, nil
}
