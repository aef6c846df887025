package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. The
// server uses this to keep per-project cache entries separate while the
// CLI shares a single global namespace.
//
// Example usage:
//
//	// Project-specific keys
//	projKeyer := NewScopedKeyer(NewDefaultKeyer(), "project:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ForestKey generates a prefixed key for forest caching.
func (k *ScopedKeyer) ForestKey(sourceHash string, opts ForestKeyOpts) string {
	return k.prefix + k.inner.ForestKey(sourceHash, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(forestHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(forestHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
