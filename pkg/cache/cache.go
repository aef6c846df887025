// Package cache provides pluggable byte caches and cache key generation for
// the sitemap pipeline.
//
// Three stages of the pipeline cache their outputs: forest building, layout
// computation, and artifact rendering. Each stage has its own key family
// (see [Keyer]) and TTL so stages can be invalidated independently.
//
// Backends:
//
//   - [FileCache]: directory-based cache for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// TTLs per key family. Forests depend on external source data and expire
// first; layouts and artifacts are pure functions of their inputs and keep
// longer.
const (
	TTLForest   = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ForestKeyOpts are the options that affect forest building and therefore
// participate in the forest cache key.
type ForestKeyOpts struct {
	Format          string // source format: "urls", "csv", "json"
	DefaultCategory string
	RootTitle       string
}

// LayoutKeyOpts are the layout options that participate in the layout
// cache key. Any config field that changes node positions belongs here.
type LayoutKeyOpts struct {
	Width           float64
	Height          float64
	Margin          float64
	Gutter          float64
	LevelSpacing    float64
	RelaxIterations int
	RelaxStrength   float64
}

// ArtifactKeyOpts are the render options that participate in the artifact
// cache key.
type ArtifactKeyOpts struct {
	Format    string // "svg", "png", "dot", "json"
	ShowGrid  bool
	ShowEdges bool
	Engine    string // graphviz engine for dot-based renders
}

// Keyer generates cache keys for the pipeline stages. Implementations must
// be deterministic: equal inputs produce equal keys.
type Keyer interface {
	// ForestKey generates a key for a built forest. sourceHash is the
	// content hash of the raw source data.
	ForestKey(sourceHash string, opts ForestKeyOpts) string

	// LayoutKey generates a key for a computed layout. forestHash is the
	// content hash of the serialized forest.
	LayoutKey(forestHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact. layoutHash is
	// the content hash of the serialized, positioned document.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator. Keys are prefixed by family
// and carry a SHA-256 hash of the inputs, so they are safe for any backend.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ForestKey generates a key for a built forest.
func (k *DefaultKeyer) ForestKey(sourceHash string, opts ForestKeyOpts) string {
	return hashKey("forest", sourceHash, opts)
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(forestHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", forestHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
