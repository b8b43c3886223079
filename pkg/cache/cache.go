// Package cache provides pluggable caching for the mindmap pipeline.
//
// The pipeline caches two stage outputs: computed layouts keyed by the
// tree's content hash plus the layout configuration, and rendered
// artifacts keyed by the layout hash plus the output format. Backends
// range from a no-op (NullCache) through a local directory (FileCache)
// to Redis for the hosted service.
package cache

import (
	"context"
	"time"
)

// Default TTLs per stage. Layouts are cheap to recompute, artifacts less
// so; both are derived data and safe to expire.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface every backend implements. Get reports a
// miss via the bool, not an error; errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts captures everything besides the tree itself that changes
// a computed layout.
type LayoutKeyOpts struct {
	Style      string `json:"style"`       // dimension style policy name
	ConfigHash string `json:"config_hash"` // hash of the layout config
}

// ArtifactKeyOpts captures everything besides the layout that changes a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	Background string  `json:"background,omitempty"`
}

// Keyer builds cache keys for the pipeline stages. Implementations must
// be deterministic: identical inputs yield identical keys.
type Keyer interface {
	// LayoutKey keys a computed layout by the tree's content hash.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the layout's hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a stage prefix followed by a
// hash of the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
