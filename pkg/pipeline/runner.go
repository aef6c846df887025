package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sitegrid/sitegrid/pkg/cache"
	"github.com/sitegrid/sitegrid/pkg/diagram"
	"github.com/sitegrid/sitegrid/pkg/observability"
	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.Format)
	f, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	observability.Pipeline().OnBuildComplete(ctx, opts.Format, countNodes(f), time.Since(buildStart), err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Forest = f
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = f.NodeCount()
	result.CacheInfo.BuildHit = buildHit

	// Content hash of the unpositioned forest, for cache keys and API responses
	if data, err := diagram.Marshal(diagram.FromForest(f, nil)); err == nil {
		result.ForestHash = cache.Hash(data)
	}

	r.Logger.Info("built sitemap",
		"nodes", f.NodeCount(),
		"categories", len(f.Categories()),
		"duration", result.Stats.BuildTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, f.NodeCount())
	doc, layoutHit, err := r.LayoutWithCacheInfo(ctx, f, opts)
	observability.Pipeline().OnLayoutComplete(ctx, countPlaced(doc), time.Since(layoutStart), err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Document = doc
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.PlacedCount = countPlaced(doc)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"placed", result.Stats.PlacedCount,
		"columns", len(doc.Columns),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildWithCacheInfo builds a forest with caching and returns cache hit info.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*sitemap.Forest, bool, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	sourceHash := cache.Hash([]byte(opts.Source))
	cacheKey := r.Keyer.ForestKey(sourceHash, opts.ForestKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if doc, err := diagram.Unmarshal(data); err == nil {
				if f, err := diagram.ToForest(doc); err == nil {
					observability.Cache().OnCacheHit(ctx, "forest")
					return f, true, nil
				}
			}
		}
		observability.Cache().OnCacheMiss(ctx, "forest")
	}

	f, err := build(opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := diagram.Marshal(diagram.FromForest(f, nil)); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLForest)
			observability.Cache().OnCacheSet(ctx, "forest", len(data))
		}
	}

	return f, false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) (*sitemap.Forest, error) {
	f, _, err := r.BuildWithCacheInfo(ctx, opts)
	return f, err
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
//
// On a cache hit the cached positions are copied back onto the forest so
// callers observe the same node state as on a miss.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, f *sitemap.Forest, opts Options) (diagram.Document, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	forestData, err := diagram.Marshal(diagram.FromForest(f, nil))
	if err != nil {
		return diagram.Document{}, false, fmt.Errorf("serialize forest for cache key: %w", err)
	}
	forestHash := cache.Hash(forestData)
	cacheKey := r.Keyer.LayoutKey(forestHash, opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := diagram.Unmarshal(data); err == nil {
			applyPositions(f, cached)
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	doc := computeLayout(f, opts)

	// Cache the result
	if data, err := diagram.Marshal(doc); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return doc, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, f *sitemap.Forest, opts Options) (diagram.Document, error) {
	doc, _, err := r.LayoutWithCacheInfo(ctx, f, opts)
	return doc, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc diagram.Document, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := diagram.Marshal(doc)
	if err != nil {
		return nil, false, fmt.Errorf("serialize document for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := renderDocument(doc, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc diagram.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// applyPositions copies cached document positions onto the forest.
func applyPositions(f *sitemap.Forest, doc diagram.Document) {
	for _, dn := range doc.Nodes {
		n, ok := f.Node(dn.ID)
		if !ok {
			continue
		}
		if dn.Pos != nil && n.Pos == nil {
			n.Pos = &sitemap.Position{X: dn.Pos.X, Y: dn.Pos.Y}
		}
		if dn.Anchor != nil && n.Anchor == nil {
			n.Anchor = &sitemap.Position{X: dn.Anchor.X, Y: dn.Anchor.Y}
		}
	}
}

func countNodes(f *sitemap.Forest) int {
	if f == nil {
		return 0
	}
	return f.NodeCount()
}

// countPlaced counts document nodes that carry a position.
func countPlaced(doc diagram.Document) int {
	placed := 0
	for _, n := range doc.Nodes {
		if n.Pos != nil {
			placed++
		}
	}
	return placed
}
