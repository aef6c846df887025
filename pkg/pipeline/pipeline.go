// Package pipeline provides the core sitemap pipeline for Sitegrid.
//
// This package implements the complete build → layout → render pipeline
// that can be used by CLI and server components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Turn source data (URL lists, CSV) into a sitemap forest
//  2. Layout: Compute grid positions for every page
//  3. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Every stage caches its output; see [Runner].
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  urlList,
//	    Format:  "urls",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Build only
//	f, err := runner.Build(ctx, opts)
//
//	// Layout with an existing forest
//	doc, err := runner.Layout(ctx, f, opts)
//
//	// Render with an existing document
//	artifacts, err := runner.Render(ctx, doc, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sitegrid/sitegrid/pkg/cache"
	"github.com/sitegrid/sitegrid/pkg/diagram"
	"github.com/sitegrid/sitegrid/pkg/layout"
	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Renderer constants. The grid renderer draws the category-column layout
// natively; the graphviz renderer draws a classic top-down tree.
const (
	RendererGrid     = "grid"
	RendererGraphviz = "graphviz"
)

// DefaultRenderer is the default rendering backend.
const DefaultRenderer = RendererGrid

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidRenderers is the set of supported rendering backends.
var ValidRenderers = map[string]bool{
	RendererGrid:     true,
	RendererGraphviz: true,
}

// ValidSourceFormats is the set of supported source formats.
var ValidSourceFormats = map[string]bool{
	"urls": true,
	"csv":  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the sitemap pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Source          string `json:"source,omitempty"`           // raw source data
	Format          string `json:"format,omitempty"`           // "urls" or "csv"
	DefaultCategory string `json:"default_category,omitempty"` // category for uncategorized roots
	RootTitle       string `json:"root_title,omitempty"`       // display title for the site root
	Refresh         bool   `json:"refresh,omitempty"`          // bypass the build cache

	// Layout options. Zero fields take engine defaults.
	Layout layout.Config `json:"layout,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Renderer  string   `json:"renderer,omitempty"`
	ShowGrid  bool     `json:"show_grid,omitempty"`
	ShowEdges bool     `json:"show_edges,omitempty"`
	Engine    string   `json:"engine,omitempty"` // graphviz layout engine

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Forest is the built sitemap with positions applied.
	Forest *sitemap.Forest

	// ForestHash is the content hash of the unpositioned forest.
	ForestHash string

	// Document is the positioned, serializable layout.
	Document diagram.Document

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	PlacedCount int
	BuildTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the built forest came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all output formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRenderer checks that a rendering backend is valid.
func ValidateRenderer(renderer string) error {
	if !ValidRenderers[renderer] {
		return fmt.Errorf("invalid renderer: %q (must be one of: grid, graphviz)", renderer)
	}
	return nil
}

// ValidateSourceFormat checks that a source format is valid.
func ValidateSourceFormat(format string) error {
	if !ValidSourceFormats[format] {
		return fmt.Errorf("invalid source format: %q (must be one of: urls, csv)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks required fields for forest building.
func (o *Options) ValidateForBuild() error {
	if o.Source == "" {
		return fmt.Errorf("source is required")
	}
	if o.Format == "" {
		return fmt.Errorf("format is required")
	}
	if err := ValidateSourceFormat(o.Format); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults fills zero layout fields with engine defaults.
func (o *Options) SetLayoutDefaults() {
	o.Layout = o.Layout.Normalize()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Renderer == "" {
		o.Renderer = DefaultRenderer
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateRenderer(o.Renderer)
}

// ForestKeyOpts returns cache key options for forest building.
func (o *Options) ForestKeyOpts() cache.ForestKeyOpts {
	return cache.ForestKeyOpts{
		Format:          o.Format,
		DefaultCategory: o.DefaultCategory,
		RootTitle:       o.RootTitle,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := o.Layout.Normalize()
	return cache.LayoutKeyOpts{
		Width:           cfg.Width,
		Height:          cfg.Height,
		Margin:          cfg.Margin,
		Gutter:          cfg.Gutter,
		LevelSpacing:    cfg.LevelSpacing,
		RelaxIterations: cfg.RelaxIterations,
		RelaxStrength:   cfg.RelaxStrength,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		ShowGrid:  o.ShowGrid,
		ShowEdges: o.ShowEdges,
		Engine:    o.renderEngine(format),
	}
}

// renderEngine returns the effective graphviz engine for a format, empty
// for formats the grid renderer serves.
func (o *Options) renderEngine(format string) string {
	if o.Renderer == RendererGrid && format == FormatSVG {
		return ""
	}
	if format == FormatJSON {
		return ""
	}
	if o.Engine == "" {
		return "dot"
	}
	return o.Engine
}
