// Package pipeline provides the core mindmap pipeline.
//
// This package implements the complete parse → layout → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read an indented outline into a tree
//  2. Layout: Measure every node and compute overlap-free positions
//  3. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Outline: "Plan\n\t- Research\n\t- Build\n",
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
//	// Parse only
//	t, err := runner.Parse(ctx, opts)
//
//	// Layout with an existing tree
//	l, err := runner.ComputeLayout(ctx, t, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Hanzzh/mindmap/pkg/cache"
	"github.com/Hanzzh/mindmap/pkg/dimension"
	"github.com/Hanzzh/mindmap/pkg/errors"
	"github.com/Hanzzh/mindmap/pkg/layout"
	"github.com/Hanzzh/mindmap/pkg/render"
	"github.com/Hanzzh/mindmap/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultStyle is the default dimension style policy.
	DefaultStyle = "default"

	// DefaultScale is the default raster supersampling factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the mindmap pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options: exactly one of Outline (inline text) or Path (file).
	Outline string `json:"outline,omitempty"`
	Path    string `json:"path,omitempty"`

	// Layout options
	Style      string         `json:"style,omitempty"`       // dimension policy name ("default", "mobile")
	ConfigPath string         `json:"config_path,omitempty"` // TOML layout config file
	Config     *layout.Config `json:"config,omitempty"`      // explicit config (API)

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Background string   `json:"background,omitempty"` // SVG background color
	Scale      float64  `json:"scale,omitempty"`      // PNG supersampling

	// Refresh bypasses the cache on reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the parsed outline.
	Tree *tree.Tree

	// TreeHash is the content hash of the tree.
	TreeHash string

	// Layout is the positioned, serializable picture.
	Layout render.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	MaxDepth   int
	Passes     int  // overlap resolver passes
	Converged  bool // whether the resolver reached a clean pass
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage. Parsing is local
// and cheap, so only the layout and render stages are cached.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style policy name is known.
func ValidateStyle(style string) error {
	if _, ok := dimension.PolicyByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (valid: default, mobile)", style)
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
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Outline == "" && o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "outline or path is required")
	}
	if o.Outline != "" && o.Path != "" {
		return errors.New(errors.ErrCodeInvalidInput, "outline and path are mutually exclusive")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.ConfigPath != "" && o.Config != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "config and config_path are mutually exclusive")
	}
	if o.Config != nil {
		if err := o.Config.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout config")
		}
	}
	return ValidateStyle(o.Style)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ResolveConfig produces the effective layout configuration: an explicit
// Config wins, then a TOML file, then the defaults.
func (o *Options) ResolveConfig() (layout.Config, error) {
	if o.Config != nil {
		return *o.Config, nil
	}
	if o.ConfigPath != "" {
		cfg, err := layout.LoadConfig(o.ConfigPath)
		if err != nil {
			return layout.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", o.ConfigPath)
		}
		return cfg, nil
	}
	return layout.DefaultConfig(), nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(cfg layout.Config) cache.LayoutKeyOpts {
	data, _ := json.Marshal(cfg)
	return cache.LayoutKeyOpts{
		Style:      o.Style,
		ConfigHash: cache.Hash(data),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		opts.Scale = o.Scale
	case FormatSVG:
		opts.Background = o.Background
	}
	return opts
}
