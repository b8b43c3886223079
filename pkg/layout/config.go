package layout

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// AdaptiveSpacing controls how the horizontal step between depth levels is
// derived from the widths of the nodes on either side of the step. Fixed
// spacing either wastes space for short labels or clips long ones; the
// clamp bounds both pathologies.
type AdaptiveSpacing struct {
	// MinSpacing and MaxSpacing clamp the computed step.
	MinSpacing float64 `toml:"min_spacing" json:"min_spacing"`
	MaxSpacing float64 `toml:"max_spacing" json:"max_spacing"`

	// SourceNodeRatio weights the average width of the shallower level,
	// TargetNodeRatio the deeper one.
	SourceNodeRatio float64 `toml:"source_node_ratio" json:"source_node_ratio"`
	TargetNodeRatio float64 `toml:"target_node_ratio" json:"target_node_ratio"`

	// BaseSpacing is the width-independent floor contribution.
	BaseSpacing float64 `toml:"base_spacing" json:"base_spacing"`

	// SafetyMargin is added on top of the weighted widths.
	SafetyMargin float64 `toml:"safety_margin" json:"safety_margin"`
}

// Config is the flat configuration surface of the layout engine and the
// overlap resolver. It is an immutable value selected once at startup (a
// mobile profile is just a different value) and passed explicitly into the
// layout call.
type Config struct {
	// MinNodeGap is the smallest allowed clear distance between two
	// unrelated nodes' boxes; the overlap resolver enforces it.
	MinNodeGap float64 `toml:"min_node_gap" json:"min_node_gap"`

	// HorizontalSpacing seeds the adaptive step when width statistics are
	// unavailable (e.g. a depth with no nodes yet).
	HorizontalSpacing float64 `toml:"horizontal_spacing" json:"horizontal_spacing"`

	// VerticalSpacing is the clear distance the engine aims for between
	// sibling boxes during initial placement.
	VerticalSpacing float64 `toml:"vertical_spacing" json:"vertical_spacing"`

	// MinVerticalGap floors the advance between consecutive leaf centers.
	MinVerticalGap float64 `toml:"min_vertical_gap" json:"min_vertical_gap"`

	// NodeHeightBuffer inflates each node's height during spacing
	// computations, keeping connector lines from grazing box borders.
	NodeHeightBuffer float64 `toml:"node_height_buffer" json:"node_height_buffer"`

	Adaptive AdaptiveSpacing `toml:"adaptive" json:"adaptive"`

	// MaxPassFactor bounds overlap resolution: the resolver gives up after
	// MaxPassFactor × nodeCount passes and returns the partial result
	// flagged as non-converged. The worst case on degenerate trees is not
	// pinned down by any contract, so the bound is generous and
	// configurable rather than a hard-coded constant.
	MaxPassFactor int `toml:"max_pass_factor" json:"max_pass_factor"`
}

// DefaultConfig returns the desktop defaults.
func DefaultConfig() Config {
	return Config{
		MinNodeGap:        8,
		HorizontalSpacing: 80,
		VerticalSpacing:   10,
		MinVerticalGap:    16,
		NodeHeightBuffer:  4,
		Adaptive: AdaptiveSpacing{
			MinSpacing:      60,
			MaxSpacing:      220,
			SourceNodeRatio: 0.35,
			TargetNodeRatio: 0.45,
			BaseSpacing:     40,
			SafetyMargin:    12,
		},
		MaxPassFactor: 4,
	}
}

// LoadConfig reads a TOML config file, applying defaults for omitted keys.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load layout config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("layout config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configs the engine cannot honor.
func (c Config) Validate() error {
	if c.Adaptive.MinSpacing > c.Adaptive.MaxSpacing {
		return fmt.Errorf("adaptive min_spacing %v exceeds max_spacing %v",
			c.Adaptive.MinSpacing, c.Adaptive.MaxSpacing)
	}
	if c.MinNodeGap < 0 || c.MinVerticalGap < 0 || c.VerticalSpacing < 0 {
		return fmt.Errorf("gaps and spacing must be non-negative")
	}
	if c.MaxPassFactor < 1 {
		return fmt.Errorf("max_pass_factor must be at least 1")
	}
	return nil
}

// maxPasses converts the pass factor into an absolute bound for a tree of
// the given size.
func (c Config) maxPasses(nodeCount int) int {
	passes := c.MaxPassFactor * nodeCount
	if passes < 8 {
		passes = 8
	}
	return passes
}
