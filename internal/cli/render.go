package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Hanzzh/mindmap/pkg/errors"
	"github.com/Hanzzh/mindmap/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "svg", "png", "dot", "json"
	style      string   // style policy: "default" or "mobile"
	configPath string   // optional TOML spacing config
	background string   // SVG background color
	scale      float64  // PNG supersampling factor
	noCache    bool     // bypass the cache entirely
	refresh    bool     // recompute and overwrite cached entries
}

// renderCommand creates the render command for generating mindmap images.
//
// Default settings:
//   - format: svg
//   - style: default
//   - scale: 2.0 (PNG only)
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		scale: pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an outline file as a mindmap image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "style policy: default, mobile")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a TOML spacing config")
	cmd.Flags().StringVar(&opts.background, "background", "", "SVG background color (e.g. #ffffff)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG supersampling factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the layout and artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute and overwrite cached entries")

	return cmd
}

// runRender executes the pipeline for the input file and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s", input))
	spinner.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Path:       input,
		Style:      opts.style,
		ConfigPath: opts.configPath,
		Formats:    opts.formats,
		Background: opts.background,
		Scale:      opts.scale,
		Refresh:    opts.refresh,
		Logger:     logger,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	if len(opts.formats) == 1 {
		path := opts.output
		if path == "" {
			path = basePath("", input) + "." + opts.formats[0]
		}
		if err := writeArtifact(path, result.Artifacts[opts.formats[0]]); err != nil {
			return err
		}
		printFile(path)
	} else {
		base := basePath(opts.output, input)
		for _, format := range opts.formats {
			path := fmt.Sprintf("%s.%s", base, format)
			if err := writeArtifact(path, result.Artifacts[format]); err != nil {
				return err
			}
			printFile(path)
		}
	}

	prog.done(fmt.Sprintf("Rendered %d nodes", result.Stats.NodeCount))
	printStats(result.Stats.NodeCount, result.Stats.MaxDepth, result.Stats.Passes,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	if !result.Stats.Converged {
		printWarning("layout did not fully converge; increase max-pass-factor in the config")
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output ends in a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	for _, f := range errors.ValidFormats {
		if ext == "."+f {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// writeArtifact writes data to path, creating parent directories as needed.
func writeArtifact(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
