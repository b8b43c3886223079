package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Hanzzh/mindmap/pkg/pipeline"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output     string // output file path; "-" or empty writes to stdout
	style      string // style policy: "default" or "mobile"
	configPath string // optional TOML spacing config
	noCache    bool   // bypass the cache entirely
	refresh    bool   // recompute and overwrite cached entries
}

// layoutCommand creates the layout command. It computes node positions for an
// outline and emits the layout as JSON without rasterizing anything.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute a mindmap layout and emit it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.style, "style", "", "style policy: default, mobile")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a TOML spacing config")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the layout cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute and overwrite cached entries")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, opts *layoutOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Path:       input,
		Style:      opts.style,
		ConfigPath: opts.configPath,
		Formats:    []string{pipeline.FormatJSON},
		Refresh:    opts.refresh,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	data := result.Artifacts[pipeline.FormatJSON]
	if opts.output == "" || opts.output == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
		fmt.Println()
	} else {
		if err := writeArtifact(opts.output, data); err != nil {
			return err
		}
		printFile(opts.output)
	}

	prog.done(fmt.Sprintf("Laid out %d nodes", result.Stats.NodeCount))
	printStats(result.Stats.NodeCount, result.Stats.MaxDepth, result.Stats.Passes, result.CacheInfo.LayoutHit)
	return nil
}
