package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitegrid/sitegrid/pkg/diagram"
	"github.com/sitegrid/sitegrid/pkg/pipeline"
	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

// layoutCommand creates the layout command for computing sitemap positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		format  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [source-or-diagram]",
		Short: "Compute grid positions for a sitemap",
		Long: `Compute grid positions for a sitemap.

The layout command accepts either raw source data (URL list, CSV) or a
diagram JSON file produced by 'build'. It allocates a column band per
category, aligns pages of equal depth on shared rows, relaxes overlaps,
and writes the positioned diagram as JSON.

Pages that already carry positions in the input keep them untouched; the
engine places only the unpositioned pages around them.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], format, output, noCache)
		},
	}

	cmd.Flags().StringVar(&format, "source-format", "", "source format: urls, csv (default: detect from filename)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, c)

	return cmd
}

// addLayoutFlags registers the layout engine flags shared by layout and
// render. Defaults come from the loaded config file.
func addLayoutFlags(cmd *cobra.Command, c *CLI) {
	cmd.Flags().Float64Var(&c.Config.Layout.Width, "width", c.Config.Layout.Width, "frame width")
	cmd.Flags().Float64Var(&c.Config.Layout.Height, "height", c.Config.Layout.Height, "frame height")
	cmd.Flags().Float64Var(&c.Config.Layout.Gutter, "gutter", c.Config.Layout.Gutter, "horizontal gap between category columns")
	cmd.Flags().Float64Var(&c.Config.Layout.LevelSpacing, "level-spacing", c.Config.Layout.LevelSpacing, "vertical gap between depth rows")
	cmd.Flags().IntVar(&c.Config.Layout.RelaxIterations, "relax-iterations", c.Config.Layout.RelaxIterations, "overlap relaxation iterations")
}

// runLayout loads or builds the forest, computes the layout, and writes
// the positioned diagram.
func (c *CLI) runLayout(ctx context.Context, input, format, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	f, opts, err := c.loadForest(ctx, runner, input, format)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	doc, cacheHit, err := runner.LayoutWithCacheInfo(ctx, f, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	path := output
	if path == "" {
		path = outputPath("", strings.TrimSuffix(input, ".json"), "layout.json")
	}
	if err := diagram.WriteFile(doc, path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	placed := 0
	for _, n := range doc.Nodes {
		if n.Pos != nil {
			placed++
		}
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats(len(doc.Nodes), placed, cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+path)

	return nil
}

// loadForest turns the input into a forest. Diagram JSON files are loaded
// directly; anything else runs through the build stage.
func (c *CLI) loadForest(ctx context.Context, runner *pipeline.Runner, input, format string) (f *sitemap.Forest, opts pipeline.Options, err error) {
	opts = c.Config.PipelineOptions()
	opts.Logger = c.Logger

	if format == "" && strings.HasSuffix(input, ".json") {
		doc, err := loadDocument(input)
		if err != nil {
			return nil, opts, err
		}
		f, err := diagram.ToForest(doc)
		if err != nil {
			return nil, opts, fmt.Errorf("invalid diagram %s: %w", input, err)
		}
		return f, opts, nil
	}

	opts, err = c.buildOptions(input, format)
	if err != nil {
		return nil, opts, err
	}
	f, err = runner.Build(ctx, opts)
	if err != nil {
		return nil, opts, fmt.Errorf("build: %w", err)
	}
	return f, opts, nil
}
