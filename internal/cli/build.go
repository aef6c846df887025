package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitegrid/sitegrid/pkg/diagram"
)

// buildCommand creates the build command for turning page inventories into
// a sitemap document.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		format  string
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "build [source-file]",
		Short: "Build a sitemap from a URL list or CSV export",
		Long: `Build a sitemap from a URL list or CSV export.

The build command reads a page inventory (a plain URL list or a CSV file
with id/parent_id/depth/category columns), derives the page hierarchy, and
writes the unpositioned sitemap as a diagram JSON file. Feed the result to
'layout' to compute positions, or use 'render' to go straight to images.

Pass "-" as the source file to read from stdin (use --source-format then).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], format, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVar(&format, "source-format", "", "source format: urls, csv (default: detect from filename)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the build cache")
	addBuildFlags(cmd, c)

	return cmd
}

// addBuildFlags registers the flags shared by every command that builds a
// forest from source data. Defaults come from the loaded config file.
func addBuildFlags(cmd *cobra.Command, c *CLI) {
	cmd.Flags().StringVar(&c.Config.DefaultCategory, "category", c.Config.DefaultCategory, "category for uncategorized root pages")
	cmd.Flags().StringVar(&c.Config.RootTitle, "root-title", c.Config.RootTitle, "display title for the site root")
}

// runBuild builds the forest and writes the unpositioned document.
func (c *CLI) runBuild(ctx context.Context, input, format, output string, noCache, refresh bool) error {
	opts, err := c.buildOptions(input, format)
	if err != nil {
		return err
	}
	opts.Refresh = refresh

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Building sitemap...")
	spinner.Start()

	f, cacheHit, err := runner.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return fmt.Errorf("build: %w", err)
	}
	spinner.Stop()

	path := outputPath(output, input, "json")
	doc := diagram.FromForest(f, nil)
	if err := diagram.WriteFile(doc, path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Sitemap built")
	printFile(path)
	printStats(f.NodeCount(), 0, cacheHit)
	printNewline()
	printNextStep("Compute layout", appName+" layout "+path)

	return nil
}

// loadDocument reads a diagram JSON file written by build, layout, or
// render -f json.
func loadDocument(input string) (diagram.Document, error) {
	doc, err := diagram.ReadFile(input)
	if err != nil {
		return diagram.Document{}, fmt.Errorf("load diagram %s: %w", input, err)
	}
	return doc, nil
}
