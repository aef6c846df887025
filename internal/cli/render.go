package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitegrid/sitegrid/pkg/pipeline"
)

// renderCommand creates the render command for generating sitemap images.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format     string
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [source-or-diagram]",
		Short: "Render a sitemap to SVG, PNG, DOT, or JSON",
		Long: `Render a sitemap to SVG, PNG, DOT, or JSON.

The render command runs the full pipeline: it builds the sitemap from
source data (or loads a diagram JSON file), computes the layout, and
writes the requested output formats.

Two renderers are available. The default 'grid' renderer draws the
category-column layout natively as SVG. The 'graphviz' renderer draws a
classic top-down tree instead; PNG and DOT output always go through
graphviz.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := c.Config.Formats
			if formatsStr != "" || len(formats) == 0 {
				formats = parseFormats(formatsStr)
			}
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], format, formats, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVar(&format, "source-format", "", "source format: urls, csv (default: detect from filename)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the build cache")
	cmd.Flags().StringVar(&c.Config.Renderer, "renderer", c.Config.Renderer, "rendering backend: grid (default), graphviz")
	cmd.Flags().StringVar(&c.Config.Engine, "engine", c.Config.Engine, "graphviz layout engine (dot, neato, fdp, ...)")
	cmd.Flags().BoolVar(&c.Config.ShowGrid, "grid", c.Config.ShowGrid, "draw category column guides")
	cmd.Flags().BoolVar(&c.Config.ShowEdges, "edges", c.Config.ShowEdges, "draw parent-child edges")
	addBuildFlags(cmd, c)
	addLayoutFlags(cmd, c)

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input, format string, formats []string, output string, noCache, refresh bool) error {
	opts, err := c.buildOptions(input, format)
	if err != nil {
		return err
	}
	opts.Formats = formats
	opts.Refresh = refresh

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering sitemap...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.PlacedCount, result.CacheInfo.RenderHit)

	return nil
}

// writeArtifacts writes one file per requested format and returns the
// written paths. With a single format the output flag names the file;
// with several it acts as a base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	var paths []string

	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}

		var path string
		if len(formats) == 1 {
			path = outputPath(output, input, format)
		} else {
			path = basePath(output, input) + "." + format
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output carries
// a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "sitemap"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
