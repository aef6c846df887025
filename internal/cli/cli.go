// Package cli implements the sitegrid command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sitegrid/sitegrid/pkg/buildinfo"
	"github.com/sitegrid/sitegrid/pkg/cache"
	"github.com/sitegrid/sitegrid/pkg/ingest"
	"github.com/sitegrid/sitegrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "sitegrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "sitegrid",
		Short:        "Sitegrid turns URL lists into sitemap diagrams",
		Long:         `Sitegrid is a CLI tool for turning flat page inventories (URL lists, CSV exports) into two-dimensional sitemap diagrams with category columns and depth rows.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./sitegrid.toml, then XDG config dir)")

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/sitegrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/sitegrid/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// buildOptions assembles pipeline options from config defaults plus a source
// file. The source format is detected from the filename unless forced.
func (c *CLI) buildOptions(input, format string) (pipeline.Options, error) {
	opts := c.Config.PipelineOptions()
	opts.Logger = c.Logger

	data, err := readSource(input)
	if err != nil {
		return opts, err
	}
	opts.Source = string(data)

	if format == "" {
		builder, err := ingest.Detect(input)
		if err != nil {
			return opts, err
		}
		format = builder.Format()
	}
	opts.Format = format
	return opts, nil
}

// readSource reads a source file, or stdin when input is "-".
func readSource(input string) ([]byte, error) {
	if input == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", input, err)
	}
	return data, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// outputPath derives an output file path: explicit output wins, otherwise
// the input filename with its extension swapped.
func outputPath(output, input, ext string) string {
	if output != "" {
		return output
	}
	if input == "-" {
		return "sitemap." + ext
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + ext
}
