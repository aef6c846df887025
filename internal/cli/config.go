package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sitegrid/sitegrid/pkg/layout"
	"github.com/sitegrid/sitegrid/pkg/pipeline"
)

// configFileName is the name of the config file searched in the working
// directory and the XDG config dir.
const configFileName = "sitegrid.toml"

// Config holds file-based defaults for the CLI. Every field is optional;
// zero values fall back to pipeline defaults. Flags override config values.
type Config struct {
	DefaultCategory string   `toml:"default_category"`
	RootTitle       string   `toml:"root_title"`
	Renderer        string   `toml:"renderer"`
	Formats         []string `toml:"formats"`
	Engine          string   `toml:"engine"`
	ShowGrid        bool     `toml:"show_grid"`
	ShowEdges       bool     `toml:"show_edges"`

	Layout LayoutConfig `toml:"layout"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig mirrors the layout engine knobs in TOML form.
type LayoutConfig struct {
	Width           float64 `toml:"width"`
	Height          float64 `toml:"height"`
	Margin          float64 `toml:"margin"`
	Gutter          float64 `toml:"gutter"`
	LevelSpacing    float64 `toml:"level_spacing"`
	RelaxIterations int     `toml:"relax_iterations"`
	RelaxStrength   float64 `toml:"relax_strength"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr  string      `toml:"addr"`
	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig configures the optional Redis pipeline cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the optional MongoDB diagram store.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// LoadConfig loads the config file. Search order: the explicit path, then
// ./sitegrid.toml, then the XDG config dir. A missing file is not an error;
// an unreadable or malformed file is.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		return cfg, nil
	}

	for _, candidate := range configCandidates() {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if _, err := toml.DecodeFile(candidate, &cfg); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", candidate, err)
		}
		return cfg, nil
	}
	return cfg, nil
}

// configCandidates returns config file paths in search order.
func configCandidates() []string {
	candidates := []string{configFileName}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, configFileName))
	}
	return candidates
}

// PipelineOptions converts the config into pipeline options. Fields the
// config leaves empty keep their zero value so pipeline defaults apply.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		DefaultCategory: c.DefaultCategory,
		RootTitle:       c.RootTitle,
		Renderer:        c.Renderer,
		Formats:         c.Formats,
		Engine:          c.Engine,
		ShowGrid:        c.ShowGrid,
		ShowEdges:       c.ShowEdges,
		Layout: layout.Config{
			Width:           c.Layout.Width,
			Height:          c.Layout.Height,
			Margin:          c.Layout.Margin,
			Gutter:          c.Layout.Gutter,
			LevelSpacing:    c.Layout.LevelSpacing,
			RelaxIterations: c.Layout.RelaxIterations,
			RelaxStrength:   c.Layout.RelaxStrength,
		},
	}
}
