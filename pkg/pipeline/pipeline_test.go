package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/sitegrid/sitegrid/pkg/cache"
	"github.com/sitegrid/sitegrid/pkg/diagram"
)

const testURLSource = `https://example.com/
https://example.com/blog
https://example.com/blog/first-post
https://example.com/shop
`

func testOptions() Options {
	return Options{
		Source:  testURLSource,
		Format:  "urls",
		Formats: []string{FormatSVG, FormatJSON},
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := testOptions()
	opts.Formats = nil

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if got, want := len(opts.Formats), 1; got != want {
		t.Fatalf("default formats = %v", opts.Formats)
	}
	if opts.Formats[0] != FormatSVG {
		t.Errorf("default format = %s, want svg", opts.Formats[0])
	}
	if opts.Renderer != RendererGrid {
		t.Errorf("default renderer = %s, want grid", opts.Renderer)
	}
	if opts.Layout.Width == 0 {
		t.Error("layout defaults not applied")
	}
	if opts.Logger == nil {
		t.Error("logger default not applied")
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
		want   string
	}{
		{"missing source", func(o *Options) { o.Source = "" }, "source is required"},
		{"missing format", func(o *Options) { o.Format = "" }, "format is required"},
		{"bad source format", func(o *Options) { o.Format = "xml" }, "invalid source format"},
		{"bad output format", func(o *Options) { o.Formats = []string{"pdf"} }, "invalid format"},
		{"bad renderer", func(o *Options) { o.Renderer = "canvas" }, "invalid renderer"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := testOptions()
			tc.mutate(&opts)
			err := opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestRunner_Execute(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	// /shop and /blog/first-post imply 4 listed pages, all under one root.
	if got, want := result.Stats.NodeCount, 4; got != want {
		t.Errorf("node count = %d, want %d", got, want)
	}
	if got, want := result.Stats.PlacedCount, 4; got != want {
		t.Errorf("placed count = %d, want %d", got, want)
	}
	if result.ForestHash == "" {
		t.Error("forest hash not computed")
	}

	svg := string(result.Artifacts[FormatSVG])
	if !strings.Contains(svg, "<svg") {
		t.Error("svg artifact missing markup")
	}
	if _, err := diagram.Unmarshal(result.Artifacts[FormatJSON]); err != nil {
		t.Errorf("json artifact does not parse: %v", err)
	}

	// With a null cache nothing hits.
	ci := result.CacheInfo
	if ci.BuildHit || ci.LayoutHit || ci.RenderHit {
		t.Errorf("unexpected cache hits: %+v", ci)
	}
}

func TestRunner_ExecuteCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	first, err := runner.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("first execute: %v", err)
	}
	if first.CacheInfo.BuildHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("cold run hit the cache: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("second execute: %v", err)
	}
	ci := second.CacheInfo
	if !ci.BuildHit || !ci.LayoutHit || !ci.RenderHit {
		t.Errorf("warm run missed the cache: %+v", ci)
	}

	// Cached run produces the same artifacts.
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	// Cached layout is applied back onto the forest.
	for _, n := range second.Forest.Nodes() {
		if !n.Placed() {
			t.Errorf("node %s unplaced after cached layout", n.ID)
		}
	}
}

func TestRunner_RefreshBypassesBuildCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	if _, err := runner.Execute(ctx, testOptions()); err != nil {
		t.Fatal(err)
	}

	opts := testOptions()
	opts.Refresh = true
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.BuildHit {
		t.Error("refresh run hit the build cache")
	}
}

func TestRunner_DOTArtifact(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	opts := testOptions()
	opts.Formats = []string{FormatDOT}
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, "digraph sitemap") {
		t.Error("dot artifact missing digraph")
	}
	if !strings.Contains(dot, `"/" -> "/blog"`) {
		t.Error("dot artifact missing hierarchy edge")
	}
}

func TestArtifactKeyOpts_EngineByFormat(t *testing.T) {
	opts := testOptions()
	opts.Renderer = RendererGrid

	// Grid SVG needs no graphviz engine; PNG always does.
	if got := opts.ArtifactKeyOpts(FormatSVG).Engine; got != "" {
		t.Errorf("grid svg engine = %q, want empty", got)
	}
	if got := opts.ArtifactKeyOpts(FormatPNG).Engine; got != "dot" {
		t.Errorf("png engine = %q, want dot", got)
	}

	opts.Renderer = RendererGraphviz
	if got := opts.ArtifactKeyOpts(FormatSVG).Engine; got != "dot" {
		t.Errorf("graphviz svg engine = %q, want dot", got)
	}
}
