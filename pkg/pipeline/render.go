package pipeline

import (
	"fmt"

	"github.com/sitegrid/sitegrid/pkg/diagram"
	"github.com/sitegrid/sitegrid/pkg/render"
)

// renderDocument generates output artifacts in the requested formats.
//
// SVG honors the renderer choice (native grid vs graphviz tree). PNG and
// DOT always go through graphviz: the grid renderer has no rasterizer of
// its own. JSON is the serialized document itself.
func renderDocument(doc diagram.Document, opts Options) (map[string][]byte, error) {
	renderOpts := render.Options{
		ShowGrid:  opts.ShowGrid,
		ShowEdges: opts.ShowEdges,
		Engine:    opts.Engine,
	}

	artifacts := make(map[string][]byte)
	var dot string // computed once, shared by dot/png/graphviz-svg

	dotFor := func() string {
		if dot == "" {
			dot = render.ToDOT(doc, renderOpts)
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			if opts.Renderer == RendererGraphviz {
				data, err = render.GraphvizSVG(dotFor(), opts.Engine)
			} else {
				data = render.RenderSVG(doc, renderOpts)
			}
		case FormatPNG:
			data, err = render.GraphvizPNG(dotFor(), opts.Engine)
		case FormatDOT:
			data = []byte(dotFor())
		case FormatJSON:
			data, err = diagram.Marshal(doc)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
