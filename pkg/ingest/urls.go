package ingest

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"

	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

// URLBuilder builds a forest from a plain-text URL list, one URL per line.
// Blank lines and lines starting with # are skipped.
//
// Hierarchy is derived from URL paths: /blog/first-post is a child of
// /blog, which is a child of the site root. Missing intermediate pages are
// synthesized so every parent link spans exactly one depth level. The
// first path segment becomes the page's category; root pages use the
// default category.
//
// Hosts are ignored: a list mixing hosts maps pages with equal paths to
// the same node.
type URLBuilder struct{}

// Format returns "urls".
func (b *URLBuilder) Format() string { return "urls" }

// Supports reports whether the filename looks like a URL list.
func (b *URLBuilder) Supports(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".txt") || strings.HasSuffix(lower, ".urls")
}

// page is one discovered path before forest assembly.
type page struct {
	path     string
	segments []string
	rawURL   string
}

// Build reads the URL list and returns a validated forest.
func (b *URLBuilder) Build(r io.Reader, opts Options) (*sitemap.Forest, error) {
	pages := make(map[string]*page)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		u, err := url.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse %q: %w", lineNo, line, err)
		}

		// First URL seen for a path wins.
		p := normalizePath(u.Path)
		if _, ok := pages[p]; ok {
			continue
		}
		pages[p] = &page{
			path:     p,
			segments: splitPath(p),
			rawURL:   line,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read url list: %w", err)
	}

	// Synthesize missing ancestors so links span exactly one level.
	listed := make([]*page, 0, len(pages))
	for _, p := range pages {
		listed = append(listed, p)
	}
	for _, p := range listed {
		segs := p.segments
		for i := 0; i < len(segs); i++ {
			ancestor := "/" + strings.Join(segs[:i], "/")
			if i == 0 {
				ancestor = "/"
			}
			if _, ok := pages[ancestor]; !ok {
				pages[ancestor] = &page{path: ancestor, segments: segs[:i]}
			}
		}
	}
	if len(pages) == 0 {
		return sitemap.New(), nil
	}
	if _, ok := pages["/"]; !ok {
		pages["/"] = &page{path: "/"}
	}

	// Deterministic insertion order: shallow pages first, then by path.
	ordered := make([]*page, 0, len(pages))
	for _, p := range pages {
		ordered = append(ordered, p)
	}
	slices.SortFunc(ordered, func(a, b *page) int {
		if d := len(a.segments) - len(b.segments); d != 0 {
			return d
		}
		return strings.Compare(a.path, b.path)
	})

	f := sitemap.New()
	for _, p := range ordered {
		if err := f.AddNode(sitemap.Node{
			ID:       p.path,
			Depth:    len(p.segments),
			Category: b.categoryFor(p, opts),
			Title:    b.titleFor(p, opts),
			URL:      p.rawURL,
		}); err != nil {
			return nil, fmt.Errorf("add %s: %w", p.path, err)
		}
	}
	for _, p := range ordered {
		if len(p.segments) == 0 {
			continue
		}
		parent := "/" + strings.Join(p.segments[:len(p.segments)-1], "/")
		if len(p.segments) == 1 {
			parent = "/"
		}
		if err := f.Link(parent, p.path); err != nil {
			return nil, fmt.Errorf("link %s -> %s: %w", parent, p.path, err)
		}
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (b *URLBuilder) categoryFor(p *page, opts Options) string {
	if len(p.segments) == 0 {
		return opts.category()
	}
	return p.segments[0]
}

func (b *URLBuilder) titleFor(p *page, opts Options) string {
	if len(p.segments) == 0 {
		if opts.RootTitle != "" {
			return opts.RootTitle
		}
		return "Home"
	}
	return titleFromSlug(p.segments[len(p.segments)-1])
}

// normalizePath cleans a URL path to its canonical node ID form: leading
// slash, no trailing slash, "/" for the root.
func normalizePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "/"
	}
	return "/" + p
}

// splitPath returns the path segments of a normalized path, nil for "/".
func splitPath(p string) []string {
	if p == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}
