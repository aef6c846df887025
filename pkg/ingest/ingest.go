// Package ingest builds sitemap forests from external source data.
//
// Two source formats are supported:
//
//   - URL lists ([URLBuilder]): one page URL per line, hierarchy and
//     categories derived from the URL paths
//   - CSV ([CSVBuilder]): explicit rows with id, parent, depth, category,
//     title, and url columns
//
// Builders normalize whatever the source provides into a valid
// [sitemap.Forest]: missing intermediate pages are synthesized, depths are
// made consistent with parent links, and rows without IDs get generated
// ones. Every built forest passes Forest.Validate.
package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

// Options controls forest building.
type Options struct {
	// DefaultCategory overrides the category assigned to pages that have
	// none. Empty means sitemap.DefaultCategory.
	DefaultCategory string

	// RootTitle overrides the display title of root pages that would
	// otherwise fall back to their ID.
	RootTitle string
}

// category returns the effective default category.
func (o Options) category() string {
	if o.DefaultCategory != "" {
		return o.DefaultCategory
	}
	return sitemap.DefaultCategory
}

// Builder turns one source format into a forest.
type Builder interface {
	// Format returns the short format name used in cache keys ("urls", "csv").
	Format() string

	// Supports reports whether the builder handles the given filename.
	Supports(filename string) bool

	// Build reads source data and returns a validated forest.
	Build(r io.Reader, opts Options) (*sitemap.Forest, error)
}

// Builders returns all registered builders in detection order.
func Builders() []Builder {
	return []Builder{
		&CSVBuilder{},
		&URLBuilder{},
	}
}

// Detect returns the builder for a filename, or an error if no builder
// supports it. Plain text files fall through to the URL-list builder.
func Detect(filename string) (Builder, error) {
	for _, b := range Builders() {
		if b.Supports(filename) {
			return b, nil
		}
	}
	return nil, fmt.Errorf("no builder for %q (supported: csv, txt url lists)", filepath.Base(filename))
}

// titleFromSlug converts a path segment like "first-post" to "First Post".
func titleFromSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
