package pipeline

import (
	"fmt"
	"strings"

	"github.com/sitegrid/sitegrid/pkg/ingest"
	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

// build turns the source data in opts into a validated forest.
func build(opts Options) (*sitemap.Forest, error) {
	var builder ingest.Builder
	for _, b := range ingest.Builders() {
		if b.Format() == opts.Format {
			builder = b
			break
		}
	}
	if builder == nil {
		return nil, fmt.Errorf("no builder for source format %q", opts.Format)
	}

	f, err := builder.Build(strings.NewReader(opts.Source), ingest.Options{
		DefaultCategory: opts.DefaultCategory,
		RootTitle:       opts.RootTitle,
	})
	if err != nil {
		return nil, fmt.Errorf("build %s source: %w", opts.Format, err)
	}
	return f, nil
}
