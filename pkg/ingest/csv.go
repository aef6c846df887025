package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

// CSVBuilder builds a forest from CSV rows with explicit structure. The
// first row is a header naming the columns; recognized names (case
// insensitive) are:
//
//	id, parent_id (or parent), depth, category, title, url
//
// Only the header itself is required. Rows without an id get a generated
// UUID. Rows without a depth get one derived from their parent chain
// (roots are 0). Explicit depths are validated against parent links.
type CSVBuilder struct{}

// Format returns "csv".
func (b *CSVBuilder) Format() string { return "csv" }

// Supports reports whether the filename has a .csv extension.
func (b *CSVBuilder) Supports(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

// row is one CSV record before forest assembly.
type row struct {
	id       string
	parentID string
	depth    int
	hasDepth bool
	category string
	title    string
	url      string
	line     int
}

// Build reads CSV records and returns a validated forest.
func (b *CSVBuilder) Build(r io.Reader, opts Options) (*sitemap.Forest, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return sitemap.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []*row
	byID := make(map[string]*row)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		rw, err := parseRow(record, cols, line)
		if err != nil {
			return nil, err
		}
		if byID[rw.id] != nil {
			return nil, fmt.Errorf("line %d: %w: %s", line, sitemap.ErrDuplicateNodeID, rw.id)
		}
		rows = append(rows, rw)
		byID[rw.id] = rw
	}

	// Fill in missing depths from parent chains.
	for _, rw := range rows {
		if _, err := resolveDepth(rw, byID, make(map[string]bool)); err != nil {
			return nil, err
		}
	}

	f := sitemap.New()
	for _, rw := range rows {
		category := rw.category
		if category == "" && rw.parentID == "" {
			category = opts.category()
		}
		title := rw.title
		if title == "" && rw.parentID == "" && opts.RootTitle != "" {
			title = opts.RootTitle
		}
		if err := f.AddNode(sitemap.Node{
			ID:       rw.id,
			Depth:    rw.depth,
			Category: category,
			Title:    title,
			URL:      rw.url,
		}); err != nil {
			return nil, fmt.Errorf("line %d: %w", rw.line, err)
		}
	}
	for _, rw := range rows {
		if rw.parentID == "" {
			continue
		}
		if _, ok := byID[rw.parentID]; !ok {
			// Dangling parents are kept as references; the node is a root.
			n, _ := f.Node(rw.id)
			n.ParentID = rw.parentID
			continue
		}
		if err := f.Link(rw.parentID, rw.id); err != nil {
			return nil, fmt.Errorf("line %d: %w", rw.line, err)
		}
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// mapHeader maps recognized column names to their indexes.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "parent" {
			name = "parent_id"
		}
		switch name {
		case "id", "parent_id", "depth", "category", "title", "url":
			if _, dup := cols[name]; dup {
				return nil, fmt.Errorf("duplicate csv column %q", name)
			}
			cols[name] = i
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("csv header has no recognized columns")
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int, line int) (*row, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rw := &row{
		id:       field("id"),
		parentID: field("parent_id"),
		category: field("category"),
		title:    field("title"),
		url:      field("url"),
		line:     line,
	}
	if rw.id == "" {
		rw.id = uuid.NewString()
	}

	if d := field("depth"); d != "" {
		depth, err := strconv.Atoi(d)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid depth %q", line, d)
		}
		if depth < 0 {
			return nil, fmt.Errorf("line %d: negative depth %d", line, depth)
		}
		rw.depth = depth
		rw.hasDepth = true
	}
	return rw, nil
}

// resolveDepth fills in rw.depth from the parent chain when the row did
// not specify one. visiting guards against parent cycles.
func resolveDepth(rw *row, byID map[string]*row, visiting map[string]bool) (int, error) {
	if rw.hasDepth {
		return rw.depth, nil
	}
	if visiting[rw.id] {
		return 0, fmt.Errorf("line %d: parent cycle through %s", rw.line, rw.id)
	}

	parent, ok := byID[rw.parentID]
	if rw.parentID == "" || !ok {
		rw.depth = 0
		rw.hasDepth = true
		return 0, nil
	}

	visiting[rw.id] = true
	pd, err := resolveDepth(parent, byID, visiting)
	delete(visiting, rw.id)
	if err != nil {
		return 0, err
	}
	rw.depth = pd + 1
	rw.hasDepth = true
	return rw.depth, nil
}
