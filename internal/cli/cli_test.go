package cli

import (
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,json", []string{"svg", "json"}},
	}
	for _, tc := range cases {
		if got := parseFormats(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		output, input, ext string
		want               string
	}{
		{"", "site.txt", "json", "site.json"},
		{"out.json", "site.txt", "json", "out.json"},
		{"", "-", "svg", "sitemap.svg"},
		{"", "pages.layout", "layout.json", "pages.layout.json"},
	}
	for _, tc := range cases {
		if got := outputPath(tc.output, tc.input, tc.ext); got != tc.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tc.output, tc.input, tc.ext, got, tc.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	cases := []struct {
		output, input string
		want          string
	}{
		{"", "site.txt", "site"},
		{"", "-", "sitemap"},
		{"out.svg", "site.txt", "out"},
		{"out", "site.txt", "out"},
		{"dir/out.csv", "site.txt", "dir/out.csv"},
	}
	for _, tc := range cases {
		if got := basePath(tc.output, tc.input); got != tc.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tc.output, tc.input, got, tc.want)
		}
	}
}
